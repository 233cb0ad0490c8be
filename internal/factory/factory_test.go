package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stoik/phishing-detector/internal/adapters/cache"
	"github.com/stoik/phishing-detector/internal/adapters/eventbus"
	"github.com/stoik/phishing-detector/internal/adapters/providers"
	"github.com/stoik/phishing-detector/internal/config"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

func testConfig(overrides map[string]any) *config.Config {
	v := config.NewEmptyViper()
	for key, value := range overrides {
		v.Set(key, value)
	}
	return config.NewFromViper(v)
}

func TestCacheFactory(t *testing.T) {
	tests := []struct {
		name      string
		cacheType string
		wantNil   bool
		wantErr   bool
	}{
		{name: "memory", cacheType: "memory"},
		{name: "disabled", cacheType: "none", wantNil: true},
		{name: "unknown", cacheType: "memcached", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewCacheFactory(testConfig(map[string]any{"cache.type": tt.cacheType}), zap.NewNop())

			c, err := f.CreateAnalysisCache()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, c)
				return
			}
			mem, ok := c.(*cache.MemoryCache)
			require.True(t, ok)
			mem.Close()
		})
	}
}

func TestAlertFactory_Disabled(t *testing.T) {
	f := NewAlertFactory(testConfig(nil), zap.NewNop())

	publisher, err := f.CreateAlertPublisher()
	require.NoError(t, err)
	assert.IsType(t, eventbus.NoopPublisher{}, publisher)
}

func TestAlertFactory_UnreachableServerWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := NewAlertFactory(testConfig(map[string]any{
		"alerts.enabled":  true,
		"alerts.nats_url": "nats://127.0.0.1:1",
	}), zap.New(core))

	publisher, err := f.CreateAlertPublisher()
	require.NoError(t, err)
	defer publisher.Close()

	natsPublisher, ok := publisher.(*eventbus.NATSPublisher)
	require.True(t, ok)
	assert.False(t, natsPublisher.IsConnected())
	assert.Equal(t, 1, logs.FilterMessage("NATS not reachable yet, retrying in the background").Len())
}

func TestLexiconFactory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "phishing_keywords.txt"), []byte("urgent\n"), 0o644))

	bundle := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(bundle, []byte("phishing_keywords: [act now]\n"), 0o644))

	tests := []struct {
		name     string
		source   string
		path     string
		keywords []string
		wantErr  bool
	}{
		{name: "directory", source: "directory", path: dir, keywords: []string{"urgent"}},
		{name: "yaml", source: "yaml", path: bundle, keywords: []string{"act now"}},
		{name: "directory without path", source: "directory", wantErr: true},
		{name: "unknown", source: "s3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLexiconFactory(testConfig(map[string]any{
				"lexicon.source": tt.source,
				"lexicon.path":   tt.path,
			}), zap.NewNop())

			lex, err := f.CreateLexicon()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.keywords, lex.List(lexicon.PhishingKeywords))
			assert.False(t, lex.Loaded(lexicon.SuspiciousDomains))
		})
	}
}

func TestLexiconFactory_Embedded(t *testing.T) {
	lex, err := NewLexiconFactory(testConfig(nil), zap.NewNop()).CreateLexicon()
	require.NoError(t, err)
	assert.True(t, lex.Loaded(lexicon.HighRiskExtensions))
}

func TestStorageFactory_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "phishing.db")
	f := NewStorageFactory(testConfig(map[string]any{"storage.sqlite_path": path}), zap.NewNop())

	store, err := f.CreateStore()
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, path)
}

func TestStorageFactory_UnknownType(t *testing.T) {
	f := NewStorageFactory(testConfig(map[string]any{"storage.type": "mongo"}), zap.NewNop())

	_, err := f.CreateStore()
	assert.Error(t, err)
}

func TestSourceFactory(t *testing.T) {
	source, err := NewSourceFactory(testConfig(map[string]any{"ingest.source": "sample"}), zap.NewNop()).CreateSubmissionSource()
	require.NoError(t, err)
	assert.IsType(t, &providers.SampleSource{}, source)

	source, err = NewSourceFactory(testConfig(nil), zap.NewNop()).CreateSubmissionSource()
	require.NoError(t, err)
	assert.Equal(t, "eml", source.Name())

	_, err = NewSourceFactory(testConfig(map[string]any{"ingest.source": "imap"}), zap.NewNop()).CreateSubmissionSource()
	assert.Error(t, err)
}
