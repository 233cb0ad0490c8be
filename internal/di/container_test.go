package di

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/application"
	"github.com/stoik/phishing-detector/internal/config"
	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/ports"
)

func TestRegisterServices_ResolvesService(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("storage.sqlite_path", filepath.Join(t.TempDir(), "phishing.db"))
	v.Set("cache.type", "none")
	v.Set("ingest.source", "sample")

	container := dig.New()
	require.NoError(t, container.Provide(func() *config.Config { return config.NewFromViper(v) }))
	require.NoError(t, container.Provide(func() *zap.Logger { return zap.NewNop() }))
	require.NoError(t, RegisterServices(container))

	err := container.Invoke(func(svc *application.PhishingDetectionService, source ports.SubmissionSource, store ports.Storage) {
		defer store.Close()

		ctx := context.Background()
		_, err := svc.IngestSubmissions(ctx, source, time.Time{})
		require.NoError(t, err)

		processed, err := svc.ProcessUnprocessedSubmissions(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, processed)

		summary, err := svc.GetHighRiskSummary(ctx, 10)
		require.NoError(t, err)
		require.Len(t, summary, 1)
		assert.Equal(t, "paypal.com Support <scam@malicious-login.biz>", summary[0].Sender)

		var header *domain.Finding
		for i := range summary[0].Findings {
			if summary[0].Findings[i].Category == domain.CategoryHeader {
				header = &summary[0].Findings[i]
			}
		}
		require.NotNil(t, header)
		assert.Contains(t, header.Indicators, `Display name "paypal.com Support" names a domain other than malicious-login.biz`)
	})
	require.NoError(t, err)
}
