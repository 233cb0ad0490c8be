package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/config"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// LexiconFactory loads the detector word lists based on configuration
type LexiconFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLexiconFactory creates a new lexicon factory
func NewLexiconFactory(cfg *config.Config, logger *zap.Logger) *LexiconFactory {
	return &LexiconFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateProvider returns the configured lexicon provider
func (f *LexiconFactory) CreateProvider() (lexicon.Provider, error) {
	lexiconCfg := f.cfg.GetLexicon()

	switch lexiconCfg.Source {
	case "embedded":
		return lexicon.NewEmbeddedProvider(), nil
	case "directory":
		if lexiconCfg.Path == "" {
			return nil, fmt.Errorf("lexicon.path is required for the directory source")
		}
		return lexicon.NewDirectoryProvider(lexiconCfg.Path), nil
	case "yaml":
		return lexicon.NewYAMLProvider(lexiconCfg.Path)
	default:
		return nil, fmt.Errorf("unsupported lexicon source: %s", lexiconCfg.Source)
	}
}

// CreateLexicon loads every list once. Missing lists are logged, not fatal.
func (f *LexiconFactory) CreateLexicon() (*lexicon.Lexicon, error) {
	provider, err := f.CreateProvider()
	if err != nil {
		return nil, err
	}
	return lexicon.Load(provider, f.logger), nil
}
