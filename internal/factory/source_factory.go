package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/adapters/providers"
	"github.com/stoik/phishing-detector/internal/config"
	"github.com/stoik/phishing-detector/internal/ports"
)

// SourceFactory creates the submission source based on configuration
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new submission source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSubmissionSource returns the configured submission source
func (f *SourceFactory) CreateSubmissionSource() (ports.SubmissionSource, error) {
	source := f.cfg.GetString("ingest.source")
	switch source {
	case "eml":
		return providers.NewEMLSource(f.cfg.GetString("ingest.eml_dir"), f.logger), nil
	case "sample":
		return providers.NewSampleSource(), nil
	default:
		return nil, fmt.Errorf("unsupported ingest source: %s", source)
	}
}
