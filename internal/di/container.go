package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/adapters/storage"
	"github.com/stoik/phishing-detector/internal/application"
	"github.com/stoik/phishing-detector/internal/config"
	"github.com/stoik/phishing-detector/internal/domain/detection"
	"github.com/stoik/phishing-detector/internal/factory"
	"github.com/stoik/phishing-detector/internal/lexicon"
	"github.com/stoik/phishing-detector/internal/logging"
	"github.com/stoik/phishing-detector/internal/metrics"
	"github.com/stoik/phishing-detector/internal/ports"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := RegisterServices(container); err != nil {
		return nil, err
	}

	return container, nil
}

// RegisterServices provides everything downstream of configuration and logging
func RegisterServices(container *dig.Container) error {
	// Register factories
	for _, constructor := range []any{
		factory.NewStorageFactory,
		factory.NewCacheFactory,
		factory.NewAlertFactory,
		factory.NewLexiconFactory,
		factory.NewSourceFactory,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Register metrics registry with runtime collectors
	if err := container.Provide(func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg
	}); err != nil {
		return err
	}
	if err := container.Provide(func(reg *prometheus.Registry) *metrics.Metrics {
		return metrics.New(reg)
	}); err != nil {
		return err
	}

	// Register lexicon, loaded once for the process lifetime
	if err := container.Provide(func(f *factory.LexiconFactory, m *metrics.Metrics) (*lexicon.Lexicon, error) {
		lex, err := f.CreateLexicon()
		if err != nil {
			return nil, err
		}
		m.ObserveLexicon(lex)
		return lex, nil
	}); err != nil {
		return err
	}

	// Register storage
	if err := container.Provide(func(f *factory.StorageFactory) (*storage.SQLStore, error) {
		return f.CreateStore()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(store *storage.SQLStore) ports.Storage {
		return store
	}); err != nil {
		return err
	}

	// Register cache, alert publisher and submission source
	if err := container.Provide(func(f *factory.CacheFactory) (ports.AnalysisCache, error) {
		return f.CreateAnalysisCache()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.AlertFactory) (ports.AlertPublisher, error) {
		return f.CreateAlertPublisher()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.SourceFactory) (ports.SubmissionSource, error) {
		return f.CreateSubmissionSource()
	}); err != nil {
		return err
	}

	// Register detector and service
	if err := container.Provide(func(lex *lexicon.Lexicon, logger *zap.Logger) *detection.Detector {
		return detection.NewDetector(lex, logger)
	}); err != nil {
		return err
	}
	if err := container.Provide(application.NewPhishingDetectionService); err != nil {
		return err
	}

	return nil
}
