package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/application"
	"github.com/stoik/phishing-detector/internal/config"
	"github.com/stoik/phishing-detector/internal/di"
	"github.com/stoik/phishing-detector/internal/ports"
)

func main() {
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one ingest, analyze and report pass with all dependencies injected
func run(
	cfg *config.Config,
	logger *zap.Logger,
	service *application.PhishingDetectionService,
	source ports.SubmissionSource,
	store ports.Storage,
	alerts ports.AlertPublisher,
	cache ports.AnalysisCache,
	registry *prometheus.Registry,
) error {
	defer logger.Sync()
	defer store.Close()
	defer alerts.Close()
	if closer, ok := cache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	logger.Info("Starting phishing detection service...")

	ingestCfg, err := cfg.GetIngest()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if addr := cfg.GetString("metrics.listen_address"); addr != "" {
		metricsServer = startMetricsServer(addr, registry, logger)
	}

	// Phase 1: Ingestion
	receivedAfter := time.Now().Add(-ingestCfg.Lookback)
	if _, err := service.IngestSubmissions(ctx, source, receivedAfter); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	// Phase 2: Detection
	processed, err := service.ProcessUnprocessedSubmissions(ctx, ingestCfg.BatchSize)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}
	logger.Info("Processed submissions", zap.Int("count", processed))

	// Phase 3: Display summary
	highRisk, err := service.GetHighRiskSummary(ctx, cfg.GetInt("summary.limit"))
	if err != nil {
		return fmt.Errorf("failed to fetch high-risk analyses: %w", err)
	}
	printSummary(highRisk)

	if metricsServer != nil {
		logger.Info("Serving metrics until interrupted", zap.String("address", metricsServer.Addr))
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to stop metrics server", zap.Error(err))
		}
	}

	logger.Info("Phishing detection service completed successfully")
	return nil
}

func startMetricsServer(addr string, registry *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	logger.Info("Metrics server started", zap.String("address", addr))
	return server
}
