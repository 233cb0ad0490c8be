package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/domain/detection"
	"github.com/stoik/phishing-detector/internal/metrics"
	"github.com/stoik/phishing-detector/internal/ports"
)

// PhishingDetectionService orchestrates submission ingestion and phishing analysis
type PhishingDetectionService struct {
	storage  ports.Storage
	detector *detection.Detector
	cache    ports.AnalysisCache // nil disables caching
	alerts   ports.AlertPublisher
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewPhishingDetectionService creates a new phishing detection service with dependency injection
func NewPhishingDetectionService(
	storage ports.Storage,
	detector *detection.Detector,
	cache ports.AnalysisCache,
	alerts ports.AlertPublisher,
	metrics *metrics.Metrics,
	logger *zap.Logger,
) *PhishingDetectionService {
	return &PhishingDetectionService{
		storage:  storage,
		detector: detector,
		cache:    cache,
		alerts:   alerts,
		metrics:  metrics,
		logger:   logger,
	}
}

// Analyze scores a single request
func (s *PhishingDetectionService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	scored, err := s.analyzeCached(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := newAnalyzeResponse(req, scored.Result, scored.Links, scored.Attachments)
	resp.Cached = scored.cached
	return resp, nil
}

// scoredEmail is a composite result with the post-extraction collections it was computed from
type scoredEmail struct {
	domain.CachedAnalysis
	cached bool
}

// analyzeCached answers identical requests from the cache when one is configured.
// Cache failures are logged and treated as misses.
func (s *PhishingDetectionService) analyzeCached(ctx context.Context, req AnalyzeRequest) (*scoredEmail, error) {
	key, err := cacheKey(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint request: %w", err)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Cache lookup failed", zap.Error(err))
		} else if cached != nil {
			s.logger.Debug("Cache hit for request", zap.String("key", key))
			s.metrics.CacheHit()
			return &scoredEmail{CachedAnalysis: *cached, cached: true}, nil
		}
	}

	email := domain.NewEmail(req.Sender, req.Subject, req.Body, req.Attachments)
	result := s.detector.AnalyzeEmail(email)
	s.metrics.ObserveAnalysis(result)

	entry := domain.CachedAnalysis{
		Result:      result,
		Links:       email.Links,
		Attachments: email.Attachments,
		CachedAt:    time.Now().UTC(),
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &entry); err != nil {
			s.logger.Warn("Failed to update cache", zap.Error(err))
		}
	}

	return &scoredEmail{CachedAnalysis: entry}, nil
}

// IngestSubmissions fetches submissions from a source and stores them
// Error handling strategy:
//   - Individual submission failures are logged but don't halt the pipeline
//   - A source that cannot be read at all returns an error to the caller
func (s *PhishingDetectionService) IngestSubmissions(ctx context.Context, source ports.SubmissionSource, receivedAfter time.Time) (int, error) {
	s.logger.Info("Ingesting submissions",
		zap.String("source", source.Name()),
		zap.Time("received_after", receivedAfter))

	submissions, err := source.GetSubmissions(ctx, receivedAfter)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch submissions from %s: %w", source.Name(), err)
	}

	ingested := 0
	for i := range submissions {
		submission := &submissions[i]
		if submission.ID == uuid.Nil {
			submission.ID = uuid.New()
		}
		if submission.Source == "" {
			submission.Source = source.Name()
		}
		submission.IngestedAt = time.Now().UTC()

		if err := s.storage.CreateSubmission(ctx, submission); err != nil {
			s.logger.Error("Failed to store submission",
				zap.String("source_ref", submission.SourceRef),
				zap.Error(err))
			continue
		}
		ingested++
	}

	s.logger.Info("Ingested submissions",
		zap.String("source", source.Name()),
		zap.Int("count", ingested))
	return ingested, nil
}

// ProcessUnprocessedSubmissions analyzes a batch of stored submissions
// Processing guarantees:
//   - Submissions are processed at-least-once (if storing the analysis fails, the submission stays unprocessed)
//   - Individual failures don't block the batch (logged and skipped)
//   - Highly suspicious submissions are published as alerts
func (s *PhishingDetectionService) ProcessUnprocessedSubmissions(ctx context.Context, batchSize int) (int, error) {
	submissions, err := s.storage.GetUnprocessedSubmissions(ctx, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch unprocessed submissions: %w", err)
	}

	s.logger.Info("Processing unprocessed submissions", zap.Int("count", len(submissions)))

	processed := 0
	for i := range submissions {
		submission := &submissions[i]

		scored, err := s.analyzeCached(ctx, AnalyzeRequest{
			Sender:      submission.Sender,
			Subject:     submission.Subject,
			Body:        submission.Body,
			Attachments: submission.Attachments,
		})
		if err != nil {
			s.logger.Error("Failed to analyze submission",
				zap.String("submission_id", submission.ID.String()),
				zap.Error(err))
			continue
		}
		result := scored.Result

		analysis := &domain.Analysis{
			ID:           uuid.New(),
			SubmissionID: submission.ID,
			FinalScore:   result.FinalScore,
			Assessment:   result.Assessment,
			Escalation:   result.Escalation,
			Multiplier:   result.Multiplier,
			Scores:       result.Scores,
			Findings:     result.Findings,
			Links:        uniqueLinks(scored.Links),
			Attachments:  scored.Attachments,
			AnalyzedAt:   time.Now().UTC(),
		}

		if err := s.storage.CreateAnalysis(ctx, analysis); err != nil {
			s.logger.Error("Failed to store analysis",
				zap.String("submission_id", submission.ID.String()),
				zap.Error(err))
			continue
		}

		// Only after the analysis is stored
		if err := s.storage.MarkSubmissionProcessed(ctx, submission.ID); err != nil {
			s.logger.Error("Failed to mark submission as processed",
				zap.String("submission_id", submission.ID.String()),
				zap.Error(err))
		}
		processed++

		if result.Assessment == domain.AssessmentHigh {
			s.raiseAlert(ctx, submission, analysis)
		}
	}

	return processed, nil
}

// GetHighRiskSummary retrieves the highest scoring moderate and high risk analyses
func (s *PhishingDetectionService) GetHighRiskSummary(ctx context.Context, limit int) ([]domain.Analysis, error) {
	return s.storage.GetHighRiskAnalyses(ctx, limit)
}

func (s *PhishingDetectionService) raiseAlert(ctx context.Context, submission *domain.Submission, analysis *domain.Analysis) {
	s.logger.Warn("High risk submission detected",
		zap.String("submission_id", submission.ID.String()),
		zap.String("sender", submission.Sender),
		zap.String("subject", submission.Subject),
		zap.Int("final_score", analysis.FinalScore),
		zap.Int("findings", len(analysis.Findings)))

	alert := &domain.Alert{
		AnalysisID:   analysis.ID,
		SubmissionID: submission.ID,
		Source:       submission.Source,
		Sender:       submission.Sender,
		Subject:      submission.Subject,
		FinalScore:   analysis.FinalScore,
		Assessment:   analysis.Assessment,
		Findings:     analysis.Findings,
		RaisedAt:     time.Now().UTC(),
	}
	if err := s.alerts.PublishAlert(ctx, alert); err != nil {
		s.logger.Error("Failed to publish alert",
			zap.String("analysis_id", analysis.ID.String()),
			zap.Error(err))
	}
}

// cacheKey fingerprints every request field, attachment order included.
// No attachments and an empty list fingerprint the same.
func cacheKey(req AnalyzeRequest) (string, error) {
	if req.Attachments == nil {
		req.Attachments = []string{}
	}
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
