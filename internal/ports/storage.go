package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/stoik/phishing-detector/internal/domain"
)

// Storage defines the contract for persisting submissions and their analyses
type Storage interface {
	// Submission operations
	CreateSubmission(ctx context.Context, submission *domain.Submission) error
	GetUnprocessedSubmissions(ctx context.Context, limit int) ([]domain.Submission, error)
	MarkSubmissionProcessed(ctx context.Context, submissionID uuid.UUID) error

	// Analysis operations
	CreateAnalysis(ctx context.Context, analysis *domain.Analysis) error
	GetHighRiskAnalyses(ctx context.Context, limit int) ([]domain.Analysis, error)

	// Lifecycle
	Close() error
}
