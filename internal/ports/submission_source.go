package ports

import (
	"context"
	"time"

	"github.com/stoik/phishing-detector/internal/domain"
)

// SubmissionSource defines the contract for pulling emails submitted for analysis
type SubmissionSource interface {
	// Name identifies the source in logs and stored submissions
	Name() string

	// GetSubmissions fetches submissions received after the given time.
	// receivedAfter implements incremental ingestion (only new submissions since the last run).
	GetSubmissions(ctx context.Context, receivedAfter time.Time) ([]domain.Submission, error)
}
