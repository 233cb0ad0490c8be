package providers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/phishing-detector/internal/domain"
)

// SampleSource implements ports.SubmissionSource with built-in demo emails
// For demos and smoke tests: exercises the pipeline without a mailbox
type SampleSource struct{}

// NewSampleSource creates a new sample source
func NewSampleSource() *SampleSource {
	return &SampleSource{}
}

// Name returns the source name
func (s *SampleSource) Name() string {
	return "sample"
}

// GetSubmissions returns one credential phish and one ordinary note.
// Sample emails are always two hours old, so a zero receivedAfter returns both.
func (s *SampleSource) GetSubmissions(ctx context.Context, receivedAfter time.Time) ([]domain.Submission, error) {
	receivedAt := time.Now().Add(-2 * time.Hour).UTC()

	samples := []domain.Submission{
		{
			ID:        uuid.New(),
			Source:    s.Name(),
			SourceRef: "sample-credential-phish",
			// Display-name spoofing + raw-IP link + disguised executable
			Sender:      "paypal.com Support <scam@malicious-login.biz>",
			Subject:     "URGENT!!! Verify Your Account Now!!!",
			Body:        "Dear Customer, we detected unusual activity. Please verify your password at http://192.168.1.5/login immediately.",
			Attachments: []string{"invoice.pdf.exe"},
			ReceivedAt:  receivedAt,
		},
		{
			ID:         uuid.New(),
			Source:     s.Name(),
			SourceRef:  "sample-meeting-notes",
			Sender:     "alice@uncw.edu",
			Subject:    "Project meeting notes",
			Body:       "See attached notes.docx",
			ReceivedAt: receivedAt,
		},
	}

	result := make([]domain.Submission, 0, len(samples))
	for _, sample := range samples {
		if sample.ReceivedAt.After(receivedAfter) {
			result = append(result, sample)
		}
	}
	return result, nil
}
