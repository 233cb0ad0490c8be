package providers

import (
	"context"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhillyerd/enmime"
	"github.com/stoik/phishing-detector/internal/domain"
	"go.uber.org/zap"
)

// EMLSource implements ports.SubmissionSource over a directory of .eml files
//
// Each file is one submission. The Date header is the receive time; files
// without a parseable Date fall back to their modification time.
type EMLSource struct {
	dir    string
	logger *zap.Logger
}

// NewEMLSource creates a source reading *.eml files from dir
func NewEMLSource(dir string, logger *zap.Logger) *EMLSource {
	return &EMLSource{dir: dir, logger: logger}
}

// Name returns the source name
func (s *EMLSource) Name() string {
	return "eml"
}

// GetSubmissions parses every .eml file received after receivedAfter.
// Unparseable files are logged and skipped.
func (s *EMLSource) GetSubmissions(ctx context.Context, receivedAfter time.Time) ([]domain.Submission, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	submissions := make([]domain.Submission, 0)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return submissions, err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".eml") {
			continue
		}

		submission, err := s.readFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Warn("Skipping unreadable email file",
				zap.String("file", entry.Name()),
				zap.Error(err))
			continue
		}

		if !submission.ReceivedAt.After(receivedAfter) {
			continue
		}
		submissions = append(submissions, *submission)
	}

	s.logger.Info("Read email files",
		zap.String("dir", s.dir),
		zap.Int("submissions", len(submissions)))

	return submissions, nil
}

// readFile parses a single .eml file into a submission
func (s *EMLSource) readFile(path string) (*domain.Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	env, err := enmime.ReadEnvelope(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIME: %w", err)
	}

	receivedAt, err := mail.ParseDate(env.GetHeader("Date"))
	if err != nil {
		info, statErr := f.Stat()
		if statErr != nil {
			return nil, fmt.Errorf("failed to stat file: %w", statErr)
		}
		receivedAt = info.ModTime()
	}

	attachments := make([]string, 0, len(env.Attachments))
	for _, part := range env.Attachments {
		if part.FileName != "" {
			attachments = append(attachments, part.FileName)
		}
	}

	return &domain.Submission{
		ID:          uuid.New(),
		Source:      s.Name(),
		SourceRef:   filepath.Base(path),
		Sender:      env.GetHeader("From"),
		Subject:     env.GetHeader("Subject"),
		Body:        env.Text, // enmime down-converts HTML-only messages
		Attachments: attachments,
		ReceivedAt:  receivedAt.UTC(),
	}, nil
}
