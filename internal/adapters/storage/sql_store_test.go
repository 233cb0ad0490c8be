package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "phishing.db"))
	require.NoError(t, err)
	require.NoError(t, store.InitSchema())
	t.Cleanup(func() { store.Close() })
	return store
}

func newSubmission(ref string, receivedAt time.Time) *domain.Submission {
	return &domain.Submission{
		ID:          uuid.New(),
		Source:      "eml",
		SourceRef:   ref,
		Sender:      "alice@uncw.edu",
		Subject:     "Project meeting notes",
		Body:        "See attached notes.docx",
		Attachments: []string{"notes.docx"},
		ReceivedAt:  receivedAt.UTC(),
		IngestedAt:  time.Now().UTC(),
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT * FROM t WHERE a = $1 AND b = $2 OR c = $10"
	assert.Equal(t, query, postgresDialect.rebind(query))
	assert.Equal(t, "SELECT * FROM t WHERE a = ?1 AND b = ?2 OR c = ?10", sqliteDialect.rebind(query))
}

func TestSQLStore_SubmissionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	older := newSubmission("older.eml", time.Now().Add(-2*time.Hour))
	newer := newSubmission("newer.eml", time.Now().Add(-1*time.Hour))
	require.NoError(t, store.CreateSubmission(ctx, newer))
	require.NoError(t, store.CreateSubmission(ctx, older))

	// Re-ingesting the same source item is ignored
	duplicate := newSubmission("older.eml", time.Now())
	require.NoError(t, store.CreateSubmission(ctx, duplicate))

	pending, err := store.GetUnprocessedSubmissions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2, "the duplicate is not stored")
	assert.Equal(t, older.ID, pending[0].ID, "oldest first")
	assert.Equal(t, older.Sender, pending[0].Sender)
	assert.Equal(t, []string{"notes.docx"}, pending[0].Attachments)
	assert.Nil(t, pending[0].ProcessedAt)

	require.NoError(t, store.MarkSubmissionProcessed(ctx, older.ID))

	pending, err = store.GetUnprocessedSubmissions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, newer.ID, pending[0].ID)
}

func TestSQLStore_GetHighRiskAnalyses(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	analyses := []*domain.Analysis{
		{FinalScore: 100, Assessment: domain.AssessmentHigh},
		{FinalScore: 45, Assessment: domain.AssessmentModerate},
		{FinalScore: 20, Assessment: domain.AssessmentSuspicious},
		{FinalScore: 0, Assessment: domain.AssessmentSafe},
	}
	var submission *domain.Submission
	for i, a := range analyses {
		submission = newSubmission(fmt.Sprintf("risky-%d.eml", i), time.Now())
		require.NoError(t, store.CreateSubmission(ctx, submission))

		a.ID = uuid.New()
		a.SubmissionID = submission.ID
		a.Escalation = domain.EscalationCritical
		a.Multiplier = domain.MultiplierAttachmentAndSensitive
		a.Scores = map[domain.Category]int{domain.CategoryAttachment: 95}
		a.Findings = []domain.Finding{{Category: domain.CategoryAttachment, Score: 95, Summary: "Potentially dangerous attachments detected"}}
		a.Links = []string{"http://192.168.1.5/login"}
		a.Attachments = []string{"invoice.pdf.exe"}
		a.AnalyzedAt = time.Now().UTC()
		require.NoError(t, store.CreateAnalysis(ctx, a))
	}

	highRisk, err := store.GetHighRiskAnalyses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, highRisk, 2)

	assert.Equal(t, 100, highRisk[0].FinalScore)
	assert.Equal(t, domain.AssessmentHigh, highRisk[0].Assessment)
	assert.Equal(t, domain.EscalationCritical, highRisk[0].Escalation)
	assert.Equal(t, 95, highRisk[0].Scores[domain.CategoryAttachment])
	assert.Equal(t, []string{"invoice.pdf.exe"}, highRisk[0].Attachments)
	assert.Equal(t, submission.Sender, highRisk[0].Sender)
	assert.Equal(t, submission.Subject, highRisk[0].Subject)
	assert.Equal(t, domain.AssessmentModerate, highRisk[1].Assessment)

	limited, err := store.GetHighRiskAnalyses(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLStore_CreateAnalysisOncePerSubmission(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	submission := newSubmission("reprocessed.eml", time.Now())
	require.NoError(t, store.CreateSubmission(ctx, submission))

	// Same submission analyzed twice, e.g. after a lost processed mark
	for _, score := range []int{100, 90} {
		require.NoError(t, store.CreateAnalysis(ctx, &domain.Analysis{
			ID:           uuid.New(),
			SubmissionID: submission.ID,
			FinalScore:   score,
			Assessment:   domain.AssessmentHigh,
			Escalation:   domain.EscalationCritical,
			Multiplier:   domain.MultiplierNone,
			AnalyzedAt:   time.Now().UTC(),
		}))
	}

	highRisk, err := store.GetHighRiskAnalyses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, highRisk, 1)
	assert.Equal(t, 100, highRisk[0].FinalScore, "the first analysis is kept")
}
