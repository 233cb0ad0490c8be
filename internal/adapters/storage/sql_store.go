package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stoik/phishing-detector/internal/domain"
)

// placeholderPattern matches PostgreSQL positional parameters ($1, $2, ...)
var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// dialect captures what differs between the supported SQL backends
type dialect struct {
	driver string
	schema string
	// rebind rewrites a query written with $N placeholders for the backend
	rebind func(query string) string
}

var postgresDialect = dialect{
	driver: "postgres",
	schema: postgresSchema,
	rebind: func(query string) string { return query },
}

// SQLite accepts numbered ?N parameters, which keeps positional reuse working
var sqliteDialect = dialect{
	driver: "sqlite3",
	schema: sqliteSchema,
	rebind: func(query string) string { return placeholderPattern.ReplaceAllString(query, "?${1}") },
}

// SQLStore implements ports.Storage for PostgreSQL and SQLite
//
// Queries are written once in PostgreSQL syntax and rebound per dialect.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// NewPostgresStore creates a new PostgreSQL storage instance
func NewPostgresStore(connStr string) (*SQLStore, error) {
	db, err := sql.Open(postgresDialect.driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	// In production, should be set based on workload
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &SQLStore{db: db, dialect: postgresDialect}, nil
}

// NewSQLiteStore creates a new SQLite storage instance backed by the file at path.
// Use ":memory:" for a throwaway database.
func NewSQLiteStore(path string) (*SQLStore, error) {
	db, err := sql.Open(sqliteDialect.driver, path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// SQLite serializes writers; a single connection also keeps :memory: databases alive
	db.SetMaxOpenConns(1)

	return &SQLStore{db: db, dialect: sqliteDialect}, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// InitSchema creates database tables if they don't exist
// In production, use proper migration tools
func (s *SQLStore) InitSchema() error {
	_, err := s.db.Exec(s.dialect.schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// CreateSubmission inserts a new submission. Re-ingesting the same source item is a no-op.
func (s *SQLStore) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	attachmentsJSON, err := json.Marshal(submission.Attachments)
	if err != nil {
		return fmt.Errorf("failed to marshal attachments: %w", err)
	}

	query := `
		INSERT INTO submissions (
			id, source, source_ref, sender, subject, body,
			attachments, received_at, ingested_at, processed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (source, source_ref) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, s.dialect.rebind(query),
		submission.ID, submission.Source, submission.SourceRef,
		submission.Sender, submission.Subject, submission.Body,
		string(attachmentsJSON), submission.ReceivedAt, submission.IngestedAt,
		nullTime(submission.ProcessedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// GetUnprocessedSubmissions retrieves submissions that haven't been analyzed yet
func (s *SQLStore) GetUnprocessedSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	query := `
		SELECT id, source, source_ref, sender, subject, body,
		       attachments, received_at, ingested_at, processed_at
		FROM submissions
		WHERE processed_at IS NULL
		ORDER BY received_at ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]domain.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *submission)
	}

	return submissions, rows.Err()
}

// MarkSubmissionProcessed updates the submission's processed_at timestamp
func (s *SQLStore) MarkSubmissionProcessed(ctx context.Context, submissionID uuid.UUID) error {
	query := `UPDATE submissions SET processed_at = $1 WHERE id = $2`
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(query), time.Now().UTC(), submissionID)
	if err != nil {
		return fmt.Errorf("failed to mark submission processed: %w", err)
	}
	return nil
}

// CreateAnalysis inserts an analysis result. A submission keeps its first analysis:
// re-analyzing one whose processed mark was lost is a no-op.
func (s *SQLStore) CreateAnalysis(ctx context.Context, analysis *domain.Analysis) error {
	scoresJSON, err := json.Marshal(analysis.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	findingsJSON, err := json.Marshal(analysis.Findings)
	if err != nil {
		return fmt.Errorf("failed to marshal findings: %w", err)
	}
	linksJSON, err := json.Marshal(analysis.Links)
	if err != nil {
		return fmt.Errorf("failed to marshal links: %w", err)
	}
	attachmentsJSON, err := json.Marshal(analysis.Attachments)
	if err != nil {
		return fmt.Errorf("failed to marshal attachments: %w", err)
	}

	query := `
		INSERT INTO analyses (
			id, submission_id, final_score, assessment, escalation_tier, multiplier,
			scores, findings, links, attachments, analyzed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (submission_id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, s.dialect.rebind(query),
		analysis.ID, analysis.SubmissionID, analysis.FinalScore,
		string(analysis.Assessment), string(analysis.Escalation), string(analysis.Multiplier),
		string(scoresJSON), string(findingsJSON), string(linksJSON), string(attachmentsJSON),
		analysis.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// GetHighRiskAnalyses retrieves moderately and highly suspicious analyses, highest score first
func (s *SQLStore) GetHighRiskAnalyses(ctx context.Context, limit int) ([]domain.Analysis, error) {
	query := `
		SELECT a.id, a.submission_id, a.final_score, a.assessment, a.escalation_tier,
		       a.multiplier, a.scores, a.findings, a.links, a.attachments, a.analyzed_at,
		       s.sender, s.subject
		FROM analyses a
		JOIN submissions s ON a.submission_id = s.id
		WHERE a.assessment IN ('MODERATE', 'HIGH')
		ORDER BY a.final_score DESC, a.analyzed_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query high-risk analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]domain.Analysis, 0)
	for rows.Next() {
		var analysis domain.Analysis
		var assessment, escalation, multiplier string
		var scoresJSON, findingsJSON, linksJSON, attachmentsJSON []byte

		err := rows.Scan(
			&analysis.ID, &analysis.SubmissionID, &analysis.FinalScore,
			&assessment, &escalation, &multiplier,
			&scoresJSON, &findingsJSON, &linksJSON, &attachmentsJSON,
			&analysis.AnalyzedAt, &analysis.Sender, &analysis.Subject,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}

		analysis.Assessment = domain.Assessment(assessment)
		analysis.Escalation = domain.EscalationTier(escalation)
		analysis.Multiplier = domain.MultiplierRule(multiplier)
		if err := unmarshalColumns(
			column{"scores", scoresJSON, &analysis.Scores},
			column{"findings", findingsJSON, &analysis.Findings},
			column{"links", linksJSON, &analysis.Links},
			column{"attachments", attachmentsJSON, &analysis.Attachments},
		); err != nil {
			return nil, err
		}

		analyses = append(analyses, analysis)
	}

	return analyses, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*domain.Submission, error) {
	submission := &domain.Submission{}
	var attachmentsJSON []byte
	var processedAt sql.NullTime

	err := row.Scan(
		&submission.ID, &submission.Source, &submission.SourceRef,
		&submission.Sender, &submission.Subject, &submission.Body,
		&attachmentsJSON, &submission.ReceivedAt, &submission.IngestedAt, &processedAt,
	)
	if err != nil {
		return nil, err
	}

	if processedAt.Valid {
		submission.ProcessedAt = &processedAt.Time
	}
	if err := unmarshalColumns(column{"attachments", attachmentsJSON, &submission.Attachments}); err != nil {
		return nil, err
	}

	return submission, nil
}

// column is a JSON-encoded column and its destination
type column struct {
	name string
	data []byte
	dest any
}

func unmarshalColumns(columns ...column) error {
	for _, c := range columns {
		if len(c.data) == 0 {
			continue
		}
		if err := json.Unmarshal(c.data, c.dest); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", c.name, err)
		}
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
