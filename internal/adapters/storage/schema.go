package storage

const postgresSchema = `
	-- ============================================================================
	-- SUBMISSIONS TABLE
	-- ============================================================================
	-- Emails received for analysis, one row per source item.
	--
	-- Prototype simplifications:
	-- 1. attachments as JSONB string array of filenames
	--    Why: detectors only read names, never content
	--    Production: dedicated attachments table (id, submission_id, filename, size, mime_type, hash)
	--
	-- 2. Full text body stored inline
	--    Production: move large bodies to object storage and keep a preview here
	CREATE TABLE IF NOT EXISTS submissions (
		id UUID PRIMARY KEY,
		source VARCHAR(64) NOT NULL,
		source_ref VARCHAR(512) NOT NULL,
		sender TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		attachments JSONB,
		received_at TIMESTAMP NOT NULL,
		ingested_at TIMESTAMP NOT NULL DEFAULT NOW(),
		processed_at TIMESTAMP,
		UNIQUE(source, source_ref)
	);

	-- Backs GetUnprocessedSubmissions: oldest pending first
	CREATE INDEX IF NOT EXISTS idx_submissions_pending ON submissions(processed_at, received_at);

	-- ============================================================================
	-- ANALYSES TABLE
	-- ============================================================================
	-- Composite phishing scores, at most one per submission. Per-detector scores and
	-- findings are JSONB because they are always read alongside their parent analysis.
	CREATE TABLE IF NOT EXISTS analyses (
		id UUID PRIMARY KEY,
		submission_id UUID NOT NULL UNIQUE REFERENCES submissions(id) ON DELETE CASCADE,
		final_score SMALLINT NOT NULL CHECK (final_score BETWEEN 0 AND 100),
		assessment VARCHAR(10) NOT NULL,
		escalation_tier VARCHAR(10) NOT NULL,
		multiplier VARCHAR(64) NOT NULL,
		scores JSONB,
		findings JSONB,
		links JSONB,
		attachments JSONB,
		analyzed_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	-- Backs GetHighRiskAnalyses
	CREATE INDEX IF NOT EXISTS idx_analyses_risk ON analyses(assessment, final_score DESC);
`

// sqliteSchema mirrors postgresSchema with SQLite column types
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		source_ref TEXT NOT NULL,
		sender TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		attachments TEXT,
		received_at TIMESTAMP NOT NULL,
		ingested_at TIMESTAMP NOT NULL,
		processed_at TIMESTAMP,
		UNIQUE(source, source_ref)
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_pending ON submissions(processed_at, received_at);

	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		submission_id TEXT NOT NULL UNIQUE REFERENCES submissions(id) ON DELETE CASCADE,
		final_score INTEGER NOT NULL CHECK (final_score BETWEEN 0 AND 100),
		assessment TEXT NOT NULL,
		escalation_tier TEXT NOT NULL,
		multiplier TEXT NOT NULL,
		scores TEXT,
		findings TEXT,
		links TEXT,
		attachments TEXT,
		analyzed_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_risk ON analyses(assessment, final_score DESC);
`
