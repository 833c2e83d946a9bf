package store

import (
	"context"
	"fmt"
)

// schema is the listing store's table. Kept minimal: one row per posting,
// JSONB for the nested records.
const schema = `
CREATE TABLE IF NOT EXISTS job_postings (
    id               UUID PRIMARY KEY,
    title            TEXT NOT NULL,
    company          TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    language         TEXT NOT NULL DEFAULT 'en',
    status           TEXT NOT NULL DEFAULT 'todo',
    url              TEXT NOT NULL DEFAULT '',
    location         TEXT NOT NULL DEFAULT '',
    source           TEXT NOT NULL DEFAULT '',
    seniority        TEXT NOT NULL DEFAULT 'mid',
    job_type         TEXT NOT NULL DEFAULT '',
    match_score      DOUBLE PRECISION,
    matched_keywords TEXT[],
    strategic_plan   JSONB,
    validation       JSONB,
    scraped_at       TIMESTAMPTZ NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_job_postings_status ON job_postings (status);
`

// EnsureSchema creates the job_postings table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
