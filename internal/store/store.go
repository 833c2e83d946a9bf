// Package store persists job postings and their match outcomes in
// PostgreSQL. This is the shared listing store: multiple runs may read and
// write concurrently, so every mutation is a single statement.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreatePosting inserts a new posting. The posting keeps the ID assigned at
// ingestion.
func (s *Store) CreatePosting(ctx context.Context, p *types.JobPosting) error {
	validationJSON, err := marshalNullable(p.Validation)
	if err != nil {
		return fmt.Errorf("failed to marshal validation checklist: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_postings (id, title, company, description, language, status,
		                           url, location, source, seniority, job_type,
		                           validation, scraped_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Title, p.Company, p.Description, p.Language, p.Status,
		p.URL, p.Location, p.Source, p.Seniority, p.JobType,
		validationJSON, p.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create posting: %w", err)
	}
	return nil
}

// GetPosting retrieves one posting by ID. Returns nil, nil when absent.
func (s *Store) GetPosting(ctx context.Context, id string) (*types.JobPosting, error) {
	var p types.JobPosting
	var validationJSON, planJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, title, company, description, language, status, url, location,
		        source, seniority, job_type, match_score, matched_keywords,
		        strategic_plan, validation, scraped_at
		 FROM job_postings WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Company, &p.Description, &p.Language, &p.Status,
		&p.URL, &p.Location, &p.Source, &p.Seniority, &p.JobType,
		&p.MatchScore, &p.MatchedKeywords, &planJSON, &validationJSON, &p.ScrapedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}

	if planJSON != nil {
		_ = json.Unmarshal(planJSON, &p.StrategicPlan)
	}
	if validationJSON != nil {
		_ = json.Unmarshal(validationJSON, &p.Validation)
	}
	return &p, nil
}

// ListPostings returns postings, optionally filtered by status, newest first.
func (s *Store) ListPostings(ctx context.Context, status string) ([]*types.JobPosting, error) {
	query := `SELECT id, title, company, language, status, url, source, seniority,
	                 job_type, match_score, matched_keywords, scraped_at
	          FROM job_postings`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY scraped_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	defer rows.Close()

	var postings []*types.JobPosting
	for rows.Next() {
		var p types.JobPosting
		if err := rows.Scan(&p.ID, &p.Title, &p.Company, &p.Language, &p.Status,
			&p.URL, &p.Source, &p.Seniority, &p.JobType,
			&p.MatchScore, &p.MatchedKeywords, &p.ScrapedAt); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		postings = append(postings, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read postings: %w", err)
	}
	return postings, nil
}

// UpdateStatus moves a posting to a new workflow state.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_postings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update posting status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("posting %s not found", id)
	}
	return nil
}

// SaveMatch records the match outcome and strategic plan on a posting.
func (s *Store) SaveMatch(ctx context.Context, id string, score float64, matched []string, plan *types.StrategicPlan) error {
	planJSON, err := marshalNullable(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal strategic plan: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE job_postings
		 SET match_score = $1, matched_keywords = $2, strategic_plan = $3, updated_at = NOW()
		 WHERE id = $4`,
		score, matched, planJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("posting %s not found", id)
	}
	return nil
}

// marshalNullable marshals v unless it is nil, keeping SQL NULLs readable.
func marshalNullable(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	switch typed := v.(type) {
	case *types.StrategicPlan:
		if typed == nil {
			return nil, nil
		}
	case *types.ScrapeChecklist:
		if typed == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
