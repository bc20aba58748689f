// Package store persists parsed resumes in PostgreSQL.
//
// Each resume is stored as a JSONB document next to its source file name
// and the raw text it was parsed from:
//
//	s, err := store.Open(ctx, os.Getenv("DATABASE_URL"), logger)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	if err := s.Migrate(ctx); err != nil {
//	    return err
//	}
//	id, err := s.Save(ctx, resume, doc.RawText)
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsawler/resumeparser/schema"
)

// ErrNotFound is returned when no resume has the requested id
var ErrNotFound = errors.New("resume not found")

// Record is a stored resume with its bookkeeping columns
type Record struct {
	ID        uuid.UUID
	Source    string
	RawText   string
	Resume    *schema.Resume
	CreatedAt time.Time
}

// Store wraps a pgx connection pool
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open parses the DSN, opens a pool and pings it.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second
	config.ConnConfig.RuntimeParams["application_name"] = "resumeparser"

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("store.connect.error", "error", err)
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("store.connected")
	return New(pool, logger), nil
}

// New wraps an existing pool
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

// Close closes the pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Save validates and inserts a resume and returns its new id.
func (s *Store) Save(ctx context.Context, resume *schema.Resume, rawText string) (uuid.UUID, error) {
	if err := resume.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("save: %w", err)
	}
	data, err := resume.JSON()
	if err != nil {
		return uuid.Nil, fmt.Errorf("save: %w", err)
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx, `
INSERT INTO parsed_resumes (id, source, raw_text, resume, created_at)
VALUES ($1, $2, $3, $4, $5)
`, id, resume.Meta.Source, rawText, data, time.Now().UTC())
	if err != nil {
		s.logger.Error("store.save.error", "error", err)
		return uuid.Nil, fmt.Errorf("save: %w", err)
	}

	s.logger.Debug("store.save", "id", id, "source", resume.Meta.Source, "bytes", len(data))
	return id, nil
}

// Get loads a stored resume by id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, source, raw_text, resume, created_at FROM parsed_resumes WHERE id = $1
`, id)
	return scanRecord(row)
}

// List returns the most recent resumes, newest first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
SELECT id, source, raw_text, resume, created_at FROM parsed_resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a stored resume.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM parsed_resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var (
		rec  Record
		data []byte
	)
	if err := row.Scan(&rec.ID, &rec.Source, &rec.RawText, &data, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resume, err := schema.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("resume %s: %w", rec.ID, err)
	}
	rec.Resume = resume
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}
