// Package db provides PostgreSQL persistence for generation runs and
// their progress history. The pipeline works without a database; every
// method on a nil *DB is a no-op.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/algo-rhythm/portfolio-deck/internal/progress"
)

// Run statuses stored in generation_runs.status.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one recorded generation run.
type Run struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Template       string     `json:"template"`
	Theme          string     `json:"theme"`
	PresentationID string     `json:"presentation_id,omitempty"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db != nil && db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun records the start of a generation run and returns its ID.
func (db *DB) CreateRun(ctx context.Context, title, template, theme string) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, nil
	}
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO generation_runs (title, template, theme, status)
		 VALUES ($1, $2, $3, 'running')
		 RETURNING id`,
		title, template, theme,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// SetPresentationID attaches the remote presentation id once known.
func (db *DB) SetPresentationID(ctx context.Context, runID uuid.UUID, presentationID string) error {
	if db == nil || runID == uuid.Nil {
		return nil
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE generation_runs SET presentation_id = $1 WHERE id = $2`,
		presentationID, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to set presentation id: %w", err)
	}
	return nil
}

// CompleteRun marks a run as finished with a final status. errMessage
// is stored only for failed runs.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status, errMessage string) error {
	if db == nil || runID == uuid.Nil {
		return nil
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE generation_runs SET status = $1, error_message = $2, completed_at = NOW() WHERE id = $3`,
		status, errMessage, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveProgressEvent appends one progress event to the run history.
func (db *DB) SaveProgressEvent(ctx context.Context, runID uuid.UUID, e progress.Event) error {
	if db == nil || runID == uuid.Nil {
		return nil
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO progress_events (run_id, percent, message, current_slide, total_slides, current_image, total_images)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		runID, e.Percent, e.Message, e.CurrentSlide, e.TotalSlides, e.CurrentImage, e.TotalImages,
	)
	if err != nil {
		return fmt.Errorf("failed to save progress event: %w", err)
	}
	return nil
}

// GetRun retrieves one run, or nil when not found.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	if db == nil {
		return nil, nil
	}
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, template, theme, COALESCE(presentation_id, ''), status, COALESCE(error_message, ''), created_at, completed_at
		 FROM generation_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Title, &run.Template, &run.Theme, &run.PresentationID, &run.Status, &run.ErrorMessage, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, template, theme, COALESCE(presentation_id, ''), status, COALESCE(error_message, ''), created_at, completed_at
		 FROM generation_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Title, &run.Template, &run.Theme, &run.PresentationID, &run.Status, &run.ErrorMessage, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}
