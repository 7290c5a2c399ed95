// Package postgres provides a PostgreSQL-backed routine.HistoryStore.
//
// Callers own the *sql.DB (and the driver import, typically lib/pq); the
// store only issues queries against it.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aurorae-haven/routine"
)

const schema = `
CREATE TABLE IF NOT EXISTS routine_run_history (
	run_id      TEXT PRIMARY KEY,
	routine_id  TEXT NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	summary     JSONB NOT NULL
)`

// HistoryStore stores run summaries in a PostgreSQL table.
type HistoryStore struct {
	db *sql.DB
}

var _ routine.HistoryStore = (*HistoryStore)(nil)

// NewHistoryStore creates a history store on an open database handle.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Initialize creates the history table if it does not exist.
func (s *HistoryStore) Initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}

// SaveSummary upserts the summary for a run.
func (s *HistoryStore) SaveSummary(ctx context.Context, summary *routine.Summary) error {
	if summary.RunID == "" {
		return fmt.Errorf("summary run ID required")
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO routine_run_history (run_id, routine_id, finished_at, summary)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id) DO UPDATE
		SET routine_id = EXCLUDED.routine_id,
		    finished_at = EXCLUDED.finished_at,
		    summary = EXCLUDED.summary`,
		summary.RunID, summary.RoutineID, summary.FinishedAt, data)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

// LoadSummary retrieves one run summary, or nil if none is stored.
func (s *HistoryStore) LoadSummary(ctx context.Context, runID string) (*routine.Summary, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT summary FROM routine_run_history WHERE run_id = $1`, runID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}
	var summary routine.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &summary, nil
}

// ListSummaries retrieves all stored summaries, most recently finished first.
func (s *HistoryStore) ListSummaries(ctx context.Context) ([]*routine.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT summary FROM routine_run_history ORDER BY finished_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*routine.Summary
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		var summary routine.Summary
		if err := json.Unmarshal(data, &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}
		summaries = append(summaries, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summary rows: %w", err)
	}
	return summaries, nil
}

// DeleteSummary removes the summary for a run. Deleting a missing run is not
// an error.
func (s *HistoryStore) DeleteSummary(ctx context.Context, runID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM routine_run_history WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return nil
}
