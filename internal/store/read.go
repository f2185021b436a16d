package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ReadResult returns the cached result with the given ID. The boolean is
// false when no such result has been stored.
func (s *Store) ReadResult(ctx context.Context, id string) (Result, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, expression, options, balanced, direction, error_code, error_details
		FROM results
		WHERE id = ?
	`, id)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, fmt.Errorf("read result %s: %w", id, err)
	}
	return r, true, nil
}

// ReadRun returns the entries of a run in seq order.
// Returns an empty slice (not nil) for an unknown run.
func (s *Store) ReadRun(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.run_id, h.seq,
		       r.id, r.expression, r.options, r.balanced, r.direction, r.error_code, r.error_details
		FROM history h
		JOIN results r ON r.id = h.result_id
		WHERE h.run_id = ?
		ORDER BY h.seq ASC, r.id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// LastSeq returns the highest seq recorded for runID, or 0 when the run
// has no entries.
func (s *Store) LastSeq(ctx context.Context, runID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM history WHERE run_id = ?`, runID,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq of run %s: %w", runID, err)
	}
	return seq, nil
}

// ReadRecent returns the entries of the newest runs, at most limit
// entries. Runs are newest first; entries within a run are in seq order.
func (s *Store) ReadRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.run_id, h.seq,
		       r.id, r.expression, r.options, r.balanced, r.direction, r.error_code, r.error_details
		FROM history h
		JOIN results r ON r.id = h.result_id
		ORDER BY h.run_id COLLATE BINARY DESC, h.seq ASC, r.id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListRuns returns the IDs of all recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT run_id FROM history ORDER BY run_id COLLATE BINARY DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner, prefix ...any) (Result, error) {
	var (
		r       Result
		opts    string
		details string
	)
	dest := append(prefix, &r.ID, &r.Expression, &opts, &r.Balanced, &r.Direction, &r.ErrorCode, &details)
	if err := row.Scan(dest...); err != nil {
		return Result{}, err
	}
	if err := json.Unmarshal([]byte(opts), &r.Options); err != nil {
		return Result{}, fmt.Errorf("unmarshal options: %w", err)
	}
	if err := json.Unmarshal([]byte(details), &r.ErrorDetails); err != nil {
		return Result{}, fmt.Errorf("unmarshal error details: %w", err)
	}
	if len(r.ErrorDetails) == 0 {
		r.ErrorDetails = nil
	}
	return r, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		r, err := scanResult(rows, &e.RunID, &e.Seq)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Result = r
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}
