package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// AppendEntry records r as position seq of run runID. The result row is
// written in the same transaction so the history foreign key holds.
//
// Writing the same (runID, seq) twice is an error.
func (s *Store) AppendEntry(ctx context.Context, runID string, seq int64, r Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	defer tx.Rollback()

	if err := insertResult(ctx, tx, r); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (run_id, seq, result_id) VALUES (?, ?, ?)`,
		runID, seq, r.ID,
	); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// insertResult writes r unless its ID is already stored. A result is a
// pure function of its ID, so a second write carries nothing new.
func insertResult(ctx context.Context, tx *sql.Tx, r Result) error {
	opts, err := canonicalJSON(r.Options)
	if err != nil {
		return err
	}
	details := r.ErrorDetails
	if details == nil {
		details = map[string]string{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO results
		(id, expression, options, balanced, direction, error_code, error_details)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID,
		r.Expression,
		string(opts),
		r.Balanced,
		r.Direction,
		r.ErrorCode,
		string(detailsJSON),
	)
	return err
}
