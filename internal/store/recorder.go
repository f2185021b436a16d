package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned when resuming a run that has no entries.
var ErrRunNotFound = errors.New("store: run not found")

// Recorder appends the results of one run to a Store.
type Recorder struct {
	store *Store
	runID string
	clock *Clock
}

// NewRecorder starts a run with a token from gen.
func NewRecorder(s *Store, gen RunTokenGenerator) *Recorder {
	return &Recorder{store: s, runID: gen.Generate(), clock: &Clock{}}
}

// ResumeRecorder continues the recorded run runID. New entries follow
// the run's last seq.
func ResumeRecorder(ctx context.Context, s *Store, runID string) (*Recorder, error) {
	last, err := s.LastSeq(ctx, runID)
	if err != nil {
		return nil, err
	}
	if last == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return &Recorder{store: s, runID: runID, clock: NewClockAt(last)}, nil
}

// RunID returns the token of the run being recorded.
func (r *Recorder) RunID() string {
	return r.runID
}

// Lookup returns a previously stored result for the same request, if any.
func (r *Recorder) Lookup(ctx context.Context, id string) (Result, bool, error) {
	return r.store.ReadResult(ctx, id)
}

// Record appends res as the next entry of the run and returns its seq.
func (r *Recorder) Record(ctx context.Context, res Result) (int64, error) {
	seq := r.clock.Next()
	if err := r.store.AppendEntry(ctx, r.runID, seq, res); err != nil {
		return 0, fmt.Errorf("record %s/%d: %w", r.runID, seq, err)
	}
	return seq, nil
}
