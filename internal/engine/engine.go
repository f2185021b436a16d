package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bce-toolkit/bce/internal/balance"
	"github.com/bce-toolkit/bce/internal/chem"
	"github.com/bce-toolkit/bce/internal/parser"
	"github.com/bce-toolkit/bce/internal/store"
)

// Outcome is the answer to one balance request.
type Outcome struct {
	// Expression is the normalized input.
	Expression string

	// Balanced is the formatted balanced equation; empty on failure.
	Balanced string

	// Direction is a balance.Direction string; empty on failure.
	Direction string

	Failure *Failure

	// Cached is true when the answer came from the history store.
	Cached bool

	// RunID and Seq locate the history entry; empty without a recorder.
	RunID string
	Seq   int64
}

// OK reports whether the expression was balanced.
func (o *Outcome) OK() bool {
	return o.Failure == nil
}

// CheckOutcome is the answer to an is-balanced request.
type CheckOutcome struct {
	Expression string
	Balanced   bool
	Failure    *Failure
}

// Engine balances expressions with a fixed set of default options.
//
// Thread-safety: Engine is safe for concurrent use. Recorded history
// entries are ordered by the recorder's clock.
type Engine struct {
	opts     balance.Options
	recorder *store.Recorder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder caches results in, and appends every request to, the
// recorder's run.
func WithRecorder(r *store.Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine. opts must be valid.
func New(opts balance.Options, options ...Option) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	e := &Engine{opts: opts, logger: slog.Default()}
	for _, o := range options {
		o(e)
	}
	return e, nil
}

// Options returns the engine's default options.
func (e *Engine) Options() balance.Options {
	return e.opts
}

// RunID returns the recorder's run token, or "" without a recorder.
func (e *Engine) RunID() string {
	if e.recorder == nil {
		return ""
	}
	return e.recorder.RunID()
}

// Balance balances expr with the engine's default options.
func (e *Engine) Balance(ctx context.Context, expr string) (*Outcome, error) {
	return e.BalanceWith(ctx, expr, e.opts)
}

// BalanceWith balances expr with opts.
func (e *Engine) BalanceWith(ctx context.Context, expr string, opts balance.Options) (*Outcome, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	normalized := parser.Normalize(expr)

	var id string
	if e.recorder != nil {
		var err error
		if id, err = store.ResultID(normalized, opts); err != nil {
			return nil, err
		}
		cached, ok, err := e.recorder.Lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out := outcomeFromResult(cached)
			e.logger.Debug("balance cache hit", "expression", normalized, "result_id", id)
			return e.record(ctx, out, cached)
		}
	}

	out, err := solve(normalized, opts)
	if err != nil {
		return nil, err
	}
	if out.OK() {
		e.logger.Debug("balanced", "expression", normalized, "result", out.Balanced, "direction", out.Direction)
	} else {
		e.logger.Debug("balance failed", "expression", normalized, "kind", string(out.Failure.Kind), "code", out.Failure.Code)
	}

	if e.recorder == nil {
		return out, nil
	}
	return e.record(ctx, out, resultOf(id, out, opts))
}

// Check reports whether expr is balanced as written.
func (e *Engine) Check(ctx context.Context, expr string) (*CheckOutcome, error) {
	normalized := parser.Normalize(expr)
	out := &CheckOutcome{Expression: normalized}

	eq, err := parser.Parse(normalized)
	if err != nil {
		f, ok := failureOf(err)
		if !ok {
			return nil, err
		}
		out.Failure = f
		return out, nil
	}
	ok, err := balance.IsBalanced(eq)
	if err != nil {
		return nil, err
	}
	out.Balanced = ok
	e.logger.Debug("checked", "expression", normalized, "balanced", ok)
	return out, nil
}

func (e *Engine) record(ctx context.Context, out *Outcome, res store.Result) (*Outcome, error) {
	seq, err := e.recorder.Record(ctx, res)
	if err != nil {
		return nil, err
	}
	out.RunID = e.recorder.RunID()
	out.Seq = seq
	return out, nil
}

// solve parses and balances an already normalized expression.
func solve(normalized string, opts balance.Options) (*Outcome, error) {
	out := &Outcome{Expression: normalized}

	eq, err := parser.Parse(normalized)
	if err == nil {
		err = balance.Balance(eq, opts)
	}
	if err != nil {
		f, ok := failureOf(err)
		if !ok {
			return nil, err
		}
		out.Failure = f
		return out, nil
	}

	out.Balanced = chem.Format(eq)
	out.Direction = balance.GuessDirection(eq).String()
	return out, nil
}

func resultOf(id string, out *Outcome, opts balance.Options) store.Result {
	r := store.Result{
		ID:         id,
		Expression: out.Expression,
		Options:    opts,
		Balanced:   out.Balanced,
		Direction:  out.Direction,
	}
	if out.Failure != nil {
		r.ErrorCode = out.Failure.Code
		r.ErrorDetails = out.Failure.storedDetails()
	}
	return r
}

func outcomeFromResult(r store.Result) *Outcome {
	out := &Outcome{
		Expression: r.Expression,
		Balanced:   r.Balanced,
		Direction:  r.Direction,
		Cached:     true,
	}
	if r.Failed() {
		out.Failure = failureFromStored(r.ErrorCode, r.ErrorDetails)
	}
	return out
}
