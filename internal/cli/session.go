package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bce-toolkit/bce/internal/balance"
	"github.com/bce-toolkit/bce/internal/engine"
	"github.com/bce-toolkit/bce/internal/store"
)

// BalanceFlags are shared by commands that balance expressions.
type BalanceFlags struct {
	NoAutoCorrect bool
	SymbolHeader  string
	Database      string
	Run           string
}

func (f *BalanceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.NoAutoCorrect, "no-auto-correct", false, "fail on zero or wrong-side molecules instead of fixing them")
	cmd.Flags().StringVar(&f.SymbolHeader, "symbol-header", "", "prefix of free-parameter names (overrides config)")
	cmd.Flags().StringVar(&f.Database, "db", "", "history database (overrides config history.path)")
	cmd.Flags().StringVar(&f.Run, "run", "", "continue recording under an existing run id")
}

// options merges the config with the flags that were set.
func (f *BalanceFlags) options(root *RootOptions) balance.Options {
	opts := root.Config.BalanceOptions()
	if f.NoAutoCorrect {
		opts.AutoCorrect = false
	}
	if f.SymbolHeader != "" {
		opts.SymbolHeader = f.SymbolHeader
	}
	return opts
}

// session is an engine with an optional history store behind it.
type session struct {
	engine *engine.Engine
	store  *store.Store
}

// newSession opens the history store named by flags.Database, or the
// configured one when the flag is empty. Without either, history is
// disabled. flags.Run continues an existing run instead of starting one.
func (o *RootOptions) newSession(ctx context.Context, flags *BalanceFlags, opts balance.Options) (*session, error) {
	dbPath := flags.Database
	if dbPath == "" {
		dbPath = o.Config.History.Path
	}
	if dbPath == "" && flags.Run != "" {
		return nil, NewExitError(ExitCommandError, "--run needs a history database: pass --db or set history.path")
	}

	s := &session{}
	var engineOpts []engine.Option
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "open history", err)
		}
		s.store = st

		rec, err := newRecorder(ctx, st, flags.Run)
		if err != nil {
			s.Close()
			return nil, err
		}
		engineOpts = append(engineOpts, engine.WithRecorder(rec))
		slog.Debug("history enabled", "path", dbPath, "run_id", rec.RunID(), "resumed", flags.Run != "")
	}

	e, err := engine.New(opts, engineOpts...)
	if err != nil {
		s.Close()
		return nil, WrapExitError(ExitCommandError, "balance options", err)
	}
	s.engine = e
	return s, nil
}

func newRecorder(ctx context.Context, st *store.Store, runID string) (*store.Recorder, error) {
	if runID == "" {
		return store.NewRecorder(st, store.UUIDv7Generator{}), nil
	}
	rec, err := store.ResumeRecorder(ctx, st, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		return nil, NewExitError(ExitCommandError, "unknown run "+runID)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "resume run", err)
	}
	return rec, nil
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
