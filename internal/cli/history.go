package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bce-toolkit/bce/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Runs     bool
}

// HistoryEntry is the JSON form of one history row.
type HistoryEntry struct {
	RunID      string `json:"run_id"`
	Seq        int64  `json:"seq"`
	Expression string `json:"expression"`
	Balanced   string `json:"balanced,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded balance runs",
		Long: `Show the entries of one run, or the most recent entries across runs.

Examples:
  bce history --db history.db
  bce history --db history.db --limit 50
  bce history --db history.db --runs
  bce history --db history.db 0190a1b2-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runHistory(cmd, opts, runID)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "history database (overrides config history.path)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum entries without a run id")
	cmd.Flags().BoolVar(&opts.Runs, "runs", false, "list run ids only")
	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions, runID string) error {
	path := opts.Database
	if path == "" {
		path = opts.Config.History.Path
	}
	if path == "" {
		return NewExitError(ExitCommandError, "no history database: pass --db or set history.path")
	}

	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open history", err)
	}
	defer st.Close()

	if opts.Runs {
		return listRuns(cmd, opts, st)
	}

	var entries []store.Entry
	if runID != "" {
		entries, err = st.ReadRun(cmd.Context(), runID)
	} else {
		entries, err = st.ReadRecent(cmd.Context(), opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "read history", err)
	}

	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{
			RunID:      e.RunID,
			Seq:        e.Seq,
			Expression: e.Expression,
			Balanced:   e.Balanced,
			ErrorCode:  e.ErrorCode,
		}
	}

	f := opts.formatter(cmd)
	if opts.Format == "json" {
		return f.Success(out)
	}
	if len(out) == 0 {
		fmt.Fprintln(f.Writer, "No history.")
		return nil
	}
	for _, e := range out {
		result := e.Balanced
		if e.ErrorCode != "" {
			result = "Error [" + e.ErrorCode + "]"
		}
		fmt.Fprintf(f.Writer, "%s\t%d\t%s\t%s\n", e.RunID, e.Seq, e.Expression, result)
	}
	return nil
}

func listRuns(cmd *cobra.Command, opts *HistoryOptions, st *store.Store) error {
	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "list runs", err)
	}
	f := opts.formatter(cmd)
	if opts.Format == "json" {
		return f.Success(runs)
	}
	for _, r := range runs {
		fmt.Fprintln(f.Writer, r)
	}
	return nil
}
