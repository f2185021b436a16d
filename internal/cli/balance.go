package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bce-toolkit/bce/internal/engine"
	"github.com/bce-toolkit/bce/internal/locale"
)

// BalanceOutput is the JSON form of one balanced (or failed) expression.
type BalanceOutput struct {
	Expression string    `json:"expression"`
	Balanced   string    `json:"balanced,omitempty"`
	Direction  string    `json:"direction,omitempty"`
	Cached     bool      `json:"cached,omitempty"`
	Seq        int64     `json:"seq,omitempty"`
	Error      *CLIError `json:"error,omitempty"`
}

// NewBalanceCommand creates the balance command.
func NewBalanceCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &BalanceFlags{}

	cmd := &cobra.Command{
		Use:   "balance <expression>...",
		Short: "Balance chemical equations",
		Long: `Balance one or more chemical equations and print them with minimal
integer coefficients.

Exit codes:
  0 - Every expression was balanced
  1 - At least one expression could not be balanced
  2 - Command error (bad options, unreadable config, database error)

Examples:
  bce balance "H2+O2=H2O"
  bce balance "KMnO4+HCl=KCl+MnCl2+Cl2+H2O" "H2;O2;H2O"
  bce balance --no-auto-correct "H2+H2O=O2"
  bce balance --db history.db --format json "CH4+O2=CO2+H2O"
  bce balance --db history.db --run 0190a1b2-... "H2+Cl2=HCl"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(cmd, rootOpts, flags, args)
		},
	}
	flags.register(cmd)
	return cmd
}

func runBalance(cmd *cobra.Command, root *RootOptions, flags *BalanceFlags, exprs []string) error {
	s, err := root.newSession(cmd.Context(), flags, flags.options(root))
	if err != nil {
		return err
	}
	defer s.Close()

	f := root.formatter(cmd)
	results := make([]BalanceOutput, 0, len(exprs))
	failed := 0
	for _, expr := range exprs {
		out, err := s.engine.Balance(cmd.Context(), expr)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("balance %q", expr), err)
		}
		bo := toBalanceOutput(root, out)
		if bo.Error != nil {
			failed++
		}
		results = append(results, bo)

		if root.Format != "json" {
			writeBalanceText(f, out, bo)
		}
	}

	if root.Format == "json" {
		if err := f.encode(CLIResponse{Status: status(failed), Data: results, RunID: s.engine.RunID()}); err != nil {
			return err
		}
	}
	if failed > 0 {
		return reportedFailure(fmt.Sprintf("%d of %d expressions failed", failed, len(exprs)))
	}
	return nil
}

func toBalanceOutput(root *RootOptions, out *engine.Outcome) BalanceOutput {
	bo := BalanceOutput{
		Expression: out.Expression,
		Balanced:   out.Balanced,
		Direction:  out.Direction,
		Cached:     out.Cached,
		Seq:        out.Seq,
	}
	if out.Failure != nil {
		bo.Error = failureError(root, out.Failure)
	}
	return bo
}

func failureError(root *RootOptions, fl *engine.Failure) *CLIError {
	e := &CLIError{
		Code:    fl.Code,
		Message: locale.Message(root.Tag, fl.MessageKey, fl.Details),
	}
	if fl.Kind == engine.FailureParse {
		pos := fl.Pos
		e.Position = &pos
	}
	if len(fl.Details) > 0 {
		e.Details = fl.Details
	}
	return e
}

func writeBalanceText(f *OutputFormatter, out *engine.Outcome, bo BalanceOutput) {
	if bo.Error == nil {
		fmt.Fprintln(f.Writer, bo.Balanced)
		f.VerboseLog("direction: %s, cached: %t", bo.Direction, bo.Cached)
		return
	}
	if bo.Error.Position != nil {
		f.Caret(out.Expression, *bo.Error.Position)
	}
	f.Error(bo.Error.Code, bo.Error.Message, bo.Error.Details)
}

func status(failed int) string {
	if failed > 0 {
		return "error"
	}
	return "ok"
}
