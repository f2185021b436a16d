package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bce-toolkit/bce/internal/engine"
)

// CheckOutput is the JSON form of a check.
type CheckOutput struct {
	Expression string    `json:"expression"`
	Balanced   bool      `json:"balanced"`
	Error      *CLIError `json:"error,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <expression>",
		Short: "Check whether an equation is balanced as written",
		Long: `Check that the coefficients of an equation conserve every element and
the total charge. Nothing is rebalanced.

Exit codes:
  0 - The equation is balanced
  1 - The equation is not balanced or cannot be parsed

Examples:
  bce check "2H2+O2=2H2O"
  bce check "Fe<3e+>+Cu=Fe<2e+>+Cu<2e+>"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootOpts, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, root *RootOptions, expr string) error {
	// Checks are not recorded, so no history store is opened.
	eng, err := engine.New(root.Config.BalanceOptions())
	if err != nil {
		return WrapExitError(ExitCommandError, "balance options", err)
	}

	out, err := eng.Check(cmd.Context(), expr)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("check %q", expr), err)
	}

	f := root.formatter(cmd)
	co := CheckOutput{Expression: out.Expression, Balanced: out.Balanced}
	if out.Failure != nil {
		co.Error = failureError(root, out.Failure)
	}

	if root.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: co}
		if !co.Balanced {
			resp.Status = "error"
		}
		if err := f.encode(resp); err != nil {
			return err
		}
	} else {
		switch {
		case co.Error != nil:
			if co.Error.Position != nil {
				f.Caret(out.Expression, *co.Error.Position)
			}
			f.Error(co.Error.Code, co.Error.Message, co.Error.Details)
		case co.Balanced:
			fmt.Fprintln(f.Writer, "balanced")
		default:
			fmt.Fprintln(f.Writer, "not balanced")
		}
	}

	if !co.Balanced {
		return reportedFailure("not balanced")
	}
	return nil
}
