package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bce-toolkit/bce/internal/balance"
)

// BatchFile is the YAML input of the batch command.
type BatchFile struct {
	// Options override config and flags for the whole file.
	Options struct {
		AutoCorrect  *bool  `yaml:"auto_correct,omitempty"`
		SymbolHeader string `yaml:"symbol_header,omitempty"`
	} `yaml:"options,omitempty"`

	Equations []string `yaml:"equations"`
}

// LoadBatchFile reads a batch file with strict field checking.
func LoadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var bf BatchFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(bf.Equations) == 0 {
		return nil, fmt.Errorf("equations list is required and must be non-empty")
	}
	return &bf, nil
}

func (bf *BatchFile) apply(opts balance.Options) balance.Options {
	if bf.Options.AutoCorrect != nil {
		opts.AutoCorrect = *bf.Options.AutoCorrect
	}
	if bf.Options.SymbolHeader != "" {
		opts.SymbolHeader = bf.Options.SymbolHeader
	}
	return opts
}

// BatchOutput is the JSON payload of the batch command.
type BatchOutput struct {
	Results []BalanceOutput `json:"results"`
	Passed  int             `json:"passed"`
	Failed  int             `json:"failed"`
	Total   int             `json:"total"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &BalanceFlags{}

	cmd := &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Balance every equation listed in a YAML file",
		Long: `Balance the equations of a YAML file. With a history database every
equation is recorded under one run, in file order.

File format:
  options:
    auto_correct: false
  equations:
    - "H2+O2=H2O"
    - "CH4+O2=CO2+H2O"

Exit codes:
  0 - Every equation was balanced
  1 - At least one equation could not be balanced
  2 - Command error (unreadable file, database error)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, rootOpts, flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func runBatch(cmd *cobra.Command, root *RootOptions, flags *BalanceFlags, path string) error {
	bf, err := LoadBatchFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, path, err)
	}

	s, err := root.newSession(cmd.Context(), flags, bf.apply(flags.options(root)))
	if err != nil {
		return err
	}
	defer s.Close()

	f := root.formatter(cmd)
	result := BatchOutput{
		Results: make([]BalanceOutput, 0, len(bf.Equations)),
		Total:   len(bf.Equations),
	}
	for i, expr := range bf.Equations {
		out, err := s.engine.Balance(cmd.Context(), expr)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("equations[%d]", i), err)
		}
		bo := toBalanceOutput(root, out)
		result.Results = append(result.Results, bo)
		if bo.Error != nil {
			result.Failed++
		} else {
			result.Passed++
		}

		if root.Format != "json" {
			if bo.Error != nil {
				fmt.Fprintf(f.Writer, "%d\t%s\tError [%s]: %s\n", i+1, bo.Expression, bo.Error.Code, bo.Error.Message)
			} else {
				fmt.Fprintf(f.Writer, "%d\t%s\n", i+1, bo.Balanced)
			}
		}
	}

	if root.Format == "json" {
		if err := f.encode(CLIResponse{Status: status(result.Failed), Data: result, RunID: s.engine.RunID()}); err != nil {
			return err
		}
	} else {
		if runID := s.engine.RunID(); runID != "" {
			fmt.Fprintf(f.Writer, "run %s\n", runID)
		}
		fmt.Fprintf(f.Writer, "%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return reportedFailure(fmt.Sprintf("%d of %d equations failed", result.Failed, result.Total))
	}
	return nil
}
