package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/bce-toolkit/bce/internal/config"
	"github.com/bce-toolkit/bce/internal/locale"
)

// DefaultConfigFile is read from the working directory when --config is
// not given. Its absence is not an error.
const DefaultConfigFile = "bce.cue"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Lang       string

	// Set by PersistentPreRunE.
	Config *config.Config
	Tag    language.Tag
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the bce CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bce",
		Short: "bce - balance chemical equations",
		Long: `Balance chemical equations with exact rational arithmetic.

Equations are written in normal form ("H2+O2=H2O") or auto-arranging
form ("H2;O2;H2O"). Charges use <ne+>/<ne->, states (g) (aq) (l) (s),
and hydrates are joined with "." or "·".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "CUE config file (default ./"+DefaultConfigFile+" if present)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "", "message language, e.g. en or zh-Hans (overrides config)")

	cmd.AddCommand(NewBalanceCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setup loads configuration and installs the logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cfg, err := o.loadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	o.Config = cfg

	lang := cfg.Language
	if o.Lang != "" {
		lang = o.Lang
	}
	o.Tag = locale.Match(lang)
	return nil
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	if o.ConfigPath != "" {
		return config.Load(o.ConfigPath)
	}
	cfg, err := config.Load(DefaultConfigFile)
	if errors.Is(err, config.ErrNotFound) {
		return config.Default()
	}
	if err == nil {
		slog.Debug("loaded config", "path", DefaultConfigFile)
	}
	return cfg, err
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Execute runs the root command with os.Args and returns the process exit
// code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !IsReported(err) {
			fmt.Fprintln(os.Stderr, "bce:", err)
		}
		return GetExitCode(err)
	}
	return ExitSuccess
}
