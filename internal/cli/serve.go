package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/bce-toolkit/bce/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	BalanceFlags
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the balancer over HTTP",
		Long: `Serve POST /v1/balance, POST /v1/check, GET /v1/runs/:id, GET /healthz
and GET /metrics. With a history database the server records every
balance request under one run and answers repeated requests from it.

Examples:
  bce serve
  bce serve --addr 127.0.0.1:9000 --db history.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	opts.BalanceFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	addr := opts.Addr
	if addr == "" {
		addr = opts.Config.Server.Addr
	}

	s, err := opts.newSession(cmd.Context(), &opts.BalanceFlags, opts.BalanceFlags.options(opts.RootOptions))
	if err != nil {
		return err
	}
	defer s.Close()

	if !opts.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srvOpts := []server.Option{server.WithLanguage(opts.Tag), server.WithLogger(slog.Default())}
	if s.store != nil {
		srvOpts = append(srvOpts, server.WithStore(s.store))
	}
	srv := server.New(s.engine, srvOpts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return WrapExitError(ExitCommandError, "serve", err)
	}
	return nil
}
