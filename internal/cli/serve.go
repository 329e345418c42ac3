package cli

import (
	"context"
	"net"

	"github.com/spf13/cobra"

	"github.com/mrz1836/countdown/internal/signal"
	"github.com/mrz1836/countdown/internal/stream"
)

// serveOptions holds flags specific to the serve command.
type serveOptions struct {
	addr    string
	origins []string
}

// AddServeCommand adds the serve command to the root command.
func AddServeCommand(parent *cobra.Command, flags *GlobalFlags) {
	src := &SourceFlags{}
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve [end-date]",
		Short: "Stream the live countdown over WebSocket",
		Long: `Run an HTTP server that pushes the remaining time to WebSocket clients
once per second.

Endpoints:
  GET /ws         WebSocket stream of {"type":"tick","data":{...}} messages
  GET /remaining  current remaining time as JSON
  GET /healthz    health check

Examples:
  countdown serve 2025-12-31
  countdown serve --addr 127.0.0.1:9000 --api https://events.example.com
  countdown serve --origin https://example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd.Context(), cmd, flags, src, opts, firstArg(args), nil)
			return finishCommand(cmd, flags, err)
		},
	}

	addSourceFlags(cmd, src, true)
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringSliceVar(&opts.origins, "origin", nil, "allowed origin, repeatable (overrides server.allowed_origins)")
	parent.AddCommand(cmd)
}

// runServe resolves the deadline and serves the stream until interrupted.
// A nil ln listens on the configured address.
func runServe(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, src *SourceFlags, opts *serveOptions, arg string, ln net.Listener) error {
	env, err := newCommandEnv(ctx, cmd, flags, src)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		env.cfg.Server.Addr = opts.addr
	}
	if len(opts.origins) > 0 {
		env.cfg.Server.AllowedOrigins = opts.origins
	}

	cd, _, err := env.resolveCountdown(ctx, arg, src.End)
	if err != nil {
		return err
	}

	h := signal.NewHandler(ctx, signal.WithLogger(env.logger))
	defer h.Stop()
	h.OnShutdown(cd.Deactivate)

	srv := stream.NewServer(cd, env.cfg.Server, env.logger)
	if ln != nil {
		return srv.Serve(h.Context(), ln)
	}
	return srv.Run(h.Context())
}
