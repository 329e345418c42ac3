package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/countdown/internal/countdown"
	"github.com/mrz1836/countdown/internal/signal"
	"github.com/mrz1836/countdown/internal/tui"
)

// watchOptions holds flags specific to the watch command.
type watchOptions struct {
	noBell     bool
	noProgress bool
}

// AddWatchCommand adds the watch command to the root command.
func AddWatchCommand(parent *cobra.Command, flags *GlobalFlags) {
	src := &SourceFlags{}
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [end-date]",
		Short: "Show a live countdown until the deadline",
		Long: `Open a live view that refreshes the time left once per second.

Press e to enter the event while it is still open, q to quit. The terminal
bell rings once when the deadline passes (notifications.bell).

Without a terminal, or with -o json, one status is printed per second until
the deadline passes.

Examples:
  countdown watch 2025-12-31
  countdown watch --api https://events.example.com
  countdown watch --no-bell 2025-12-31T18:00:00+09:00`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runWatch(cmd.Context(), cmd, flags, src, opts, firstArg(args))
			return finishCommand(cmd, flags, err)
		},
	}

	addSourceFlags(cmd, src, true)
	cmd.Flags().BoolVar(&opts.noBell, "no-bell", false, "do not ring the bell when the deadline passes")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "hide the progress bar")
	parent.AddCommand(cmd)
}

// runWatch resolves the deadline and runs the live view, or streams plain
// updates when no terminal is attached.
func runWatch(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, src *SourceFlags, opts *watchOptions, arg string) error {
	env, err := newCommandEnv(ctx, cmd, flags, src)
	if err != nil {
		return err
	}

	cd, ev, err := env.resolveCountdown(ctx, arg, src.End)
	if err != nil {
		return err
	}

	h := signal.NewHandler(ctx, signal.WithLogger(env.logger))
	defer h.Stop()
	h.OnShutdown(cd.Deactivate)

	if !env.interactive() {
		return streamRemaining(h.Context(), env, cd)
	}

	title := ""
	if ev != nil {
		title = ev.Title
	}
	cfg := tui.WatchConfig{
		Title:        title,
		BellEnabled:  env.cfg.Notifications.Bell && !opts.noBell,
		Quiet:        env.quiet,
		ShowProgress: !opts.noProgress,
		Location:     env.loc,
		Bell:         os.Stdout,
	}

	gate := countdown.NewGate(cd, countdown.WithGateLogger(env.logger))
	m := tui.NewWatchModel(cd, gate, cfg)

	if err := runWatchView(h.Context(), cd, m); err != nil {
		return err
	}

	if !m.EntryRequested() {
		return nil
	}
	if ev == nil {
		env.out.Info("Configure event.api_base_url and run 'countdown enter' to submit an entry.")
		return nil
	}
	return submitEntry(ctx, env, cd.Target(), ev, &entryOptions{})
}

// runWatchView runs the countdown and the view together. Quitting the view
// stops the countdown; canceling ctx stops both.
func runWatchView(ctx context.Context, cd *countdown.Countdown, m *tui.WatchModel) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return cd.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return tui.RunWatch(gctx, m)
	})
	return g.Wait()
}

// streamRemaining prints one status per recomputation until the deadline
// passes or ctx is done.
func streamRemaining(ctx context.Context, env *commandEnv, cd *countdown.Countdown) error {
	updates := make(chan countdown.Remaining, 1)
	unsubscribe := cd.Subscribe(func(r countdown.Remaining) {
		for {
			select {
			case updates <- r:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	cd.Activate()
	defer cd.Deactivate()

	if err := env.out.Remaining(cd.Remaining(), cd.Target()); err != nil {
		return err
	}
	if cd.Expired() {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-updates:
			if err := env.out.Remaining(r, cd.Target()); err != nil {
				return err
			}
			if r.Expired() {
				env.logger.Info().Time("target", cd.Target()).Msg("deadline passed")
				return nil
			}
		}
	}
}
