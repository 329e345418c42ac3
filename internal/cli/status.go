package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/countdown/internal/tui"
)

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(parent *cobra.Command, flags *GlobalFlags) {
	src := &SourceFlags{}

	cmd := &cobra.Command{
		Use:   "status [end-date]",
		Short: "Show the time left until the deadline",
		Long: `Print the remaining days, hours, minutes, and seconds once and exit.

The deadline is taken from the argument, --end, the event API, or
event.end_date, in that order. Dates without an offset are read in
countdown.timezone.

Examples:
  countdown status 2025-12-31
  countdown status --end 2025-12-31T18:00:00+09:00
  countdown status --api https://events.example.com
  countdown status -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStatus(cmd.Context(), cmd, flags, src, firstArg(args))
			return finishCommand(cmd, flags, err)
		},
	}

	addSourceFlags(cmd, src, true)
	parent.AddCommand(cmd)
}

// runStatus prints a one-shot breakdown of the time left.
func runStatus(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, src *SourceFlags, arg string) error {
	env, err := newCommandEnv(ctx, cmd, flags, src)
	if err != nil {
		return err
	}

	cd, ev, err := env.resolveCountdown(ctx, arg, src.End)
	if err != nil {
		return err
	}

	if ev != nil && env.format != OutputJSON && !env.quiet {
		_, _ = fmt.Fprintln(env.w, tui.TitleCase(ev.Title))
	}
	return env.out.Remaining(cd.Remaining(), cd.Target())
}
