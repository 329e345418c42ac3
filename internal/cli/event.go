package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrz1836/countdown/internal/event"
	"github.com/mrz1836/countdown/internal/tui"
)

// eventResponse is the JSON shape of the event command.
type eventResponse struct {
	Event  *event.Event        `json:"event"`
	Status tui.RemainingReport `json:"status"`
}

// AddEventCommand adds the event command to the root command.
func AddEventCommand(parent *cobra.Command, flags *GlobalFlags) {
	src := &SourceFlags{}

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Show the event and the time left to enter",
		Long: `Fetch the event from the event API and show its title, description,
rewards, and the time left until it ends.

Examples:
  countdown event
  countdown event --api https://events.example.com
  countdown event -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runEvent(cmd.Context(), cmd, flags, src)
			return finishCommand(cmd, flags, err)
		},
	}

	addSourceFlags(cmd, src, false)
	parent.AddCommand(cmd)
}

// runEvent fetches the event and renders it with its countdown.
func runEvent(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, src *SourceFlags) error {
	env, err := newCommandEnv(ctx, cmd, flags, src)
	if err != nil {
		return err
	}

	ev, err := env.fetchEvent(ctx)
	if err != nil {
		return err
	}

	cd, err := env.newCountdown(ev.EndDate)
	if err != nil {
		return err
	}

	if env.format == OutputJSON {
		return env.out.JSON(eventResponse{
			Event:  ev,
			Status: tui.NewRemainingReport(cd.Remaining(), cd.Target()),
		})
	}

	view := tui.EventView{
		Event:     ev,
		Remaining: cd.Remaining(),
		Target:    cd.Target(),
		Location:  env.loc,
		Width:     tui.GetTerminalWidth(),
	}
	return view.Render(env.w)
}
