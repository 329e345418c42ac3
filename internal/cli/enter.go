package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/countdown/internal/countdown"
	"github.com/mrz1836/countdown/internal/errors"
	"github.com/mrz1836/countdown/internal/event"
	"github.com/mrz1836/countdown/internal/logging"
	"github.com/mrz1836/countdown/internal/tui"
)

// entryOptions holds flags specific to the enter command.
type entryOptions struct {
	name  string
	phone string
	email string
	agree bool
	yes   bool
}

// entryResponse is the JSON result of a submitted entry.
type entryResponse struct {
	Success bool         `json:"success"`
	EventID string       `json:"event_id"`
	Title   string       `json:"title"`
	Entry   *event.Entry `json:"entry"`
}

// AddEnterCommand adds the enter command to the root command.
func AddEnterCommand(parent *cobra.Command, flags *GlobalFlags) {
	src := &SourceFlags{}
	opts := &entryOptions{}

	cmd := &cobra.Command{
		Use:   "enter",
		Short: "Submit an entry to the event while it is open",
		Long: `Fetch the event and submit an entry to it.

Entries are refused once the event deadline has passed. On a terminal a form
asks for your name, phone, and email and for agreement to the terms. Pass
--yes with --name, --phone, --email, and --agree to submit without prompts.

Examples:
  countdown enter
  countdown enter --name "Kim Minji" --phone 010-1234-5678 --email kim@example.com --agree --yes
  countdown enter --api https://events.example.com -o json --yes ...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runEnter(cmd.Context(), cmd, flags, src, opts)
			return finishCommand(cmd, flags, err)
		},
	}

	addSourceFlags(cmd, src, false)
	cmd.Flags().StringVar(&opts.name, "name", "", "participant name")
	cmd.Flags().StringVar(&opts.phone, "phone", "", "participant phone number")
	cmd.Flags().StringVar(&opts.email, "email", "", "participant email")
	cmd.Flags().BoolVar(&opts.agree, "agree", false, "agree to the event terms")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "submit without prompting")
	parent.AddCommand(cmd)
}

// runEnter fetches the event and submits an entry to it.
func runEnter(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, src *SourceFlags, opts *entryOptions) error {
	env, err := newCommandEnv(ctx, cmd, flags, src)
	if err != nil {
		return err
	}

	ev, err := env.fetchEvent(ctx)
	if err != nil {
		return err
	}

	target, err := countdown.ParseEndDate(ev.EndDate, env.loc)
	if err != nil {
		return err
	}

	return submitEntry(ctx, env, target, ev, opts)
}

// submitEntry gates on the deadline, collects the entry, and posts it.
// The countdown stays live while the entry is collected, so a deadline
// that passes mid-form still refuses the submission.
func submitEntry(ctx context.Context, env *commandEnv, target time.Time, ev *event.Event, opts *entryOptions) error {
	cd := countdown.NewWithTarget(target,
		countdown.WithClock(commandClock),
		countdown.WithLocation(env.loc),
		countdown.WithLogger(env.logger),
	)
	cd.Activate()
	defer cd.Deactivate()

	gate := countdown.NewGate(cd, countdown.WithGateLogger(env.logger))
	if err := gate.Try(nil); err != nil {
		return err
	}

	entry, err := collectEntry(ctx, env, ev, opts)
	if err != nil {
		return err
	}

	var submitted *event.Entry
	err = gate.Try(func() error {
		var submitErr error
		submitted, submitErr = env.newClient().SubmitEntry(ctx, entry)
		return submitErr
	})
	if err != nil {
		return err
	}

	env.logger.Info().
		Str("event_id", ev.ID).
		Str("email", logging.SafeValue("email", entry.Email)).
		Msg("entry submitted")

	if env.format == OutputJSON {
		return env.out.JSON(entryResponse{
			Success: true,
			EventID: ev.ID,
			Title:   ev.Title,
			Entry:   submitted,
		})
	}

	env.out.Success(fmt.Sprintf("Entry submitted to %s", tui.TitleCase(ev.Title)))
	return nil
}

// collectEntry builds the entry from flags, or from the form on a terminal.
func collectEntry(ctx context.Context, env *commandEnv, ev *event.Event, opts *entryOptions) (event.Entry, error) {
	entry := event.Entry{
		Name:        strings.TrimSpace(opts.name),
		Phone:       strings.TrimSpace(opts.phone),
		Email:       strings.TrimSpace(opts.email),
		AgreedTerms: opts.agree,
	}

	if opts.yes || !env.interactive() {
		if err := entry.Validate(); err != nil {
			if !opts.yes && !env.interactive() {
				return event.Entry{}, errors.Wrap(errors.ErrNonInteractiveMode, err.Error())
			}
			return event.Entry{}, err
		}
		return entry, nil
	}

	entry, err := tui.CollectEntry(ctx, ev.Title, entry, tui.NewMenuConfig())
	if err != nil {
		return event.Entry{}, err
	}

	ok, err := tui.Confirm(ctx, fmt.Sprintf("Submit entry for %s?", entry.Name), true)
	if err != nil {
		return event.Entry{}, err
	}
	if !ok {
		return event.Entry{}, errors.ErrOperationCanceled
	}
	return entry, nil
}
