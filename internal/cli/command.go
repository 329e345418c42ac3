package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/countdown/internal/config"
	"github.com/mrz1836/countdown/internal/countdown"
	"github.com/mrz1836/countdown/internal/errors"
	"github.com/mrz1836/countdown/internal/event"
	"github.com/mrz1836/countdown/internal/tui"
)

// commandClock drives every countdown built by a command.
//
//nolint:gochecknoglobals // Required for test injection of a fake clock
var commandClock clockwork.Clock = clockwork.NewRealClock()

// terminalCheck reports whether stdin is an interactive terminal.
//
//nolint:gochecknoglobals // Required for test injection of terminal detection
var terminalCheck = isTerminal

// isTerminal returns true if stdin is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// SourceFlags selects where a command reads its deadline from.
type SourceFlags struct {
	// End is an explicit end date. It wins over the event API and config.
	End string
	// API overrides event.api_base_url.
	API string
	// Timezone overrides countdown.timezone.
	Timezone string
	// Timeout overrides event.timeout.
	Timeout time.Duration
}

// addSourceFlags registers the deadline source flags on cmd.
// withEnd controls whether --end is offered.
func addSourceFlags(cmd *cobra.Command, flags *SourceFlags, withEnd bool) {
	if withEnd {
		cmd.Flags().StringVar(&flags.End, "end", "", "end date (e.g. 2025-12-31 or 2025-12-31T18:00:00+09:00)")
	}
	cmd.Flags().StringVar(&flags.API, "api", "", "event API base URL (overrides event.api_base_url)")
	cmd.Flags().StringVar(&flags.Timezone, "timezone", "", "IANA zone for end dates without an offset")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "event API request timeout")
}

// commandEnv is the loaded configuration and output plumbing shared by commands.
type commandEnv struct {
	cfg    *config.Config
	logger zerolog.Logger
	loc    *time.Location
	out    tui.Output
	w      io.Writer
	format string
	quiet  bool
}

// newCommandEnv loads configuration with the source flags applied on top.
func newCommandEnv(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, src *SourceFlags) (*commandEnv, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	overrides := &config.Config{}
	if src != nil {
		overrides.Event.APIBaseURL = src.API
		overrides.Event.Timeout = src.Timeout
		overrides.Countdown.Timezone = src.Timezone
	}

	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	loc, err := cfg.Countdown.Location()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalidCountdown, "timezone %q: %v", cfg.Countdown.Timezone, err)
	}

	w := cmd.OutOrStdout()
	var out tui.Output
	if flags.Output == OutputJSON {
		out = tui.NewJSONOutput(w)
	} else {
		tui.CheckNoColor()
		out = tui.NewTTYOutput(w).WithLocation(loc)
	}

	return &commandEnv{
		cfg:    cfg,
		logger: GetLogger(),
		loc:    loc,
		out:    out,
		w:      w,
		format: flags.Output,
		quiet:  flags.Quiet,
	}, nil
}

// interactive reports whether the command may draw spinners, views, and forms.
func (e *commandEnv) interactive() bool {
	return e.format != OutputJSON && terminalCheck()
}

// newClient returns an event API client for the configured base URL.
func (e *commandEnv) newClient() *event.Client {
	return event.NewClient(e.cfg.Event.APIBaseURL,
		event.WithTimeout(e.cfg.Event.Timeout),
		event.WithLogger(e.logger),
	)
}

// fetchEvent fetches the event, showing a spinner on interactive terminals.
func (e *commandEnv) fetchEvent(ctx context.Context) (*event.Event, error) {
	if !e.cfg.Event.HasAPI() {
		return nil, errors.Wrap(errors.ErrConfigInvalidEvent, "event.api_base_url is not set")
	}

	spinner := tui.StartSpinner(ctx, os.Stderr, "Fetching event...", e.interactive() && !e.quiet)
	ev, err := e.newClient().GetEvent(ctx)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// newCountdown builds an inactive countdown to endDate in the configured zone.
func (e *commandEnv) newCountdown(endDate string) (*countdown.Countdown, error) {
	return countdown.New(endDate,
		countdown.WithClock(commandClock),
		countdown.WithLocation(e.loc),
		countdown.WithLogger(e.logger),
	)
}

// resolveCountdown picks the deadline in precedence order: the positional
// argument, --end, the event API, then event.end_date. The event is
// returned when it was fetched.
func (e *commandEnv) resolveCountdown(ctx context.Context, arg, end string) (*countdown.Countdown, *event.Event, error) {
	endDate := strings.TrimSpace(arg)
	if endDate == "" {
		endDate = strings.TrimSpace(end)
	}

	var ev *event.Event
	if endDate == "" && e.cfg.Event.HasAPI() {
		fetched, err := e.fetchEvent(ctx)
		if err != nil {
			return nil, nil, err
		}
		ev = fetched
		endDate = strings.TrimSpace(ev.EndDate)
	}

	if endDate == "" {
		endDate = strings.TrimSpace(e.cfg.Event.EndDate)
	}
	if endDate == "" {
		return nil, nil, errors.ErrMissingEndDate
	}

	cd, err := e.newCountdown(endDate)
	if err != nil {
		return nil, nil, err
	}

	e.logger.Debug().
		Time("target", cd.Target()).
		Bool("from_event", ev != nil).
		Msg("countdown resolved")
	return cd, ev, nil
}

// finishCommand reports err in the requested format. In JSON mode the error
// is written to stdout and cobra is told not to print it again; the returned
// error still carries the original cause for the exit code.
func finishCommand(cmd *cobra.Command, flags *GlobalFlags, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, errors.ErrJSONErrorOutput) {
		cmd.SilenceErrors = true
		return err
	}
	if flags.Output != OutputJSON {
		return err
	}

	tui.NewJSONOutput(cmd.OutOrStdout()).Error(err)
	cmd.SilenceErrors = true
	return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, err)
}

// firstArg returns args[0] or "".
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
