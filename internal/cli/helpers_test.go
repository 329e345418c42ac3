package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/countdown/internal/event"
)

// christmasNoon is the instant the fake command clock starts at.
var christmasNoon = time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // shared test fixture

// isolateCommand points HOME, COUNTDOWN_HOME, and the working directory at
// temp dirs and forces non-interactive mode. Tests using it cannot be parallel.
func isolateCommand(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("COUNTDOWN_HOME", filepath.Join(home, ".countdown"))
	t.Setenv("NO_COLOR", "1")
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		globalLoggerMu.Lock()
		globalLogger = zerolog.Nop()
		globalLoggerMu.Unlock()
		setGlobalLogger(zerolog.Nop())
		CloseLogFile()
	})

	original := terminalCheck
	terminalCheck = func() bool { return false }
	t.Cleanup(func() { terminalCheck = original })

	return home
}

// useFakeClock makes every command countdown run on a fake clock.
func useFakeClock(t *testing.T, at time.Time) *clockwork.FakeClock {
	t.Helper()

	clk := clockwork.NewFakeClockAt(at)
	original := commandClock
	commandClock = clk
	t.Cleanup(func() { commandClock = original })
	return clk
}

// executeCommand runs the root command with args and returns stdout.
func executeCommand(ctx context.Context, args ...string) (string, error) {
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

// writeProjectConfig writes .countdown/config.yaml in the working directory.
func writeProjectConfig(t *testing.T, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(".countdown", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(".countdown", "config.yaml"), []byte(content), 0o600))
}

// testEvent returns an event ending at endDate.
func testEvent(endDate string) event.Event {
	return event.Event{
		ID:          "evt-1",
		Title:       "winter giveaway",
		EndDate:     endDate,
		Description: "Win **prizes** before the deadline.",
		Rewards: []event.Reward{
			{ID: 2, Name: "Gift Card", Count: 10, Rank: 2},
			{ID: 1, Name: "Laptop", Count: 1, Rank: 1},
		},
	}
}

// statusReport mirrors the JSON printed for a remaining-time status.
type statusReport struct {
	Target    time.Time `json:"target"`
	Remaining struct {
		Days      int64 `json:"days"`
		Hours     int64 `json:"hours"`
		Minutes   int64 `json:"minutes"`
		Seconds   int64 `json:"seconds"`
		IsExpired bool  `json:"is_expired"`
	} `json:"remaining"`
	TotalSeconds int64  `json:"total_seconds"`
	Expired      bool   `json:"expired"`
	Display      string `json:"display"`
}

// decodeReports decodes a stream of JSON status reports.
func decodeReports(t *testing.T, out string) []statusReport {
	t.Helper()

	var reports []statusReport
	dec := json.NewDecoder(bytes.NewBufferString(out))
	for dec.More() {
		var r statusReport
		require.NoError(t, dec.Decode(&r))
		reports = append(reports, r)
	}
	return reports
}

// jsonErrorOutput mirrors the JSON printed for a failed command.
type jsonErrorOutput struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Suggestion string `json:"suggestion"`
}
