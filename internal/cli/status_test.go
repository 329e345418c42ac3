package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/countdown/internal/errors"
	"github.com/mrz1836/countdown/internal/testutil"
)

func TestStatus_FromArgument(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)

	out, err := executeCommand(context.Background(), "status", "2024-12-31", "-o", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	r := reports[0]
	assert.False(t, r.Expired)
	assert.Equal(t, int64(5), r.Remaining.Days)
	assert.Equal(t, int64(12), r.Remaining.Hours)
	assert.Equal(t, int64(5*86400+12*3600), r.TotalSeconds)
	assert.True(t, r.Target.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestStatus_Expired(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(context.Background(), "status", "2024-12-20", "-o", "json")
		require.NoError(t, err)

		reports := decodeReports(t, out)
		require.Len(t, reports, 1)
		assert.True(t, reports[0].Expired)
		assert.True(t, reports[0].Remaining.IsExpired)
		assert.Zero(t, reports[0].Remaining.Days)
		assert.Zero(t, reports[0].TotalSeconds)
	})

	t.Run("text", func(t *testing.T) {
		out, err := executeCommand(context.Background(), "status", "2024-12-20")
		require.NoError(t, err)
		assert.Contains(t, out, "event has ended")
		assert.Contains(t, out, "Deadline:")
	})
}

func TestStatus_TextShowsBreakdown(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)

	out, err := executeCommand(context.Background(), "status", "--end", "2024-12-28T16:05:06Z")
	require.NoError(t, err)
	assert.Contains(t, out, "3d 04h 05m 06s")
}

func TestStatus_FromEventAPI(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)
	srv := testutil.NewEventServer(t, testEvent("2024-12-26T12:00:00Z"))

	out, err := executeCommand(context.Background(), "status", "--api", srv.URL, "-o", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.Equal(t, int64(1), reports[0].Remaining.Days)
	assert.Equal(t, 1, srv.EventHits())
}

func TestStatus_EndFlagWinsOverEventAPI(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)
	srv := testutil.NewEventServer(t, testEvent("2024-12-26T12:00:00Z"))

	out, err := executeCommand(context.Background(), "status", "--api", srv.URL, "--end", "2024-12-27T12:00:00Z", "-o", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.Equal(t, int64(2), reports[0].Remaining.Days)
	assert.Zero(t, srv.EventHits())
}

func TestStatus_ConfigEndDateFallback(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)
	writeProjectConfig(t, "event:\n  end_date: \"2024-12-25T15:00:00Z\"\n")

	out, err := executeCommand(context.Background(), "status", "-o", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.Equal(t, int64(3), reports[0].Remaining.Hours)
}

func TestStatus_WallClockUsesTimezone(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)

	// 2024-12-26 09:00 in Seoul is 2024-12-26 00:00 UTC.
	out, err := executeCommand(context.Background(), "status", "2024-12-26T09:00", "--timezone", "Asia/Seoul", "-o", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.Equal(t, int64(12), reports[0].Remaining.Hours)
	assert.Zero(t, reports[0].Remaining.Days)
}

func TestStatus_Errors(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)

	t.Run("missing end date", func(t *testing.T) {
		_, err := executeCommand(context.Background(), "status")
		require.ErrorIs(t, err, errors.ErrMissingEndDate)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})

	t.Run("invalid end date", func(t *testing.T) {
		_, err := executeCommand(context.Background(), "status", "next tuesday")
		require.ErrorIs(t, err, errors.ErrInvalidEndDate)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})

	t.Run("event API down", func(t *testing.T) {
		srv := testutil.NewEventServer(t, testEvent("2024-12-26T12:00:00Z"))
		srv.FailEvent(http.StatusServiceUnavailable)

		_, err := executeCommand(context.Background(), "status", "--api", srv.URL)
		require.ErrorIs(t, err, errors.ErrEventFetch)
		assert.Equal(t, ExitError, ExitCodeForError(err))
	})

	t.Run("invalid timezone", func(t *testing.T) {
		_, err := executeCommand(context.Background(), "status", "2024-12-31", "--timezone", "Mars/Olympus")
		require.ErrorIs(t, err, errors.ErrConfigInvalidCountdown)
	})
}

func TestStatus_JSONError(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)

	out, err := executeCommand(context.Background(), "status", "not-a-date", "-o", "json")
	require.ErrorIs(t, err, errors.ErrJSONErrorOutput)
	require.ErrorIs(t, err, errors.ErrInvalidEndDate)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))

	var got jsonErrorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "error", got.Type)
	assert.Equal(t, "The end date could not be understood.", got.Message)
	assert.NotEmpty(t, got.Suggestion)
	assert.Contains(t, got.Details, "not-a-date")
}
