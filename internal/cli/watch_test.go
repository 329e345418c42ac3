package cli

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// advanceUntilDone advances clk one second at a time until done delivers.
func advanceUntilDone(t *testing.T, clk *clockwork.FakeClock, done <-chan error) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, clk.BlockUntilContext(ctx, 1))

	for {
		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			t.Fatal("watch did not finish")
			return nil
		case <-time.After(5 * time.Millisecond):
			clk.Advance(time.Second)
		}
	}
}

func TestWatch_StreamsUntilExpired(t *testing.T) {
	isolateCommand(t)
	clk := useFakeClock(t, christmasNoon)

	var out string
	done := make(chan error, 1)
	go func() {
		var err error
		out, err = executeCommand(context.Background(), "watch", "2024-12-25T12:00:03Z", "-o", "json")
		done <- err
	}()

	require.NoError(t, advanceUntilDone(t, clk, done))

	reports := decodeReports(t, out)
	require.GreaterOrEqual(t, len(reports), 2)

	first := reports[0]
	assert.False(t, first.Expired)
	assert.Equal(t, int64(3), first.Remaining.Seconds)

	last := reports[len(reports)-1]
	assert.True(t, last.Expired)
	for _, r := range reports[:len(reports)-1] {
		assert.False(t, r.Expired, "only the final status is expired")
	}
}

func TestWatch_TextStream(t *testing.T) {
	isolateCommand(t)
	clk := useFakeClock(t, christmasNoon)

	var out string
	done := make(chan error, 1)
	go func() {
		var err error
		out, err = executeCommand(context.Background(), "watch", "--end", "2024-12-25T12:00:02Z")
		done <- err
	}()

	require.NoError(t, advanceUntilDone(t, clk, done))
	assert.Contains(t, out, "0d 00h 00m 02s")
	assert.Contains(t, out, "event has ended")
}

func TestWatch_AlreadyExpiredPrintsOnce(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)

	out, err := executeCommand(context.Background(), "watch", "2024-12-20", "-o", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Expired)
}

func TestWatch_StopsOnCancel(t *testing.T) {
	isolateCommand(t)
	clk := useFakeClock(t, christmasNoon)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := executeCommand(ctx, "watch", "2025-12-31", "-o", "json")
		done <- err
	}()

	blockCtx, blockCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer blockCancel()
	require.NoError(t, clk.BlockUntilContext(blockCtx, 1))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_MissingEndDate(t *testing.T) {
	isolateCommand(t)
	useFakeClock(t, christmasNoon)

	_, err := executeCommand(context.Background(), "watch")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}
