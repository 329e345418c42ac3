package signal

import (
	"bytes"
	"context"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Signal_CancelsContext(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal(syscall.SIGINT)

	require.Error(t, h.Context().Err())
	assert.Equal(t, context.Canceled, h.Context().Err())
}

func TestHandler_Signal_ClosesInterruptedChannel(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal(syscall.SIGTERM)

	select {
	case <-h.Interrupted():
	default:
		t.Fatal("interrupted channel should be closed after signal")
	}
}

func TestHandler_MultipleSignals_OnlyProcessedOnce(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	var calls atomic.Int32
	h.OnShutdown(func() { calls.Add(1) })

	h.handleSignal(syscall.SIGINT)
	h.handleSignal(syscall.SIGINT)
	h.handleSignal(syscall.SIGTERM)

	require.Error(t, h.Context().Err())
	assert.Equal(t, int32(1), calls.Load())
}

func TestHandler_Stop_RunsHooksInReverseOrder(t *testing.T) {
	h := NewHandler(context.Background())

	var order []string
	h.OnShutdown(func() { order = append(order, "first") })
	h.OnShutdown(func() { order = append(order, "second") })

	h.Stop()
	h.Stop()

	assert.Equal(t, []string{"second", "first"}, order)
	require.Error(t, h.Context().Err())
}

func TestHandler_HooksRunOnceAcrossSignalAndStop(t *testing.T) {
	h := NewHandler(context.Background())

	var calls atomic.Int32
	h.OnShutdown(func() { calls.Add(1) })

	h.handleSignal(syscall.SIGINT)
	h.Stop()

	assert.Equal(t, int32(1), calls.Load())
}

func TestHandler_OnShutdownAfterStopRunsImmediately(t *testing.T) {
	h := NewHandler(context.Background())
	h.Stop()

	ran := false
	h.OnShutdown(func() { ran = true })

	assert.True(t, ran)
}

func TestHandler_Stop_NotInterrupted(t *testing.T) {
	h := NewHandler(context.Background())
	h.Stop()

	select {
	case <-h.Interrupted():
		t.Fatal("interrupted channel should stay open when stopped without a signal")
	default:
	}
}

func TestHandler_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()

	select {
	case <-h.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("context should be canceled with its parent")
	}
}

func TestHandler_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(context.Background(), WithLogger(zerolog.New(&buf)))
	defer h.Stop()

	h.handleSignal(syscall.SIGTERM)

	assert.Contains(t, buf.String(), "shutdown requested")
	assert.Contains(t, buf.String(), `"component":"signal"`)
}
