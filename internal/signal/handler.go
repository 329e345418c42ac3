// Package signal provides graceful shutdown handling for countdown commands.
//
// Import rules:
//   - CAN import: std lib, zerolog
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

// Handler cancels a context when SIGINT or SIGTERM arrives and runs the
// registered shutdown hooks exactly once.
type Handler struct {
	ctx         context.Context //nolint:containedctx // intentional: handler manages context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{}
	sigChan     chan os.Signal
	logger      zerolog.Logger

	once     sync.Once
	stopOnce sync.Once

	hooksMu  sync.Mutex
	hooks    []func()
	hooksRan bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used to report received signals.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger.With().Str("component", "signal").Logger()
	}
}

// NewHandler creates a signal handler that listens for SIGINT and SIGTERM.
//
// Usage:
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	h.OnShutdown(cd.Deactivate)
//	ctx = h.Context()
func NewHandler(parent context.Context, opts ...Option) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		// Buffer of 1 so signal.Notify never drops a signal while the handler is busy.
		sigChan: make(chan os.Signal, 1),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the cancellable context.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel that closes when an interrupt signal is received.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// OnShutdown registers fn to run when a signal arrives or Stop is called,
// whichever happens first. Hooks run in reverse registration order.
// Registering after the hooks ran calls fn immediately.
func (h *Handler) OnShutdown(fn func()) {
	h.hooksMu.Lock()
	if h.hooksRan {
		h.hooksMu.Unlock()
		fn()
		return
	}
	h.hooks = append(h.hooks, fn)
	h.hooksMu.Unlock()
}

// Stop runs pending shutdown hooks, stops listening for signals, and
// cancels the context. Always call this when done.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
		h.runHooks()
	})
}

// handleSignal processes a received signal.
func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.logger.Info().Stringer("signal", sig).Msg("shutdown requested")
		h.cancel()
		h.runHooks()
		close(h.interrupted)
	})
}

func (h *Handler) runHooks() {
	h.hooksMu.Lock()
	if h.hooksRan {
		h.hooksMu.Unlock()
		return
	}
	h.hooksRan = true
	hooks := h.hooks
	h.hooks = nil
	h.hooksMu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// listen waits for signals until Stop is called or the context is canceled.
// Only the first signal has an effect; later ones are drained.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			h.handleSignal(sig)
		}
	}
}
