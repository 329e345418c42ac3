package countdown

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mrz1836/countdown/internal/constants"
	"github.com/mrz1836/countdown/internal/errors"
)

// ExpirySource reports whether a deadline has passed.
// *Countdown reads the live flag; a Remaining value reads a snapshot.
type ExpirySource interface {
	Expired() bool
}

// GateState is what a view renders for a gated action.
type GateState struct {
	// Open is true once the gated action has been allowed.
	Open bool `json:"open"`
	// ShowError is true once the action has been refused.
	ShowError bool `json:"show_error"`
	// ErrorMessage is the fixed refusal text, empty until refused.
	ErrorMessage string `json:"error_message,omitempty"`
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithMessage overrides the refusal text.
func WithMessage(msg string) GateOption {
	return func(g *Gate) {
		if msg != "" {
			g.message = msg
		}
	}
}

// WithGateLogger sets the logger used for refusals.
func WithGateLogger(logger zerolog.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger.With().Str("component", "gate").Logger()
	}
}

// Gate allows an action only while its source has not expired.
type Gate struct {
	src     ExpirySource
	message string
	logger  zerolog.Logger

	mu    sync.Mutex
	state GateState
}

// NewGate creates a closed gate over src.
func NewGate(src ExpirySource, opts ...GateOption) *Gate {
	g := &Gate{
		src:     src,
		message: constants.EventEndedMessage,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Try checks the source at the moment of the call.
//
// Expired: action is not run, the error message is shown, Open is left
// as it was, and errors.ErrEventEnded is returned.
// Live: Open is set, no error is shown, and action's result is returned.
// A nil action only opens the gate.
func (g *Gate) Try(action func() error) error {
	if g.src.Expired() {
		g.mu.Lock()
		g.state.ShowError = true
		g.state.ErrorMessage = g.message
		g.mu.Unlock()

		g.logger.Debug().Msg("gated action refused after deadline")
		return errors.ErrEventEnded
	}

	g.mu.Lock()
	g.state.Open = true
	g.mu.Unlock()

	if action == nil {
		return nil
	}
	return action()
}

// State returns a copy of the gate flags.
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Reset closes the gate and clears any shown error.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = GateState{}
}
