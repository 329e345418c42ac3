package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// SpinnerInterval is the animation frame interval.
const SpinnerInterval = 100 * time.Millisecond

//nolint:gochecknoglobals // Fixed animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows progress while a request to the event API is in flight.
type Spinner interface {
	Stop()
}

// TerminalSpinner draws an animated frame and message on one terminal line.
type TerminalSpinner struct {
	w       io.Writer
	styles  *OutputStyles
	message string

	mu      sync.Mutex
	done    chan struct{}
	stopped chan struct{}
	running bool
}

// NewTerminalSpinner creates a spinner that writes to w.
func NewTerminalSpinner(w io.Writer) *TerminalSpinner {
	return &TerminalSpinner{
		w:      w,
		styles: NewOutputStyles(),
	}
}

// Start begins the animation. Calling Start while running only changes the message.
func (s *TerminalSpinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	if s.running {
		return
	}

	s.running = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.animate(ctx, s.done, s.stopped)
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *TerminalSpinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done, stopped := s.done, s.stopped
	s.mu.Unlock()

	close(done)
	<-stopped
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *TerminalSpinner) StopWithSuccess(message string) {
	s.Stop()
	_, _ = fmt.Fprintln(s.w, s.styles.Success.Render("✓ "+message))
}

// StopWithError stops the spinner and prints an error line.
func (s *TerminalSpinner) StopWithError(message string) {
	s.Stop()
	_, _ = fmt.Fprintln(s.w, s.styles.Error.Render("✗ "+message))
}

func (s *TerminalSpinner) animate(ctx context.Context, done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(SpinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-done:
			_, _ = io.WriteString(s.w, "\r\033[K")
			return
		case <-ctx.Done():
			_, _ = io.WriteString(s.w, "\r\033[K")
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()

			glyph := s.styles.Info.Render(spinnerFrames[frame%len(spinnerFrames)])
			_, _ = fmt.Fprintf(s.w, "\r\033[K%s %s", glyph, msg)
			frame++
		}
	}
}

// NoopSpinner is used when output is not a terminal.
type NoopSpinner struct{}

// Stop does nothing.
func (*NoopSpinner) Stop() {}

// StartSpinner starts a TerminalSpinner on w when enabled, otherwise returns a NoopSpinner.
func StartSpinner(ctx context.Context, w io.Writer, message string, enabled bool) Spinner {
	if !enabled {
		return &NoopSpinner{}
	}
	s := NewTerminalSpinner(w)
	s.Start(ctx, message)
	return s
}
