package tui

import (
	"io"
	"os"
	"sync"
)

// Notifier rings the terminal bell when the deadline passes.
// It rings at most once and stays silent when disabled or quiet.
type Notifier struct {
	bellEnabled bool
	quiet       bool
	writer      io.Writer
	once        sync.Once
}

// NewNotifier creates a notifier writing to os.Stdout.
func NewNotifier(bellEnabled, quiet bool) *Notifier {
	return NewNotifierWithWriter(bellEnabled, quiet, os.Stdout)
}

// NewNotifierWithWriter creates a notifier with a custom writer.
func NewNotifierWithWriter(bellEnabled, quiet bool, w io.Writer) *Notifier {
	if w == nil {
		w = os.Stdout
	}
	return &Notifier{
		bellEnabled: bellEnabled,
		quiet:       quiet,
		writer:      w,
	}
}

// Enabled reports whether Bell would write anything.
func (n *Notifier) Enabled() bool {
	return n.bellEnabled && !n.quiet
}

// Bell writes BEL (\a) the first time it is called. Later calls do nothing.
// It reports whether the bell was written.
func (n *Notifier) Bell() bool {
	if !n.Enabled() {
		return false
	}
	rang := false
	n.once.Do(func() {
		_, _ = io.WriteString(n.writer, "\a")
		rang = true
	})
	return rang
}
