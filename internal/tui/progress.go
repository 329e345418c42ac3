package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar wraps the bubbles progress bar with countdown styling.
// Supports adaptive width and NO_COLOR compatibility.
type ProgressBar struct {
	bar   progress.Model
	width int
}

// ProgressOption is a functional option for configuring a ProgressBar.
type ProgressOption func(*ProgressBar)

// WithBarWidth sets the progress bar width.
func WithBarWidth(w int) ProgressOption {
	return func(pb *ProgressBar) {
		pb.SetWidth(w)
	}
}

// NewProgressBar creates a new progress bar.
// Uses a ColorPrimary gradient when color is available and a solid fill otherwise.
func NewProgressBar(width int, opts ...ProgressOption) *ProgressBar {
	var bar progress.Model

	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithScaledGradient("#0087AF", "#00D7FF"),
			progress.WithoutPercentage(),
		)
	} else {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill("#808080"),
			progress.WithoutPercentage(),
		)
	}

	pb := &ProgressBar{
		bar:   bar,
		width: width,
	}

	for _, opt := range opts {
		opt(pb)
	}

	return pb
}

// Render returns the bar for percent (0.0-1.0) without animation.
func (pb *ProgressBar) Render(percent float64) string {
	return pb.bar.ViewAs(clampFraction(percent))
}

// Width returns the current width of the progress bar.
func (pb *ProgressBar) Width() int {
	return pb.width
}

// SetWidth updates the progress bar width.
func (pb *ProgressBar) SetWidth(w int) {
	pb.width = w
	pb.bar.Width = w
}

// ElapsedFraction returns how much of the span from start to target has
// passed at now, clamped to 0..1. A span of zero or less counts as complete.
func ElapsedFraction(start, target, now time.Time) float64 {
	span := target.Sub(start)
	if span <= 0 {
		return 1
	}
	return clampFraction(float64(now.Sub(start)) / float64(span))
}

func clampFraction(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
