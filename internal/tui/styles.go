// Package tui provides terminal user interface components for countdown.
//
// This package provides a centralized style system using Lip Gloss. All
// colors use AdaptiveColor for light/dark terminal support.
//
// # Semantic Colors
//
// Five semantic colors are exported for use across TUI components:
//   - ColorPrimary (Blue): the live countdown, links, primary actions
//   - ColorSuccess (Green): accepted entries
//   - ColorWarning (Yellow): the final minute
//   - ColorError (Red): the ended state and refused actions
//   - ColorMuted (Gray): unit labels, hints, secondary text
//
// # NO_COLOR Support
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR
// environment variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for the live countdown and primary actions.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for success states.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used when the deadline is close.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for the ended state and refused actions.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for labels and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// FinalMinuteThreshold is the remaining time below which the countdown is
// drawn in ColorWarning.
const FinalMinuteThreshold = 60

// DefaultBoxWidth is the default width for forms and boxed content.
const DefaultBoxWidth = 60

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// CountdownStyles holds the styles of the live countdown display.
type CountdownStyles struct {
	// Value renders a number cell while more than a minute remains.
	Value lipgloss.Style
	// Urgent renders a number cell during the final minute.
	Urgent lipgloss.Style
	// Unit renders the label under a number cell.
	Unit lipgloss.Style
	// Ended renders the "event has ended" banner.
	Ended lipgloss.Style
	// Notice renders inline messages such as a refused entry.
	Notice lipgloss.Style
}

// NewCountdownStyles creates the countdown display styles.
func NewCountdownStyles() *CountdownStyles {
	cell := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		Align(lipgloss.Center).
		Width(6)

	return &CountdownStyles{
		Value:  cell.Foreground(ColorPrimary).BorderForeground(ColorPrimary),
		Urgent: cell.Foreground(ColorWarning).BorderForeground(ColorWarning),
		Unit: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Align(lipgloss.Center).
			Width(10),
		Ended: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorError),
		Notice: lipgloss.NewStyle().
			Foreground(ColorError),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
