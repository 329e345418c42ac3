package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// defaultTitle is shown when the countdown has no event title.
	defaultTitle = "Countdown"

	// wideThreshold is the minimum terminal width for the framed header.
	wideThreshold = 60

	// DefaultTerminalWidth is assumed when the width cannot be detected.
	DefaultTerminalWidth = 80
)

// Header renders the event title above the countdown.
// Wide mode frames the title in a rule; narrow mode shows it bare.
type Header struct {
	title string
	width int
}

// NewHeader creates a Header for title at the given terminal width.
// An empty title falls back to "Countdown".
func NewHeader(title string, width int) *Header {
	return &Header{title: title, width: width}
}

// WithWidth returns a copy of the header with a new width.
func (h *Header) WithWidth(w int) *Header {
	return &Header{title: h.title, width: w}
}

// Render returns the header string, centered for the current width.
func (h *Header) Render() string {
	title := TitleCase(h.title)
	if title == "" {
		title = defaultTitle
	}

	style := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	if h.width < wideThreshold {
		return centerText(style.Render(title), title, h.width)
	}

	ruleWidth := runewidth.StringWidth(title) + 8
	if ruleWidth > h.width {
		ruleWidth = h.width
	}
	rule := strings.Repeat("═", ruleWidth)
	framed := "═══ " + title + " ═══"

	lines := []string{
		centerText(StyleDim.Render(rule), rule, h.width),
		centerText(style.Render(framed), framed, h.width),
		centerText(StyleDim.Render(rule), rule, h.width),
	}
	return strings.Join(lines, "\n")
}

// TitleCase capitalizes each word of an event title.
// Titles that already contain upper case letters are kept as written.
func TitleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.ToLower(s) != s {
		return s
	}
	return cases.Title(language.Und).String(s)
}

// centerText centers styled text using the display width of original,
// so wide (CJK) runes count as two columns.
func centerText(styled, original string, totalWidth int) string {
	textWidth := runewidth.StringWidth(original)
	if totalWidth <= 0 || textWidth >= totalWidth {
		return styled
	}
	padding := (totalWidth - textWidth) / 2
	if padding <= 0 {
		return styled
	}
	return strings.Repeat(" ", padding) + styled
}

// GetTerminalWidth returns the current terminal width, or 0 when stdout is
// not a terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// RenderHeader renders a header for title at the specified width.
func RenderHeader(title string, width int) string {
	return NewHeader(title, width).Render()
}
