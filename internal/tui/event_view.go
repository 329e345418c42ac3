package tui

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/mrz1836/countdown/internal/countdown"
	"github.com/mrz1836/countdown/internal/event"
)

var (
	glamourRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	glamourRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// getGlamourRenderer returns a cached markdown renderer, or nil if none could be built.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// EventView renders an event summary with its time remaining.
type EventView struct {
	Event     *event.Event
	Remaining countdown.Remaining
	Target    time.Time
	Location  *time.Location
	Width     int
}

// Render writes the header, description, rewards, and remaining time to w.
func (v EventView) Render(w io.Writer) error {
	width := v.Width
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	styles := NewOutputStyles()

	if _, err := fmt.Fprintln(w, RenderHeader(TitleCase(v.Event.Title), width)); err != nil {
		return err
	}

	if desc := strings.TrimSpace(v.Event.Description); desc != "" {
		_, _ = fmt.Fprintln(w)
		renderDescription(w, desc)
	}

	if len(v.Event.Rewards) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, StyleBold.Render("Rewards"))
		renderRewards(w, v.Event.Rewards, width)
	}

	_, _ = fmt.Fprintln(w)
	if v.Remaining.Expired() {
		_, _ = fmt.Fprintln(w, styles.Error.Render("event has ended"))
	} else {
		_, _ = fmt.Fprintln(w, styles.Info.Render("Time left: "+v.Remaining.String()))
	}
	_, err := fmt.Fprintln(w, styles.Dim.Render("Deadline: "+FormatDeadline(v.Target, v.Location)))
	return err
}

// renderDescription renders markdown with glamour, falling back to plain text.
func renderDescription(w io.Writer, description string) {
	if renderer := getGlamourRenderer(); renderer != nil {
		if rendered, err := renderer.Render(description); err == nil {
			_, _ = io.WriteString(w, strings.TrimRight(rendered, "\n")+"\n")
			return
		}
	}
	_, _ = fmt.Fprintf(w, "  %s\n", description)
}

// SortRewards returns rewards ordered by rank, then by id.
func SortRewards(rewards []event.Reward) []event.Reward {
	sorted := slices.Clone(rewards)
	slices.SortStableFunc(sorted, func(a, b event.Reward) int {
		return cmp.Or(cmp.Compare(a.Rank, b.Rank), cmp.Compare(a.ID, b.ID))
	})
	return sorted
}

func renderRewards(w io.Writer, rewards []event.Reward, width int) {
	rows := make([][]string, 0, len(rewards))
	for _, r := range SortRewards(rewards) {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank),
			r.Name,
			strconv.Itoa(r.Count),
			r.Detail,
		})
	}

	// Leave room for the fixed columns and separators.
	maxText := max((width-20)/2, 10)
	columns := FitColumns([]TableColumn{
		{Name: "Rank", Align: AlignRight},
		{Name: "Reward"},
		{Name: "Count", Align: AlignRight},
		{Name: "Detail"},
	}, rows, maxText)

	table := NewTable(w, columns)
	table.WriteHeader()
	for _, row := range rows {
		table.WriteRow(row...)
	}
}
