package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// TableStyles holds lipgloss styles for table rendering.
type TableStyles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Dim    lipgloss.Style
}

// NewTableStyles creates styles for table rendering.
func NewTableStyles() *TableStyles {
	return &TableStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Cell: lipgloss.NewStyle(),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// Table renders rows in fixed-width columns.
// Widths are measured in terminal cells, so wide runes line up.
type Table struct {
	w       io.Writer
	styles  *TableStyles
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewTableStyles(),
		columns: columns,
	}
}

// FitColumns widens each column to its longest header or value, capped at maxWidth.
func FitColumns(columns []TableColumn, rows [][]string, maxWidth int) []TableColumn {
	fitted := make([]TableColumn, len(columns))
	copy(fitted, columns)

	for i := range fitted {
		width := max(fitted[i].Width, runewidth.StringWidth(fitted[i].Name))
		for _, row := range rows {
			if i < len(row) {
				width = max(width, runewidth.StringWidth(row[i]))
			}
		}
		if maxWidth > 0 {
			width = min(width, maxWidth)
		}
		fitted[i].Width = width
	}
	return fitted
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = pad(col.Name, col.Width, col.Align)
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Header.Render(strings.Join(cells, "  ")))
}

// WriteRow writes a data row, truncating values wider than their column.
func (t *Table) WriteRow(values ...string) {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		if col.Width > 1 && runewidth.StringWidth(value) > col.Width {
			value = runewidth.Truncate(value, col.Width, "…")
		}
		cells[i] = pad(value, col.Width, col.Align)
	}
	_, _ = fmt.Fprintln(t.w, strings.TrimRight(strings.Join(cells, "  "), " "))
}

// pad fills s with spaces to width cells.
func pad(s string, width int, align Alignment) string {
	switch align {
	case AlignRight:
		return runewidth.FillLeft(s, width)
	case AlignCenter:
		gap := width - runewidth.StringWidth(s)
		if gap <= 0 {
			return s
		}
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	case AlignLeft:
		return runewidth.FillRight(s, width)
	default:
		return runewidth.FillRight(s, width)
	}
}
