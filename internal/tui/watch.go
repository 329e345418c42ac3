package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/countdown/internal/constants"
	"github.com/mrz1836/countdown/internal/countdown"
)

// WatchConfig holds configuration for the live countdown view.
type WatchConfig struct {
	// Title is shown in the header. Empty uses "Countdown".
	Title string
	// BellEnabled rings the terminal bell once when the deadline passes.
	BellEnabled bool
	// Quiet suppresses the header and the bell.
	Quiet bool
	// ShowProgress draws a bar of the time elapsed since the view opened.
	ShowProgress bool
	// Location is the zone the deadline is shown in. Nil uses time.Local.
	Location *time.Location
	// Bell receives the BEL character. Nil uses os.Stdout.
	Bell io.Writer
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Title:        "Countdown",
		BellEnabled:  true,
		ShowProgress: true,
		Location:     time.Local,
	}
}

// RemainingSource is the live countdown the view renders.
// *countdown.Countdown satisfies it.
type RemainingSource interface {
	Target() time.Time
	Now() time.Time
	Remaining() countdown.Remaining
	Expired() bool
	Subscribe(fn func(countdown.Remaining)) (unsubscribe func())
}

// RemainingMsg carries a recomputed breakdown into the model.
type RemainingMsg countdown.Remaining

// BellMsg signals that the bell was rung.
type BellMsg struct{}

type watchKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Enter: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "enter event"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchModel is the Bubble Tea model for the live countdown.
// It implements tea.Model (Init, Update, View).
type WatchModel struct {
	src  RemainingSource
	gate *countdown.Gate

	updates     chan countdown.Remaining
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()

	remaining countdown.Remaining
	start     time.Time

	config   WatchConfig
	keys     watchKeyMap
	help     help.Model
	styles   *CountdownStyles
	progress *ProgressBar

	notifier *Notifier

	width, height  int
	quitting       bool
	entryRequested bool
	rang           bool
	notice         string
}

// NewWatchModel creates a WatchModel subscribed to src.
// The entry key runs through gate, so it is refused once src has expired.
// Call Close when the program ends.
func NewWatchModel(src RemainingSource, gate *countdown.Gate, cfg WatchConfig) *WatchModel {
	if cfg.Title == "" {
		cfg.Title = "Countdown"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Bell == nil {
		cfg.Bell = os.Stdout
	}

	m := &WatchModel{
		src:       src,
		gate:      gate,
		updates:   make(chan countdown.Remaining, 1),
		done:      make(chan struct{}),
		remaining: src.Remaining(),
		start:     src.Now(),
		config:    cfg,
		keys:      newWatchKeyMap(),
		help:      help.New(),
		styles:    NewCountdownStyles(),
		progress:  NewProgressBar(40),
		notifier:  NewNotifierWithWriter(cfg.BellEnabled, cfg.Quiet, cfg.Bell),
		width:     DefaultTerminalWidth,
		height:    24,
	}
	// No bell for a deadline that had already passed when the view opened.
	m.rang = m.remaining.Expired()
	m.unsubscribe = src.Subscribe(m.push)

	return m
}

// push keeps only the latest breakdown so the ticking goroutine never blocks.
func (m *WatchModel) push(r countdown.Remaining) {
	select {
	case m.updates <- r:
		return
	default:
	}
	select {
	case <-m.updates:
	default:
	}
	select {
	case m.updates <- r:
	default:
	}
}

// Close stops listening to the countdown. Safe to call more than once.
func (m *WatchModel) Close() {
	m.closeOnce.Do(func() {
		m.unsubscribe()
		close(m.done)
	})
}

// Init starts waiting for the first recomputation.
func (m *WatchModel) Init() tea.Cmd {
	return m.waitForRemaining()
}

// Update handles messages and returns the updated model and any commands.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.SetWidth(min(max(msg.Width-4, 10), 60))
		return m, nil

	case RemainingMsg:
		m.remaining = countdown.Remaining(msg)
		return m, tea.Batch(m.waitForRemaining(), m.checkForBell())

	case BellMsg:
		return m, nil
	}

	return m, nil
}

func (m *WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Enter):
		if err := m.gate.Try(nil); err != nil {
			m.notice = m.gate.State().ErrorMessage
			return m, nil
		}
		m.entryRequested = true
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the current state to a string.
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	if !m.config.Quiet {
		b.WriteString(RenderHeader(m.config.Title, m.width))
		b.WriteString("\n\n")
	}

	if m.remaining.Expired() {
		b.WriteString(m.styles.Ended.Render(constants.EventEndedMessage))
	} else {
		b.WriteString(m.renderCells())
		if m.config.ShowProgress {
			b.WriteString("\n\n")
			b.WriteString(m.progress.Render(ElapsedFraction(m.start, m.src.Target(), m.src.Now())))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("Deadline: " + FormatDeadline(m.src.Target(), m.config.Location)))

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render("✗ " + m.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// renderCells draws the four number cells with their unit labels.
func (m *WatchModel) renderCells() string {
	style := m.styles.Value
	if m.remaining.Total() < FinalMinuteThreshold*time.Second {
		style = m.styles.Urgent
	}

	cell := func(value int64, unit string) string {
		return lipgloss.JoinVertical(lipgloss.Center,
			style.Render(fmt.Sprintf("%02d", value)),
			m.styles.Unit.Render(unit),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell(m.remaining.Days, "DAYS"),
		cell(m.remaining.Hours, "HOURS"),
		cell(m.remaining.Minutes, "MINUTES"),
		cell(m.remaining.Seconds, "SECONDS"),
	)
}

// Remaining returns the last breakdown the model received.
func (m *WatchModel) Remaining() countdown.Remaining {
	return m.remaining
}

// EntryRequested reports whether the view closed because entry was accepted.
func (m *WatchModel) EntryRequested() bool {
	return m.entryRequested
}

// IsQuitting returns true if the model is in quitting state.
func (m *WatchModel) IsQuitting() bool {
	return m.quitting
}

// Notice returns the inline message, such as a refused entry.
func (m *WatchModel) Notice() string {
	return m.notice
}

// waitForRemaining blocks until the next breakdown or Close.
func (m *WatchModel) waitForRemaining() tea.Cmd {
	return func() tea.Msg {
		select {
		case r := <-m.updates:
			return RemainingMsg(r)
		case <-m.done:
			return nil
		}
	}
}

// checkForBell rings once on the transition to expired.
// Suppressed if BellEnabled is false or Quiet mode is active.
func (m *WatchModel) checkForBell() tea.Cmd {
	if m.rang || !m.remaining.Expired() {
		return nil
	}
	m.rang = true
	if !m.notifier.Enabled() {
		return nil
	}
	return emitBell(m.notifier)
}

// emitBell returns a command that rings n.
func emitBell(n *Notifier) tea.Cmd {
	return func() tea.Msg {
		n.Bell()
		return BellMsg{}
	}
}

// RunWatch runs m until the user quits or ctx is canceled, then closes it.
// Cancellation is not an error.
func RunWatch(ctx context.Context, m *WatchModel, opts ...tea.ProgramOption) error {
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run countdown view: %w", err)
	}
	return nil
}
