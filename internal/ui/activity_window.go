package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hirepanel/internal/activity"
)

const (
	defaultActivityWidth  = 70
	defaultActivityHeight = 18
)

// ActivityWindow shows the activity log with scrollback. Esc dismisses.
type ActivityWindow struct {
	log      *activity.Log
	viewport viewport.Model
}

// Ensure ActivityWindow implements View.
var _ View = (*ActivityWindow)(nil)

// NewActivityWindow creates a window over log sized for a width x height terminal.
func NewActivityWindow(log *activity.Log, width, height int) *ActivityWindow {
	vp := viewport.New(defaultActivityWidth, defaultActivityHeight)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	w := &ActivityWindow{log: log, viewport: vp}
	w.resize(width, height)
	w.Refresh()
	return w
}

// Init implements View.
func (w *ActivityWindow) Init() tea.Cmd {
	return nil
}

// Refresh reloads the log into the viewport and scrolls to the newest entry.
func (w *ActivityWindow) Refresh() {
	var events []activity.Event
	if w.log != nil {
		events = w.log.Events()
	}
	w.viewport.SetContent(renderEvents(events))
	w.viewport.GotoBottom()
}

// Update implements View.
func (w *ActivityWindow) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "q" {
			return w, func() tea.Msg { return DismissModalMsg{} }
		}
	case tea.WindowSizeMsg:
		w.resize(msg.Width, msg.Height)
		w.Refresh()
		return w, nil
	}
	var cmd tea.Cmd
	w.viewport, cmd = w.viewport.Update(msg)
	return w, cmd
}

func (w *ActivityWindow) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	vw := width - 8
	vh := height/2 + 4
	if vw < 40 {
		vw = 40
	}
	if vh < 10 {
		vh = 10
	}
	w.viewport.Width = vw
	w.viewport.Height = vh
}

// View implements View.
func (w *ActivityWindow) View() string {
	header := Styles.Title.Render("Activity") + Styles.Muted.Render("  Esc: close  ↑/↓: scroll")
	return header + "\n" + w.viewport.View()
}

func renderEvents(events []activity.Event) string {
	if len(events) == 0 {
		return "No activity yet."
	}
	var lines []string
	for _, ev := range events {
		line := fmt.Sprintf("[%s] %s %s", ev.Timestamp.Format("15:04:05"), statusIcon(ev.Status), ev.Message)
		lines = append(lines, line)
		keys := make([]string, 0, len(ev.Metadata))
		for k := range ev.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, Styles.Muted.Render(fmt.Sprintf("      %s: %s", k, ev.Metadata[k])))
		}
	}
	return strings.Join(lines, "\n")
}

func statusIcon(s activity.Status) string {
	switch s {
	case activity.StatusPending:
		return "●"
	case activity.StatusDone:
		return "✓"
	case activity.StatusError:
		return "✗"
	default:
		return "•"
	}
}
