package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchModal edits the free-text search over candidate names and job titles.
type SearchModal struct {
	input textinput.Model
}

// Ensure SearchModal implements View.
var _ View = (*SearchModal)(nil)

// NewSearchModal opens with the current query pre-filled.
func NewSearchModal(query string) *SearchModal {
	ti := textinput.New()
	ti.Placeholder = "name or job title"
	ti.Width = 40
	ti.SetValue(query)
	ti.CursorEnd()
	ti.Focus()
	return &SearchModal{input: ti}
}

// Value returns the text typed so far.
func (m *SearchModal) Value() string {
	return m.input.Value()
}

// Init implements View.
func (m *SearchModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View. Enter applies the query, an empty one clears it.
func (m *SearchModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			return m, func() tea.Msg { return SetQueryMsg{Query: q} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *SearchModal) View() string {
	content := Styles.Title.Render("Search applications") + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: apply  Esc: cancel")
	return Styles.Box.Render(content)
}
