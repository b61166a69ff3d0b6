package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hirepanel/internal/applicant"
	"hirepanel/internal/review"
	"hirepanel/internal/ui/textutil"
)

const (
	defaultListWidth  = 100
	defaultListHeight = 20
)

// applicationItem implements list.Item for one application row.
type applicationItem struct {
	app        applicant.Application
	width      int
	dateFormat string
	loc        *time.Location
}

func (i applicationItem) FilterValue() string { return i.app.CandidateName }
func (i applicationItem) Title() string {
	return textutil.Row(i.width-4,
		textutil.Column{Text: i.app.CandidateName, Width: 0},
		textutil.Column{Text: i.app.JobTitle, Width: 24},
		textutil.Column{Text: i.app.Timestamp.In(i.loc).Format(i.dateFormat), Width: 12},
		textutil.Column{Text: strconv.Itoa(i.app.MatchScore), Width: 5, AlignRight: true},
		textutil.Column{Text: string(i.app.Status), Width: 11},
	)
}
func (i applicationItem) Description() string { return i.app.CandidateEmail }

// ApplicantListView lists the visible applications with the active filter.
type ApplicantListView struct {
	panel      *review.Panel
	list       list.Model
	spinner    spinner.Model
	loading    bool
	dateFormat string
	width      int
}

// Ensure ApplicantListView implements View.
var _ View = (*ApplicantListView)(nil)

// NewApplicantListView creates a list over panel's visible records.
func NewApplicantListView(panel *review.Panel, dateFormat string) *ApplicantListView {
	l := list.New(nil, NewCompactListDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	v := &ApplicantListView{
		panel:      panel,
		list:       l,
		spinner:    s,
		dateFormat: dateFormat,
		width:      defaultListWidth,
	}
	v.Refresh()
	return v
}

// Init implements View.
func (v *ApplicantListView) Init() tea.Cmd {
	return v.spinner.Tick
}

// SetLoading sets the loading state and returns a command to start the spinner.
func (v *ApplicantListView) SetLoading(loading bool) tea.Cmd {
	v.loading = loading
	if loading {
		return v.spinner.Tick
	}
	return nil
}

// Refresh rebuilds the rows from the panel, keeping the cursor on the same
// application when it is still visible.
func (v *ApplicantListView) Refresh() {
	keep, _ := v.SelectedID()
	visible := v.panel.Visible()
	items := make([]list.Item, len(visible))
	sel := 0
	for i, a := range visible {
		items[i] = applicationItem{app: a, width: v.width, dateFormat: v.dateFormat, loc: v.panel.Location()}
		if a.ID == keep {
			sel = i
		}
	}
	v.list.SetItems(items)
	if len(items) > 0 {
		v.list.Select(sel)
	}
}

// SelectedID returns the id of the application under the cursor.
func (v *ApplicantListView) SelectedID() (string, bool) {
	item, ok := v.list.SelectedItem().(applicationItem)
	if !ok {
		return "", false
	}
	return item.app.ID, true
}

// Selected returns the cursor index.
func (v *ApplicantListView) Selected() int {
	return v.list.Index()
}

// Len returns the number of visible rows.
func (v *ApplicantListView) Len() int {
	return len(v.list.Items())
}

// Update implements View.
func (v *ApplicantListView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.list.SetSize(msg.Width, msg.Height-6) // header, filter line, hints
		v.Refresh()
		return v, nil
	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if id, ok := v.SelectedID(); ok {
				return v, func() tea.Msg { return OpenRecordMsg{ID: id} }
			}
			return v, nil
		}
	}

	// list.Model handles j/k/g/G and paging natively.
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View implements View.
func (v *ApplicantListView) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Applications (%d of %d)", len(v.list.Items()), len(v.panel.Records()))
	if v.loading {
		title += " " + v.spinner.View()
	}
	b.WriteString(Styles.Title.Render(title) + "\n")
	b.WriteString(v.filterLine() + "\n")
	b.WriteString(Styles.Muted.Render("  "+textutil.Row(v.width-4,
		textutil.Column{Text: "Candidate", Width: 0},
		textutil.Column{Text: "Job", Width: 24},
		textutil.Column{Text: "Applied", Width: 12},
		textutil.Column{Text: "Match", Width: 5, AlignRight: true},
		textutil.Column{Text: "Status", Width: 11},
	)) + "\n")
	if len(v.list.Items()) == 0 {
		b.WriteString("\n" + Styles.Empty.Render("  No applications match"))
		return b.String()
	}
	b.WriteString(v.list.View())
	return b.String()
}

func (v *ApplicantListView) filterLine() string {
	f := v.panel.Filter()
	var parts []string
	if f.ShortlistedOnly {
		parts = append(parts, "Shortlisted only")
	} else {
		parts = append(parts, "Status: "+string(f.Status))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", q))
	}
	return Styles.Hint.Render(strings.Join(parts, "  ·  "))
}
