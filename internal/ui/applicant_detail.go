package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hirepanel/internal/applicant"
	"hirepanel/internal/review"
)

// Placeholders shown for optional fields that are not set yet.
const (
	notScheduled = "Not scheduled"
	linkPending  = "Link pending"
	noResume     = "No resume uploaded (d saves a placeholder)"
)

// interviewFormat renders interview times in the detail view.
const interviewFormat = "Mon Jan 2, 2006 15:04 MST"

// statusKeys maps the status action keys shown in the detail view.
var statusKeys = []struct {
	Key    string
	Status applicant.Status
}{
	{"n", applicant.StatusNew},
	{"v", applicant.StatusReviewed},
	{"s", applicant.StatusShortlisted},
	{"i", applicant.StatusInterview},
	{"x", applicant.StatusRejected},
}

// ApplicantDetailView shows the open application and its status actions.
type ApplicantDetailView struct {
	panel      *review.Panel
	dateFormat string
	width      int
}

// Ensure ApplicantDetailView implements View.
var _ View = (*ApplicantDetailView)(nil)

// NewApplicantDetailView creates a detail view over panel's selection.
func NewApplicantDetailView(panel *review.Panel, dateFormat string) *ApplicantDetailView {
	return &ApplicantDetailView{panel: panel, dateFormat: dateFormat}
}

// Init implements View.
func (d *ApplicantDetailView) Init() tea.Cmd {
	return nil
}

// Update implements View. Status keys are bound in the keybind registry;
// the view itself only tracks size.
func (d *ApplicantDetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = msg.Width
	}
	return d, nil
}

// View implements View.
func (d *ApplicantDetailView) View() string {
	rec, ok := d.panel.Selected()
	if !ok {
		return Styles.Empty.Render("No application selected")
	}
	pending := d.pending()

	var b strings.Builder
	b.WriteString(Styles.Title.Render(rec.CandidateName) + "\n")
	b.WriteString(Styles.Muted.Render(rec.CandidateEmail) + "\n\n")

	field := func(label, value string) {
		b.WriteString(Styles.Label.Render(label) + value + "\n")
	}
	field("Job", rec.JobTitle)
	field("Applied", rec.Timestamp.In(d.panel.Location()).Format(d.dateFormat))
	field("Match score", fmt.Sprintf("%d%%", rec.MatchScore))

	status := StatusStyle(rec.Status).Render(string(rec.Status))
	if pending {
		status += " " + Styles.Pending.Render("(saving…)")
	}
	field("Status", status)

	interview, link := InterviewFields(rec, d.panel.Location())
	field("Interview", interview)
	field("Meeting", link)

	resume := noResume
	if rec.ResumeFile != nil && rec.ResumeFile.Name != "" {
		resume = rec.ResumeFile.Name
	}
	field("Resume", resume)

	b.WriteString("\n" + Styles.Section.Render("Move to") + "\n")
	b.WriteString(d.statusActions(rec.Status))
	return b.String()
}

// pending reports whether the open record shows a change the store has not
// confirmed yet.
func (d *ApplicantDetailView) pending() bool {
	o, ok := d.panel.Selection().(review.Optimistic)
	return ok && !o.Acknowledged
}

func (d *ApplicantDetailView) statusActions(current applicant.Status) string {
	actions := make([]string, 0, len(statusKeys))
	for _, sk := range statusKeys {
		label := fmt.Sprintf("[%s] %s", sk.Key, sk.Status)
		style := Styles.Muted
		if sk.Status == current {
			style = StatusStyle(sk.Status).Underline(true)
		}
		actions = append(actions, style.Render(label))
	}
	return strings.Join(actions, "  ")
}

// InterviewFields renders the interview time and meeting link of a, with
// placeholders when either is missing.
func InterviewFields(a applicant.Application, loc *time.Location) (when, link string) {
	if a.InterviewDate == nil {
		return notScheduled, "-"
	}
	when = a.InterviewDate.In(loc).Format(interviewFormat)
	link = a.MeetingLink
	if link == "" {
		link = linkPending
	}
	return when, link
}
