package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"hirepanel/internal/applicant"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorDanger    = "196" // Red - for errors, Rejected
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "238" // Darker gray - for disabled controls
	ColorWarning   = "208" // Orange - for pending changes
	ColorInfo      = "39"  // Blue - for Reviewed
	ColorSuccess   = "42"  // Green - for Shortlisted
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title        lipgloss.Style // Bold accent color - for main titles
	TitleWarning lipgloss.Style // Bold danger color - for warning titles

	Box        lipgloss.Style // Standard box with rounded border (highlight border)
	BoxDanger  lipgloss.Style // Warning/error box (danger border)
	BoxCompact lipgloss.Style // Compact box with less padding

	Selected lipgloss.Style // Highlighted/selected items (bold highlight color)
	Muted    lipgloss.Style // Dimmed text (muted color)
	Normal   lipgloss.Style // Normal text (text color)
	Disabled lipgloss.Style // Controls that cannot be used yet
	Hint     lipgloss.Style // Help/hint text (muted color)
	Section  lipgloss.Style // Section headers (highlight color)
	Empty    lipgloss.Style // Empty state text (muted, italic)
	Label    lipgloss.Style // Field labels in the detail view
	Pending  lipgloss.Style // Optimistic values awaiting the store
	Details  lipgloss.Style // Warning details (warning color)

	BannerInfo  lipgloss.Style
	BannerError lipgloss.Style

	DayPicked lipgloss.Style // Picked calendar day
	DayCursor lipgloss.Style // Calendar cursor
	DayToday  lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	BoxCompact: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Disabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)).
		Strikethrough(true),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Section: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Width(14),
	Pending: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)).
		Italic(true),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	BannerInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	BannerError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Bold(true),
	DayPicked: lipgloss.NewStyle().
		Background(lipgloss.Color(ColorHighlight)).
		Foreground(lipgloss.Color("0")).
		Bold(true),
	DayCursor: lipgloss.NewStyle().
		Underline(true).
		Bold(true),
	DayToday: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
}

// StatusStyle returns the badge style for s.
func StatusStyle(s applicant.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case applicant.StatusNew:
		return base.Foreground(lipgloss.Color(ColorText))
	case applicant.StatusReviewed:
		return base.Foreground(lipgloss.Color(ColorInfo))
	case applicant.StatusShortlisted:
		return base.Foreground(lipgloss.Color(ColorSuccess))
	case applicant.StatusInterview:
		return base.Foreground(lipgloss.Color(ColorHighlight))
	case applicant.StatusRejected:
		return base.Foreground(lipgloss.Color(ColorDanger))
	default:
		return base.Foreground(lipgloss.Color(ColorMuted))
	}
}

// NewCompactListDelegate returns a delegate with zero spacing and shared styles.
func NewCompactListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.ShowDescription = false
	d.Styles.SelectedTitle = Styles.Selected.
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle
	d.Styles.NormalTitle = Styles.Normal.Padding(0, 0, 0, 2)
	d.Styles.NormalDesc = Styles.Muted.Padding(0, 0, 0, 2)
	return d
}
