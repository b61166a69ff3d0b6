package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hirepanel/internal/review"
	"hirepanel/internal/schedule"
)

// Scheduler focus targets.
const (
	focusCalendar = "calendar"
	focusHour     = "hour"
	focusMinute   = "minute"
)

// SchedulerModal picks an interview date and time for the open record.
// All picks are written straight into the panel's Picking phase; the modal
// only owns the calendar cursor and which control has focus.
type SchedulerModal struct {
	panel  *review.Panel
	focus  *FocusManager
	cursor schedule.Date
	today  schedule.Date
	name   string
}

// Ensure SchedulerModal implements View.
var _ View = (*SchedulerModal)(nil)

// NewSchedulerModal opens on the picked date, today, or the first day of
// the picker's month, whichever applies first.
func NewSchedulerModal(panel *review.Panel, now time.Time) *SchedulerModal {
	m := &SchedulerModal{
		panel: panel,
		focus: NewFocusManager(focusCalendar, focusHour, focusMinute),
		today: schedule.DateOf(now.In(panel.Location())),
	}
	if rec, ok := panel.Selected(); ok {
		m.name = rec.CandidateName
	}
	pk, _ := panel.Pick()
	switch d, ok := pk.Date(); {
	case ok:
		m.cursor = d
	case pk.Cursor.Contains(m.today):
		m.cursor = m.today
	default:
		m.cursor = schedule.Date{Year: pk.Cursor.Year, Month: pk.Cursor.Month, Day: 1}
	}
	return m
}

// Init implements View.
func (m *SchedulerModal) Init() tea.Cmd {
	return nil
}

// Cursor returns the highlighted calendar day.
func (m *SchedulerModal) Cursor() schedule.Date { return m.cursor }

// Focus returns the focused control.
func (m *SchedulerModal) Focus() string { return m.focus.Current }

func (m *SchedulerModal) committed() bool {
	_, ok := m.panel.Phase().(schedule.Committed)
	return ok
}

// Update implements View.
func (m *SchedulerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.committed() {
		return m, nil
	}
	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return CancelSchedulingMsg{} }
	case "enter":
		if m.panel.CanConfirm() {
			return m, func() tea.Msg { return ConfirmInterviewMsg{} }
		}
		return m, nil
	case "tab":
		m.focus.Next()
	case "shift+tab":
		m.focus.Prev()
	case "h", "left":
		m.moveDays(-1)
	case "l", "right":
		m.moveDays(1)
	case "k":
		m.moveDays(-7)
	case "j":
		m.moveDays(7)
	case "[":
		m.moveMonths(-1)
	case "]":
		m.moveMonths(1)
	case "up":
		m.adjust(1)
	case "down":
		m.adjust(-1)
	case "pgup":
		m.adjust(10)
	case "pgdown":
		m.adjust(-10)
	case " ", "space":
		m.pickFocused()
	}
	return m, nil
}

// moveDays moves the calendar cursor, rolling across month boundaries.
func (m *SchedulerModal) moveDays(n int) {
	if m.focus.Is(focusCalendar) {
		m.setCursor(m.cursor.AddDays(n))
		return
	}
	// up/down style keys on the time pickers
	if n == 7 || n == -7 {
		m.adjust(-n / 7)
	}
}

func (m *SchedulerModal) moveMonths(n int) {
	month := schedule.Month{Year: m.cursor.Year, Month: m.cursor.Month}.Add(n)
	day := m.cursor.Day
	if days := month.Days(); day > days {
		day = days
	}
	m.setCursor(schedule.Date{Year: month.Year, Month: month.Month, Day: day})
}

func (m *SchedulerModal) setCursor(d schedule.Date) {
	m.cursor = d
	m.panel.SetCursor(schedule.Month{Year: d.Year, Month: d.Month})
}

// adjust steps the focused time picker by delta, wrapping around.
func (m *SchedulerModal) adjust(delta int) {
	pk, ok := m.panel.Pick()
	if !ok {
		return
	}
	c := pk.Display()
	switch m.focus.Current {
	case focusHour:
		m.panel.PickHour(c.Hour + delta)
	case focusMinute:
		m.panel.PickMinute(c.Minute + delta)
	}
}

// pickFocused picks the day under the cursor, or accepts the displayed
// hour or minute as picked.
func (m *SchedulerModal) pickFocused() {
	pk, ok := m.panel.Pick()
	if !ok {
		return
	}
	c := pk.Display()
	switch m.focus.Current {
	case focusCalendar:
		m.panel.PickDate(m.cursor)
	case focusHour:
		m.panel.PickHour(c.Hour)
	case focusMinute:
		m.panel.PickMinute(c.Minute)
	}
}

// View implements View.
func (m *SchedulerModal) View() string {
	var b strings.Builder
	title := "Schedule interview"
	if m.name != "" {
		title += " · " + m.name
	}
	b.WriteString(Styles.Title.Render(title) + "\n\n")

	var pk schedule.Pick
	switch ph := m.panel.Phase().(type) {
	case schedule.Picking:
		pk = ph.Pick
	case schedule.Committed:
		pk = ph.Pick
	}
	b.WriteString(m.renderCalendar(pk) + "\n")
	b.WriteString(m.renderTime(pk) + "\n\n")
	b.WriteString(m.renderSummary(pk) + "\n\n")

	if m.committed() {
		b.WriteString(Styles.Pending.Render("Saving interview…"))
		return Styles.Box.Render(b.String())
	}
	confirm := "Enter: confirm"
	if m.panel.CanConfirm() {
		confirm = Styles.Selected.Render(confirm)
	} else {
		confirm = Styles.Disabled.Render(confirm)
	}
	b.WriteString(confirm + "  " + Styles.Hint.Render("Space: pick  Tab: focus  h/l j/k [ ]: move  ↑/↓: time  Esc: cancel"))
	return Styles.Box.Render(b.String())
}

func (m *SchedulerModal) renderCalendar(pk schedule.Pick) string {
	month := schedule.Month{Year: m.cursor.Year, Month: m.cursor.Month}
	picked, hasPicked := pk.Date()

	var b strings.Builder
	header := month.String()
	if m.focus.Is(focusCalendar) {
		header = Styles.Selected.Render("▸ " + header)
	} else {
		header = Styles.Section.Render("  " + header)
	}
	b.WriteString(header + "\n")
	b.WriteString(Styles.Muted.Render(" Su Mo Tu We Th Fr Sa") + "\n")
	for _, week := range month.Grid() {
		for _, day := range week {
			if day == 0 {
				b.WriteString("   ")
				continue
			}
			d := schedule.Date{Year: month.Year, Month: month.Month, Day: day}
			cell := fmt.Sprintf("%2d", day)
			switch {
			case hasPicked && d == picked:
				cell = Styles.DayPicked.Render(cell)
			case d == m.cursor && m.focus.Is(focusCalendar):
				cell = Styles.DayCursor.Render(cell)
			case d == m.today:
				cell = Styles.DayToday.Render(cell)
			}
			b.WriteString(" " + cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *SchedulerModal) renderTime(pk schedule.Pick) string {
	c := pk.Display()
	_, picked := pk.Clock()
	hour := fmt.Sprintf("%02d", c.Hour)
	minute := fmt.Sprintf("%02d", c.Minute)
	style := func(id, s string) string {
		switch {
		case m.focus.Is(id):
			return Styles.Selected.Render("[" + s + "]")
		case picked:
			return Styles.Normal.Render(" " + s + " ")
		default:
			return Styles.Muted.Render(" " + s + " ")
		}
	}
	return Styles.Label.Render("Time") + style(focusHour, hour) + ":" + style(focusMinute, minute)
}

func (m *SchedulerModal) renderSummary(pk schedule.Pick) string {
	d, hasDate := pk.Date()
	c, hasClock := pk.Clock()
	date, clock := Styles.Empty.Render("pick a date"), Styles.Empty.Render("pick a time")
	if hasDate {
		date = d.String()
	}
	if hasClock {
		clock = c.String()
	}
	return Styles.Label.Render("Selected") + date + "  " + clock
}
