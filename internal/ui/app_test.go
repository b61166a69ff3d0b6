package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirepanel/internal/activity"
	"hirepanel/internal/applicant"
	"hirepanel/internal/download"
	"hirepanel/internal/review"
	"hirepanel/internal/schedule"
	"hirepanel/internal/store"
)

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func testRecords() []applicant.Application {
	interview := time.Date(2025, time.March, 12, 14, 0, 0, 0, time.UTC)
	return []applicant.Application{
		{
			ID: "a1", CandidateName: "Alice Chen", CandidateEmail: "alice@example.com",
			JobID: "j1", JobTitle: "Backend Engineer", MatchScore: 91,
			Status: applicant.StatusShortlisted, Timestamp: time.Date(2025, time.March, 8, 12, 0, 0, 0, time.UTC),
		},
		{
			ID: "a2", CandidateName: "Bob Diaz", CandidateEmail: "bob@example.com",
			JobID: "j2", JobTitle: "Product Designer", MatchScore: 74,
			Status: applicant.StatusNew, Timestamp: time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC),
		},
		{
			ID: "a3", CandidateName: "Chi Okafor", CandidateEmail: "chi@example.com",
			JobID: "j1", JobTitle: "Backend Engineer", MatchScore: 88,
			Status: applicant.StatusInterview, Timestamp: time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC),
			InterviewDate: &interview, MeetingLink: "https://meet.example.com/hirepanel-existing",
		},
	}
}

type testApp struct {
	*appModelAdapter
	mem       *store.Memory
	downloads string
}

// newTestApp builds an app over an in-memory store holding testRecords and
// delivers the first list load.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	mem := store.NewMemory(store.NewMeetingLinker("https://meet.example.com"))
	require.NoError(t, mem.Insert(context.Background(), testRecords()...))

	dir := filepath.Join(t.TempDir(), "downloads")
	downloads, err := download.NewStore(dir)
	require.NoError(t, err)

	m := NewAppModel(AppContext{
		Store:     mem,
		Downloads: downloads,
		Now:       func() time.Time { return testNow },
		Location:  time.UTC,
	})
	a := &testApp{appModelAdapter: &appModelAdapter{AppModel: m}, mem: mem, downloads: dir}

	msg := loadRecordsCmd(mem, time.Second)()
	a.send(t, msg)
	return a
}

// send delivers msg and returns the resulting command.
func (a *testApp) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	model, cmd := a.Update(msg)
	require.Same(t, a.appModelAdapter, model)
	return cmd
}

// press delivers a sequence of key presses and returns the last command.
func (a *testApp) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = a.send(t, keyMsg(k))
	}
	return cmd
}

// run executes cmd and feeds its message back, returning the next command.
func (a *testApp) run(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	return a.send(t, cmd())
}

func (a *testApp) open(t *testing.T, id string) {
	t.Helper()
	a.send(t, OpenRecordMsg{ID: id})
	require.Equal(t, ModeDetail, a.Mode)
}

func lastEvent(t *testing.T, log *activity.Log) activity.Event {
	t.Helper()
	events := log.Events()
	require.NotEmpty(t, events)
	return events[len(events)-1]
}

func TestApp_LoadsRecordsNewestFirst(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, 3, a.List.Len())
	id, ok := a.List.SelectedID()
	require.True(t, ok)
	assert.Equal(t, "a1", id)
	assert.Contains(t, a.View(), "Applications (3 of 3)")
}

func TestApp_EnterOpensDetailAndEscGoesBack(t *testing.T) {
	a := newTestApp(t)

	cmd := a.press(t, "enter")
	a.run(t, cmd)
	require.Equal(t, ModeDetail, a.Mode)
	assert.Contains(t, a.View(), "Alice Chen")
	assert.Contains(t, a.View(), notScheduled)

	a.run(t, a.press(t, "esc"))
	assert.Equal(t, ModeList, a.Mode)
	assert.Nil(t, a.Panel.Selection())
}

func TestApp_OpenMissingRecord(t *testing.T) {
	a := newTestApp(t)

	a.send(t, OpenRecordMsg{ID: "nope"})
	assert.Equal(t, ModeList, a.Mode)
	assert.True(t, a.StatusIsError)
}

func TestApp_SetStatusIsOptimisticUntilStoreAnswers(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a2")

	cmd := a.send(t, SetStatusMsg{Status: applicant.StatusReviewed})
	require.NotNil(t, cmd)

	sel, ok := a.Panel.Selection().(review.Optimistic)
	require.True(t, ok, "expected optimistic selection, got %T", a.Panel.Selection())
	assert.Equal(t, applicant.StatusReviewed, sel.Record().Status)
	assert.Contains(t, a.View(), "(saving…)")
	assert.Equal(t, activity.StatusPending, lastEvent(t, a.Ctx.Activity).Status)

	msg, ok := cmd().(StatusUpdatedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	a.send(t, msg)

	_, ok = a.Panel.Selection().(review.Authoritative)
	assert.True(t, ok)
	rec, _ := a.Panel.Selected()
	assert.Equal(t, applicant.StatusReviewed, rec.Status)
	assert.NotContains(t, a.View(), "(saving…)")
	assert.Contains(t, a.Status, "Moved Bob Diaz to Reviewed")
	assert.Equal(t, activity.StatusDone, lastEvent(t, a.Ctx.Activity).Status)
}

func TestApp_SetStatusFailureRollsBack(t *testing.T) {
	a := newTestApp(t)
	a.mem.FailNext = errors.New("connection reset")
	a.open(t, "a2")

	cmd := a.send(t, SetStatusMsg{Status: applicant.StatusRejected})
	a.run(t, cmd)

	rec, ok := a.Panel.Selected()
	require.True(t, ok)
	assert.Equal(t, applicant.StatusNew, rec.Status)
	_, ok = a.Panel.Selection().(review.Authoritative)
	assert.True(t, ok)
	assert.True(t, a.StatusIsError)
	assert.Contains(t, a.Status, "connection reset")

	ev := lastEvent(t, a.Ctx.Activity)
	assert.Equal(t, activity.StatusError, ev.Status)
	assert.Equal(t, "a2", ev.Metadata["application"])
}

// pickMarch11At10 drives the open scheduler to 2025-03-11 10:00 and
// returns the confirm command.
func pickMarch11At10(t *testing.T, a *testApp) tea.Cmd {
	t.Helper()
	// Cursor starts on today (Mar 10); move right, pick, focus the hour and step it up.
	a.press(t, "l", " ", "tab", "up")
	require.True(t, a.Panel.CanConfirm())
	cmd := a.press(t, "enter")
	require.NotNil(t, cmd)
	_, ok := cmd().(ConfirmInterviewMsg)
	require.True(t, ok)
	return cmd
}

func TestApp_InterviewSchedulesAndLinksMeeting(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a1")

	assert.Nil(t, a.send(t, SetStatusMsg{Status: applicant.StatusInterview}))
	require.True(t, a.Overlays.Has(overlayScheduler))
	_, picking := a.Panel.Phase().(schedule.Picking)
	require.True(t, picking)
	rec, _ := a.Panel.Selected()
	assert.Equal(t, applicant.StatusShortlisted, rec.Status, "no change before confirm")

	// Enter does nothing until both picks exist.
	assert.Nil(t, a.press(t, "enter"))

	update := a.run(t, pickMarch11At10(t, a))
	require.NotNil(t, update)
	_, committed := a.Panel.Phase().(schedule.Committed)
	require.True(t, committed)
	assert.True(t, a.Overlays.Has(overlayScheduler), "scheduler stays open while saving")

	a.run(t, update)
	_, idle := a.Panel.Phase().(schedule.Idle)
	assert.True(t, idle)
	assert.False(t, a.Overlays.Has(overlayScheduler))

	rec, _ = a.Panel.Selected()
	assert.Equal(t, applicant.StatusInterview, rec.Status)
	require.NotNil(t, rec.InterviewDate)
	assert.True(t, rec.InterviewDate.Equal(time.Date(2025, time.March, 11, 10, 0, 0, 0, time.UTC)))
	assert.True(t, strings.HasPrefix(rec.MeetingLink, "https://meet.example.com/hirepanel-"))
	assert.Contains(t, a.View(), rec.MeetingLink)
}

func TestApp_InterviewCommitFailureReturnsToPicking(t *testing.T) {
	a := newTestApp(t)
	a.mem.FailNext = errors.New("timeout")
	a.open(t, "a1")
	a.send(t, SetStatusMsg{Status: applicant.StatusInterview})

	update := a.run(t, pickMarch11At10(t, a))
	a.run(t, update)

	pk, ok := a.Panel.Pick()
	require.True(t, ok, "scheduler should be back in picking")
	d, ok := pk.Date()
	require.True(t, ok)
	assert.Equal(t, schedule.Date{Year: 2025, Month: time.March, Day: 11}, d)
	c, ok := pk.Clock()
	require.True(t, ok)
	assert.Equal(t, schedule.Clock{Hour: 10, Minute: 0}, c)

	assert.True(t, a.Overlays.Has(overlayScheduler))
	assert.True(t, a.StatusIsError)
	rec, _ := a.Panel.Selected()
	assert.Equal(t, applicant.StatusShortlisted, rec.Status)
	assert.Nil(t, rec.InterviewDate)
}

func TestApp_SchedulerIgnoresKeysWhileSaving(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a1")
	a.send(t, SetStatusMsg{Status: applicant.StatusInterview})
	a.run(t, pickMarch11At10(t, a))

	assert.Nil(t, a.press(t, "esc"))
	_, committed := a.Panel.Phase().(schedule.Committed)
	assert.True(t, committed)
	assert.Contains(t, a.View(), "Saving interview…")
}

func TestApp_CancelScheduling(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a1")
	a.send(t, SetStatusMsg{Status: applicant.StatusInterview})

	a.run(t, a.press(t, "esc"))
	assert.False(t, a.Overlays.Has(overlayScheduler))
	_, idle := a.Panel.Phase().(schedule.Idle)
	assert.True(t, idle)
	_, ok := a.Panel.Selection().(review.Authoritative)
	assert.True(t, ok)
	assert.Equal(t, ModeDetail, a.Mode)
}

func TestApp_ReschedulePrefillsPicker(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a3")

	a.run(t, a.press(t, "R"))
	require.True(t, a.Overlays.Has(overlayScheduler))
	pk, ok := a.Panel.Pick()
	require.True(t, ok)
	d, _ := pk.Date()
	c, _ := pk.Clock()
	assert.Equal(t, schedule.Date{Year: 2025, Month: time.March, Day: 12}, d)
	assert.Equal(t, schedule.Clock{Hour: 14, Minute: 0}, c)

	top, _ := a.Overlays.Peek()
	modal, ok := top.View.(*SchedulerModal)
	require.True(t, ok)
	assert.Equal(t, d, modal.Cursor())
}

func TestApp_LeavingInterviewClearsSchedule(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a3")

	a.run(t, a.send(t, SetStatusMsg{Status: applicant.StatusRejected}))
	rec, _ := a.Panel.Selected()
	assert.Equal(t, applicant.StatusRejected, rec.Status)
	assert.Nil(t, rec.InterviewDate)
	assert.Empty(t, rec.MeetingLink)
}

func TestApp_FilterSearchAndShortlisted(t *testing.T) {
	a := newTestApp(t)

	a.run(t, a.press(t, "f"))
	assert.Equal(t, applicant.StatusNew, a.Panel.Filter().Status)
	assert.Equal(t, 1, a.List.Len())

	a.send(t, SetStatusMsg{Status: applicant.StatusReviewed})
	assert.Nil(t, a.Panel.Selection(), "status keys do nothing on the list")

	a.Panel.SetStatusFilter(applicant.StatusAll)
	a.run(t, a.press(t, "/"))
	require.True(t, a.Overlays.Has(overlaySearch))
	a.run(t, a.press(t, "b", "a", "c", "k", "enter"))
	assert.False(t, a.Overlays.Has(overlaySearch))
	assert.Equal(t, "back", a.Panel.Filter().Query)
	assert.Equal(t, 2, a.List.Len())

	a.send(t, ToggleShortlistedMsg{})
	assert.Equal(t, 1, a.List.Len())
	assert.Contains(t, a.View(), "Shortlisted only")

	a.send(t, SetQueryMsg{Query: "nobody"})
	assert.Equal(t, 0, a.List.Len())
	assert.Contains(t, a.View(), "No applications match")
}

func TestApp_ExportEmptySetWritesNothing(t *testing.T) {
	a := newTestApp(t)
	a.send(t, SetQueryMsg{Query: "nobody"})

	cmd := a.send(t, ExportMsg{Format: FormatCSV})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, a.Overlays.Len())
	assert.Contains(t, a.Status, "nothing to export")
	assert.False(t, a.StatusIsError)

	entries, _ := os.ReadDir(a.downloads)
	assert.Empty(t, entries)
}

func TestApp_ExportCSVAfterConfirm(t *testing.T) {
	a := newTestApp(t)
	a.send(t, CycleStatusFilterMsg{}) // New: only Bob

	a.send(t, ExportMsg{Format: FormatCSV})
	require.True(t, a.Overlays.Has(overlayConfirm))
	assert.Contains(t, a.View(), "1 visible application")

	export := a.run(t, a.press(t, "y"))
	assert.False(t, a.Overlays.Has(overlayConfirm))
	require.NotNil(t, export)

	msg, ok := export().(ExportedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, 1, msg.Count)
	a.send(t, msg)

	data, err := os.ReadFile(msg.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bob Diaz")
	assert.NotContains(t, string(data), "Alice Chen")
	assert.Contains(t, a.Status, "Exported 1 applications")
	assert.Equal(t, msg.Path, lastEvent(t, a.Ctx.Activity).Metadata["path"])
}

func TestApp_ExportCancelled(t *testing.T) {
	a := newTestApp(t)

	a.send(t, ExportMsg{Format: FormatXLSX})
	a.run(t, a.press(t, "esc"))
	assert.Equal(t, 0, a.Overlays.Len())
}

func TestApp_DownloadResumePlaceholder(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a2")

	write := a.run(t, a.press(t, "d"))
	a.run(t, write)
	assert.Contains(t, a.Status, "placeholder")
	assert.False(t, a.StatusIsError)

	entries, err := os.ReadDir(a.downloads)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApp_OpenRecordRemovedByRefresh(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a2")

	rest := testRecords()
	a.send(t, RecordsLoadedMsg{Records: []applicant.Application{rest[0], rest[2]}})
	assert.Equal(t, ModeList, a.Mode)
	assert.Nil(t, a.Panel.Selection())
	assert.True(t, a.StatusIsError)
	assert.Equal(t, 2, a.List.Len())
}

func TestApp_RefreshKeepsOpenRecordInSync(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a2")

	_, err := a.mem.UpdateStatus(context.Background(), "a2", applicant.StatusShortlisted, nil)
	require.NoError(t, err)
	cmd := a.press(t, " ", "r")
	require.NotNil(t, cmd)
	_, ok := cmd().(RefreshMsg)
	require.True(t, ok)
	a.send(t, loadRecordsCmd(a.mem, time.Second)())

	rec, _ := a.Panel.Selected()
	assert.Equal(t, applicant.StatusShortlisted, rec.Status)
}

func TestApp_LoadErrorShowsBanner(t *testing.T) {
	a := newTestApp(t)

	a.send(t, RecordsLoadedMsg{Err: errors.New("db down")})
	assert.True(t, a.StatusIsError)
	assert.Contains(t, a.Status, "db down")
	assert.Equal(t, 3, a.List.Len(), "last good list is kept")
}

func TestApp_ActivityWindow(t *testing.T) {
	a := newTestApp(t)
	a.open(t, "a2")
	a.run(t, a.send(t, SetStatusMsg{Status: applicant.StatusReviewed}))

	a.run(t, a.press(t, " ", "l"))
	require.True(t, a.Overlays.Has(overlayActivity))
	view := a.View()
	assert.Contains(t, view, "Moving Bob Diaz to Reviewed")
	assert.Contains(t, view, "Moved Bob Diaz to Reviewed")

	a.run(t, a.press(t, "esc"))
	assert.Equal(t, 0, a.Overlays.Len())
}

func TestApp_CtrlCQuitsFromOverlay(t *testing.T) {
	a := newTestApp(t)
	a.run(t, a.press(t, "/"))
	require.Equal(t, 1, a.Overlays.Len())

	cmd := a.press(t, "ctrl+c")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_LeaderHelpShown(t *testing.T) {
	a := newTestApp(t)

	a.press(t, " ")
	view := a.View()
	assert.Contains(t, view, "Export")
	assert.Contains(t, view, "Activity log")
}
