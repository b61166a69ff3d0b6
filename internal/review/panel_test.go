package review

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirepanel/internal/applicant"
	"hirepanel/internal/schedule"
)

var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newTestPanel(records ...applicant.Application) *Panel {
	p := NewPanel(WithLocation(time.UTC), WithClock(func() time.Time { return fixedNow }))
	p.SetRecords(records)
	return p
}

func dana() applicant.Application {
	return applicant.Application{ID: "1", CandidateName: "Dana", JobTitle: "Engineer", Status: applicant.StatusNew}
}

func TestPanel_ShortlistThenScheduleInterview(t *testing.T) {
	p := newTestPanel(dana())
	require.True(t, p.Open("1"))

	req, ok := p.SetStatus(applicant.StatusShortlisted)
	require.True(t, ok)
	assert.Equal(t, Request{ID: "1", Status: applicant.StatusShortlisted}, req)
	assert.IsType(t, schedule.Idle{}, p.Phase(), "no scheduler for non-interview status")

	_, ok = p.SetStatus(applicant.StatusInterview)
	assert.False(t, ok, "interview does not commit on intent")
	assert.IsType(t, schedule.Picking{}, p.Phase())

	require.True(t, p.PickDate(schedule.Date{Year: 2025, Month: time.March, Day: 10}))
	require.True(t, p.PickHour(14))
	require.True(t, p.PickMinute(30))

	req, ok = p.Confirm()
	require.True(t, ok)
	want := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "1", req.ID)
	assert.Equal(t, applicant.StatusInterview, req.Status)
	require.NotNil(t, req.InterviewAt)
	assert.True(t, want.Equal(*req.InterviewAt))
	assert.IsType(t, schedule.Committed{}, p.Phase())

	p.Resolve(req, nil)
	assert.IsType(t, schedule.Idle{}, p.Phase(), "success closes the scheduler")
}

func TestPanel_ConfirmDisabledUntilDateAndTime(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	p.SetStatus(applicant.StatusInterview)

	assert.False(t, p.CanConfirm())
	_, ok := p.Confirm()
	assert.False(t, ok)

	p.PickDate(schedule.Date{Year: 2025, Month: time.March, Day: 10})
	assert.False(t, p.CanConfirm(), "time not picked yet")
	_, ok = p.Confirm()
	assert.False(t, ok)
	assert.IsType(t, schedule.Picking{}, p.Phase())

	p.PickHour(9)
	assert.True(t, p.CanConfirm())
}

func TestPanel_CancelSchedulingLeavesRecordUntouched(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	p.SetStatus(applicant.StatusInterview)
	p.PickDate(schedule.Date{Year: 2025, Month: time.March, Day: 10})
	p.PickHour(9)

	p.CancelScheduling()
	assert.IsType(t, schedule.Idle{}, p.Phase())
	rec, _ := p.Selected()
	assert.Equal(t, applicant.StatusNew, rec.Status)
	assert.IsType(t, Authoritative{}, p.Selection())
}

func TestPanel_ChangingSelectionClearsScheduling(t *testing.T) {
	other := applicant.Application{ID: "2", CandidateName: "Fox", Status: applicant.StatusReviewed}
	p := newTestPanel(dana(), other)
	p.Open("1")
	p.SetStatus(applicant.StatusInterview)
	require.IsType(t, schedule.Picking{}, p.Phase())

	p.Open("2")
	assert.IsType(t, schedule.Idle{}, p.Phase())

	p.SetStatus(applicant.StatusInterview)
	p.Close()
	assert.IsType(t, schedule.Idle{}, p.Phase())
	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestPanel_NonInterviewClosesOpenScheduler(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	p.SetStatus(applicant.StatusInterview)

	req, ok := p.SetStatus(applicant.StatusRejected)
	require.True(t, ok)
	assert.Nil(t, req.InterviewAt)
	assert.IsType(t, schedule.Idle{}, p.Phase())
}

func TestPanel_OptimisticMirrorThenAuthoritative(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")

	p.SetStatus(applicant.StatusReviewed)
	rec, _ := p.Selected()
	assert.Equal(t, applicant.StatusReviewed, rec.Status, "mirrored before the store answers")
	assert.IsType(t, Optimistic{}, p.Selection())
	assert.Equal(t, applicant.StatusNew, p.Records()[0].Status, "list is not mutated")

	// An unrelated refresh arriving before the update keeps the mirror.
	p.SetRecords([]applicant.Application{dana()})
	assert.IsType(t, Optimistic{}, p.Selection())

	updated := dana()
	updated.Status = applicant.StatusReviewed
	p.SetRecords([]applicant.Application{updated})
	assert.Equal(t, Authoritative{Application: updated}, p.Selection())
}

func TestPanel_AcknowledgedMirrorYieldsToNextList(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	req, _ := p.SetStatus(applicant.StatusReviewed)
	p.Resolve(req, nil)

	// Store acknowledged but the list still says New: the list wins.
	p.SetRecords([]applicant.Application{dana()})
	assert.Equal(t, Authoritative{Application: dana()}, p.Selection())
}

func TestPanel_FailureRollsBackMirror(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	req, _ := p.SetStatus(applicant.StatusRejected)

	rolledBack := p.Resolve(req, errors.New("network down"))
	assert.True(t, rolledBack)
	assert.Equal(t, Authoritative{Application: dana()}, p.Selection())
}

func TestPanel_FailureKeepsAcknowledgedChange(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	first, _ := p.SetStatus(applicant.StatusReviewed)
	p.Resolve(first, nil)

	second, ok := p.SetStatus(applicant.StatusRejected)
	require.True(t, ok)
	o, ok := p.Selection().(Optimistic)
	require.True(t, ok)
	assert.Equal(t, applicant.StatusReviewed, o.Base.Status)

	assert.True(t, p.Resolve(second, errors.New("network down")))
	rec, _ := p.Selected()
	assert.Equal(t, applicant.StatusReviewed, rec.Status, "rolls back to the acknowledged status")
}

func TestPanel_FailureBeforeAckRollsBackToBase(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	p.SetStatus(applicant.StatusReviewed)
	second, _ := p.SetStatus(applicant.StatusRejected)

	p.Resolve(second, errors.New("network down"))
	rec, _ := p.Selected()
	assert.Equal(t, applicant.StatusNew, rec.Status)
}

func TestPanel_FailedInterviewCommitReturnsToPicking(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	p.SetStatus(applicant.StatusInterview)
	p.PickDate(schedule.Date{Year: 2025, Month: time.March, Day: 10})
	p.PickHour(14)
	p.PickMinute(30)
	req, ok := p.Confirm()
	require.True(t, ok)

	require.True(t, p.Resolve(req, errors.New("timeout")))
	pk, ok := p.Pick()
	require.True(t, ok, "picker reopens")
	at, ok := pk.At(time.UTC)
	require.True(t, ok)
	assert.True(t, at.Equal(*req.InterviewAt), "picks kept for retry")

	rec, _ := p.Selected()
	assert.Equal(t, applicant.StatusNew, rec.Status)
}

func TestPanel_RescheduleRoundTrip(t *testing.T) {
	x := time.Date(2025, 4, 2, 23, 15, 0, 0, time.UTC)
	rec := dana()
	rec.Status = applicant.StatusInterview
	rec.InterviewDate = &x
	rec.MeetingLink = "https://meet.jit.si/hirepanel-abc"

	for _, loc := range []*time.Location{time.UTC, time.FixedZone("UTC+13", 13*3600), time.FixedZone("UTC-9", -9*3600)} {
		p := NewPanel(WithLocation(loc), WithClock(func() time.Time { return fixedNow }))
		p.SetRecords([]applicant.Application{rec})
		p.Open("1")
		require.True(t, p.Reschedule())
		require.True(t, p.CanConfirm(), "reschedule pre-populates both fields")

		req, ok := p.Confirm()
		require.True(t, ok)
		assert.True(t, x.Equal(*req.InterviewAt), "loc=%s", loc)
	}
}

func TestPanel_RescheduleWithoutDateOpensBlankPicker(t *testing.T) {
	rec := dana()
	rec.Status = applicant.StatusInterview
	p := newTestPanel(rec)
	p.Open("1")

	require.True(t, p.Reschedule())
	pk, ok := p.Pick()
	require.True(t, ok)
	assert.False(t, pk.Complete())
	assert.Equal(t, schedule.Month{Year: 2025, Month: time.March}, pk.Cursor)
}

func TestPanel_SelectionClearedWhenRecordDisappears(t *testing.T) {
	p := newTestPanel(dana())
	p.Open("1")
	p.SetStatus(applicant.StatusInterview)

	p.SetRecords(nil)
	_, ok := p.Selected()
	assert.False(t, ok)
	assert.IsType(t, schedule.Idle{}, p.Phase())
}

func TestPanel_VisibleAppliesFilter(t *testing.T) {
	records := []applicant.Application{
		dana(),
		{ID: "2", CandidateName: "Fox", JobTitle: "Analyst", Status: applicant.StatusShortlisted},
	}
	p := newTestPanel(records...)
	assert.Len(t, p.Visible(), 2)

	p.SetShortlistedOnly(true)
	require.Len(t, p.Visible(), 1)
	assert.Equal(t, "2", p.Visible()[0].ID)

	p.SetShortlistedOnly(false)
	p.SetQuery("DAN")
	require.Len(t, p.Visible(), 1)
	assert.Equal(t, "1", p.Visible()[0].ID)

	p.SetQuery("")
	assert.Equal(t, applicant.StatusNew, p.CycleStatusFilter())
	require.Len(t, p.Visible(), 1)
}

func TestPanel_OpenUnknownRecord(t *testing.T) {
	p := newTestPanel(dana())
	assert.False(t, p.Open("missing"))
	_, ok := p.SetStatus(applicant.StatusReviewed)
	assert.False(t, ok, "no request without a selection")
}
