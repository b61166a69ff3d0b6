// Package review holds the applicant review panel state machine: the record
// list and its filter, the open record, and the interview scheduling phase.
//
// The panel never calls the store. Status changes come out as Requests; the
// caller delivers them and reports the outcome back through Resolve. Fresh
// record lists arrive through SetRecords.
package review

import (
	"time"

	"hirepanel/internal/applicant"
	"hirepanel/internal/schedule"
)

// Panel is the state of one applicant review panel instance.
// It is not safe for concurrent use.
type Panel struct {
	records   []applicant.Application
	filter    applicant.Filter
	selection Selection // nil when no record is open
	phase     schedule.Phase
	loc       *time.Location
	now       func() time.Time
}

// Option configures a Panel.
type Option func(*Panel)

// WithLocation sets the location interview times are built in.
func WithLocation(loc *time.Location) Option {
	return func(p *Panel) { p.loc = loc }
}

// WithClock sets the clock used to place a fresh calendar cursor.
func WithClock(now func() time.Time) Option {
	return func(p *Panel) { p.now = now }
}

// WithShortlistedOnly starts the panel in shortlisted-only mode.
func WithShortlistedOnly(on bool) Option {
	return func(p *Panel) { p.filter.ShortlistedOnly = on }
}

// NewPanel returns an empty panel.
func NewPanel(opts ...Option) *Panel {
	p := &Panel{
		filter: applicant.Filter{Status: applicant.StatusAll},
		phase:  schedule.Idle{},
		loc:    time.Local,
		now:    time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Location returns the location interview times are built in.
func (p *Panel) Location() *time.Location { return p.loc }

// SetRecords replaces the record list with the store's latest copy and
// re-synchronizes the open record against it. If the open record is gone the
// selection and any scheduling state are cleared.
func (p *Panel) SetRecords(records []applicant.Application) {
	p.records = append(p.records[:0:0], records...)
	if p.selection == nil {
		return
	}
	i := applicant.Index(p.records, p.selection.Record().ID)
	if i < 0 {
		p.Close()
		return
	}
	p.selection = reconcile(p.selection, p.records[i])
}

// Records returns the full record list.
func (p *Panel) Records() []applicant.Application { return p.records }

// Visible returns the records passing the current filter, in list order.
func (p *Panel) Visible() []applicant.Application {
	return p.filter.Apply(p.records)
}

// Filter returns the current filter.
func (p *Panel) Filter() applicant.Filter { return p.filter }

// SetQuery sets the free-text search.
func (p *Panel) SetQuery(q string) { p.filter.Query = q }

// SetStatusFilter sets the status dropdown value.
func (p *Panel) SetStatusFilter(s applicant.Status) { p.filter.Status = s }

// CycleStatusFilter advances the status dropdown and returns the new value.
func (p *Panel) CycleStatusFilter() applicant.Status {
	p.filter.Status = applicant.NextStatusFilter(p.filter.Status)
	return p.filter.Status
}

// SetShortlistedOnly toggles shortlisted-only mode.
func (p *Panel) SetShortlistedOnly(on bool) { p.filter.ShortlistedOnly = on }

// Open selects the record with id. Opening a different record clears any
// scheduling state. It returns false if no such record exists.
func (p *Panel) Open(id string) bool {
	i := applicant.Index(p.records, id)
	if i < 0 {
		return false
	}
	if p.selection == nil || p.selection.Record().ID != id {
		p.phase = schedule.Idle{}
		p.selection = Authoritative{Application: p.records[i]}
	}
	return true
}

// Close deselects the open record and clears scheduling state.
func (p *Panel) Close() {
	p.selection = nil
	p.phase = schedule.Idle{}
}

// Selection returns the open record's selection variant, or nil.
func (p *Panel) Selection() Selection { return p.selection }

// Selected returns the open record as the detail view should show it.
func (p *Panel) Selected() (applicant.Application, bool) {
	if p.selection == nil {
		return applicant.Application{}, false
	}
	return p.selection.Record(), true
}

// Phase returns the scheduling phase.
func (p *Panel) Phase() schedule.Phase { return p.phase }

// SetStatus moves the open record to status. Any status other than
// Interview yields exactly one Request and closes the scheduler. Interview
// opens the scheduler and yields nothing until Confirm.
func (p *Panel) SetStatus(status applicant.Status) (Request, bool) {
	if p.selection == nil || !status.Valid() {
		return Request{}, false
	}
	rec := p.selection.Record()
	if status == applicant.StatusInterview {
		p.phase = schedule.Picking{RecordID: rec.ID, Pick: schedule.NewPick(p.now().In(p.loc))}
		return Request{}, false
	}
	p.phase = schedule.Idle{}
	req := Request{ID: rec.ID, Status: status}
	p.mirror(req)
	return req, true
}

// Reschedule opens the scheduler pre-populated from the open record's
// interview time. Without one it opens a blank picker.
func (p *Panel) Reschedule() bool {
	if p.selection == nil {
		return false
	}
	rec := p.selection.Record()
	pick := schedule.NewPick(p.now().In(p.loc))
	if rec.InterviewDate != nil {
		pick = schedule.PickFrom(*rec.InterviewDate, p.loc)
	}
	p.phase = schedule.Picking{RecordID: rec.ID, Pick: pick}
	return true
}

// Pick returns the pending picks while the scheduler is open.
func (p *Panel) Pick() (schedule.Pick, bool) {
	pk, ok := p.phase.(schedule.Picking)
	if !ok {
		return schedule.Pick{}, false
	}
	return pk.Pick, true
}

func (p *Panel) updatePick(f func(schedule.Pick) schedule.Pick) bool {
	pk, ok := p.phase.(schedule.Picking)
	if !ok {
		return false
	}
	pk.Pick = f(pk.Pick)
	p.phase = pk
	return true
}

// PickDate sets the pending date.
func (p *Panel) PickDate(d schedule.Date) bool {
	return p.updatePick(func(pk schedule.Pick) schedule.Pick { return pk.WithDate(d) })
}

// PickHour sets the pending hour, keeping the minute.
func (p *Panel) PickHour(h int) bool {
	return p.updatePick(func(pk schedule.Pick) schedule.Pick { return pk.WithHour(h) })
}

// PickMinute sets the pending minute, keeping the hour.
func (p *Panel) PickMinute(m int) bool {
	return p.updatePick(func(pk schedule.Pick) schedule.Pick { return pk.WithMinute(m) })
}

// SetCursor moves the calendar to month m.
func (p *Panel) SetCursor(m schedule.Month) bool {
	return p.updatePick(func(pk schedule.Pick) schedule.Pick {
		pk.Cursor = m
		return pk
	})
}

// CanConfirm reports whether the scheduler has both a date and a time.
func (p *Panel) CanConfirm() bool {
	pk, ok := p.Pick()
	return ok && pk.Complete()
}

// Confirm commits the pending picks: the phase becomes Committed and the
// Interview Request is returned. It is a no-op until both picks are set.
func (p *Panel) Confirm() (Request, bool) {
	pk, ok := p.phase.(schedule.Picking)
	if !ok {
		return Request{}, false
	}
	at, ok := pk.Pick.At(p.loc)
	if !ok {
		return Request{}, false
	}
	p.phase = schedule.Committed{RecordID: pk.RecordID, At: at, Pick: pk.Pick}
	req := Request{ID: pk.RecordID, Status: applicant.StatusInterview, InterviewAt: &at}
	p.mirror(req)
	return req, true
}

// CancelScheduling discards the pending picks without a Request.
func (p *Panel) CancelScheduling() {
	if _, ok := p.phase.(schedule.Picking); ok {
		p.phase = schedule.Idle{}
	}
}

// Resolve reports the store's answer to req. On success a committed
// interview closes the scheduler. On failure the open record rolls back to
// its last authoritative copy and a committed interview returns to Picking
// with its picks intact. It returns true when something was rolled back.
func (p *Panel) Resolve(req Request, err error) bool {
	committed, isCommit := p.phase.(schedule.Committed)
	isCommit = isCommit && committed.RecordID == req.ID && req.Status == applicant.StatusInterview

	if err == nil {
		if isCommit {
			p.phase = schedule.Idle{}
		}
		if o, ok := p.selection.(Optimistic); ok && o.Pending.ID == req.ID {
			o.Acknowledged = true
			p.selection = o
		}
		return false
	}

	rolledBack := false
	if isCommit {
		p.phase = schedule.Picking{RecordID: committed.RecordID, Pick: committed.Pick}
		rolledBack = true
	}
	if o, ok := p.selection.(Optimistic); ok && o.Pending.ID == req.ID && o.Pending.Status == req.Status {
		p.selection = Authoritative{Application: o.Base}
		rolledBack = true
	}
	return rolledBack
}

// mirror applies req to the open record ahead of the store.
func (p *Panel) mirror(req Request) {
	if p.selection == nil || p.selection.Record().ID != req.ID {
		return
	}
	base := p.selection.Record()
	if o, ok := p.selection.(Optimistic); ok && !o.Acknowledged {
		base = o.Base
	}
	p.selection = Optimistic{Base: base, Pending: req}
}
