package review

import (
	"time"

	"hirepanel/internal/applicant"
)

// Request is a status change the owning store should apply.
// InterviewAt is set only for Interview commits.
type Request struct {
	ID          string
	Status      applicant.Status
	InterviewAt *time.Time
}

// Selection is the record open in the detail view: either the store's copy
// (Authoritative) or that copy with a not-yet-confirmed change applied
// (Optimistic).
type Selection interface {
	Record() applicant.Application
	selection()
}

// Authoritative is the record as last delivered by the store.
type Authoritative struct {
	Application applicant.Application
}

// Optimistic is Base with Pending mirrored onto it. Acknowledged is set once
// the store reported success and the refreshed list has not arrived yet.
type Optimistic struct {
	Base         applicant.Application
	Pending      Request
	Acknowledged bool
}

func (Authoritative) selection() {}
func (Optimistic) selection()    {}

// Record implements Selection.
func (a Authoritative) Record() applicant.Application { return a.Application }

// Record implements Selection.
func (o Optimistic) Record() applicant.Application {
	return o.Base.WithStatus(o.Pending.Status, o.Pending.InterviewAt)
}

// reflects reports whether fresh already shows the pending change.
func (o Optimistic) reflects(fresh applicant.Application) bool {
	if fresh.Status != o.Pending.Status {
		return false
	}
	if o.Pending.InterviewAt == nil {
		return true
	}
	return fresh.InterviewDate != nil && fresh.InterviewDate.Equal(*o.Pending.InterviewAt)
}

// reconcile resolves sel against the store's fresh copy of the record.
func reconcile(sel Selection, fresh applicant.Application) Selection {
	o, ok := sel.(Optimistic)
	if !ok || o.Acknowledged || o.reflects(fresh) {
		return Authoritative{Application: fresh}
	}
	o.Base = fresh
	return o
}
