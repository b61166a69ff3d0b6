// Package store defines the application store: the owning context that
// holds application records and applies status changes requested by the
// review panel.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hirepanel/internal/applicant"
)

// ErrNotFound is returned when no application has the requested id.
var ErrNotFound = errors.New("application not found")

// DefaultMeetingBaseURL prefixes generated interview rooms.
const DefaultMeetingBaseURL = "https://meet.jit.si/"

// Store is the application store.
type Store interface {
	// List returns every application, newest first.
	List(ctx context.Context) ([]applicant.Application, error)
	// UpdateStatus moves application id to status. For Interview with a
	// time, the interview is scheduled and a meeting link generated.
	// Leaving Interview clears both.
	UpdateStatus(ctx context.Context, id string, status applicant.Status, interviewAt *time.Time) (applicant.Application, error)
	// Insert adds records, replacing any with the same id.
	Insert(ctx context.Context, records ...applicant.Application) error
	Close() error
}

// MeetingLinker generates a meeting room URL for a scheduled interview.
type MeetingLinker func(a applicant.Application, at time.Time) string

// NewMeetingLinker returns a linker issuing unique rooms under baseURL.
func NewMeetingLinker(baseURL string) MeetingLinker {
	if baseURL == "" {
		baseURL = DefaultMeetingBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return func(applicant.Application, time.Time) string {
		return baseURL + "hirepanel-" + uuid.NewString()
	}
}

// Apply computes the record after a status update, the way every store
// adapter persists it. A rescheduled interview gets a fresh link; an
// Interview update without a time keeps any existing schedule.
func Apply(a applicant.Application, status applicant.Status, interviewAt *time.Time, link MeetingLinker) (applicant.Application, error) {
	if !status.Valid() {
		return a, fmt.Errorf("%w: %q", applicant.ErrUnknownStatus, status)
	}
	prev := a.InterviewDate
	a = a.WithStatus(status, interviewAt)
	if status == applicant.StatusInterview && interviewAt != nil {
		if prev == nil || !prev.Equal(*interviewAt) || a.MeetingLink == "" {
			a.MeetingLink = link(a, *interviewAt)
		}
	}
	return a, nil
}

// NewID returns a fresh application id.
func NewID() string {
	return uuid.NewString()
}
