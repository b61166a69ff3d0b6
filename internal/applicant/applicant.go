// Package applicant defines the application record reviewed by employers,
// its closed status set, and the filter that produces the visible subset.
package applicant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownStatus is returned when a string names no Status.
var ErrUnknownStatus = errors.New("unknown application status")

// Status is the review state of an application.
type Status string

const (
	StatusNew         Status = "New"
	StatusReviewed    Status = "Reviewed"
	StatusShortlisted Status = "Shortlisted"
	StatusInterview   Status = "Interview"
	StatusRejected    Status = "Rejected"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{
	StatusNew,
	StatusReviewed,
	StatusShortlisted,
	StatusInterview,
	StatusRejected,
}

// ParseStatus matches s case-insensitively against the status names.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// UnmarshalJSON accepts any casing of a known status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ResumeFile is a resume uploaded with the application, base64-encoded.
type ResumeFile struct {
	Name     string `json:"name"`
	MIMEType string `json:"type"`
	Size     int64  `json:"size"`
	Content  string `json:"content"`
}

// Application is one candidate's submission against one job posting.
type Application struct {
	ID             string      `json:"id"`
	CandidateName  string      `json:"candidateName"`
	CandidateEmail string      `json:"candidateEmail"`
	JobID          string      `json:"jobId"`
	JobTitle       string      `json:"jobTitle"`
	MatchScore     int         `json:"matchScore"`
	Status         Status      `json:"status"`
	Timestamp      time.Time   `json:"timestamp"`
	InterviewDate  *time.Time  `json:"interviewDate,omitempty"`
	MeetingLink    string      `json:"meetingLink,omitempty"`
	ResumeFile     *ResumeFile `json:"resumeFile,omitempty"`
}

// HasInterview reports whether the record carries a scheduled interview.
// Interview status alone is not enough: scheduling may still be in progress.
func (a Application) HasInterview() bool {
	return a.Status == StatusInterview && a.InterviewDate != nil
}

// WithStatus returns a copy of a moved to status. Leaving Interview drops the
// interview date and meeting link.
func (a Application) WithStatus(status Status, interviewAt *time.Time) Application {
	a.Status = status
	if status != StatusInterview {
		a.InterviewDate = nil
		a.MeetingLink = ""
		return a
	}
	if interviewAt != nil {
		at := *interviewAt
		a.InterviewDate = &at
	}
	return a
}

// Index returns the position of the record with id, or -1.
func Index(records []Application, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
