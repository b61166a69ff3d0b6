package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirepanel/internal/applicant"
)

func TestModelMapping_RoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	in := applicant.Application{
		ID:             "a1",
		CandidateName:  "Dana",
		CandidateEmail: "dana@example.com",
		JobID:          "j1",
		JobTitle:       "Engineer",
		MatchScore:     91,
		Status:         applicant.StatusInterview,
		Timestamp:      time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		InterviewDate:  &at,
		MeetingLink:    "https://meet.example.com/x",
		ResumeFile:     &applicant.ResumeFile{Name: "dana.pdf", MIMEType: "application/pdf", Size: 10, Content: "YWJj"},
	}

	m := toModel(in)
	assert.Equal(t, "Interview", m.Status)
	require.NotNil(t, m.ResumeName)
	assert.Equal(t, "dana.pdf", *m.ResumeName)

	out := fromModel(m)
	assert.Equal(t, in, out)
}

func TestModelMapping_NoResumeNoInterview(t *testing.T) {
	in := applicant.Application{ID: "a2", CandidateName: "Eli", Status: applicant.StatusNew, Timestamp: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}

	m := toModel(in)
	assert.Nil(t, m.ResumeName)
	assert.Nil(t, m.InterviewAt)

	out := fromModel(m)
	assert.Nil(t, out.ResumeFile)
	assert.Nil(t, out.InterviewDate)
	assert.Equal(t, in, out)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "applications", Application{}.TableName())
}
