package ui

import (
	"time"

	"hirepanel/internal/applicant"
	"hirepanel/internal/review"
)

// RecordsLoadedMsg carries a fresh copy of the store's application list.
type RecordsLoadedMsg struct {
	Records []applicant.Application
	Err     error
}

// RefreshMsg asks for the application list to be reloaded (r).
type RefreshMsg struct{}

// OpenRecordMsg is sent when the user opens an application from the list.
type OpenRecordMsg struct {
	ID string
}

// BackMsg closes the open application and returns to the list (esc).
type BackMsg struct{}

// SetStatusMsg is sent when the user picks a status for the open record.
// Interview opens the scheduler instead of updating immediately.
type SetStatusMsg struct {
	Status applicant.Status
}

// RescheduleMsg reopens the scheduler pre-filled from the current interview (R).
type RescheduleMsg struct{}

// ConfirmInterviewMsg commits the scheduler's date and time.
type ConfirmInterviewMsg struct{}

// CancelSchedulingMsg closes the scheduler without an update.
type CancelSchedulingMsg struct{}

// StatusUpdatedMsg is the store's answer to an update request.
type StatusUpdatedMsg struct {
	Request review.Request
	Record  applicant.Application
	Err     error
}

// ShowSearchMsg opens the search modal (/).
type ShowSearchMsg struct{}

// SetQueryMsg applies a free-text search.
type SetQueryMsg struct {
	Query string
}

// CycleStatusFilterMsg advances the status filter (f).
type CycleStatusFilterMsg struct{}

// ToggleShortlistedMsg flips shortlisted-only mode (SPC v).
type ToggleShortlistedMsg struct{}

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportMsg asks to export the visible applications (SPC e c, SPC e x).
type ExportMsg struct {
	Format string
}

// ExportConfirmedMsg is sent from the export confirm modal.
type ExportConfirmedMsg struct {
	Format string
}

// ExportedMsg reports where an export was written.
type ExportedMsg struct {
	Format string
	Path   string
	Count  int
	Err    error
}

// DownloadResumeMsg asks to save the open record's resume (d).
type DownloadResumeMsg struct{}

// DownloadedMsg reports where a resume was written.
type DownloadedMsg struct {
	Path        string
	Placeholder bool
	Err         error
}

// ShowActivityMsg opens the activity log window (SPC l).
type ShowActivityMsg struct{}

// DismissModalMsg is sent when the user dismisses the top overlay.
type DismissModalMsg struct{}

// tickMsg drives the periodic list refresh.
type tickMsg time.Time
