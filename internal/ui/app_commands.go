package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hirepanel/internal/applicant"
	"hirepanel/internal/download"
	"hirepanel/internal/export"
	"hirepanel/internal/review"
	"hirepanel/internal/store"
)

// errNothingToExport is reported when the visible set is empty.
var errNothingToExport = errors.New("no applications to export")

// loadRecordsCmd fetches the application list from the store.
func loadRecordsCmd(s store.Store, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return RecordsLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		records, err := s.List(ctx)
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

// updateStatusCmd delivers req to the store. The outcome always comes back
// as a StatusUpdatedMsg carrying the original request.
func updateStatusCmd(s store.Store, req review.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return StatusUpdatedMsg{Request: req, Err: errors.New("no application store configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rec, err := s.UpdateStatus(ctx, req.ID, req.Status, req.InterviewAt)
		return StatusUpdatedMsg{Request: req, Record: rec, Err: err}
	}
}

// exportCmd writes the given records in format to the download dir.
func exportCmd(d *download.Store, format string, records []applicant.Application, now time.Time, dateFormat string, loc *time.Location) tea.Cmd {
	records = append([]applicant.Application(nil), records...)
	return func() tea.Msg {
		msg := ExportedMsg{Format: format, Count: len(records)}
		var (
			f   export.File
			ok  bool
			err error
		)
		switch format {
		case FormatCSV:
			f, ok = export.CSV(records, now, dateFormat, loc)
		case FormatXLSX:
			f, ok, err = export.XLSX(records, now, dateFormat, loc)
		default:
			err = fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			msg.Err = err
			return msg
		}
		if !ok {
			msg.Err = errNothingToExport
			return msg
		}
		msg.Path, msg.Err = save(d, f)
		return msg
	}
}

// downloadResumeCmd writes a's resume, or a placeholder, to the download dir.
func downloadResumeCmd(d *download.Store, a applicant.Application) tea.Cmd {
	return func() tea.Msg {
		f := export.Resume(a)
		path, err := save(d, f)
		return DownloadedMsg{Path: path, Placeholder: f.Placeholder, Err: err}
	}
}

func save(d *download.Store, f export.File) (string, error) {
	if d == nil {
		return "", errors.New("no download directory configured")
	}
	return d.Save(f)
}

// tickCmd schedules the next periodic refresh.
func tickCmd(every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
