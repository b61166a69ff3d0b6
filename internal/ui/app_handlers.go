package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hirepanel/internal/activity"
	"hirepanel/internal/applicant"
	"hirepanel/internal/review"
	"hirepanel/internal/schedule"
)

// handleWindowSize resizes both screens and every overlay.
func (a *appModelAdapter) handleWindowSize(msg tea.WindowSizeMsg) tea.Cmd {
	a.width, a.height = msg.Width, msg.Height
	var cmds []tea.Cmd
	v, cmd := a.List.Update(msg)
	a.setCurrentView(v)
	cmds = append(cmds, cmd)
	if a.Detail != nil {
		v, cmd := a.Detail.Update(msg)
		a.setCurrentView(v)
		cmds = append(cmds, cmd)
	}
	for i := range a.Overlays.Stack {
		v, cmd := a.Overlays.Stack[i].View.Update(msg)
		a.Overlays.Stack[i].View = v
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleRecordsLoaded installs a fresh list from the store. If the open
// record disappeared, the panel falls back to the list.
func (a *appModelAdapter) handleRecordsLoaded(msg RecordsLoadedMsg) tea.Cmd {
	stop := a.List.SetLoading(false)
	if msg.Err != nil {
		a.Ctx.Logger.Error("list applications failed", slog.String("error", msg.Err.Error()))
		a.setStatus(fmt.Sprintf("Could not load applications: %v", msg.Err), true)
		return stop
	}
	a.Panel.SetRecords(msg.Records)
	a.List.Refresh()
	if a.Mode == ModeDetail && a.Panel.Selection() == nil {
		a.Mode = ModeList
		a.Detail = nil
		a.Overlays.Remove(overlayScheduler)
		a.setStatus("The open application is no longer available", true)
	}
	if _, ok := a.Panel.Phase().(schedule.Idle); ok {
		a.Overlays.Remove(overlayScheduler)
	}
	return stop
}

// handleOpenRecord switches to the detail screen for msg.ID.
func (a *appModelAdapter) handleOpenRecord(msg OpenRecordMsg) tea.Cmd {
	if !a.Panel.Open(msg.ID) {
		a.setStatus("That application is no longer available", true)
		return nil
	}
	a.Mode = ModeDetail
	a.Detail = NewApplicantDetailView(a.Panel, a.Ctx.DateFormat)
	a.Status = ""
	if a.width > 0 {
		a.Detail.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	return a.Detail.Init()
}

// closeRecord returns to the list.
func (a *AppModel) closeRecord() {
	a.Panel.Close()
	a.Overlays.Remove(overlayScheduler)
	a.Mode = ModeList
	a.Detail = nil
}

// handleSetStatus moves the open record. Interview opens the scheduler.
func (a *appModelAdapter) handleSetStatus(msg SetStatusMsg) tea.Cmd {
	if a.Mode != ModeDetail {
		return nil
	}
	req, ok := a.Panel.SetStatus(msg.Status)
	if ok {
		return a.dispatch(req)
	}
	if _, picking := a.Panel.Phase().(schedule.Picking); picking {
		return a.pushOverlay(NewSchedulerModal(a.Panel, a.Ctx.Now()), overlayScheduler)
	}
	return nil
}

// handleReschedule reopens the scheduler from the current interview time.
func (a *appModelAdapter) handleReschedule() tea.Cmd {
	if a.Mode != ModeDetail || !a.Panel.Reschedule() {
		return nil
	}
	return a.pushOverlay(NewSchedulerModal(a.Panel, a.Ctx.Now()), overlayScheduler)
}

// handleConfirmInterview commits the scheduler's picks. The scheduler stays
// open, showing progress, until the store answers.
func (a *appModelAdapter) handleConfirmInterview() tea.Cmd {
	req, ok := a.Panel.Confirm()
	if !ok {
		return nil
	}
	return a.dispatch(req)
}

// dispatch sends req to the store and records it as pending.
func (a *appModelAdapter) dispatch(req review.Request) tea.Cmd {
	name := a.selectedName(req.ID)
	text := fmt.Sprintf("Moving %s to %s", name, req.Status)
	meta := map[string]string{"application": req.ID, "status": string(req.Status)}
	if req.InterviewAt != nil {
		at := interviewTime(*req.InterviewAt, a.Ctx.Location)
		text = fmt.Sprintf("Scheduling interview with %s for %s", name, at)
		meta["interview"] = at
	}
	a.record(activity.Event{Message: text, Status: activity.StatusPending, Metadata: meta})
	a.setStatus(text+"…", false)
	a.Ctx.Logger.Info("status update requested",
		slog.String("application_id", req.ID),
		slog.String("status", string(req.Status)))
	return updateStatusCmd(a.Ctx.Store, req, a.Ctx.UpdateTimeout)
}

// handleStatusUpdated applies the store's answer. Failures roll the open
// record back and reopen an in-flight interview commit for another try.
func (a *appModelAdapter) handleStatusUpdated(msg StatusUpdatedMsg) tea.Cmd {
	req := msg.Request
	name := a.selectedName(req.ID)
	a.Panel.Resolve(req, msg.Err)

	if msg.Err != nil {
		text := fmt.Sprintf("Could not move %s to %s: %v", name, req.Status, msg.Err)
		a.setStatus(text, true)
		a.record(activity.Event{
			Message:  text,
			Status:   activity.StatusError,
			Metadata: map[string]string{"application": req.ID, "status": string(req.Status)},
		})
		a.Ctx.Logger.Warn("status update failed",
			slog.String("application_id", req.ID),
			slog.String("status", string(req.Status)),
			slog.String("error", msg.Err.Error()))
		if _, picking := a.Panel.Phase().(schedule.Picking); picking && !a.Overlays.Has(overlayScheduler) && a.Mode == ModeDetail {
			return a.pushOverlay(NewSchedulerModal(a.Panel, a.Ctx.Now()), overlayScheduler)
		}
		return loadRecordsCmd(a.Ctx.Store, a.Ctx.UpdateTimeout)
	}

	// Fold the store's copy in right away so the meeting link shows before
	// the next list refresh.
	records := append([]applicant.Application(nil), a.Panel.Records()...)
	if i := applicant.Index(records, msg.Record.ID); i >= 0 {
		records[i] = msg.Record
		a.Panel.SetRecords(records)
		a.List.Refresh()
	}
	if _, idle := a.Panel.Phase().(schedule.Idle); idle {
		a.Overlays.Remove(overlayScheduler)
	}

	text := fmt.Sprintf("Moved %s to %s", name, req.Status)
	meta := map[string]string{"application": req.ID, "status": string(req.Status)}
	if msg.Record.InterviewDate != nil {
		when, link := InterviewFields(msg.Record, a.Ctx.Location)
		text = fmt.Sprintf("Interview with %s scheduled for %s", name, when)
		meta["meeting"] = link
	}
	a.setStatus(text, false)
	a.record(activity.Event{Message: text, Status: activity.StatusDone, Metadata: meta})
	a.Ctx.Logger.Info("status updated",
		slog.String("application_id", req.ID),
		slog.String("status", string(req.Status)))
	return loadRecordsCmd(a.Ctx.Store, a.Ctx.UpdateTimeout)
}

// handleExport confirms before writing the visible set. An empty set
// produces no file.
func (a *appModelAdapter) handleExport(msg ExportMsg) tea.Cmd {
	visible := a.Panel.Visible()
	if len(visible) == 0 {
		a.setStatus("No applications match; nothing to export", false)
		return nil
	}
	dir := ""
	if a.Ctx.Downloads != nil {
		dir = a.Ctx.Downloads.BaseDir()
	}
	return a.pushOverlay(NewExportConfirmModal(msg.Format, len(visible), dir), overlayConfirm)
}

func (a *appModelAdapter) handleExported(msg ExportedMsg) {
	label := formatLabel(msg.Format)
	switch {
	case errors.Is(msg.Err, errNothingToExport):
		a.setStatus("No applications match; nothing to export", false)
	case msg.Err != nil:
		text := fmt.Sprintf("%s export failed: %v", label, msg.Err)
		a.setStatus(text, true)
		a.record(activity.Event{Message: text, Status: activity.StatusError})
		a.Ctx.Logger.Error("export failed", slog.String("format", msg.Format), slog.String("error", msg.Err.Error()))
	default:
		text := fmt.Sprintf("Exported %d applications to %s", msg.Count, msg.Path)
		a.setStatus(text, false)
		a.record(activity.Event{
			Message:  fmt.Sprintf("%s export of %d applications", label, msg.Count),
			Status:   activity.StatusDone,
			Metadata: map[string]string{"path": msg.Path},
		})
		a.Ctx.Logger.Info("exported applications", slog.String("format", msg.Format), slog.Int("count", msg.Count), slog.String("path", msg.Path))
	}
}

// handleDownloadResume saves the open record's resume.
func (a *appModelAdapter) handleDownloadResume() tea.Cmd {
	rec, ok := a.Panel.Selected()
	if !ok {
		return nil
	}
	return downloadResumeCmd(a.Ctx.Downloads, rec)
}

func (a *appModelAdapter) handleDownloaded(msg DownloadedMsg) {
	if msg.Err != nil {
		text := fmt.Sprintf("Resume download failed: %v", msg.Err)
		a.setStatus(text, true)
		a.record(activity.Event{Message: text, Status: activity.StatusError})
		a.Ctx.Logger.Error("resume download failed", slog.String("error", msg.Err.Error()))
		return
	}
	text := "Saved resume to " + msg.Path
	if msg.Placeholder {
		text = "No resume on file; saved a placeholder to " + msg.Path
	}
	a.setStatus(text, false)
	a.record(activity.Event{Message: text, Status: activity.StatusDone, Metadata: map[string]string{"path": msg.Path}})
	a.Ctx.Logger.Info("resume saved", slog.String("path", msg.Path), slog.Bool("placeholder", msg.Placeholder))
}

// record adds ev to the activity log and refreshes an open activity window.
func (a *AppModel) record(ev activity.Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = a.Ctx.Now()
	}
	a.Ctx.Activity.Emit(ev)
	for _, o := range a.Overlays.Stack {
		if w, ok := o.View.(*ActivityWindow); ok {
			w.Refresh()
		}
	}
}

// interviewTime formats t for banners.
func interviewTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(interviewFormat)
}
