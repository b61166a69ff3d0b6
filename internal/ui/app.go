package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"hirepanel/internal/applicant"
	"hirepanel/internal/review"
)

// AppModel is the root model. It switches between the applicant list and
// the detail screen, with modals stacked on top.
type AppModel struct {
	Ctx        AppContext
	Mode       AppMode
	Panel      *review.Panel
	List       *ApplicantListView
	Detail     *ApplicantDetailView
	KeyHandler *KeyHandler
	Overlays   OverlayStack

	// Status is the inline banner under the current screen.
	Status        string
	StatusIsError bool

	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model over ctx.
func NewAppModel(ctx AppContext) *AppModel {
	ctx = ctx.withDefaults()
	panel := review.NewPanel(
		review.WithLocation(ctx.Location),
		review.WithClock(ctx.Now),
		review.WithShortlistedOnly(ctx.ShortlistedOnly),
	)
	return &AppModel{
		Ctx:        ctx,
		Mode:       ModeList,
		Panel:      panel,
		List:       NewApplicantListView(panel, ctx.DateFormat),
		KeyHandler: NewKeyHandler(newRegistry()),
	}
}

// newRegistry binds every key the panel understands.
func newRegistry() *KeybindRegistry {
	send := func(msg tea.Msg) tea.Cmd { return func() tea.Msg { return msg } }
	list := []AppMode{ModeList}
	detail := []AppMode{ModeDetail}

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "quit")
	reg.Bind("ctrl+c", tea.Quit)
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")

	reg.BindWithDescForMode("/", send(ShowSearchMsg{}), "search", list)
	reg.BindWithDescForMode("f", send(CycleStatusFilterMsg{}), "filter", list)
	reg.BindWithDescForMode("r", send(RefreshMsg{}), "refresh", list)

	for _, sk := range statusKeys {
		reg.BindWithDescForMode(sk.Key, send(SetStatusMsg{Status: sk.Status}), strings.ToLower(string(sk.Status)), detail)
	}
	reg.BindWithDescForMode("R", send(RescheduleMsg{}), "reschedule", detail)
	reg.BindWithDescForMode("d", send(DownloadResumeMsg{}), "resume", detail)
	reg.BindWithDescForMode("esc", send(BackMsg{}), "back", detail)

	reg.BindWithDesc("SPC e c", send(ExportMsg{Format: FormatCSV}), "Export CSV")
	reg.BindWithDesc("SPC e x", send(ExportMsg{Format: FormatXLSX}), "Export Excel")
	reg.BindWithDesc("SPC l", send(ShowActivityMsg{}), "Activity log")
	reg.BindWithDesc("SPC v", send(ToggleShortlistedMsg{}), "Shortlisted only")
	reg.BindWithDesc("SPC r", send(RefreshMsg{}), "Refresh")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(
		a.List.Init(),
		a.List.SetLoading(true),
		loadRecordsCmd(a.Ctx.Store, a.Ctx.UpdateTimeout),
		tickCmd(a.Ctx.RefreshInterval),
	)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.handleWindowSize(msg)
	case RecordsLoadedMsg:
		return a, a.handleRecordsLoaded(msg)
	case tickMsg:
		return a, tea.Batch(loadRecordsCmd(a.Ctx.Store, a.Ctx.UpdateTimeout), tickCmd(a.Ctx.RefreshInterval))
	case RefreshMsg:
		return a, tea.Batch(a.List.SetLoading(true), loadRecordsCmd(a.Ctx.Store, a.Ctx.UpdateTimeout))
	case OpenRecordMsg:
		return a, a.handleOpenRecord(msg)
	case BackMsg:
		a.closeRecord()
		return a, nil
	case SetStatusMsg:
		return a, a.handleSetStatus(msg)
	case RescheduleMsg:
		return a, a.handleReschedule()
	case ConfirmInterviewMsg:
		return a, a.handleConfirmInterview()
	case CancelSchedulingMsg:
		a.Panel.CancelScheduling()
		a.Overlays.Remove(overlayScheduler)
		return a, nil
	case StatusUpdatedMsg:
		return a, a.handleStatusUpdated(msg)
	case ShowSearchMsg:
		return a, a.pushOverlay(NewSearchModal(a.Panel.Filter().Query), overlaySearch)
	case SetQueryMsg:
		a.Overlays.Remove(overlaySearch)
		a.Panel.SetQuery(msg.Query)
		a.List.Refresh()
		return a, nil
	case CycleStatusFilterMsg:
		a.Panel.CycleStatusFilter()
		a.List.Refresh()
		return a, nil
	case ToggleShortlistedMsg:
		on := !a.Panel.Filter().ShortlistedOnly
		a.Panel.SetShortlistedOnly(on)
		a.List.Refresh()
		return a, nil
	case ExportMsg:
		return a, a.handleExport(msg)
	case ExportConfirmedMsg:
		a.Overlays.Remove(overlayConfirm)
		return a, exportCmd(a.Ctx.Downloads, msg.Format, a.Panel.Visible(), a.Ctx.Now(), a.Ctx.DateFormat, a.Ctx.Location)
	case ExportedMsg:
		a.handleExported(msg)
		return a, nil
	case DownloadResumeMsg:
		return a, a.handleDownloadResume()
	case DownloadedMsg:
		a.handleDownloaded(msg)
		return a, nil
	case ShowActivityMsg:
		return a, a.pushOverlay(NewActivityWindow(a.Ctx.Activity, a.width, a.height), overlayActivity)
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	// Everything else (spinner ticks, cursor blink) goes to the top overlay
	// and the current screen.
	var cmds []tea.Cmd
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		cmds = append(cmds, cmd)
	}
	v, cmd := a.currentView().Update(msg)
	a.setCurrentView(v)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// handleKey routes a key press: the top overlay takes everything, then the
// keybind registry, then the current screen.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.Overlays.Len() > 0 {
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
		return cmd
	}
	v, cmd := a.currentView().Update(msg)
	a.setCurrentView(v)
	return cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(a.currentView().View())
	b.WriteString("\n\n")
	if a.Status != "" {
		style := Styles.BannerInfo
		if a.StatusIsError {
			style = Styles.BannerError
		}
		b.WriteString(style.Render(a.Status) + "\n")
	}
	if a.KeyHandler.LeaderWaiting {
		b.WriteString(RenderKeybindHelp(a.KeyHandler, a.Mode))
	} else {
		b.WriteString(RenderModeHints(a.KeyHandler.Registry, a.Mode))
	}
	return a.Overlays.Render(b.String(), a.width, a.height)
}

func (a *appModelAdapter) currentView() View {
	if a.Mode == ModeDetail && a.Detail != nil {
		return a.Detail
	}
	return a.List
}

func (a *appModelAdapter) setCurrentView(v View) {
	switch v := v.(type) {
	case *ApplicantListView:
		a.List = v
	case *ApplicantDetailView:
		a.Detail = v
	}
}

func (a *appModelAdapter) pushOverlay(v View, kind string) tea.Cmd {
	a.Overlays.Remove(kind)
	a.Overlays.Push(Overlay{View: v, Kind: kind})
	return v.Init()
}

// setStatus sets the inline banner.
func (a *AppModel) setStatus(text string, isError bool) {
	a.Status = text
	a.StatusIsError = isError
}

// selectedName returns the open record's candidate name for messages.
func (a *AppModel) selectedName(id string) string {
	if rec, ok := a.Panel.Selected(); ok && rec.ID == id {
		return rec.CandidateName
	}
	if i := applicant.Index(a.Panel.Records(), id); i >= 0 {
		return a.Panel.Records()[i].CandidateName
	}
	return id
}
