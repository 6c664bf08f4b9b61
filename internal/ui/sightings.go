package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/platewatch/internal/api"
	"github.com/thesavant42/platewatch/internal/auth"
	"github.com/thesavant42/platewatch/internal/listview"
	"github.com/thesavant42/platewatch/internal/models"
)

// TimestampLayout is how sighting times are displayed
const TimestampLayout = "2006-01-02 15:04:05"

const statusDuration = 4 * time.Second

// Fetcher retrieves the sightings of the current session
type Fetcher interface {
	FetchSightings(ctx context.Context) ([]models.Sighting, error)
	FetchSighting(ctx context.Context, id string) (models.Sighting, error)
	WhoAmI(ctx context.Context) (string, error)
	SetSession(s auth.Session)
	Session() auth.Session
}

type sightingsViewMode int

const (
	sightingsViewTable   sightingsViewMode = iota // table of the current page
	sightingsViewPager                            // keyboard focus on the pagination bar
	sightingsViewFilter                           // editing one filter field
	sightingsViewDetail                           // detail of the selected sighting
	sightingsViewSession                          // entering a new session token
)

// Messages
type sightingsLoadedMsg struct {
	ticket  listview.Ticket
	records []models.Sighting
	err     error
}

// uidResolvedMsg carries the uid behind the token it was resolved for
type uidResolvedMsg struct {
	token string
	uid   string
	err   error
}

type detailLoadedMsg struct {
	id     string
	record models.Sighting
	err    error
}

type statusTickMsg struct{}

// SightingsModel is the TUI model for browsing plate sightings
type SightingsModel struct {
	PageState

	ctx        context.Context
	client     Fetcher
	controller *listview.Controller
	logger     *log.Logger

	table   table.Model
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    sightingsKeyMap

	mode       sightingsViewMode
	editing    listview.FilterKey
	pagerFocus int
	detail     *models.Sighting
	detailBusy bool
	detailErr  error
	uid        string
	ticket     listview.Ticket

	copyToClipboard func(string) error
	exportDir       string
}

// NewSightingsModel creates the sightings browser and starts the first retrieval
func NewSightingsModel(ctx context.Context, client Fetcher, controller *listview.Controller, logger *log.Logger) SightingsModel {
	layout := DefaultLayout()

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40

	m := SightingsModel{
		PageState:       NewPageState(layout),
		ctx:             ctx,
		client:          client,
		controller:      controller,
		logger:          logger,
		table:           InitTable(CalculateColumns(SightingColumns(), layout.TableWidth), nil, layout),
		input:           ti,
		spinner:         NewAppSpinner(),
		help:            help.New(),
		keys:            newSightingsKeyMap(),
		copyToClipboard: clipboard.WriteAll,
		exportDir:       ".",
	}
	m.ticket = controller.BeginFetch()
	return m
}

// Init implements tea.Model
func (m SightingsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.ticket), m.whoami())
}

// fetch retrieves the session's sightings off the update loop
func (m SightingsModel) fetch(ticket listview.Ticket) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		records, err := client.FetchSightings(ctx)
		return sightingsLoadedMsg{ticket: ticket, records: records, err: err}
	}
}

// whoami resolves the uid of the current session once, next to the list request
func (m SightingsModel) whoami() tea.Cmd {
	session := m.client.Session()
	if session.IsAnonymous() {
		return nil
	}
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		uid, err := client.WhoAmI(ctx)
		return uidResolvedMsg{token: session.Token, uid: uid, err: err}
	}
}

// fetchDetail re-reads one sighting for the detail pane
func (m SightingsModel) fetchDetail(id string) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		record, err := client.FetchSighting(ctx, id)
		return detailLoadedMsg{id: id, record: record, err: err}
	}
}

func (m *SightingsModel) refetch() tea.Cmd {
	m.ticket = m.controller.BeginFetch()
	return tea.Batch(m.spinner.Tick, m.fetch(m.ticket))
}

// Update implements tea.Model
func (m SightingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.ClearExpiredStatus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UpdateLayout(msg.Width, msg.Height)
		m.table.SetHeight(m.Layout.TableHeight)
		m.help.Width = m.Layout.InnerWidth
		m.input.Width = m.Layout.InnerWidth - 20
		m.refreshTable()
		return m, nil

	case spinner.TickMsg:
		if !m.controller.View().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusTickMsg:
		return m, nil

	case sightingsLoadedMsg:
		if !m.controller.CompleteFetch(msg.ticket, msg.records, msg.err) {
			return m, nil
		}
		if msg.err == nil {
			m.setStatus(fmt.Sprintf("Loaded %d sightings", len(msg.records)))
		}
		m.table.SetCursor(0)
		m.refreshTable()
		return m, m.statusTick()

	case uidResolvedMsg:
		if msg.token != m.client.Session().Token {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Debug("Could not resolve uid", "error", msg.err)
			return m, nil
		}
		m.uid = msg.uid
		return m, nil

	case detailLoadedMsg:
		if m.mode != sightingsViewDetail || m.detail == nil || m.detail.ID != msg.id {
			return m, nil
		}
		m.detailBusy = false
		if msg.err != nil {
			m.detailErr = msg.err
			return m, nil
		}
		m.detail = &msg.record
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m SightingsModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case sightingsViewPager:
		return m.handlePagerKeys(msg)
	case sightingsViewFilter:
		return m.handleFilterKeys(msg)
	case sightingsViewDetail:
		return m.handleDetailKeys(msg)
	case sightingsViewSession:
		return m.handleSessionKeys(msg)
	default:
		return m.handleTableKeys(msg)
	}
}

func (m SightingsModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.controller.View()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)

	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)

	case key.Matches(msg, m.keys.NextPage):
		if view.HasNext {
			m.goToPage(view.Page + 1)
		}

	case key.Matches(msg, m.keys.PrevPage):
		if view.HasPrevious {
			m.goToPage(view.Page - 1)
		}

	case key.Matches(msg, m.keys.FirstPage):
		m.goToPage(1)

	case key.Matches(msg, m.keys.LastPage):
		if view.TotalPages > 0 {
			m.goToPage(view.TotalPages)
		}

	case key.Matches(msg, m.keys.FocusPager):
		if len(view.Controls) > 0 {
			m.mode = sightingsViewPager
			m.pagerFocus = currentControlIndex(view.Controls)
		}

	case key.Matches(msg, m.keys.Region):
		return m.startEditing(listview.FilterRegion, m.controller.State().Filter.Region, "Region, e.g. Jakarta")

	case key.Matches(msg, m.keys.StartDate):
		return m.startEditing(listview.FilterStartDate, models.FormatDate(m.controller.State().Filter.StartDate), "YYYY-MM-DD")

	case key.Matches(msg, m.keys.EndDate):
		return m.startEditing(listview.FilterEndDate, models.FormatDate(m.controller.State().Filter.EndDate), "YYYY-MM-DD")

	case key.Matches(msg, m.keys.Reset):
		m.controller.ResetFilters()
		m.table.SetCursor(0)
		m.refreshTable()
		m.setStatus("Filters cleared")
		return m, m.statusTick()

	case key.Matches(msg, m.keys.Open):
		if s, ok := m.selected(); ok {
			if err := m.controller.OpenDetail(s.ID); err != nil {
				m.setStatus(fmt.Sprintf("Could not open detail page: %v", err))
			} else {
				m.setStatus("Opened detail page for " + s.PlateNumber)
			}
			return m, m.statusTick()
		}

	case key.Matches(msg, m.keys.Detail):
		if s, ok := m.selected(); ok {
			m.detail = &s
			m.detailBusy = true
			m.detailErr = nil
			m.mode = sightingsViewDetail
			return m, m.fetchDetail(s.ID)
		}

	case key.Matches(msg, m.keys.CopyLink):
		if err := m.copyToClipboard(m.controller.Link()); err != nil {
			m.setStatus(fmt.Sprintf("Clipboard unavailable: %v", err))
		} else {
			m.setStatus("Link copied")
		}
		return m, m.statusTick()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refetch()

	case key.Matches(msg, m.keys.Session):
		m.mode = sightingsViewSession
		m.input.SetValue("")
		m.input.Placeholder = "Session token (empty to sign out)"
		m.input.EchoMode = textinput.EchoPassword
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Export):
		filename, err := ExportSightingsToMarkdown(m.exportDir, m.controller.Filtered(), m.controller.State(), m.controller.Zone(), m.controller.Link())
		if err != nil {
			m.setStatus(fmt.Sprintf("Export failed: %v", err))
		} else {
			m.setStatus("Exported to " + filename)
		}
		return m, m.statusTick()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m SightingsModel) handlePagerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	controls := m.controller.View().Controls

	switch msg.String() {
	case "esc", "tab":
		m.mode = sightingsViewTable
	case "left", "h", "p":
		m.pagerFocus = nextActionable(controls, m.pagerFocus, -1)
	case "right", "l", "n":
		m.pagerFocus = nextActionable(controls, m.pagerFocus, 1)
	case "enter", " ":
		if m.pagerFocus >= 0 && m.pagerFocus < len(controls) && m.controller.Activate(controls[m.pagerFocus]) {
			m.table.SetCursor(0)
			m.refreshTable()
			// Keep focus on the control for the page just opened
			m.pagerFocus = currentControlIndex(m.controller.View().Controls)
		}
	case "q", "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SightingsModel) startEditing(field listview.FilterKey, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = sightingsViewFilter
	m.editing = field
	m.input.EchoMode = textinput.EchoNormal
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m SightingsModel) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = sightingsViewTable
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(sanitizeInput(m.input.Value()))
		if !m.controller.SetFilterField(m.editing, value) {
			m.setStatus(fmt.Sprintf("Ignoring %q: dates use YYYY-MM-DD", value))
		}
		m.mode = sightingsViewTable
		m.input.Blur()
		m.table.SetCursor(0)
		m.refreshTable()
		return m, m.statusTick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SightingsModel) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "v", "backspace":
		m.detail = nil
		m.detailBusy = false
		m.detailErr = nil
		m.mode = sightingsViewTable
	case "enter", "o":
		if m.detail != nil {
			if err := m.controller.OpenDetail(m.detail.ID); err != nil {
				m.setStatus(fmt.Sprintf("Could not open detail page: %v", err))
				return m, m.statusTick()
			}
		}
	case "q", "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SightingsModel) handleSessionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = sightingsViewTable
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		next := auth.New(sanitizeInput(m.input.Value()))
		m.mode = sightingsViewTable
		m.input.Blur()
		m.input.SetValue("")

		if !auth.Changed(m.client.Session(), next) {
			m.setStatus("Session unchanged")
			return m, m.statusTick()
		}

		m.logger.Info("Session changed", "from", m.client.Session().Key(), "to", next.Key())
		m.client.SetSession(next)
		m.controller.ChangeIdentity()
		m.uid = ""
		m.refreshTable()
		return m, tea.Batch(m.refetch(), m.whoami())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SightingsModel) goToPage(page int) {
	m.controller.GoToPage(page)
	m.table.SetCursor(0)
	m.refreshTable()
}

// selected returns the sighting under the table cursor
func (m SightingsModel) selected() (models.Sighting, bool) {
	records := m.controller.View().Records
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(records) {
		return models.Sighting{}, false
	}
	return records[cursor], true
}

func (m *SightingsModel) setStatus(msg string) {
	m.SetStatus(msg, statusDuration)
}

// statusTick wakes the model up so an expired status gets cleared
func (m SightingsModel) statusTick() tea.Cmd {
	return tea.Tick(statusDuration+100*time.Millisecond, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

func (m *SightingsModel) refreshTable() {
	columns := CalculateColumns(SightingColumns(), m.Layout.TableWidth)
	view := m.controller.View()

	rows := make([]table.Row, len(view.Records))
	for i, r := range view.Records {
		rows[i] = table.Row{
			strconv.Itoa(view.RowNumber(i)),
			truncateCell(r.PlateNumber, columns[1].Width),
			truncateCell(r.Region, columns[2].Width),
			formatTimestamp(r.Timestamp, m.controller.Zone()),
			truncateCell(r.ID, columns[4].Width),
		}
	}

	// Shrink rows before columns so the table never renders stale cells
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func formatTimestamp(ts models.Millis, zone *time.Location) string {
	return ts.Time().In(zone).Format(TimestampLayout)
}

// View implements tea.Model
func (m SightingsModel) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ViewHeader("Plate Sightings", m.Layout.InnerWidth))

	if m.mode == sightingsViewDetail && m.detail != nil {
		b.WriteString(m.renderDetailView())
	} else {
		b.WriteString(m.renderListView())
	}

	if m.HasStatus() {
		b.WriteString("\n")
		b.WriteString(HintStyle.Render(" " + m.StatusMsg))
	}

	return TwoBoxView(b.String(), m.help.View(m.keys), m.Layout)
}

func (m SightingsModel) renderListView() string {
	var b strings.Builder
	view := m.controller.View()
	state := m.controller.State()

	b.WriteString(m.renderFilterSummary(state.Filter))
	b.WriteString("\n")

	info := fmt.Sprintf(" Page %d/%d  |  Matching: %d", view.Page, max(1, view.TotalPages), view.TotalRecords)
	if m.uid != "" {
		info += "  |  Signed in as " + m.uid
	}
	b.WriteString(AccentStyle.Render(info))
	b.WriteString("\n\n")

	switch {
	case view.Loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(ProgressStyle.Render("Loading sightings..."))
		b.WriteString("\n")
	case view.Err != nil:
		b.WriteString(ErrorStyle.Render(" " + api.UserMessage(view.Err)))
		b.WriteString("\n")
		b.WriteString(DimStyle.Render(" Press r to retry or S to switch session."))
		b.WriteString("\n")
	case view.TotalRecords == 0:
		if state.Filter.IsEmpty() {
			b.WriteString(DimStyle.Render(" No sightings recorded for this session."))
		} else {
			b.WriteString(DimStyle.Render(" No sightings match the current filters. Press c to reset."))
		}
		b.WriteString("\n")
	default:
		b.WriteString(RenderTableWithSelection(m.table, m.Layout))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	focus := -1
	if m.mode == sightingsViewPager {
		focus = m.pagerFocus
	}
	b.WriteString(" " + RenderPaginationBar(view.Controls, focus))
	b.WriteString("\n")

	switch m.mode {
	case sightingsViewFilter:
		b.WriteString("\n")
		b.WriteString(AccentStyle.Render(fmt.Sprintf(" %s: ", filterLabel(m.editing))))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case sightingsViewSession:
		b.WriteString("\n")
		b.WriteString(AccentStyle.Render(" Session: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(DimStyle.Render(" " + m.controller.Link()))
	return b.String()
}

func (m SightingsModel) renderFilterSummary(f models.FilterSpec) string {
	field := func(label, value string) string {
		if value == "" {
			value = "any"
		}
		return LabelStyle.Render(label+": ") + NormalStyle.Render(value)
	}
	return " " + strings.Join([]string{
		field("Region", f.Region),
		field("From", models.FormatDate(f.StartDate)),
		field("Until", models.FormatDate(f.EndDate)),
	}, "   ")
}

func (m SightingsModel) renderDetailView() string {
	s := m.detail
	row := func(label, value string) string {
		return LabelStyle.Render(fmt.Sprintf(" %-14s", label)) + NormalStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("Plate Number", s.PlateNumber))
	b.WriteString(row("Region", s.Region))
	b.WriteString(row("Date and Time", formatTimestamp(s.Timestamp, m.controller.Zone())))
	b.WriteString(row("Timestamp", strconv.FormatInt(int64(s.Timestamp), 10)))
	b.WriteString(row("ID", s.ID))
	b.WriteString("\n")
	switch {
	case m.detailBusy:
		b.WriteString(ProgressStyle.Render(" Refreshing sighting..."))
		b.WriteString("\n")
	case m.detailErr != nil:
		b.WriteString(ErrorStyle.Render(" " + api.UserMessage(m.detailErr)))
		b.WriteString("\n")
	}
	b.WriteString(DimStyle.Render(" enter: open in browser  |  esc: back"))
	return b.String()
}

func filterLabel(k listview.FilterKey) string {
	switch k {
	case listview.FilterStartDate:
		return "Start date"
	case listview.FilterEndDate:
		return "End date"
	default:
		return "Region"
	}
}

// RunSightingsBrowser starts the sightings browser TUI
func RunSightingsBrowser(ctx context.Context, client Fetcher, controller *listview.Controller, logger *log.Logger) error {
	model := NewSightingsModel(ctx, client, controller, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("sightings browser: %w", err)
	}
	return nil
}
