package table

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/prefs"
	"github.com/invtop/invtop/internal/tables"
	"github.com/invtop/invtop/internal/tablestate"
	"github.com/invtop/invtop/internal/ui/styles"
)

// ═══════════════════════════════════════════════════════════════════════════
// Constants
// ═══════════════════════════════════════════════════════════════════════════

const (
	maxColWidth = 28
	minColWidth = 3
)

// pageSizes are the page sizes '+' and '-' step through.
var pageSizes = []int{10, 25, 50, 100}

// Table mode
type tableMode int

const (
	tableModeNormal tableMode = iota
	tableModeSearch
	tableModeActions
)

// Exit mode — what to do after quitting the TUI
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitPlain
)

// ═══════════════════════════════════════════════════════════════════════════
// Messages
// ═══════════════════════════════════════════════════════════════════════════

// recordsMsg carries a completed page fetch. key is the identity token
// the fetch was issued under; the update loop drops the message when
// the token has moved on since.
type recordsMsg struct {
	key     string
	records []tablestate.Record
	count   int
	err     error
}

// actionDoneMsg carries a completed row or table action. A non-nil
// record is upserted into the cache; refetch forces a full reload
// (deletes and bulk actions).
type actionDoneMsg struct {
	label   string
	record  tablestate.Record
	refetch bool
	err     error
}

type statusClearMsg struct{}

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type model struct {
	ctx    context.Context
	client *api.Client
	def    tables.Definition
	state  *tablestate.State

	cols      []tables.Column // visible columns, recomputed on hide/unhide
	cursor    int             // selected row within the current page
	colCursor int             // selected column
	scrollX   int             // horizontal scroll offset in characters
	scrollY   int             // vertical scroll offset in rows
	width     int
	height    int
	ready     bool
	mode      tableMode
	exitMode  exitMode

	searchInput textinput.Model

	// Action chooser state (tableModeActions)
	actionItems []actionItem

	// Status message (flash notification, e.g. after an action)
	statusMsg   string
	statusUntil time.Time
}

// actionItem defers command construction to invocation time so merely
// opening or cancelling the menu leaves the state untouched.
type actionItem struct {
	label string
	run   func() tea.Cmd
}

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type tableKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	GrowPage     key.Binding
	ShrinkPage   key.Binding
	Search       key.Binding
	Refresh      key.Binding
	Select       key.Binding
	SelectAll    key.Binding
	ClearSelect  key.Binding
	Expand       key.Binding
	HideColumn   key.Binding
	UnhideAll    key.Binding
	ClearFilters key.Binding
	Actions      key.Binding
	YankCell     key.Binding
	YankRow      key.Binding
	ExportJSON   key.Binding
	ExportPlain  key.Binding
	Quit         key.Binding
}

var tableKeys = tableKeyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:         key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev column")),
	Right:        key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next column")),
	PageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
	PageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
	Home:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
	End:          key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	NextPage:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next page")),
	PrevPage:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev page")),
	GrowPage:     key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "bigger pages")),
	ShrinkPage:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller pages")),
	Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Select:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	SelectAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
	ClearSelect:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
	Expand:       key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "expand row")),
	HideColumn:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide column")),
	UnhideAll:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unhide columns")),
	ClearFilters: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear filters")),
	Actions:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "actions")),
	YankCell:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
	YankRow:      key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row")),
	ExportJSON:   key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportPlain:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry Point
// ═══════════════════════════════════════════════════════════════════════════

// runTUI launches the interactive table viewer. It blocks until the
// user quits. If the user requests an export (J/P), the last fetched
// page is printed to stdout after the TUI exits.
func runTUI(ctx context.Context, client *api.Client, def tables.Definition, st *tablestate.State) error {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 100
	ti.Width = 30

	m := model{
		ctx:         ctx,
		client:      client,
		def:         def,
		state:       st,
		cols:        def.VisibleColumns(st.IsColumnHidden),
		searchInput: ti,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(model); ok {
		switch fm.exitMode {
		case exitJSON:
			return PrintJSON(st.Records())
		case exitPlain:
			PrintPlain(def, st)
		}
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Fetching
// ═══════════════════════════════════════════════════════════════════════════

// fetchPage snapshots the state's list parameters and identity token,
// then fetches in the background. The token travels with the result so
// stale completions can be discriminated and discarded.
func (m *model) fetchPage() tea.Cmd {
	m.state.SetLoading(true)
	key := m.state.TableKey()
	q := queryFor(m.def, m.state)
	ctx, client, endpoint := m.ctx, m.client, m.def.Endpoint

	return func() tea.Msg {
		res, err := client.List(ctx, endpoint, q)
		return recordsMsg{key: key, records: res.Results, count: res.Count, err: err}
	}
}

// refetch issues a new identity token and reloads.
func (m *model) refetch() tea.Cmd {
	m.state.Refresh()
	return m.fetchPage()
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

func (m model) Init() tea.Cmd {
	return m.fetchPage()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case recordsMsg:
		// A fetch for an older identity token is stale: drop it.
		if msg.key != m.state.TableKey() {
			return m, nil
		}
		m.state.SetLoading(false)
		if msg.err != nil {
			return m, m.setStatus(styles.ErrorMsg(msg.err.Error()))
		}
		m.state.SetRecords(msg.records)
		m.state.SetRecordCount(msg.count)
		if m.cursor >= len(msg.records) {
			m.cursor = 0
			m.scrollY = 0
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			return m, m.setStatus(styles.ErrorMsg(msg.err.Error()))
		}
		if msg.record != nil {
			m.state.UpdateRecord(msg.record)
		}
		cmds := []tea.Cmd{m.setStatus(styles.SuccessMsg(msg.label))}
		if msg.refetch {
			cmds = append(cmds, m.refetch())
		}
		return m, tea.Batch(cmds...)

	case statusClearMsg:
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case tableModeSearch:
			return m.updateSearch(msg)
		case tableModeActions:
			return m.updateActions(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter toggles: digits 1..9 cycle the corresponding filter.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		idx := int(s[0] - '1')
		if idx < len(m.def.Filters) {
			return m, m.cycleFilter(idx)
		}
	}

	switch {
	case key.Matches(msg, tableKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, tableKeys.Search):
		m.mode = tableModeSearch
		m.searchInput.SetValue(m.state.SearchTerm())
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, tableKeys.Refresh):
		return m, m.refetch()

	case key.Matches(msg, tableKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureRowVisible()
		}

	case key.Matches(msg, tableKeys.Down):
		if m.cursor < len(m.state.Records())-1 {
			m.cursor++
			m.ensureRowVisible()
		}

	case key.Matches(msg, tableKeys.Left):
		if m.colCursor > 0 {
			m.colCursor--
			m.ensureColVisible()
		}

	case key.Matches(msg, tableKeys.Right):
		if m.colCursor < len(m.cols)-1 {
			m.colCursor++
			m.ensureColVisible()
		}

	case key.Matches(msg, tableKeys.PageUp):
		m.cursor -= m.visibleRowCount()
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureRowVisible()

	case key.Matches(msg, tableKeys.PageDown):
		m.cursor += m.visibleRowCount()
		if max := len(m.state.Records()) - 1; m.cursor > max {
			m.cursor = max
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureRowVisible()

	case key.Matches(msg, tableKeys.Home):
		m.cursor = 0
		m.scrollY = 0
		m.scrollX = 0

	case key.Matches(msg, tableKeys.End):
		if n := len(m.state.Records()); n > 0 {
			m.cursor = n - 1
			m.ensureRowVisible()
		}

	case key.Matches(msg, tableKeys.NextPage):
		if m.state.Page()*m.state.PageSize() < m.state.RecordCount() {
			m.state.SetPage(m.state.Page() + 1)
			m.cursor, m.scrollY = 0, 0
			return m, m.fetchPage()
		}

	case key.Matches(msg, tableKeys.PrevPage):
		if m.state.Page() > 1 {
			m.state.SetPage(m.state.Page() - 1)
			m.cursor, m.scrollY = 0, 0
			return m, m.fetchPage()
		}

	case key.Matches(msg, tableKeys.GrowPage):
		return m, m.stepPageSize(1)

	case key.Matches(msg, tableKeys.ShrinkPage):
		return m, m.stepPageSize(-1)

	case key.Matches(msg, tableKeys.Select):
		m.toggleSelect()

	case key.Matches(msg, tableKeys.SelectAll):
		m.state.SetSelectedRecords(append([]tablestate.Record{}, m.state.Records()...))

	case key.Matches(msg, tableKeys.ClearSelect):
		m.state.ClearSelectedRecords()

	case key.Matches(msg, tableKeys.Expand):
		if rec := m.currentRecord(); rec != nil {
			if pk, ok := rec.PrimaryKey(); ok {
				m.state.ToggleRowExpanded(pk)
			}
		}

	case key.Matches(msg, tableKeys.HideColumn):
		return m, m.hideCurrentColumn()

	case key.Matches(msg, tableKeys.UnhideAll):
		if err := m.state.SetHiddenColumns(nil); err != nil {
			return m, m.setStatus(styles.ErrorMsg(err.Error()))
		}
		m.cols = m.def.VisibleColumns(m.state.IsColumnHidden)

	case key.Matches(msg, tableKeys.ClearFilters):
		if err := m.state.ClearActiveFilters(); err != nil {
			return m, m.setStatus(styles.ErrorMsg(err.Error()))
		}
		m.state.SetPage(1)
		return m, m.fetchPage()

	case key.Matches(msg, tableKeys.Actions):
		return m.openActions()

	case key.Matches(msg, tableKeys.YankCell):
		return m, m.yankCell()

	case key.Matches(msg, tableKeys.YankRow):
		return m, m.yankRow()

	case key.Matches(msg, tableKeys.ExportJSON):
		m.exitMode = exitJSON
		return m, tea.Quit

	case key.Matches(msg, tableKeys.ExportPlain):
		m.exitMode = exitPlain
		return m, tea.Quit
	}

	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Search
// ═══════════════════════════════════════════════════════════════════════════

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = tableModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if m.state.SearchTerm() != "" {
			m.state.SetSearchTerm("")
			m.state.SetPage(1)
			return m, m.fetchPage()
		}
		return m, nil
	case tea.KeyEnter:
		m.mode = tableModeNormal
		m.searchInput.Blur()
		term := m.searchInput.Value()
		if term != m.state.SearchTerm() {
			m.state.SetSearchTerm(term)
			m.state.SetPage(1)
			return m, m.fetchPage()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// ═══════════════════════════════════════════════════════════════════════════
// Filters / Pagination / Columns
// ═══════════════════════════════════════════════════════════════════════════

// cycleFilter steps one filter through off → choices... → off, writes
// the new set through the state (persisting it), and refetches from
// page 1.
func (m *model) cycleFilter(idx int) tea.Cmd {
	f := m.def.Filters[idx]
	active := m.state.ActiveFilters()

	var current string
	var rest []prefs.Filter
	for _, af := range active {
		if af.Name == f.Name {
			current = af.Value
		} else {
			rest = append(rest, af)
		}
	}

	// Find the next choice after the current value.
	nextValue := ""
	if current == "" {
		if len(f.Choices) > 0 {
			nextValue = f.Choices[0]
		}
	} else {
		for i, c := range f.Choices {
			if c == current && i+1 < len(f.Choices) {
				nextValue = f.Choices[i+1]
				break
			}
		}
	}

	if nextValue != "" {
		rest = append(rest, prefs.Filter{Name: f.Name, Value: nextValue})
	}

	if err := m.state.SetActiveFilters(rest); err != nil {
		return m.setStatus(styles.ErrorMsg(err.Error()))
	}
	m.state.SetPage(1)
	return m.fetchPage()
}

// stepPageSize moves to the next or previous step relative to the
// current size, which may sit between steps when it came from config.
func (m *model) stepPageSize(direction int) tea.Cmd {
	current := m.state.PageSize()
	next := current
	if direction > 0 {
		for _, s := range pageSizes {
			if s > current {
				next = s
				break
			}
		}
	} else {
		for i := len(pageSizes) - 1; i >= 0; i-- {
			if pageSizes[i] < current {
				next = pageSizes[i]
				break
			}
		}
	}
	if next == current {
		return nil
	}
	m.state.SetPageSize(next)
	m.state.SetPage(1)
	m.cursor, m.scrollY = 0, 0
	return m.fetchPage()
}

func (m *model) hideCurrentColumn() tea.Cmd {
	if m.colCursor >= len(m.cols) {
		return nil
	}
	col := m.cols[m.colCursor]
	if !col.Switchable {
		return m.setStatus(styles.WarningMsg(fmt.Sprintf("column %q cannot be hidden", col.Title)))
	}

	hidden := append(append([]string{}, m.state.HiddenColumns()...), col.Name)
	if err := m.state.SetHiddenColumns(hidden); err != nil {
		return m.setStatus(styles.ErrorMsg(err.Error()))
	}
	m.cols = m.def.VisibleColumns(m.state.IsColumnHidden)
	if m.colCursor >= len(m.cols) && m.colCursor > 0 {
		m.colCursor--
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Selection / Expansion
// ═══════════════════════════════════════════════════════════════════════════

func (m model) currentRecord() tablestate.Record {
	records := m.state.Records()
	if m.cursor < 0 || m.cursor >= len(records) {
		return nil
	}
	return records[m.cursor]
}

func (m *model) toggleSelect() {
	rec := m.currentRecord()
	if rec == nil {
		return
	}
	pk, ok := rec.PrimaryKey()
	if !ok {
		return
	}

	selected := m.state.SelectedRecords()
	if m.state.IsSelected(pk) {
		kept := make([]tablestate.Record, 0, len(selected))
		for _, s := range selected {
			if id, sok := s.PrimaryKey(); sok && id == pk {
				continue
			}
			kept = append(kept, s)
		}
		m.state.SetSelectedRecords(kept)
		return
	}
	m.state.SetSelectedRecords(append(append([]tablestate.Record{}, selected...), rec))
}

// ═══════════════════════════════════════════════════════════════════════════
// Actions
// ═══════════════════════════════════════════════════════════════════════════

// openActions builds the action chooser for the current row and, when
// a selection exists, the table-level bulk actions. Mutation actions
// only exist for editable tables.
func (m model) openActions() (tea.Model, tea.Cmd) {
	if !m.state.Editable() {
		return m, m.setStatus(styles.WarningMsg("table is read-only"))
	}

	m.actionItems = nil
	if rec := m.currentRecord(); rec != nil {
		for _, a := range m.def.VisibleRowActions(rec) {
			a, rec := a, rec
			m.actionItems = append(m.actionItems, actionItem{
				label: a.Label,
				run:   func() tea.Cmd { return m.rowActionCmd(a, rec) },
			})
		}
	}
	if m.state.HasSelectedRecords() {
		for _, a := range m.def.Actions {
			a := a
			m.actionItems = append(m.actionItems, actionItem{
				label: fmt.Sprintf("%s (%d selected)", a.Label, len(m.state.SelectedRecords())),
				run:   func() tea.Cmd { return m.tableActionCmd(a) },
			})
		}
	}

	if len(m.actionItems) == 0 {
		return m, m.setStatus(styles.MutedMsg("no actions for this row"))
	}
	m.mode = tableModeActions
	return m, nil
}

func (m model) updateActions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.mode = tableModeNormal
		m.actionItems = nil
		return m, nil
	}

	s := msg.String()
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		idx := int(s[0] - '1')
		if idx < len(m.actionItems) {
			cmd := m.actionItems[idx].run()
			m.mode = tableModeNormal
			m.actionItems = nil
			return m, cmd
		}
	}
	return m, nil
}

func (m *model) rowActionCmd(a tables.RowAction, rec tablestate.Record) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		updated, err := a.Do(ctx, rec)
		return actionDoneMsg{
			label:   a.Label,
			record:  updated,
			refetch: updated == nil && err == nil,
			err:     err,
		}
	}
}

// tableActionCmd runs when the action is chosen; the selection is
// snapshotted and cleared at that point, not when the menu opens.
func (m *model) tableActionCmd(a tables.TableAction) tea.Cmd {
	ctx := m.ctx
	selected := m.state.SelectedRecords()
	m.state.ClearSelectedRecords()
	return func() tea.Msg {
		err := a.Do(ctx, selected)
		return actionDoneMsg{label: a.Label, refetch: err == nil, err: err}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Status Message (flash notification)
// ═══════════════════════════════════════════════════════════════════════════

const statusDuration = 2 * time.Second

// setStatus sets a temporary status message that auto-clears.
func (m *model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// Clipboard (yank)
// ═══════════════════════════════════════════════════════════════════════════

// yankCell copies the selected cell value to the system clipboard.
func (m *model) yankCell() tea.Cmd {
	rec := m.currentRecord()
	if rec == nil || m.colCursor >= len(m.cols) {
		return nil
	}
	val := m.cols[m.colCursor].CellValue(rec)
	if err := clipboard.WriteAll(val); err != nil {
		return m.setStatus(styles.ErrorMsg(fmt.Sprintf("clipboard: %s", err)))
	}
	display := val
	if len(display) > 40 {
		display = display[:37] + "..."
	}
	return m.setStatus(styles.SuccessMsg(fmt.Sprintf("Copied: %s", display)))
}

// yankRow copies the entire selected row (tab-separated) to the clipboard.
func (m *model) yankRow() tea.Cmd {
	rec := m.currentRecord()
	if rec == nil {
		return nil
	}
	vals := make([]string, len(m.cols))
	for i, c := range m.cols {
		vals[i] = c.CellValue(rec)
	}
	if err := clipboard.WriteAll(strings.Join(vals, "\t")); err != nil {
		return m.setStatus(styles.ErrorMsg(fmt.Sprintf("clipboard: %s", err)))
	}
	return m.setStatus(styles.SuccessMsg(fmt.Sprintf("Copied row (%d columns)", len(vals))))
}

// ═══════════════════════════════════════════════════════════════════════════
// Scroll Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m *model) ensureRowVisible() {
	visible := m.visibleRowCount()
	if visible <= 0 {
		visible = 1
	}
	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	} else if m.cursor >= m.scrollY+visible {
		m.scrollY = m.cursor - visible + 1
	}
}

func (m *model) ensureColVisible() {
	colStartX := m.colStartX(m.colCursor)
	colEndX := colStartX + m.colWidth(m.colCursor)
	viewportWidth := m.width - 2

	if colStartX < m.scrollX {
		m.scrollX = colStartX
	} else if colEndX > m.scrollX+viewportWidth {
		m.scrollX = colEndX - viewportWidth
	}
	if m.scrollX < 0 {
		m.scrollX = 0
	}
}

func (m model) visibleRowCount() int {
	count := m.height - 6 // header (4 lines) + footer (2 lines)
	if count < 1 {
		count = 1
	}
	return count
}

// ═══════════════════════════════════════════════════════════════════════════
// Layout Helpers
// ═══════════════════════════════════════════════════════════════════════════

// colWidth computes a column's display width from its title and the
// current page's cell contents, capped at maxColWidth.
func (m model) colWidth(idx int) int {
	if idx >= len(m.cols) {
		return minColWidth
	}
	col := m.cols[idx]

	w := len(col.Title)
	for _, rec := range m.state.Records() {
		if cw := visibleWidth(col.CellValue(rec)); cw > w {
			w = cw
		}
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	if w < minColWidth {
		w = minColWidth
	}
	return w
}

func (m model) colStartX(idx int) int {
	x := 0
	for i := 0; i < idx && i < len(m.cols); i++ {
		x += m.colWidth(i) + 2
	}
	return x
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString(m.renderTable())
	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m model) renderHeader() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)

	count := m.state.RecordCount()
	pages := (count + m.state.PageSize() - 1) / m.state.PageSize()
	if pages < 1 {
		pages = 1
	}
	title := fmt.Sprintf("%s: %d records, page %d/%d", m.def.Title, count, m.state.Page(), pages)
	sb.WriteString(headerStyle.Render(title))

	if m.state.Loading() {
		sb.WriteString(styles.MutedMsg("  fetching..."))
	}
	if n := len(m.state.SelectedRecords()); n > 0 {
		sb.WriteString(styles.MutedMsg(fmt.Sprintf("  [%d selected]", n)))
	}
	sb.WriteString("\n")

	// Filter bar: every defined filter with its toggle digit.
	if len(m.def.Filters) > 0 {
		parts := make([]string, 0, len(m.def.Filters))
		for i, f := range m.def.Filters {
			value := ""
			for _, af := range m.state.ActiveFilters() {
				if af.Name == f.Name {
					value = af.Value
				}
			}
			if value != "" {
				parts = append(parts, fmt.Sprintf("%d:%s=%s", i+1, f.Name, value))
			} else {
				parts = append(parts, styles.Mutef("%d:%s", i+1, f.Name))
			}
		}
		sb.WriteString(strings.Join(parts, "  "))
	}
	sb.WriteString("\n")

	// Search bar
	if m.mode == tableModeSearch {
		sb.WriteString(fmt.Sprintf("/%s\n", m.searchInput.View()))
	} else if m.state.SearchTerm() != "" {
		sb.WriteString(styles.MutedMsg(fmt.Sprintf("search: %s\n", m.state.SearchTerm())))
	} else {
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m model) renderTable() string {
	if len(m.cols) == 0 {
		return "No columns"
	}

	var sb strings.Builder
	viewportWidth := m.width - 2

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Info)
	selectedHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	separatorStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	selectedRowStyle := lipgloss.NewStyle().Background(styles.BgHighlight)
	markStyle := lipgloss.NewStyle().Foreground(styles.Accent)

	// Header + separator; the 2-char gutter carries selection marks.
	var header, separator strings.Builder
	header.WriteString("  ")
	separator.WriteString("  ")
	for i, col := range m.cols {
		w := m.colWidth(i)
		title := PadOrTruncate(col.Title, w)
		if i == m.colCursor {
			header.WriteString(selectedHeaderStyle.Render(title))
		} else {
			header.WriteString(headerStyle.Render(title))
		}
		header.WriteString("  ")
		separator.WriteString(separatorStyle.Render(strings.Repeat("─", w)))
		separator.WriteString("  ")
	}
	sb.WriteString(applyViewport(header.String(), m.scrollX, viewportWidth))
	sb.WriteString("\n")
	sb.WriteString(applyViewport(separator.String(), m.scrollX, viewportWidth))
	sb.WriteString("\n")

	records := m.state.Records()
	visible := m.visibleRowCount()
	end := m.scrollY + visible
	if end > len(records) {
		end = len(records)
	}

	linesUsed := 0
	for idx := m.scrollY; idx < end && linesUsed < visible; idx++ {
		rec := records[idx]
		pk, hasPK := rec.PrimaryKey()
		isCursor := idx == m.cursor

		var line strings.Builder
		if hasPK && m.state.IsSelected(pk) {
			line.WriteString(markStyle.Render(styles.SymbolSelected) + " ")
		} else {
			line.WriteString("  ")
		}
		for i, col := range m.cols {
			val := applyViewport(col.CellValue(rec), 0, m.colWidth(i))
			if isCursor {
				val = selectedRowStyle.Render(stripANSI(val))
			}
			line.WriteString(val)
			line.WriteString("  ")
		}
		sb.WriteString(applyViewport(line.String(), m.scrollX, viewportWidth))
		sb.WriteString("\n")
		linesUsed++

		// Expanded rows get their detail lines right below.
		if hasPK && m.state.IsRowExpanded(pk) && m.def.Detail != nil {
			for _, detail := range m.def.Detail(rec) {
				if linesUsed >= visible {
					break
				}
				sb.WriteString(styles.MutedMsg("    " + Truncate(detail, viewportWidth-4)))
				sb.WriteString("\n")
				linesUsed++
			}
		}
	}

	// Scroll indicators
	var indicators []string
	if m.scrollX > 0 {
		indicators = append(indicators, "◀")
	}
	if m.colStartX(len(m.cols)) > m.scrollX+viewportWidth {
		indicators = append(indicators, "▶")
	}
	if m.scrollY > 0 {
		indicators = append(indicators, "▲")
	}
	if end < len(records) {
		indicators = append(indicators, "▼")
	}
	if len(indicators) > 0 {
		sb.WriteString(styles.MutedMsg(strings.Join(indicators, " ")))
	}

	return sb.String()
}

func (m model) renderFooter() string {
	if m.statusMsg != "" && time.Now().Before(m.statusUntil) {
		return m.statusMsg
	}

	switch m.mode {
	case tableModeSearch:
		return styles.MutedMsg("enter search  esc clear")
	case tableModeActions:
		parts := make([]string, len(m.actionItems))
		for i, a := range m.actionItems {
			parts[i] = fmt.Sprintf("%d %s", i+1, a.label)
		}
		return styles.MutedMsg(strings.Join(parts, "  ") + "  esc cancel")
	default:
		return styles.MutedMsg("↑↓←→ nav  n/p page  / search  space select  enter expand  x actions  H hide  r refresh  q quit")
	}
}
