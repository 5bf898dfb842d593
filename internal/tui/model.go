// Package tui implements the interactive report page.
package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/reportbox/internal/core/config"
	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/internal/core/styles"
	"github.com/colonyops/reportbox/internal/data/provider"
	"github.com/colonyops/reportbox/internal/tui/components"
)

const (
	defaultWidth        = 80
	minCellWidth        = 20
	defaultEditorHeight = 4
)

// Options configures the report page.
type Options struct {
	Title        string
	Provider     provider.Provider
	SavePolicy   report.SavePolicy
	Markdown     bool // render read-only content as markdown
	EditorHeight int
	MaxWidth     int // widest a cell may be, 0 for the terminal width

	// Changes delivers source change notifications. Nil disables live
	// reload.
	Changes <-chan struct{}
}

// Model is the Bubble Tea model of the report page: a title followed by one
// independently toggleable box per report.
type Model struct {
	opts       Options
	keys       KeyMap
	ctrl       *Controller
	editors    map[string]*textarea.Model // by cell key, only for cells in edit mode
	viewport   viewport.Model
	vpWidth    int
	vpHeight   int
	help       help.Model
	helpDialog *components.HelpDialog
	markdown   *markdownRenderer

	showHelp  bool
	loaded    bool
	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

// New creates the report page model.
func New(opts Options) Model {
	if opts.Title == "" {
		opts.Title = config.DefaultTitle
	}
	if opts.EditorHeight < 1 {
		opts.EditorHeight = defaultEditorHeight
	}

	keys := DefaultKeyMap()

	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = styles.TextMutedStyle
	h.Styles.ShortDesc = styles.TextMutedStyle
	h.Styles.ShortSeparator = styles.TextMutedStyle

	return Model{
		opts:       opts,
		keys:       keys,
		ctrl:       NewController(opts.SavePolicy),
		editors:    make(map[string]*textarea.Model),
		help:       h,
		helpDialog: components.NewHelpDialog("Keyboard shortcuts", keys.helpSections()...),
		markdown:   newMarkdownRenderer(),
	}
}

// Init loads the reports and starts listening for source changes.
func (m Model) Init() tea.Cmd {
	var load tea.Cmd
	if m.opts.Provider != nil {
		load = loadReports(m.opts.Provider, reasonInitial)
	}
	return tea.Batch(load, waitForChange(m.opts.Changes))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeEditors()
		m.refresh(true)
		return m, nil
	case reportsLoadedMsg:
		cmd := m.handleLoaded(msg)
		m.refresh(true)
		return m, cmd
	case sourceChangedMsg:
		if m.opts.Provider == nil {
			return m, nil
		}
		log.Debug().Str("component", "tui").Msg("source changed, reloading")
		return m, tea.Batch(loadReports(m.opts.Provider, reasonWatch), waitForChange(m.opts.Changes))
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Paste and blink messages go to the focused edit field.
	if ed := m.focusedEditor(); ed != nil {
		var cmd tea.Cmd
		*ed, cmd = ed.Update(msg)
		m.ctrl.Focused().SetDraft(ed.Value())
		m.refresh(false)
		return m, cmd
	}
	return m, nil
}

// View renders the page.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render returns the page content: the full screen once the terminal size
// is known, otherwise the static page.
func (m Model) Render() string {
	if m.height == 0 {
		return m.Page()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)

	if m.showHelp {
		return m.helpDialog.Overlay(content, m.width, m.height)
	}
	return content
}

// Page renders the title and every report box, without scrolling, status
// or help.
func (m Model) Page() string {
	body, _ := m.renderCells()
	if body == "" {
		return m.renderHeader()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body)
}

// Controller exposes the page state.
func (m Model) Controller() *Controller { return m.ctrl }

// Apply replaces the records shown, as a provider load would.
func (m *Model) Apply(records []report.Record) {
	m.handleLoaded(reportsLoadedMsg{records: records, reason: reasonInitial})
	m.refresh(true)
}

func (m *Model) handleLoaded(msg reportsLoadedMsg) tea.Cmd {
	if msg.err != nil {
		log.Error().Err(msg.err).Str("component", "tui").Str("reason", string(msg.reason)).Msg("load reports")
		m.setStatus(fmt.Sprintf("%s failed: %v", msg.reason, msg.err), true)
		return nil
	}

	res := m.ctrl.Apply(msg.records)
	m.loaded = true
	m.pruneEditors()

	log.Debug().
		Str("component", "tui").
		Str("reason", string(msg.reason)).
		Int("added", res.Added).
		Int("kept", res.Kept).
		Int("removed", res.Removed).
		Msg("reports derived")

	if msg.reason == reasonInitial {
		m.setStatus("", false)
	} else {
		m.setStatus(fmt.Sprintf("%s: %d added, %d kept, %d removed", msg.reason, res.Added, res.Kept, res.Removed), false)
	}

	return m.syncEditorFocus()
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Close) {
			m.showHelp = false
		}
		return m, nil
	}

	if cell := m.ctrl.Focused(); cell != nil && cell.Editing() {
		return m.handleEditingKey(msg, cell)
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.opts.Provider == nil {
			return m, nil
		}
		m.setStatus("reloading…", false)
		return m, loadReports(m.opts.Provider, reasonManual)
	case key.Matches(msg, m.keys.Next):
		cmd = m.moveFocus(m.ctrl.Next)
	case key.Matches(msg, m.keys.Prev):
		cmd = m.moveFocus(m.ctrl.Prev)
	case key.Matches(msg, m.keys.Press), key.Matches(msg, m.keys.Save):
		cmd = m.press()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfPageDown()
		return m, nil
	default:
		return m, nil
	}

	m.refresh(true)
	return m, cmd
}

// handleEditingKey routes keys while the focused cell is in edit mode.
// Everything except the save and focus keys goes to the edit field.
func (m Model) handleEditingKey(msg tea.KeyPressMsg, cell *report.Cell) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "ctrl+s":
		cmd = m.press()
	case "tab":
		cmd = m.moveFocus(m.ctrl.Next)
	case "shift+tab":
		cmd = m.moveFocus(m.ctrl.Prev)
	default:
		ed := m.editors[cell.Key()]
		if ed == nil {
			ed, cmd = m.openEditor(cell)
		}
		var edCmd tea.Cmd
		*ed, edCmd = ed.Update(msg)
		cell.SetDraft(ed.Value())
		m.refresh(false)
		return m, tea.Batch(cmd, edCmd)
	}

	m.refresh(true)
	return m, cmd
}

// press toggles the focused cell. Entering edit opens an edit field seeded
// with the cell's draft; leaving edit closes it.
func (m *Model) press() tea.Cmd {
	cell := m.ctrl.Focused()
	if cell == nil {
		return nil
	}

	if ed := m.editors[cell.Key()]; ed != nil && cell.Editing() {
		cell.SetDraft(ed.Value())
	}

	mode, ok := m.ctrl.Press()
	if !ok {
		return nil
	}

	log.Debug().Str("component", "tui").Str("report", cell.Key()).Stringer("mode", mode).Msg("toggle")

	if mode == report.ModeEdit {
		_, cmd := m.openEditor(cell)
		return cmd
	}

	delete(m.editors, cell.Key())
	return nil
}

func (m *Model) openEditor(cell *report.Cell) (*textarea.Model, tea.Cmd) {
	ed := newEditor(cell.Draft(), m.cellWidth(), m.opts.EditorHeight)
	cmd := ed.Focus()
	m.editors[cell.Key()] = &ed
	return &ed, cmd
}

func (m *Model) moveFocus(move func()) tea.Cmd {
	if ed := m.focusedEditor(); ed != nil {
		ed.Blur()
	}
	move()
	if ed := m.focusedEditor(); ed != nil {
		return ed.Focus()
	}
	return nil
}

func (m *Model) focusedEditor() *textarea.Model {
	cell := m.ctrl.Focused()
	if cell == nil || !cell.Editing() {
		return nil
	}
	return m.editors[cell.Key()]
}

// pruneEditors drops edit fields whose cell is gone or no longer editing.
func (m *Model) pruneEditors() {
	for k := range m.editors {
		cell, ok := m.ctrl.Collection().Get(k)
		if !ok || !cell.Editing() {
			delete(m.editors, k)
		}
	}
}

func (m *Model) syncEditorFocus() tea.Cmd {
	focused := m.focusedEditor()
	for _, ed := range m.editors {
		if ed != focused {
			ed.Blur()
		}
	}
	if focused != nil && !focused.Focused() {
		return focused.Focus()
	}
	return nil
}

func (m *Model) resizeEditors() {
	w := max(m.cellWidth()-cellChrome, 1)
	for _, ed := range m.editors {
		ed.SetWidth(w)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// refresh lays the boxes out in the viewport. With follow set, the viewport
// scrolls so the focused box is visible.
func (m *Model) refresh(follow bool) {
	if m.height == 0 {
		return
	}

	body, spans := m.renderCells()

	vpHeight := max(m.height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderFooter()), 1)
	if vpHeight != m.vpHeight || m.width != m.vpWidth {
		offset := m.viewport.YOffset()
		m.viewport = viewport.New(viewport.WithWidth(m.width), viewport.WithHeight(vpHeight))
		m.viewport.SetYOffset(offset)
		m.vpWidth, m.vpHeight = m.width, vpHeight
	}
	m.viewport.SetContent(body)

	f := m.ctrl.Focus()
	if !follow || f < 0 || f >= len(spans) {
		return
	}

	top, bottom := spans[f][0], spans[f][1]
	offset := m.viewport.YOffset()
	switch {
	case top < offset:
		m.viewport.SetYOffset(top)
	case bottom > offset+vpHeight:
		m.viewport.SetYOffset(max(bottom-vpHeight, top))
	}
}

// renderCells renders every box and returns each box's [top, bottom) line
// span within the body.
func (m Model) renderCells() (string, [][2]int) {
	cells := m.ctrl.Cells()
	if len(cells) == 0 {
		return "", nil
	}

	width := m.cellWidth()
	boxes := make([]string, 0, len(cells))
	spans := make([][2]int, 0, len(cells))
	line := 0

	for i, cell := range cells {
		view := CellView{
			Cell:    cell,
			Focused: i == m.ctrl.Focus(),
			Width:   width,
			Editor:  m.editors[cell.Key()],
		}
		if m.opts.Markdown {
			view.Markdown = m.markdown
		}

		box := view.Render()
		h := lipgloss.Height(box)
		spans = append(spans, [2]int{line, line + h})
		line += h
		boxes = append(boxes, box)
	}

	return lipgloss.JoinVertical(lipgloss.Left, boxes...), spans
}

func (m Model) renderHeader() string {
	return styles.TitleStyle.Render(m.opts.Title)
}

func (m Model) renderFooter() string {
	status := m.status
	if status == "" {
		status = m.summary()
	}

	statusStyle := styles.StatusInfoStyle
	if m.statusErr {
		statusStyle = styles.StatusErrStyle
	}

	bindings := m.keys.ShortHelp()
	if cell := m.ctrl.Focused(); cell != nil && cell.Editing() {
		bindings = m.keys.editingHelp()
	}

	return styles.FooterStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.Render(status),
		m.help.ShortHelpView(bindings),
	))
}

func (m Model) summary() string {
	if !m.loaded {
		return "loading reports…"
	}

	n := m.ctrl.Len()
	var b strings.Builder
	fmt.Fprintf(&b, "%d report", n)
	if n != 1 {
		b.WriteString("s")
	}
	if editing := m.ctrl.Collection().Editing(); editing > 0 {
		fmt.Fprintf(&b, " • %d editing", editing)
	}
	return b.String()
}

func (m Model) cellWidth() int {
	w := m.width
	if w == 0 {
		w = defaultWidth
	}
	w -= 2
	if m.opts.MaxWidth > 0 {
		w = min(w, m.opts.MaxWidth)
	}
	return max(w, minCellWidth)
}
