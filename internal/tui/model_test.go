package tui

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/internal/data/provider"
	"github.com/colonyops/reportbox/pkg/tuitest"
)

func newTestModel(t *testing.T, records []report.Record, opts ...func(*Options)) Model {
	t.Helper()

	o := Options{
		Title:      "Reports Class 7K",
		Provider:   provider.Static(records),
		SavePolicy: report.SaveCommit,
	}
	for _, fn := range opts {
		fn(&o)
	}

	m := New(o)
	return send(t, m, reportsLoadedMsg{records: records, reason: reasonInitial})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func plain(m Model) string {
	return tuitest.StripANSI(m.Page())
}

func labels(m Model) []string {
	out := make([]string, 0, m.ctrl.Len())
	for _, c := range m.ctrl.Cells() {
		out = append(out, c.Label())
	}
	return out
}

func TestModel_InitialRender(t *testing.T) {
	m := newTestModel(t, twoReports())
	out := plain(m)

	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Reports Class 7K", strings.TrimSpace(lines[0]))

	assert.Less(t, strings.Index(out, "Report 1"), strings.Index(out, "Report 2"))
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")
	assert.Equal(t, 2, strings.Count(out, "[ Edit ]"))
	assert.NotContains(t, out, "[ Save ]")
	assert.Equal(t, []string{"Edit", "Edit"}, labels(m))
}

func TestModel_EmptyInput(t *testing.T) {
	m := newTestModel(t, []report.Record{})

	assert.Equal(t, "Reports Class 7K", strings.TrimSpace(plain(m)))
	assert.Equal(t, 0, m.ctrl.Len())

	// Presses with nothing focused are no-ops.
	m = send(t, m, tuitest.KeyEnter(), tuitest.KeyCtrl('s'), tuitest.KeyTab())
	assert.Equal(t, "Reports Class 7K", strings.TrimSpace(plain(m)))
}

func TestModel_TwoRecordScenario(t *testing.T) {
	m := newTestModel(t, twoReports())

	m = send(t, m, tuitest.KeyEnter())
	assert.Equal(t, []string{"Save", "Edit"}, labels(m))
	out := plain(m)
	assert.Contains(t, out, "[ Save ]")
	assert.Contains(t, out, "Alpha", "edit field is seeded with content")
	assert.Contains(t, out, "Beta")

	m = send(t, m, tuitest.KeyTab(), tuitest.KeyEnter())
	assert.Equal(t, []string{"Save", "Save"}, labels(m))

	m = send(t, m, tuitest.KeyShiftTab(), tuitest.KeyCtrl('s'))
	assert.Equal(t, []string{"Edit", "Save"}, labels(m))
	assert.Equal(t, "Alpha", m.ctrl.Cells()[0].Content())
}

func TestModel_ToggleTwiceRestoresView(t *testing.T) {
	m := newTestModel(t, twoReports())
	before := plain(m)

	m = send(t, m, tuitest.KeyPress('e'), tuitest.KeyCtrl('s'))

	assert.Equal(t, []string{"Edit", "Edit"}, labels(m))
	assert.Equal(t, before, plain(m))
	assert.Empty(t, m.editors)
}

func TestModel_EditAndSave(t *testing.T) {
	t.Run("commit keeps the draft", func(t *testing.T) {
		m := newTestModel(t, twoReports())

		m = send(t, m, tuitest.KeyEnter())
		m = send(t, m, tuitest.Type(" and more")...)
		assert.Equal(t, "Alpha and more", m.ctrl.Cells()[0].Draft())

		m = send(t, m, tuitest.KeyCtrl('s'))
		assert.Equal(t, "Alpha and more", m.ctrl.Cells()[0].Content())
		assert.Contains(t, plain(m), "Alpha and more")
		assert.Equal(t, "Beta", m.ctrl.Cells()[1].Content())
	})

	t.Run("discard drops the draft", func(t *testing.T) {
		m := newTestModel(t, twoReports(), func(o *Options) { o.SavePolicy = report.SaveDiscard })

		m = send(t, m, tuitest.KeyEnter())
		m = send(t, m, tuitest.Type("xyz")...)
		m = send(t, m, tuitest.KeyCtrl('s'))

		assert.Equal(t, "Alpha", m.ctrl.Cells()[0].Content())
	})

	t.Run("letters go to the edit field", func(t *testing.T) {
		m := newTestModel(t, twoReports())

		m = send(t, m, tuitest.KeyEnter())
		m = send(t, m, tuitest.Type("qe?r")...)

		assert.False(t, m.quitting)
		assert.False(t, m.showHelp)
		assert.Equal(t, report.ModeEdit, m.ctrl.Cells()[0].Mode())
		assert.Equal(t, "Alphaqe?r", m.ctrl.Cells()[0].Draft())
	})

	t.Run("paste shows in the edit field", func(t *testing.T) {
		m := newTestModel(t, twoReports())
		m = send(t, m, tuitest.WindowSize(80, 40), tuitest.KeyEnter())

		m = send(t, m, tea.PasteMsg{Content: "PASTED"})

		assert.Equal(t, "AlphaPASTED", m.ctrl.Cells()[0].Draft())
		assert.Contains(t, tuitest.StripANSI(m.Render()), "AlphaPASTED")
		assert.Equal(t, report.ModeView, m.ctrl.Cells()[1].Mode())
	})
}

func TestModel_Independence(t *testing.T) {
	m := newTestModel(t, []report.Record{
		{Name: "Same", Content: "one"},
		{Name: "Same", Content: "two"},
		{Name: "Other", Content: "three"},
	})

	m = send(t, m, tuitest.KeyTab(), tuitest.KeyEnter())
	assert.Equal(t, []string{"Edit", "Save", "Edit"}, labels(m))

	m = send(t, m, tuitest.Type("!")...)
	cells := m.ctrl.Cells()
	assert.Equal(t, "two!", cells[1].Draft())
	assert.Equal(t, "one", cells[0].Content())
	assert.Equal(t, "three", cells[2].Content())
}

func TestModel_Reload(t *testing.T) {
	m := newTestModel(t, twoReports())
	m = send(t, m, tuitest.KeyTab(), tuitest.KeyEnter())
	m = send(t, m, tuitest.Type("!")...)

	m = send(t, m, reportsLoadedMsg{
		reason: reasonWatch,
		records: []report.Record{
			{Name: "Report 0", Content: "Zero"},
			{Name: "Report 1", Content: "Alpha v2"},
			{Name: "Report 2", Content: "Beta v2"},
		},
	})

	cells := m.ctrl.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, []string{"Edit", "Edit", "Save"}, labels(m))
	assert.Equal(t, "Alpha v2", cells[1].Content(), "idle cell takes new content")
	assert.Equal(t, "Beta!", cells[2].Draft(), "editing cell keeps its draft")
	assert.Equal(t, 2, m.ctrl.Focus(), "focus follows the edited report")
	assert.Contains(t, m.status, "1 added")
}

func TestModel_LoadError(t *testing.T) {
	m := newTestModel(t, twoReports())

	m = send(t, m, reportsLoadedMsg{reason: reasonManual, err: errors.New("disk on fire")})

	assert.Equal(t, 2, m.ctrl.Len(), "previous reports stay")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "disk on fire")
}

func TestModel_Keys(t *testing.T) {
	t.Run("q quits outside edit", func(t *testing.T) {
		m := newTestModel(t, twoReports())
		next, cmd := m.Update(tuitest.KeyPress('q'))
		require.NotNil(t, cmd)
		assert.True(t, next.(Model).quitting)
	})

	t.Run("ctrl+c quits while editing", func(t *testing.T) {
		m := newTestModel(t, twoReports())
		m = send(t, m, tuitest.KeyEnter())
		next, cmd := m.Update(tuitest.KeyCtrl('c'))
		require.NotNil(t, cmd)
		assert.True(t, next.(Model).quitting)
	})

	t.Run("arrows move focus and wrap", func(t *testing.T) {
		m := newTestModel(t, twoReports())
		assert.Equal(t, 0, m.ctrl.Focus())

		m = send(t, m, tuitest.KeyDown())
		assert.Equal(t, 1, m.ctrl.Focus())

		m = send(t, m, tuitest.KeyDown())
		assert.Equal(t, 0, m.ctrl.Focus())

		m = send(t, m, tuitest.KeyUp())
		assert.Equal(t, 1, m.ctrl.Focus())
	})

	t.Run("help swallows keys until closed", func(t *testing.T) {
		m := newTestModel(t, twoReports())
		m = send(t, m, tuitest.WindowSize(80, 30), tuitest.KeyPress('?'))
		require.True(t, m.showHelp)
		assert.Contains(t, tuitest.StripANSI(m.Render()), "Keyboard shortcuts")

		m = send(t, m, tuitest.KeyEnter())
		assert.Equal(t, []string{"Edit", "Edit"}, labels(m))

		m = send(t, m, tuitest.KeyEsc())
		assert.False(t, m.showHelp)
	})

	t.Run("reload issues a load", func(t *testing.T) {
		m := newTestModel(t, twoReports())
		_, cmd := m.Update(tuitest.KeyPress('r'))
		require.NotNil(t, cmd)

		msg, ok := cmd().(reportsLoadedMsg)
		require.True(t, ok)
		require.NoError(t, msg.err)
		assert.Equal(t, reasonManual, msg.reason)
		assert.Len(t, msg.records, 2)
	})
}

func TestModel_Render(t *testing.T) {
	m := newTestModel(t, twoReports())
	m = send(t, m, tuitest.WindowSize(60, 40))

	out := tuitest.StripANSI(m.Render())
	assert.Contains(t, out, "Reports Class 7K")
	assert.Contains(t, out, "Report 1")
	assert.Contains(t, out, "2 reports")

	m = send(t, m, tuitest.KeyEnter())
	out = tuitest.StripANSI(m.Render())
	assert.Contains(t, out, "1 editing")
	assert.Contains(t, out, "save")
}

func TestModel_Init(t *testing.T) {
	changes := make(chan struct{}, 1)
	m := New(Options{Provider: provider.Static(twoReports()), Changes: changes})
	require.NotNil(t, m.Init())

	changes <- struct{}{}
	msg := waitForChange(changes)()
	assert.Equal(t, sourceChangedMsg{}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
}
