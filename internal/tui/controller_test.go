package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reportbox/internal/core/report"
)

func twoReports() []report.Record {
	return []report.Record{
		{Name: "Report 1", Content: "Alpha"},
		{Name: "Report 2", Content: "Beta"},
	}
}

func TestController_Focus(t *testing.T) {
	t.Run("empty has no focus", func(t *testing.T) {
		c := NewController(report.SaveCommit)
		c.Apply(nil)

		assert.Equal(t, -1, c.Focus())
		assert.Nil(t, c.Focused())
		c.Next()
		assert.Equal(t, -1, c.Focus())

		_, ok := c.Press()
		assert.False(t, ok)
	})

	t.Run("first load focuses first report", func(t *testing.T) {
		c := NewController(report.SaveCommit)
		c.Apply(twoReports())

		assert.Equal(t, 0, c.Focus())
		assert.Equal(t, "Report 1", c.Focused().Name())
	})

	t.Run("next and prev wrap", func(t *testing.T) {
		c := NewController(report.SaveCommit)
		c.Apply(twoReports())

		c.Next()
		assert.Equal(t, 1, c.Focus())
		c.Next()
		assert.Equal(t, 0, c.Focus())
		c.Prev()
		assert.Equal(t, 1, c.Focus())
	})

	t.Run("set focus bounds", func(t *testing.T) {
		c := NewController(report.SaveCommit)
		c.Apply(twoReports())

		assert.True(t, c.SetFocus(1))
		assert.False(t, c.SetFocus(2))
		assert.False(t, c.SetFocus(-1))
		assert.Equal(t, 1, c.Focus())
	})
}

func TestController_Apply(t *testing.T) {
	t.Run("focus follows the same report after insertion", func(t *testing.T) {
		c := NewController(report.SaveCommit)
		c.Apply(twoReports())
		require.True(t, c.SetFocus(1))

		c.Apply([]report.Record{
			{Name: "Report 0", Content: "new"},
			{Name: "Report 1", Content: "Alpha"},
			{Name: "Report 2", Content: "Beta"},
		})

		assert.Equal(t, 2, c.Focus())
		assert.Equal(t, "Report 2", c.Focused().Name())
	})

	t.Run("focus clamps when the focused report is removed", func(t *testing.T) {
		c := NewController(report.SaveCommit)
		c.Apply(twoReports())
		require.True(t, c.SetFocus(1))

		c.Apply(twoReports()[:1])

		assert.Equal(t, 0, c.Focus())
	})

	t.Run("press toggles only the focused cell", func(t *testing.T) {
		c := NewController(report.SaveCommit)
		c.Apply(twoReports())
		require.True(t, c.SetFocus(1))

		mode, ok := c.Press()
		require.True(t, ok)
		assert.Equal(t, report.ModeEdit, mode)

		cells := c.Cells()
		assert.Equal(t, report.ModeView, cells[0].Mode())
		assert.Equal(t, report.ModeEdit, cells[1].Mode())
	})
}
