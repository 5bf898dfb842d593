package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/pkg/tuitest"
)

func TestCellView_Render(t *testing.T) {
	rec := report.Record{Name: "Solly Brown", Content: "This is the report content..."}

	t.Run("view mode", func(t *testing.T) {
		cell := report.NewCell("name:Solly Brown#0", rec, report.SaveCommit)
		out := tuitest.StripANSI(CellView{Cell: cell, Width: 50}.Render())

		assert.Contains(t, out, "Solly Brown")
		assert.Contains(t, out, "This is the report content...")
		assert.Contains(t, out, "[ Edit ]")
	})

	t.Run("edit mode shows the edit field", func(t *testing.T) {
		cell := report.NewCell("name:Solly Brown#0", rec, report.SaveCommit)
		cell.Toggle()
		cell.SetDraft("draft text")

		ed := newEditor(cell.Draft(), 50, 3)
		out := tuitest.StripANSI(CellView{Cell: cell, Width: 50, Editor: &ed, Focused: true}.Render())

		assert.Contains(t, out, "draft text")
		assert.Contains(t, out, "[ Save ]")
		assert.NotContains(t, out, "This is the report content...")
	})

	t.Run("markdown", func(t *testing.T) {
		cell := report.NewCell("k", report.Record{Name: "md", Content: "# Heading\n\nsome **bold** text"}, report.SaveCommit)
		out := tuitest.StripANSI(CellView{Cell: cell, Width: 60, Markdown: newMarkdownRenderer()}.Render())

		assert.Contains(t, out, "Heading")
		assert.Contains(t, out, "bold")
		assert.NotContains(t, out, "**bold**")
	})
}
