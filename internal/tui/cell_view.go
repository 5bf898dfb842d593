package tui

import (
	"charm.land/bubbles/v2/textarea"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/internal/core/styles"
)

// cellChrome is the horizontal space taken by a cell's border and padding.
const cellChrome = 4

// CellView renders one report cell as a bordered box: the name label, the
// content area and the control button.
type CellView struct {
	Cell    *report.Cell
	Focused bool
	Width   int

	// Editor is the edit field of a cell in edit mode. It is ignored in
	// view mode.
	Editor *textarea.Model

	// Markdown renders read-only content when set.
	Markdown *markdownRenderer
}

// Render returns the styled box.
func (v CellView) Render() string {
	name := styles.CellNameStyle.Render(v.Cell.Name())

	body := lipgloss.JoinVertical(lipgloss.Left,
		name,
		v.renderContent(),
		"",
		v.renderButton(),
	)

	return v.boxStyle().Width(v.Width).Render(body)
}

func (v CellView) renderContent() string {
	if v.Cell.Editing() && v.Editor != nil {
		return v.Editor.View()
	}

	content := v.Cell.Content()
	if v.Markdown != nil {
		return v.Markdown.Render(content, v.innerWidth())
	}
	return styles.CellContentStyle.Width(v.innerWidth()).Render(content)
}

func (v CellView) renderButton() string {
	label := "[ " + v.Cell.Label() + " ]"
	if v.Focused {
		return styles.ButtonFocusedStyle.Render(label)
	}
	return styles.ButtonStyle.Render(label)
}

func (v CellView) boxStyle() lipgloss.Style {
	switch {
	case v.Cell.Editing():
		return styles.CellEditingStyle
	case v.Focused:
		return styles.CellFocusedStyle
	default:
		return styles.CellStyle
	}
}

func (v CellView) innerWidth() int {
	return max(v.Width-cellChrome, 1)
}

// newEditor creates the edit field for a cell entering edit mode.
func newEditor(value string, width, height int) textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(max(width-cellChrome, 1))
	ta.SetHeight(height)
	ta.SetValue(value)
	return ta
}
