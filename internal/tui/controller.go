package tui

import "github.com/colonyops/reportbox/internal/core/report"

// Controller owns the report collection and the focus cursor. It has no
// terminal dependencies.
type Controller struct {
	coll  *report.Collection
	focus int
}

// NewController creates an empty controller.
func NewController(policy report.SavePolicy) *Controller {
	return &Controller{coll: report.NewCollection(policy), focus: -1}
}

// Apply re-derives the collection from records. Focus stays on the same
// report when it survives, otherwise it is clamped to the new range.
func (c *Controller) Apply(records []report.Record) report.DeriveResult {
	var focusedKey string
	if cell := c.Focused(); cell != nil {
		focusedKey = cell.Key()
	}

	res := c.coll.Derive(records)

	if c.coll.Len() == 0 {
		c.focus = -1
		return res
	}
	if focusedKey != "" && c.SetFocus(c.coll.Index(focusedKey)) {
		return res
	}
	c.SetFocus(min(max(c.focus, 0), c.coll.Len()-1))

	return res
}

// Collection returns the underlying collection.
func (c *Controller) Collection() *report.Collection { return c.coll }

// Len returns the number of reports.
func (c *Controller) Len() int { return c.coll.Len() }

// Cells returns the cells in display order.
func (c *Controller) Cells() []*report.Cell { return c.coll.Cells() }

// Focus returns the focused index, or -1 when there are no reports.
func (c *Controller) Focus() int { return c.focus }

// Focused returns the focused cell, or nil.
func (c *Controller) Focused() *report.Cell { return c.coll.At(c.focus) }

// SetFocus moves focus to i. It returns false when i is out of range.
func (c *Controller) SetFocus(i int) bool {
	if i < 0 || i >= c.coll.Len() {
		return false
	}
	c.focus = i
	return true
}

// Next moves focus forward, wrapping at the end.
func (c *Controller) Next() { c.move(1) }

// Prev moves focus backward, wrapping at the start.
func (c *Controller) Prev() { c.move(-1) }

func (c *Controller) move(delta int) {
	n := c.coll.Len()
	if n == 0 {
		return
	}
	c.focus = ((c.focus+delta)%n + n) % n
}

// Press toggles the focused cell and returns its new mode.
func (c *Controller) Press() (report.Mode, bool) {
	return c.coll.Toggle(c.focus)
}
