package report

import "github.com/colonyops/reportbox/pkg/kv"

// DeriveResult summarizes what a Derive call did to the collection.
type DeriveResult struct {
	Added   int
	Kept    int
	Removed int
}

// Collection maps an ordered record sequence onto independent cells. Cells
// are held in an arena keyed by stable identity; order is kept separately.
type Collection struct {
	policy SavePolicy
	order  []string
	cells  *kv.Store[string, *Cell]
}

// NewCollection creates an empty collection whose cells use policy.
func NewCollection(policy SavePolicy) *Collection {
	if !policy.IsValid() {
		policy = DefaultSavePolicy
	}
	return &Collection{
		policy: policy,
		cells:  kv.New[string, *Cell](),
	}
}

// Derive rebuilds the collection from records. Cells whose identity is still
// present keep their mode, content and draft; new identities get fresh cells
// in view mode; identities no longer present are released.
func (c *Collection) Derive(records []Record) DeriveResult {
	var res DeriveResult

	keys := Keys(records)
	present := make(map[string]struct{}, len(keys))

	for i, key := range keys {
		present[key] = struct{}{}

		if cell, ok := c.cells.Get(key); ok {
			cell.sync(records[i])
			res.Kept++
			continue
		}

		c.cells.Set(key, NewCell(key, records[i], c.policy))
		res.Added++
	}

	res.Removed = c.cells.Retain(func(key string) bool {
		_, ok := present[key]
		return ok
	})

	c.order = keys
	return res
}

// Policy returns the save policy new cells are created with.
func (c *Collection) Policy() SavePolicy { return c.policy }

// Len returns the number of cells.
func (c *Collection) Len() int { return c.cells.Len() }

// At returns the i-th cell in provider order, or nil when out of range.
func (c *Collection) At(i int) *Cell {
	if i < 0 || i >= len(c.order) {
		return nil
	}
	cell, _ := c.cells.Get(c.order[i])
	return cell
}

// Get returns the cell stored under key.
func (c *Collection) Get(key string) (*Cell, bool) {
	return c.cells.Get(key)
}

// Index returns the position of key in the current order, or -1.
func (c *Collection) Index(key string) int {
	for i, k := range c.order {
		if k == key {
			return i
		}
	}
	return -1
}

// Cells returns the cells in provider order.
func (c *Collection) Cells() []*Cell {
	out := make([]*Cell, 0, len(c.order))
	for _, key := range c.order {
		if cell, ok := c.cells.Get(key); ok {
			out = append(out, cell)
		}
	}
	return out
}

// Toggle presses the control of the i-th cell and returns its new mode. It
// returns false when i is out of range.
func (c *Collection) Toggle(i int) (Mode, bool) {
	cell := c.At(i)
	if cell == nil {
		return ModeView, false
	}
	return cell.Toggle(), true
}

// Editing returns the number of cells currently in edit mode.
func (c *Collection) Editing() int {
	n := 0
	for _, cell := range c.Cells() {
		if cell.Editing() {
			n++
		}
	}
	return n
}
