package report

// Cell is the independent display state for one record. The zero value is
// not usable; create cells with NewCell.
type Cell struct {
	key     string
	record  Record
	policy  SavePolicy
	mode    Mode
	content string // text shown in view mode
	draft   string // text in the edit field, only meaningful in edit mode
}

// NewCell creates a cell in view mode showing the record's content.
func NewCell(key string, rec Record, policy SavePolicy) *Cell {
	if !policy.IsValid() {
		policy = DefaultSavePolicy
	}
	return &Cell{
		key:     key,
		record:  rec,
		policy:  policy,
		mode:    ModeView,
		content: rec.Content,
	}
}

// Key returns the stable identity the cell is stored under.
func (c *Cell) Key() string { return c.key }

// Record returns the record the cell was last derived from.
func (c *Cell) Record() Record { return c.record }

// Name returns the record name shown as the cell's label.
func (c *Cell) Name() string { return c.record.Name }

// Mode returns the current display mode.
func (c *Cell) Mode() Mode { return c.mode }

// Editing reports whether the cell is in edit mode.
func (c *Cell) Editing() bool { return c.mode == ModeEdit }

// Label returns the control label for the current mode.
func (c *Cell) Label() string { return c.mode.Label() }

// Content returns the text the read-only view shows.
func (c *Cell) Content() string { return c.content }

// Draft returns the text held by the edit field. Outside edit mode it is
// empty.
func (c *Cell) Draft() string { return c.draft }

// SetDraft records the edit field's text. It is ignored outside edit mode.
func (c *Cell) SetDraft(s string) {
	if c.mode != ModeEdit {
		return
	}
	c.draft = s
}

// Toggle flips the display mode and returns the new mode. Entering edit
// seeds the draft from the shown content; leaving edit applies the save
// policy and clears the draft.
func (c *Cell) Toggle() Mode {
	switch c.mode {
	case ModeView:
		c.draft = c.content
		c.mode = ModeEdit
	case ModeEdit:
		if c.policy == SaveCommit {
			c.content = c.draft
		}
		c.draft = ""
		c.mode = ModeView
	}
	return c.mode
}

// sync points the cell at a re-derived record. An idle cell picks up new
// record content; a cell being edited keeps its draft.
func (c *Cell) sync(rec Record) {
	if rec.Content != c.record.Content && c.mode == ModeView {
		c.content = rec.Content
	}
	c.record = rec
}
