package report

// Mode is the display mode of a cell.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

// Control labels. The label names the action a press performs next.
const (
	LabelEdit = "Edit"
	LabelSave = "Save"
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeView:
		return "view"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Label returns the control label for the mode: "Edit" while viewing and
// "Save" while editing.
func (m Mode) Label() string {
	if m == ModeEdit {
		return LabelSave
	}
	return LabelEdit
}

// Next returns the mode a toggle moves to.
func (m Mode) Next() Mode {
	if m == ModeEdit {
		return ModeView
	}
	return ModeEdit
}
