package report

// SavePolicy decides what leaving edit mode does with the edited text.
// Neither policy writes anything back to the provider.
type SavePolicy string

const (
	// SaveCommit keeps the edited text as the cell's shown content.
	SaveCommit SavePolicy = "commit"
	// SaveDiscard drops the edited text; the shown content always derives
	// from the record.
	SaveDiscard SavePolicy = "discard"
)

// DefaultSavePolicy is used when no policy is configured.
const DefaultSavePolicy = SaveCommit

// IsValid reports whether p is a known policy.
func (p SavePolicy) IsValid() bool {
	switch p {
	case SaveCommit, SaveDiscard:
		return true
	default:
		return false
	}
}
