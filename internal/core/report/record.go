package report

// Record is a single report as supplied by a provider. Records are values;
// the package never mutates one it has been given.
type Record struct {
	// Key is an optional provider-supplied identity. When empty the record
	// is identified by its name and occurrence (see Keys).
	Key     string `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}
