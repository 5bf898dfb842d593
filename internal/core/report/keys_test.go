package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    []string
	}{
		{
			name:    "empty",
			records: nil,
			want:    []string{},
		},
		{
			name: "names",
			records: []Record{
				{Name: "Solly Brown"},
				{Name: "Other Person"},
			},
			want: []string{"name:Solly Brown#0", "name:Other Person#0"},
		},
		{
			name: "duplicate names count occurrences",
			records: []Record{
				{Name: "Sam"},
				{Name: "Alex"},
				{Name: "Sam"},
			},
			want: []string{"name:Sam#0", "name:Alex#0", "name:Sam#1"},
		},
		{
			name: "provider keys win over names",
			records: []Record{
				{Key: "7", Name: "Sam"},
				{Name: "Sam"},
				{Key: "7", Name: "Other"},
			},
			want: []string{"id:7#0", "name:Sam#0", "id:7#1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keys(tt.records))
		})
	}
}

func TestKeys_StableAcrossInsertion(t *testing.T) {
	before := Keys([]Record{{Name: "A"}, {Name: "B"}})
	after := Keys([]Record{{Name: "C"}, {Name: "A"}, {Name: "B"}})

	assert.Equal(t, before[0], after[1])
	assert.Equal(t, before[1], after[2])
}
