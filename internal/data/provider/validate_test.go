package provider

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reportbox/internal/core/report"
)

func TestValidateRecords(t *testing.T) {
	tests := []struct {
		name       string
		records    []report.Record
		wantFields []string
	}{
		{
			name:    "valid",
			records: []report.Record{{Name: "a"}, {Name: "a", Content: "dup names are fine"}},
		},
		{
			name:    "empty",
			records: nil,
		},
		{
			name:       "missing name",
			records:    []report.Record{{Name: "a"}, {Name: "  ", Content: "x"}},
			wantFields: []string{"reports[1].name"},
		},
		{
			name:       "duplicate id",
			records:    []report.Record{{Key: "1", Name: "a"}, {Key: "2", Name: "b"}, {Key: "1", Name: "c"}},
			wantFields: []string{"reports[2].id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecords(tt.records)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)

			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
