package provider

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/reportbox/internal/core/report"
)

// ValidateRecords checks records against the provider contract: every record
// has a name, and provider keys are unique when given. Content may be empty.
func ValidateRecords(records []report.Record) error {
	var errs criterio.FieldErrorsBuilder

	seen := make(map[string]int, len(records))
	for i, rec := range records {
		field := fmt.Sprintf("reports[%d]", i)

		if strings.TrimSpace(rec.Name) == "" {
			errs = errs.Append(field+".name", fmt.Errorf("name is required"))
		}

		if rec.Key == "" {
			continue
		}
		if first, dup := seen[rec.Key]; dup {
			errs = errs.Append(field+".id", fmt.Errorf("duplicate id %q (first used by reports[%d])", rec.Key, first))
			continue
		}
		seen[rec.Key] = i
	}

	return errs.ToError()
}
