package report

import "strconv"

// Keys returns the stable identity of each record, in order.
//
// A record with a provider key is identified by that key. Otherwise it is
// identified by its name and its occurrence among records sharing the name,
// so inserting or removing a differently named record never changes the
// identity of another record. Repeated provider keys are disambiguated the
// same way.
func Keys(records []Record) []string {
	keys := make([]string, len(records))
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		base := "name:" + rec.Name
		if rec.Key != "" {
			base = "id:" + rec.Key
		}

		n := seen[base]
		seen[base] = n + 1
		keys[i] = base + "#" + strconv.Itoa(n)
	}

	return keys
}
