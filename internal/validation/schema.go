package validation

import (
	"churnboard/domain/customer"
)

// ValidateSchema checks a table against the required schema.
//
// A nil table means nothing was loaded: it is invalid with an empty missing
// list, which callers must read as a loading problem rather than a schema
// problem. Otherwise missing holds every absent required column in declared
// order, and the table is valid iff missing is empty. Extra columns are ignored.
func ValidateSchema(t *customer.Table) (valid bool, missing []string) {
	if t == nil {
		return false, []string{}
	}

	present := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		present[c] = struct{}{}
	}

	missing = []string{}
	for _, col := range customer.RequiredColumns() {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return len(missing) == 0, missing
}
