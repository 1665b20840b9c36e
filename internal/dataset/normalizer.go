package dataset

import (
	"database/sql"
	"strings"
	"time"

	"churnboard/domain/customer"
)

// dateLayouts are tried in order when normalizing registration dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate parses a registration date cell into a UTC calendar date.
// Blank or unparseable text yields Valid=false.
func ParseDate(s string) sql.NullTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullTime{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return sql.NullTime{Time: truncateDay(t), Valid: true}
		}
	}
	return sql.NullTime{}
}

// Normalize returns a copy of t whose registration dates are converted to
// comparable values. Malformed dates become the missing marker and leave
// the rest of their row intact. When t has no registration_date column it
// is returned unchanged. t itself is never modified.
func Normalize(t *customer.Table) *customer.Table {
	if t == nil || !t.HasColumn(customer.ColRegistrationDate) {
		return t
	}

	records := make([]customer.Record, len(t.Records))
	for i, rec := range t.Records {
		rec.RegisteredAt = ParseDate(rec.RegistrationDate)
		rec.Extra = cloneExtra(rec.Extra)
		records[i] = rec
	}

	out := t.WithRecords(records)
	out.Normalized = true
	return out
}

// truncateDay keeps the calendar date as written, whatever its offset.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func cloneExtra(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
