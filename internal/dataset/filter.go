package dataset

import (
	"sort"
	"time"

	"churnboard/domain/core"
	"churnboard/domain/customer"
)

// ApplyFilter returns the records of t that pass f, in table order.
// Date bounds are inclusive and need a normalized table; rows without a
// valid date are dropped whenever a bound is set. An empty contract list
// keeps every contract type.
func ApplyFilter(t *customer.Table, f customer.Filter) (*customer.Table, error) {
	if t == nil {
		return nil, core.ErrSourceNotFound
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.HasDateRange() && !t.Normalized {
		return nil, core.ErrNotNormalized
	}
	if f.IsEmpty() {
		return t.WithRecords(append([]customer.Record(nil), t.Records...)), nil
	}

	contracts := make(map[string]bool, len(f.Contracts))
	for _, c := range f.Contracts {
		contracts[c] = true
	}

	start, end := dayOf(f.Start), dayOf(f.End)
	records := make([]customer.Record, 0, len(t.Records))
	for _, rec := range t.Records {
		if len(contracts) > 0 && !contracts[rec.ContractDuration] {
			continue
		}
		if f.HasDateRange() {
			if !rec.RegisteredAt.Valid {
				continue
			}
			d := rec.RegisteredAt.Time
			if !start.IsZero() && d.Before(start) {
				continue
			}
			if !end.IsZero() && d.After(end) {
				continue
			}
		}
		records = append(records, rec)
	}

	return t.WithRecords(records), nil
}

// Options describes the values available to filter controls.
type Options struct {
	Contracts []string  `json:"contracts"`
	MinDate   time.Time `json:"min_date,omitempty"`
	MaxDate   time.Time `json:"max_date,omitempty"`
	// InvalidDates counts rows whose registration date is missing or malformed.
	InvalidDates int `json:"invalid_dates"`
}

// FilterOptions collects the sorted distinct contract types and the range of
// valid registration dates of a normalized table.
func FilterOptions(t *customer.Table) Options {
	var opts Options
	if t == nil {
		return opts
	}

	seen := make(map[string]bool)
	for _, rec := range t.Records {
		if rec.ContractDuration != "" && !seen[rec.ContractDuration] {
			seen[rec.ContractDuration] = true
			opts.Contracts = append(opts.Contracts, rec.ContractDuration)
		}
		if !t.Normalized {
			continue
		}
		if !rec.RegisteredAt.Valid {
			opts.InvalidDates++
			continue
		}
		d := rec.RegisteredAt.Time
		if opts.MinDate.IsZero() || d.Before(opts.MinDate) {
			opts.MinDate = d
		}
		if opts.MaxDate.IsZero() || d.After(opts.MaxDate) {
			opts.MaxDate = d
		}
	}
	sort.Strings(opts.Contracts)
	return opts
}

// Preview returns the first n records in table order.
func Preview(t *customer.Table, n int) []customer.Record {
	if t == nil || n <= 0 {
		return nil
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	out := make([]customer.Record, n)
	copy(out, t.Records[:n])
	return out
}

func dayOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return truncateDay(t)
}
