package customer

import (
	"strings"
	"time"

	"churnboard/domain/core"
)

const DateLayout = "2006-01-02"

// Filter selects a subset of a table. Zero Start/End are unbounded and an
// empty Contracts list keeps every contract type.
type Filter struct {
	Start     time.Time `json:"start,omitempty"`
	End       time.Time `json:"end,omitempty"`
	Contracts []string  `json:"contracts,omitempty"`
}

// HasDateRange reports whether any date bound is set.
func (f Filter) HasDateRange() bool {
	return !f.Start.IsZero() || !f.End.IsZero()
}

// IsEmpty reports whether the filter keeps every row.
func (f Filter) IsEmpty() bool {
	return !f.HasDateRange() && len(f.Contracts) == 0
}

// Validate checks that the bounds are ordered.
func (f Filter) Validate() error {
	if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End) {
		return core.NewFilterError("start", "start date is after end date")
	}
	return nil
}

// Params returns the filter as hashable parameters.
func (f Filter) Params() map[string]interface{} {
	params := map[string]interface{}{
		"contracts": f.Contracts,
	}
	if !f.Start.IsZero() {
		params["start"] = f.Start.Format(DateLayout)
	}
	if !f.End.IsZero() {
		params["end"] = f.End.Format(DateLayout)
	}
	return params
}

// Hash keys cached results for this filter over snapshot.
func (f Filter) Hash(snapshot core.SnapshotID) core.FilterHash {
	return core.ComputeFilterHash(snapshot, f.Params())
}

// ParseFilter builds a filter from text bounds in DateLayout. Blank bounds and
// blank contract names are ignored. The result is validated.
func ParseFilter(start, end string, contracts []string) (Filter, error) {
	var f Filter
	var err error
	if f.Start, err = parseBound("start", start); err != nil {
		return Filter{}, err
	}
	if f.End, err = parseBound("end", end); err != nil {
		return Filter{}, err
	}
	for _, c := range contracts {
		if c = strings.TrimSpace(c); c != "" {
			f.Contracts = append(f.Contracts, c)
		}
	}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func parseBound(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, core.NewFilterError(field, "expected YYYY-MM-DD, got "+raw)
	}
	return d, nil
}
