// Package dataset turns raw tabular rows into customer tables and derives
// normalized and filtered copies of them. Nothing here mutates its input.
package dataset

import (
	"math"
	"strconv"
	"strings"

	"churnboard/domain/customer"
)

// RawRow is one data row keyed by header name, as produced by the loaders.
type RawRow map[string]string

// LoadReport counts cells that could not be parsed during conversion.
// Malformed cells fall back to a zero value; they never fail the load.
// Negative counts, delays and amounts are malformed too.
type LoadReport struct {
	Rows           int            `json:"rows"`
	MalformedCells map[string]int `json:"malformed_cells,omitempty"`
}

// Malformed returns the total number of malformed cells.
func (r LoadReport) Malformed() int {
	n := 0
	for _, c := range r.MalformedCells {
		n += c
	}
	return n
}

func (r *LoadReport) flag(column string) {
	if r.MalformedCells == nil {
		r.MalformedCells = make(map[string]int)
	}
	r.MalformedCells[column]++
}

// FromRows builds a customer table from a header and its rows. Headers are
// kept as given (exact, case-sensitive); required columns that are absent
// leave zero values behind and are reported by schema validation, not here.
func FromRows(headers []string, rows []RawRow) (*customer.Table, LoadReport) {
	report := LoadReport{Rows: len(rows)}

	columns := make([]string, len(headers))
	copy(columns, headers)

	required := make(map[string]bool)
	for _, c := range customer.RequiredColumns() {
		required[c] = true
	}
	present := make(map[string]bool, len(headers))
	var extras []string
	for _, h := range headers {
		present[h] = true
		if !required[h] {
			extras = append(extras, h)
		}
	}

	records := make([]customer.Record, 0, len(rows))
	for _, row := range rows {
		p := rowParser{row: row, present: present, report: &report}

		rec := customer.Record{
			CustomerID:       p.integer64(customer.ColCustomerID),
			RegistrationDate: p.text(customer.ColRegistrationDate),
			Age:              p.integer(customer.ColAge),
			Gender:           p.text(customer.ColGender),
			TenureMonths:     p.count(customer.ColTenureMonths),
			UsageFrequency:   p.count(customer.ColUsageFrequency),
			SupportContacts:  p.count(customer.ColSupportContacts),
			DaysLate:         p.count(customer.ColDaysLate),
			SubscriptionTier: p.text(customer.ColSubscriptionTier),
			ContractDuration: p.text(customer.ColContractDuration),
			TotalSpent:       p.amount(customer.ColTotalSpent),
			Canceled:         p.status(customer.ColCanceled),
		}

		if len(extras) > 0 {
			rec.Extra = make(map[string]string, len(extras))
			for _, h := range extras {
				rec.Extra[h] = row[h]
			}
		}

		records = append(records, rec)
	}

	return customer.NewTable(columns, records), report
}

type rowParser struct {
	row     RawRow
	present map[string]bool
	report  *LoadReport
}

func (p rowParser) text(col string) string {
	return strings.TrimSpace(p.row[col])
}

func (p rowParser) decimal(col string) float64 {
	if !p.present[col] {
		return 0
	}
	v, err := strconv.ParseFloat(p.text(col), 64)
	if err != nil {
		p.report.flag(col)
		return 0
	}
	return v
}

func (p rowParser) integer64(col string) int64 {
	if !p.present[col] {
		return 0
	}
	s := p.text(col)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	// Spreadsheets often hand integers back as "42.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return int64(f)
	}
	p.report.flag(col)
	return 0
}

func (p rowParser) integer(col string) int {
	return int(p.integer64(col))
}

func (p rowParser) count(col string) int {
	v := p.integer(col)
	if v < 0 {
		p.report.flag(col)
		return 0
	}
	return v
}

func (p rowParser) amount(col string) float64 {
	v := p.decimal(col)
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		p.report.flag(col)
		return 0
	}
	return v
}

func (p rowParser) status(col string) customer.Status {
	if !p.present[col] {
		return customer.Active
	}
	s, ok := customer.ParseStatus(p.row[col])
	if !ok {
		p.report.flag(col)
	}
	return s
}
