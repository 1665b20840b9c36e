package customer

import (
	"database/sql"
	"strings"

	"churnboard/domain/core"
)

// Status is the cancellation state of a customer.
type Status int

const (
	Active   Status = 0
	Canceled Status = 1
)

func (s Status) String() string {
	if s == Canceled {
		return "canceled"
	}
	return "active"
}

// Column names of the required schema, in declared order.
const (
	ColCustomerID       = "customer_id"
	ColRegistrationDate = "registration_date"
	ColAge              = "age"
	ColGender           = "gender"
	ColTenureMonths     = "tenure_months"
	ColUsageFrequency   = "usage_frequency"
	ColSupportContacts  = "support_contacts"
	ColDaysLate         = "days_late"
	ColSubscriptionTier = "subscription_tier"
	ColContractDuration = "contract_duration"
	ColTotalSpent       = "total_spent"
	ColCanceled         = "canceled"
)

// RequiredColumns returns the required schema in declared order.
// A fresh slice is returned on every call so callers may modify it.
func RequiredColumns() []string {
	return []string{
		ColCustomerID,
		ColRegistrationDate,
		ColAge,
		ColGender,
		ColTenureMonths,
		ColUsageFrequency,
		ColSupportContacts,
		ColDaysLate,
		ColSubscriptionTier,
		ColContractDuration,
		ColTotalSpent,
		ColCanceled,
	}
}

// Record is one customer row.
type Record struct {
	CustomerID int64 `json:"customer_id" db:"customer_id"`

	// RegistrationDate is the text as loaded. RegisteredAt is only populated
	// by normalization; Valid=false marks a missing or malformed date.
	RegistrationDate string       `json:"registration_date" db:"registration_date"`
	RegisteredAt     sql.NullTime `json:"-" db:"-"`

	Age              int     `json:"age" db:"age"`
	Gender           string  `json:"gender" db:"gender"`
	TenureMonths     int     `json:"tenure_months" db:"tenure_months"`
	UsageFrequency   int     `json:"usage_frequency" db:"usage_frequency"`
	SupportContacts  int     `json:"support_contacts" db:"support_contacts"`
	DaysLate         int     `json:"days_late" db:"days_late"`
	SubscriptionTier string  `json:"subscription_tier" db:"subscription_tier"`
	ContractDuration string  `json:"contract_duration" db:"contract_duration"`
	TotalSpent       float64 `json:"total_spent" db:"total_spent"`
	Canceled         Status  `json:"canceled" db:"canceled"`

	// Extra holds values of columns outside the required schema.
	Extra map[string]string `json:"extra,omitempty" db:"-"`
}

// IsCanceled reports whether the customer has churned.
func (r Record) IsCanceled() bool {
	return r.Canceled == Canceled
}

// Table is an ordered snapshot of customer records.
// A nil *Table means no data could be loaded.
type Table struct {
	ID         core.SnapshotID `json:"id"`
	Columns    []string        `json:"columns"`
	Records    []Record        `json:"records"`
	Normalized bool            `json:"normalized"`
}

// NewTable creates a table with a fresh snapshot ID.
func NewTable(columns []string, records []Record) *Table {
	return &Table{
		ID:      core.NewSnapshotID(),
		Columns: columns,
		Records: records,
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the header contains name (exact, case-sensitive).
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithRecords returns a table sharing t's snapshot metadata but holding records.
// t is left untouched.
func (t *Table) WithRecords(records []Record) *Table {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	return &Table{
		ID:         t.ID,
		Columns:    columns,
		Records:    records,
		Normalized: t.Normalized,
	}
}

// ParseStatus parses a cancellation flag cell. ok is false for anything that
// is not a recognizable 0/1 encoding; such cells are treated as Active.
func ParseStatus(s string) (status Status, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true":
		return Canceled, true
	case "0", "0.0", "false":
		return Active, true
	default:
		return Active, false
	}
}
