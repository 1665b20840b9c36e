package dataset

import (
	"strconv"

	"churnboard/domain/customer"
)

// Cells renders a record back to text, one cell per column in the given order.
// Columns outside the required schema are read from Extra.
func Cells(rec customer.Record, columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = cell(rec, col)
	}
	return out
}

// ToRow renders a record as a RawRow keyed by the given columns.
func ToRow(rec customer.Record, columns []string) RawRow {
	row := make(RawRow, len(columns))
	for _, col := range columns {
		row[col] = cell(rec, col)
	}
	return row
}

func cell(rec customer.Record, col string) string {
	switch col {
	case customer.ColCustomerID:
		return strconv.FormatInt(rec.CustomerID, 10)
	case customer.ColRegistrationDate:
		return rec.RegistrationDate
	case customer.ColAge:
		return strconv.Itoa(rec.Age)
	case customer.ColGender:
		return rec.Gender
	case customer.ColTenureMonths:
		return strconv.Itoa(rec.TenureMonths)
	case customer.ColUsageFrequency:
		return strconv.Itoa(rec.UsageFrequency)
	case customer.ColSupportContacts:
		return strconv.Itoa(rec.SupportContacts)
	case customer.ColDaysLate:
		return strconv.Itoa(rec.DaysLate)
	case customer.ColSubscriptionTier:
		return rec.SubscriptionTier
	case customer.ColContractDuration:
		return rec.ContractDuration
	case customer.ColTotalSpent:
		return strconv.FormatFloat(rec.TotalSpent, 'f', -1, 64)
	case customer.ColCanceled:
		return strconv.Itoa(int(rec.Canceled))
	default:
		return rec.Extra[col]
	}
}
