package dataset

import (
	"testing"

	"churnboard/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRow(id, date, canceled string) RawRow {
	return RawRow{
		"customer_id":       id,
		"registration_date": date,
		"age":               "34",
		"gender":            "F",
		"tenure_months":     "12",
		"usage_frequency":   "20",
		"support_contacts":  "2",
		"days_late":         "15",
		"subscription_tier": "Premium",
		"contract_duration": "Monthly",
		"total_spent":       "2500.50",
		"canceled":          canceled,
	}
}

func TestFromRows_ParsesTypedRecord(t *testing.T) {
	headers := customer.RequiredColumns()
	tbl, report := FromRows(headers, []RawRow{fullRow("7", "2024-03-05", "1")})

	require.Equal(t, 1, tbl.Len())
	rec := tbl.Records[0]
	assert.Equal(t, int64(7), rec.CustomerID)
	assert.Equal(t, "2024-03-05", rec.RegistrationDate)
	assert.False(t, rec.RegisteredAt.Valid, "dates are only parsed by Normalize")
	assert.Equal(t, 34, rec.Age)
	assert.Equal(t, "F", rec.Gender)
	assert.Equal(t, 12, rec.TenureMonths)
	assert.Equal(t, 20, rec.UsageFrequency)
	assert.Equal(t, 2, rec.SupportContacts)
	assert.Equal(t, 15, rec.DaysLate)
	assert.Equal(t, "Premium", rec.SubscriptionTier)
	assert.Equal(t, "Monthly", rec.ContractDuration)
	assert.InDelta(t, 2500.50, rec.TotalSpent, 1e-9)
	assert.Equal(t, customer.Canceled, rec.Canceled)
	assert.Nil(t, rec.Extra)

	assert.Equal(t, 1, report.Rows)
	assert.Equal(t, 0, report.Malformed())
	assert.False(t, tbl.ID.String() == "")
}

func TestFromRows_MalformedCellsAreLocal(t *testing.T) {
	row := fullRow("1", "2024-01-01", "maybe")
	row["age"] = "thirty"
	row["total_spent"] = ""
	row["tenure_months"] = "24.0"

	tbl, report := FromRows(customer.RequiredColumns(), []RawRow{row, fullRow("2", "2024-01-02", "0")})

	require.Equal(t, 2, tbl.Len())
	bad := tbl.Records[0]
	assert.Equal(t, 0, bad.Age)
	assert.Equal(t, 0.0, bad.TotalSpent)
	assert.Equal(t, 24, bad.TenureMonths)
	assert.Equal(t, customer.Active, bad.Canceled)
	assert.Equal(t, "F", bad.Gender, "rest of the row stays usable")

	assert.Equal(t, 3, report.Malformed())
	assert.Equal(t, 1, report.MalformedCells["age"])
	assert.Equal(t, 1, report.MalformedCells["total_spent"])
	assert.Equal(t, 1, report.MalformedCells["canceled"])

	assert.Equal(t, int64(2), tbl.Records[1].CustomerID)
}

func TestFromRows_NegativeValuesAreMalformed(t *testing.T) {
	row := fullRow("1", "2024-01-01", "0")
	row["days_late"] = "-5"
	row["tenure_months"] = "-1"
	row["total_spent"] = "-10.5"
	row["support_contacts"] = "0"

	tbl, report := FromRows(customer.RequiredColumns(), []RawRow{row})

	rec := tbl.Records[0]
	assert.Equal(t, 0, rec.DaysLate)
	assert.Equal(t, 0, rec.TenureMonths)
	assert.Equal(t, 0.0, rec.TotalSpent)
	assert.Equal(t, 0, rec.SupportContacts)
	assert.Equal(t, 20, rec.UsageFrequency)

	assert.Equal(t, 3, report.Malformed())
	assert.Equal(t, 1, report.MalformedCells["days_late"])
	assert.Equal(t, 1, report.MalformedCells["tenure_months"])
	assert.Equal(t, 1, report.MalformedCells["total_spent"])
}

func TestFromRows_MissingColumnsAreNotMalformed(t *testing.T) {
	headers := []string{"customer_id", "canceled"}
	tbl, report := FromRows(headers, []RawRow{{"customer_id": "1", "canceled": "1"}})

	assert.Equal(t, headers, tbl.Columns)
	assert.Equal(t, 0, report.Malformed())
	assert.Equal(t, customer.Canceled, tbl.Records[0].Canceled)
}

func TestFromRows_KeepsExtraColumns(t *testing.T) {
	headers := append(customer.RequiredColumns(), "segment")
	row := fullRow("1", "2024-01-01", "0")
	row["segment"] = "smb"

	tbl, _ := FromRows(headers, []RawRow{row})

	assert.Equal(t, "smb", tbl.Records[0].Extra["segment"])
	assert.True(t, tbl.HasColumn("segment"))
}
