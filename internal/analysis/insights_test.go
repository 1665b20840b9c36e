package analysis

import (
	"math"
	"testing"

	"churnboard/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInsights_AverageDelay(t *testing.T) {
	tbl := table(
		row{status: customer.Canceled, daysLate: 30, contract: "Monthly"},
		row{status: customer.Canceled, daysLate: 40, contract: "Monthly"},
		row{status: customer.Active, daysLate: 5, contract: "Annual"},
		row{status: customer.Active, daysLate: 15, contract: "Annual"},
	)

	r := ComputeInsights(tbl)

	assert.Equal(t, 35.0, r.AvgDelayCanceled)
	assert.Equal(t, 10.0, r.AvgDelayActive)
}

func TestComputeInsights_WorstContract(t *testing.T) {
	tbl := table(
		row{status: customer.Canceled, daysLate: 10, contract: "Monthly"},
		row{status: customer.Canceled, daysLate: 20, contract: "Monthly"},
		row{status: customer.Active, daysLate: 5, contract: "Annual"},
		row{status: customer.Active, daysLate: 5, contract: "Annual"},
	)

	r := ComputeInsights(tbl)

	assert.Equal(t, "Monthly", r.WorstContractType)
	churn := r.ChurnMap()
	assert.Equal(t, 100.0, churn["Monthly"])
	assert.Equal(t, 0.0, churn["Annual"])
}

func TestComputeInsights_GroupsOrderedByName(t *testing.T) {
	tbl := table(
		row{status: customer.Canceled, contract: "Quarterly"},
		row{status: customer.Active, contract: "Monthly"},
		row{status: customer.Active, contract: "Annual"},
		row{status: customer.Canceled, contract: "Monthly"},
	)

	r := ComputeInsights(tbl)

	require.Len(t, r.ChurnByContract, 3)
	assert.Equal(t, "Annual", r.ChurnByContract[0].Contract)
	assert.Equal(t, "Monthly", r.ChurnByContract[1].Contract)
	assert.Equal(t, 2, r.ChurnByContract[1].Customers)
	assert.Equal(t, 1, r.ChurnByContract[1].Canceled)
	assert.Equal(t, 50.0, r.ChurnByContract[1].ChurnRate)
	assert.Equal(t, "Quarterly", r.ChurnByContract[2].Contract)
	assert.Equal(t, "Quarterly", r.WorstContractType)
}

func TestComputeInsights_TieBreakFirstInOrder(t *testing.T) {
	// Quarterly and Annual both churn 50%; rows list Quarterly first but
	// groups iterate by name, so Annual wins.
	tbl := table(
		row{status: customer.Canceled, contract: "Quarterly"},
		row{status: customer.Active, contract: "Quarterly"},
		row{status: customer.Active, contract: "Annual"},
		row{status: customer.Canceled, contract: "Annual"},
		row{status: customer.Active, contract: "Monthly"},
	)

	for i := 0; i < 10; i++ {
		assert.Equal(t, "Annual", ComputeInsights(tbl).WorstContractType, "tie-break must be stable")
	}
}

func TestComputeInsights_AllZeroChurn(t *testing.T) {
	tbl := table(
		row{status: customer.Active, contract: "Monthly"},
		row{status: customer.Active, contract: "Annual"},
	)

	r := ComputeInsights(tbl)

	assert.Equal(t, "Annual", r.WorstContractType)
	assert.True(t, math.IsNaN(r.AvgDelayCanceled))
	assert.False(t, math.IsNaN(r.AvgDelayActive))
}

func TestComputeInsights_EmptySubsets(t *testing.T) {
	onlyCanceled := ComputeInsights(table(row{status: customer.Canceled, daysLate: 12, contract: "Monthly"}))
	assert.Equal(t, 12.0, onlyCanceled.AvgDelayCanceled)
	assert.True(t, math.IsNaN(onlyCanceled.AvgDelayActive))

	empty := ComputeInsights(table())
	assert.True(t, math.IsNaN(empty.AvgDelayCanceled))
	assert.True(t, math.IsNaN(empty.AvgDelayActive))
	assert.Equal(t, "", empty.WorstContractType)
	assert.Empty(t, empty.ChurnByContract)

	assert.NotPanics(t, func() { ComputeInsights(nil) })
}
