package dashboard

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"churnboard/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummaryViewEncodesNaNAsNull(t *testing.T) {
	svc, _, _ := loadedService(t, fixture())
	sum, err := svc.Summarize(context.Background(), customer.Filter{Contracts: []string{"Annual"}})
	require.NoError(t, err)
	require.True(t, math.IsNaN(sum.Insights.AvgDelayCanceled))

	view := NewSummaryView(sum)
	assert.Nil(t, view.Insights.AvgDelayCanceled)
	require.NotNil(t, view.Insights.AvgDelayActive)
	assert.Equal(t, 10.0, *view.Insights.AvgDelayActive)
	assert.Equal(t, "R$0,00", view.Metrics.LostRevenueDisplay)
	assert.Equal(t, []string{"Annual"}, view.Filter.Contracts)
	assert.Equal(t, "2024-01-10", view.Options.MinDate)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"avg_delay_canceled":null`)
}

func TestNewFilterView(t *testing.T) {
	v := NewFilterView(customer.Filter{End: day("2024-12-31")})
	assert.Equal(t, "", v.Start)
	assert.Equal(t, "2024-12-31", v.End)
	assert.Equal(t, []string{}, v.Contracts)
}
