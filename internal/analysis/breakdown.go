package analysis

import (
	"math"
	"sort"

	"churnboard/domain/customer"

	"github.com/montanaflynn/stats"
)

// DelayDistribution summarizes days_late separately for canceled and active
// customers, canceled first. Statistics of an empty subset are NaN.
func DelayDistribution(t *customer.Table) []customer.DelayStats {
	byStatus := map[customer.Status][]float64{
		customer.Canceled: nil,
		customer.Active:   nil,
	}
	if t != nil {
		for _, rec := range t.Records {
			byStatus[rec.Canceled] = append(byStatus[rec.Canceled], float64(rec.DaysLate))
		}
	}

	out := make([]customer.DelayStats, 0, 2)
	for _, status := range []customer.Status{customer.Canceled, customer.Active} {
		data := byStatus[status]
		ds := customer.DelayStats{
			Status: status,
			Count:  len(data),
			Mean:   math.NaN(),
			Median: math.NaN(),
			P90:    math.NaN(),
		}
		if len(data) > 0 {
			ds.Mean, _ = stats.Mean(data)
			ds.Median, _ = stats.Median(data)
			ds.P90, _ = stats.PercentileNearestRank(data, 90)
		}
		out = append(out, ds)
	}
	return out
}

// ChurnBy groups t by a categorical column and returns the churn rate of each
// value, ordered by value. Supported columns are gender, subscription_tier
// and contract_duration; ok is false for any other column.
func ChurnBy(t *customer.Table, column string) (groups []customer.GroupChurn, ok bool) {
	key, ok := categoricalKey(column)
	if !ok {
		return nil, false
	}

	index := make(map[string]*customer.GroupChurn)
	if t != nil {
		for _, rec := range t.Records {
			v := key(rec)
			g, exists := index[v]
			if !exists {
				g = &customer.GroupChurn{Value: v}
				index[v] = g
			}
			g.Customers++
			if rec.IsCanceled() {
				g.Canceled++
			}
		}
	}

	groups = make([]customer.GroupChurn, 0, len(index))
	for _, g := range index {
		g.ChurnRate = float64(g.Canceled) / float64(g.Customers) * 100
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	return groups, true
}

func categoricalKey(column string) (func(customer.Record) string, bool) {
	switch column {
	case customer.ColGender:
		return func(r customer.Record) string { return r.Gender }, true
	case customer.ColSubscriptionTier:
		return func(r customer.Record) string { return r.SubscriptionTier }, true
	case customer.ColContractDuration:
		return func(r customer.Record) string { return r.ContractDuration }, true
	default:
		return nil, false
	}
}
