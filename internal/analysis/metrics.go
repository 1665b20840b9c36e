// Package analysis computes descriptive churn aggregates over customer tables.
// Every function is pure: it reads the records it is given and returns fresh
// values. Callers pre-filter tables before calling in.
package analysis

import (
	"churnboard/domain/customer"
)

// ComputeMetrics derives the headline KPIs of t.
// An empty (or nil) table yields the all-zero result.
func ComputeMetrics(t *customer.Table) customer.MetricsResult {
	total := t.Len()
	if total == 0 {
		return customer.MetricsResult{}
	}

	var canceled int
	var lost float64
	for _, rec := range t.Records {
		if rec.IsCanceled() {
			canceled++
			lost += rec.TotalSpent
		}
	}

	return customer.MetricsResult{
		Total:       total,
		Canceled:    canceled,
		ChurnRate:   float64(canceled) / float64(total) * 100,
		LostRevenue: lost,
	}
}
