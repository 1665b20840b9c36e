package analysis

import (
	"math"
	"sort"

	"churnboard/domain/customer"

	"github.com/montanaflynn/stats"
)

// ComputeInsights derives the delay averages by cancellation status and the
// churn rate of every contract type.
//
// Contract groups are ordered by name. The worst contract type is the first
// group in that order reaching the highest churn rate, so ties resolve to the
// lexically smallest contract. Averages over an empty subset are NaN.
func ComputeInsights(t *customer.Table) customer.InsightResult {
	var canceledDelays, activeDelays []float64
	groups := make(map[string]*customer.ContractChurn)

	if t != nil {
		for _, rec := range t.Records {
			g, ok := groups[rec.ContractDuration]
			if !ok {
				g = &customer.ContractChurn{Contract: rec.ContractDuration}
				groups[rec.ContractDuration] = g
			}
			g.Customers++

			if rec.IsCanceled() {
				g.Canceled++
				canceledDelays = append(canceledDelays, float64(rec.DaysLate))
			} else {
				activeDelays = append(activeDelays, float64(rec.DaysLate))
			}
		}
	}

	result := customer.InsightResult{
		AvgDelayCanceled: mean(canceledDelays),
		AvgDelayActive:   mean(activeDelays),
		ChurnByContract:  make([]customer.ContractChurn, 0, len(groups)),
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	best := math.Inf(-1)
	for _, name := range names {
		g := groups[name]
		g.ChurnRate = float64(g.Canceled) / float64(g.Customers) * 100
		result.ChurnByContract = append(result.ChurnByContract, *g)

		if g.ChurnRate > best {
			best = g.ChurnRate
			result.WorstContractType = name
		}
	}

	return result
}

// mean returns NaN for an empty input instead of an error.
func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return m
}
