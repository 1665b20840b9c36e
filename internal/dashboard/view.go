package dashboard

import (
	"math"
	"time"

	"churnboard/domain/customer"
	"churnboard/internal/dataset"
	"churnboard/internal/format"
)

// FilterView is a filter as JSON and form values
type FilterView struct {
	Start     string   `json:"start,omitempty"`
	End       string   `json:"end,omitempty"`
	Contracts []string `json:"contracts"`
}

type MetricsView struct {
	Total              int     `json:"total"`
	Canceled           int     `json:"canceled"`
	ChurnRate          float64 `json:"churn_rate"`
	LostRevenue        float64 `json:"lost_revenue"`
	LostRevenueDisplay string  `json:"lost_revenue_display"`
}

type InsightsView struct {
	AvgDelayCanceled  *float64                 `json:"avg_delay_canceled"`
	AvgDelayActive    *float64                 `json:"avg_delay_active"`
	WorstContractType string                   `json:"worst_contract_type"`
	ChurnByContract   []customer.ContractChurn `json:"churn_by_contract"`
}

type DelayView struct {
	Status string   `json:"status"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	P90    *float64 `json:"p90"`
}

// OptionsView is dataset.Options with dates as text
type OptionsView struct {
	Contracts    []string `json:"contracts"`
	MinDate      string   `json:"min_date,omitempty"`
	MaxDate      string   `json:"max_date,omitempty"`
	InvalidDates int      `json:"invalid_dates"`
}

// SummaryView is the JSON form of a Summary. Undefined averages are null.
type SummaryView struct {
	SnapshotID string                `json:"snapshot_id"`
	Filter     FilterView            `json:"filter"`
	Empty      bool                  `json:"empty"`
	Metrics    MetricsView           `json:"metrics"`
	Insights   InsightsView          `json:"insights"`
	Delay      []DelayView           `json:"delay"`
	ByTier     []customer.GroupChurn `json:"by_tier"`
	ByGender   []customer.GroupChurn `json:"by_gender"`
	Preview    []customer.Record     `json:"preview"`
	Options    OptionsView           `json:"options"`
}

func NewFilterView(f customer.Filter) FilterView {
	contracts := f.Contracts
	if contracts == nil {
		contracts = []string{}
	}
	return FilterView{Start: formatDate(f.Start), End: formatDate(f.End), Contracts: contracts}
}

func NewOptionsView(o dataset.Options) OptionsView {
	contracts := o.Contracts
	if contracts == nil {
		contracts = []string{}
	}
	return OptionsView{
		Contracts:    contracts,
		MinDate:      formatDate(o.MinDate),
		MaxDate:      formatDate(o.MaxDate),
		InvalidDates: o.InvalidDates,
	}
}

// NewSummaryView converts sum for JSON encoding
func NewSummaryView(sum *Summary) SummaryView {
	delay := make([]DelayView, 0, len(sum.Delay))
	for _, d := range sum.Delay {
		delay = append(delay, DelayView{
			Status: d.Status.String(),
			Count:  d.Count,
			Mean:   nullable(d.Mean),
			Median: nullable(d.Median),
			P90:    nullable(d.P90),
		})
	}

	byContract := sum.Insights.ChurnByContract
	if byContract == nil {
		byContract = []customer.ContractChurn{}
	}

	return SummaryView{
		SnapshotID: sum.SnapshotID.String(),
		Filter:     NewFilterView(sum.Filter),
		Empty:      sum.Empty,
		Metrics: MetricsView{
			Total:              sum.Metrics.Total,
			Canceled:           sum.Metrics.Canceled,
			ChurnRate:          sum.Metrics.ChurnRate,
			LostRevenue:        sum.Metrics.LostRevenue,
			LostRevenueDisplay: format.Currency(sum.Metrics.LostRevenue),
		},
		Insights: InsightsView{
			AvgDelayCanceled:  nullable(sum.Insights.AvgDelayCanceled),
			AvgDelayActive:    nullable(sum.Insights.AvgDelayActive),
			WorstContractType: sum.Insights.WorstContractType,
			ChurnByContract:   byContract,
		},
		Delay:    delay,
		ByTier:   sum.ByTier,
		ByGender: sum.ByGender,
		Preview:  sum.Preview,
		Options:  NewOptionsView(sum.Options),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(customer.DateLayout)
}

// nullable maps NaN to nil so it encodes as JSON null
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
