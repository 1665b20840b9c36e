package customer

// MetricsResult holds the headline KPIs of a table.
type MetricsResult struct {
	Total       int     `json:"total"`
	Canceled    int     `json:"canceled"`
	ChurnRate   float64 `json:"churn_rate"` // percent, 0-100
	LostRevenue float64 `json:"lost_revenue"`
}

// ContractChurn is the churn of one contract_duration group.
type ContractChurn struct {
	Contract  string  `json:"contract"`
	Customers int     `json:"customers"`
	Canceled  int     `json:"canceled"`
	ChurnRate float64 `json:"churn_rate"`
}

// InsightResult holds comparative insights. Averages are NaN when the
// corresponding subset is empty.
type InsightResult struct {
	AvgDelayCanceled  float64 `json:"avg_delay_canceled"`
	AvgDelayActive    float64 `json:"avg_delay_active"`
	WorstContractType string  `json:"worst_contract_type"`

	// ChurnByContract is ordered by contract name.
	ChurnByContract []ContractChurn `json:"churn_by_contract"`
}

// ChurnMap returns churn_by_contract as contract -> churn rate.
func (r InsightResult) ChurnMap() map[string]float64 {
	m := make(map[string]float64, len(r.ChurnByContract))
	for _, c := range r.ChurnByContract {
		m[c.Contract] = c.ChurnRate
	}
	return m
}

// DelayStats summarizes days_late for one status.
type DelayStats struct {
	Status Status  `json:"status"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

// GroupChurn is the churn of one value of a categorical column.
type GroupChurn struct {
	Value     string  `json:"value"`
	Customers int     `json:"customers"`
	Canceled  int     `json:"canceled"`
	ChurnRate float64 `json:"churn_rate"`
}
