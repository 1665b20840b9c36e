package testkit

import (
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"churnboard/domain/customer"
	"churnboard/internal/dataset"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChurnGeneratorConfig configures the synthetic customer generator
type ChurnGeneratorConfig struct {
	Customers int       `json:"customers"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Seed      uint64    `json:"seed"`

	// MalformedDateRate is the share of rows written with an unusable
	// registration date, for exercising date normalization.
	MalformedDateRate float64 `json:"malformed_date_rate"`
}

// DefaultChurnConfig returns sensible defaults for churn data generation
func DefaultChurnConfig() ChurnGeneratorConfig {
	return ChurnGeneratorConfig{
		Customers: 1000,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}
}

var (
	genders = []string{"M", "F"}

	supportContacts       = []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	supportContactWeights = []float64{0.3, 0.25, 0.2, 0.1, 0.08, 0.04, 0.02, 0.005, 0.005}

	daysLate       = []int{0, 5, 10, 15, 20, 30, 45, 60}
	daysLateWeight = []float64{0.5, 0.15, 0.1, 0.1, 0.05, 0.05, 0.03, 0.02}

	tiers       = []string{"Basic", "Standard", "Premium"}
	tierWeights = []float64{0.5, 0.35, 0.15}

	contracts       = []string{"Monthly", "Quarterly", "Annual"}
	contractWeights = []float64{0.6, 0.25, 0.15}

	// spend range per tier, same order as tiers
	tierSpend = [][2]float64{{100, 500}, {500, 2000}, {2000, 10000}}

	contractRisk = map[string]float64{"Monthly": 0.12, "Quarterly": 0.05, "Annual": 0}

	malformedDates = []string{"", "not-a-date", "2024-02-30", "31/12/2024"}
)

// ChurnGenerator generates customer tables with realistic churn drivers
type ChurnGenerator struct {
	config ChurnGeneratorConfig
	src    rand.Source
	rng    *rand.Rand

	support  distuv.Categorical
	late     distuv.Categorical
	tier     distuv.Categorical
	contract distuv.Categorical
}

// NewChurnGenerator creates a new churn data generator. Equal configs
// produce identical output.
func NewChurnGenerator(config ChurnGeneratorConfig) *ChurnGenerator {
	src := rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15)
	return &ChurnGenerator{
		config:   config,
		src:      src,
		rng:      rand.New(src),
		support:  distuv.NewCategorical(supportContactWeights, src),
		late:     distuv.NewCategorical(daysLateWeight, src),
		tier:     distuv.NewCategorical(tierWeights, src),
		contract: distuv.NewCategorical(contractWeights, src),
	}
}

// Headers returns the column order used by Rows.
func (g *ChurnGenerator) Headers() []string {
	return customer.RequiredColumns()
}

// Rows generates every customer as a raw text row, in customer_id order.
func (g *ChurnGenerator) Rows() []dataset.RawRow {
	rows := make([]dataset.RawRow, 0, g.config.Customers)
	for i := 0; i < g.config.Customers; i++ {
		rows = append(rows, g.row(int64(i+1)))
	}
	return rows
}

// Table generates a customer table through the same conversion path the
// file loaders use.
func (g *ChurnGenerator) Table() *customer.Table {
	tbl, _ := dataset.FromRows(g.Headers(), g.Rows())
	return tbl
}

func (g *ChurnGenerator) row(id int64) dataset.RawRow {
	tierIdx := int(g.tier.Rand())
	spendRange := tierSpend[tierIdx]
	spend := distuv.Uniform{Min: spendRange[0], Max: spendRange[1], Src: g.src}.Rand()

	contract := contracts[int(g.contract.Rand())]
	late := daysLate[int(g.late.Rand())]
	contacts := supportContacts[int(g.support.Rand())]
	tenure := g.rng.IntN(59) + 1

	churnP := churnProbability(late, contacts, tenure, contract)
	canceled := distuv.Bernoulli{P: churnP, Src: g.src}.Rand()

	return dataset.RawRow{
		customer.ColCustomerID:       strconv.FormatInt(id, 10),
		customer.ColRegistrationDate: g.registrationDate(),
		customer.ColAge:              strconv.Itoa(g.rng.IntN(45) + 20),
		customer.ColGender:           genders[g.rng.IntN(len(genders))],
		customer.ColTenureMonths:     strconv.Itoa(tenure),
		customer.ColUsageFrequency:   strconv.Itoa(g.rng.IntN(50)),
		customer.ColSupportContacts:  strconv.Itoa(contacts),
		customer.ColDaysLate:         strconv.Itoa(late),
		customer.ColSubscriptionTier: tiers[tierIdx],
		customer.ColContractDuration: contract,
		customer.ColTotalSpent:       strconv.FormatFloat(math.Round(spend*100)/100, 'f', 2, 64),
		customer.ColCanceled:         strconv.Itoa(int(canceled)),
	}
}

func (g *ChurnGenerator) registrationDate() string {
	if g.config.MalformedDateRate > 0 && g.rng.Float64() < g.config.MalformedDateRate {
		return malformedDates[g.rng.IntN(len(malformedDates))]
	}
	days := int(g.config.EndDate.Sub(g.config.StartDate).Hours() / 24)
	if days <= 0 {
		return g.config.StartDate.Format(customer.DateLayout)
	}
	return g.config.StartDate.AddDate(0, 0, g.rng.IntN(days)).Format(customer.DateLayout)
}

// churnProbability rises with late payments, support load and short
// contracts, and falls with tenure.
func churnProbability(daysLate, contacts, tenure int, contract string) float64 {
	p := 0.08 +
		0.004*float64(daysLate) +
		0.03*float64(contacts) +
		contractRisk[contract] -
		0.002*float64(tenure)
	return math.Min(0.95, math.Max(0.02, p))
}
