package dashboard

import (
	"context"
	stderrors "errors"
	"math"
	"strings"
	"testing"
	"time"

	"churnboard/domain/core"
	"churnboard/domain/customer"
	"churnboard/internal/dataset"
	"churnboard/internal/errors"
	"churnboard/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSource is a testify mock of ports.TableSource
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Load(ctx context.Context) (*customer.Table, dataset.LoadReport, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).(*customer.Table)
	return table, args.Get(1).(dataset.LoadReport), args.Error(2)
}

func (m *MockSource) Describe() string {
	return "mock.csv"
}

// customers builds a table from "id,date,days_late,contract,spent,canceled" lines.
func customers(lines ...string) *customer.Table {
	rows := make([]dataset.RawRow, 0, len(lines))
	for _, line := range lines {
		f := strings.Split(line, ",")
		rows = append(rows, dataset.RawRow{
			customer.ColCustomerID:       f[0],
			customer.ColRegistrationDate: f[1],
			customer.ColAge:              "30",
			customer.ColGender:           "F",
			customer.ColTenureMonths:     "12",
			customer.ColUsageFrequency:   "10",
			customer.ColSupportContacts:  "1",
			customer.ColDaysLate:         f[2],
			customer.ColSubscriptionTier: "Basic",
			customer.ColContractDuration: f[3],
			customer.ColTotalSpent:       f[4],
			customer.ColCanceled:         f[5],
		})
	}
	table, _ := dataset.FromRows(customer.RequiredColumns(), rows)
	return table
}

func fixture() *customer.Table {
	return customers(
		"1,2024-01-10,30,Monthly,1000,1",
		"2,2024-02-10,40,Monthly,500,1",
		"3,2024-03-10,10,Annual,2000,0",
		"4,2024-04-10,0,Quarterly,300,0",
		"5,bad-date,5,Monthly,100,0",
	)
}

func loadedService(t *testing.T, table *customer.Table) (*Service, *MockSource, *metrics.Registry) {
	t.Helper()
	src := new(MockSource)
	src.On("Load", mock.Anything).Return(table, dataset.LoadReport{Rows: table.Len()}, nil)
	reg := metrics.NewRegistry()
	svc := NewService(src, reg, DefaultOptions())
	require.NoError(t, svc.Load(context.Background()))
	return svc, src, reg
}

func day(s string) time.Time {
	d, _ := time.Parse(customer.DateLayout, s)
	return d
}

func TestSummarizeWholeTable(t *testing.T) {
	svc, src, _ := loadedService(t, fixture())
	src.AssertExpectations(t)

	sum, err := svc.Summarize(context.Background(), customer.Filter{})
	require.NoError(t, err)

	assert.False(t, sum.Empty)
	assert.Equal(t, 5, sum.Metrics.Total)
	assert.Equal(t, 2, sum.Metrics.Canceled)
	assert.InDelta(t, 40.0, sum.Metrics.ChurnRate, 1e-9)
	assert.InDelta(t, 1500.0, sum.Metrics.LostRevenue, 1e-9)

	assert.InDelta(t, 35.0, sum.Insights.AvgDelayCanceled, 1e-9)
	assert.InDelta(t, 5.0, sum.Insights.AvgDelayActive, 1e-9)
	assert.Equal(t, "Monthly", sum.Insights.WorstContractType)

	assert.Len(t, sum.Preview, 5)
	assert.Equal(t, []string{"Annual", "Monthly", "Quarterly"}, sum.Options.Contracts)
	assert.Equal(t, 1, sum.Options.InvalidDates)
	assert.Len(t, sum.Delay, 2)
	assert.Len(t, sum.ByTier, 1)
}

func TestSummarizeFilters(t *testing.T) {
	svc, _, _ := loadedService(t, fixture())

	tests := []struct {
		name     string
		filter   customer.Filter
		total    int
		canceled int
		worst    string
	}{
		{"date range drops invalid dates", customer.Filter{Start: day("2024-02-01"), End: day("2024-03-31")}, 2, 1, "Monthly"},
		{"inclusive bounds", customer.Filter{Start: day("2024-01-10"), End: day("2024-01-10")}, 1, 1, "Monthly"},
		{"contract only keeps invalid dates", customer.Filter{Contracts: []string{"Monthly"}}, 3, 2, "Monthly"},
		{"contract and range", customer.Filter{Start: day("2024-03-01"), Contracts: []string{"Annual", "Quarterly"}}, 2, 0, "Annual"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := svc.Summarize(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, sum.Metrics.Total)
			assert.Equal(t, tt.canceled, sum.Metrics.Canceled)
			assert.Equal(t, tt.worst, sum.Insights.WorstContractType)
			assert.Equal(t, []string{"Annual", "Monthly", "Quarterly"}, sum.Options.Contracts, "options describe the whole table")
		})
	}
}

func TestSummarizeEmptyResult(t *testing.T) {
	svc, _, _ := loadedService(t, fixture())

	sum, err := svc.Summarize(context.Background(), customer.Filter{Contracts: []string{"Biennial"}})
	require.NoError(t, err)

	assert.True(t, sum.Empty)
	assert.Equal(t, customer.MetricsResult{}, sum.Metrics)
	assert.True(t, math.IsNaN(sum.Insights.AvgDelayCanceled))
	assert.True(t, math.IsNaN(sum.Insights.AvgDelayActive))
	assert.Equal(t, "", sum.Insights.WorstContractType)
	assert.Empty(t, sum.Preview)
}

func TestSummarizeInvalidFilter(t *testing.T) {
	svc, _, _ := loadedService(t, fixture())

	_, err := svc.Summarize(context.Background(), customer.Filter{Start: day("2024-05-01"), End: day("2024-01-01")})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.True(t, core.IsFilterError(err))
}

func TestSummarizeCachesPerFilter(t *testing.T) {
	svc, _, reg := loadedService(t, fixture())
	f := customer.Filter{Contracts: []string{"Monthly", "Annual"}}

	first, err := svc.Summarize(context.Background(), f)
	require.NoError(t, err)
	second, err := svc.Summarize(context.Background(), customer.Filter{Contracts: []string{"Annual", "Monthly"}})
	require.NoError(t, err)

	assert.Same(t, first, second, "contract order does not change the cache key")
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.Summaries))
}

func TestReloadReplacesSnapshot(t *testing.T) {
	src := new(MockSource)
	src.On("Load", mock.Anything).Return(fixture(), dataset.LoadReport{Rows: 5}, nil).Once()
	src.On("Load", mock.Anything).Return(customers("9,2025-01-01,0,Annual,10,0"), dataset.LoadReport{Rows: 1}, nil).Once()

	svc := NewService(src, nil, DefaultOptions())
	require.NoError(t, svc.Load(context.Background()))
	before, err := svc.Summarize(context.Background(), customer.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.cache.len())

	require.NoError(t, svc.Reload(context.Background()))
	assert.Equal(t, 0, svc.cache.len())

	after, err := svc.Summarize(context.Background(), customer.Filter{})
	require.NoError(t, err)
	assert.NotEqual(t, before.SnapshotID, after.SnapshotID)
	assert.Equal(t, 1, after.Metrics.Total)
	src.AssertExpectations(t)
}

func TestLoadFailures(t *testing.T) {
	partial, _ := dataset.FromRows([]string{"customer_id", "canceled", "registration_date"}, nil)

	tests := []struct {
		name    string
		table   *customer.Table
		err     error
		code    string
		missing []string
	}{
		{"missing file", nil, core.NewSourceNotFoundError("data/customers.csv"), errors.CodeMissingSource, nil},
		{"nil table without error", nil, nil, errors.CodeMissingSource, nil},
		{"missing columns", partial, nil, errors.CodeSchemaInvalid, []string{
			"age", "gender", "tenure_months", "usage_frequency", "support_contacts",
			"days_late", "subscription_tier", "contract_duration", "total_spent",
		}},
		{"unreadable source", nil, stderrors.New("permission denied"), errors.CodeMissingSource, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			src.On("Load", mock.Anything).Return(tt.table, dataset.LoadReport{}, tt.err)
			reg := metrics.NewRegistry()
			svc := NewService(src, reg, DefaultOptions())

			err := svc.Load(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Equal(t, tt.missing, errors.MissingFields(err))

			_, err = svc.Summarize(context.Background(), customer.Filter{})
			assert.Equal(t, tt.code, errors.GetCode(err), "computation is short-circuited")

			st := svc.Status()
			assert.False(t, st.Loaded)
			assert.Equal(t, tt.code, st.Code)
			assert.Equal(t, tt.missing, st.Missing)
			assert.Equal(t, 1.0, testutil.ToFloat64(reg.Loads.WithLabelValues(tt.code)))
		})
	}
}

func TestLoadEmptyTable(t *testing.T) {
	svc, _, reg := loadedService(t, customers())

	st := svc.Status()
	assert.True(t, st.Loaded)
	assert.Equal(t, errors.CodeEmptyData, st.Code)
	assert.Contains(t, st.Error, "no customer rows")

	sum, err := svc.Summarize(context.Background(), customer.Filter{})
	require.NoError(t, err)
	assert.True(t, sum.Empty)
	assert.Equal(t, customer.MetricsResult{}, sum.Metrics)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.Loads.WithLabelValues(errors.CodeEmptyData)))
}

func TestStatus(t *testing.T) {
	src := new(MockSource)
	svc := NewService(src, nil, DefaultOptions())

	st := svc.Status()
	assert.False(t, st.Loaded)
	assert.Equal(t, errors.CodeMissingSource, st.Code)

	src.On("Load", mock.Anything).Return(fixture(), dataset.LoadReport{Rows: 5, MalformedCells: map[string]int{"age": 1}}, nil)
	require.NoError(t, svc.Load(context.Background()))

	st = svc.Status()
	assert.True(t, st.Loaded)
	assert.Equal(t, 5, st.Rows)
	assert.Equal(t, "mock.csv", st.Source)
	assert.Equal(t, 1, st.Report.Malformed())
	assert.NotEmpty(t, st.SnapshotID)
	assert.Empty(t, st.Code)
}

func TestFiltered(t *testing.T) {
	svc, _, _ := loadedService(t, fixture())

	table, err := svc.Filtered(customer.Filter{Contracts: []string{"Annual"}})
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, int64(3), table.Records[0].CustomerID)

	_, err = svc.Filtered(customer.Filter{Start: day("2025-01-01"), End: day("2024-01-01")})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestSummaryCacheEviction(t *testing.T) {
	c := newSummaryCache(2)
	c.put("a", &Summary{})
	c.put("b", &Summary{})
	c.put("a", &Summary{Empty: true})
	c.put("c", &Summary{})

	_, ok := c.get("a")
	assert.False(t, ok, "oldest entry evicted")
	_, ok = c.get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, c.len())

	off := newSummaryCache(0)
	off.put("a", &Summary{})
	assert.Equal(t, 0, off.len())
}
