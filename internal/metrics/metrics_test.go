package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	reg := NewRegistry()
	reg.Loads.WithLabelValues("ok").Inc()
	reg.RowsLoaded.Set(1000)
	reg.Summaries.Inc()
	reg.CacheHits.Inc()
	reg.ComputeSec.Observe(0.01)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `churnboard_loads_total{outcome="ok"} 1`)
	assert.Contains(t, text, "churnboard_rows_loaded 1000")
	assert.Contains(t, text, "churnboard_summary_cache_hits_total 1")
	assert.Contains(t, text, "churnboard_compute_seconds_count 1")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.Summaries.Inc()

	families, err := b.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "churnboard_summaries_total" {
			assert.Equal(t, 0.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}
