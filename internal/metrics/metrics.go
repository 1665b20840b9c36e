package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Loads          *prometheus.CounterVec
	RowsLoaded     prometheus.Gauge
	MalformedCells prometheus.Gauge

	Summaries  prometheus.Counter
	CacheHits  prometheus.Counter
	ComputeSec prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "churnboard_loads_total",
		Help: "Source loads by outcome code.",
	}, []string{"outcome"})
	rows := prometheus.NewGauge(prometheus.GaugeOpts{Name: "churnboard_rows_loaded"})
	malformed := prometheus.NewGauge(prometheus.GaugeOpts{Name: "churnboard_malformed_cells"})
	summaries := prometheus.NewCounter(prometheus.CounterOpts{Name: "churnboard_summaries_total"})
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "churnboard_summary_cache_hits_total"})
	compute := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "churnboard_compute_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(loads, rows, malformed, summaries, hits, compute)
	return &Registry{
		reg:            r,
		Loads:          loads,
		RowsLoaded:     rows,
		MalformedCells: malformed,
		Summaries:      summaries,
		CacheHits:      hits,
		ComputeSec:     compute,
	}
}

func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
