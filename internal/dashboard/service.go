// Package dashboard serves churn summaries over the currently loaded customer
// table. A table is loaded, validated and normalized once; every request then
// filters and computes over that snapshot.
package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"churnboard/domain/core"
	"churnboard/domain/customer"
	"churnboard/internal/analysis"
	"churnboard/internal/dataset"
	"churnboard/internal/errors"
	"churnboard/internal/metrics"
	"churnboard/internal/validation"
	"churnboard/ports"

	"golang.org/x/sync/errgroup"
)

// Options tune the service
type Options struct {
	PreviewRows  int
	CacheEntries int
}

// DefaultOptions returns the settings used when none are configured
func DefaultOptions() Options {
	return Options{PreviewRows: 10, CacheEntries: 64}
}

// Service holds the loaded snapshot and computes summaries over it
type Service struct {
	source  ports.TableSource
	metrics *metrics.Registry
	opts    Options
	cache   *summaryCache

	mu       sync.RWMutex
	table    *customer.Table
	report   dataset.LoadReport
	loadErr  error
	notice   error // set for a valid but empty table
	loadedAt time.Time
	loaded   bool
}

// NewService creates a service over source. reg may be nil.
func NewService(source ports.TableSource, reg *metrics.Registry, opts Options) *Service {
	return &Service{
		source:  source,
		metrics: reg,
		opts:    opts,
		cache:   newSummaryCache(opts.CacheEntries),
		loadErr: errors.MissingSource(core.ErrSourceNotFound),
	}
}

// Load reads the source and replaces the current snapshot. Load problems are
// returned and also kept, so later requests report them without reloading.
func (s *Service) Load(ctx context.Context) error {
	start := time.Now()
	table, report, err := s.source.Load(ctx)

	// Any source failure, unparseable files included, means no table.
	var loadErr, notice error
	valid, missing := validation.ValidateSchema(table)
	switch {
	case err != nil, table == nil:
		loadErr = errors.MissingSource(err)
	case !valid:
		loadErr = errors.SchemaInvalid(missing, core.NewSchemaError(missing))
	case table.Len() == 0:
		notice = errors.EmptyData(core.ErrEmptyData)
	}

	s.mu.Lock()
	s.loadedAt = time.Now()
	s.loaded = true
	s.report = report
	s.loadErr = loadErr
	s.notice = notice
	if loadErr == nil {
		s.table = dataset.Normalize(table)
	} else {
		s.table = nil
	}
	s.mu.Unlock()
	s.cache.reset()

	s.observeLoad(loadErr, notice, report)
	if loadErr != nil {
		log.Printf("[Dashboard] Load of %s failed: %v", s.source.Describe(), loadErr)
		return loadErr
	}
	if notice != nil {
		log.Printf("[Dashboard] %s: %v", s.source.Describe(), notice)
	}
	log.Printf("[Dashboard] Loaded %d rows from %s in %v", table.Len(), s.source.Describe(), time.Since(start))
	return nil
}

// Reload is Load under the name the HTTP surface uses
func (s *Service) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Status reports the outcome of the last load
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Source:   s.source.Describe(),
		LoadedAt: s.loadedAt,
		Report:   s.report,
	}
	if s.loadErr != nil {
		if s.loaded {
			st.Code = errors.GetCode(s.loadErr)
			st.Error = s.loadErr.Error()
			st.Missing = errors.MissingFields(s.loadErr)
		} else {
			st.Code = errors.CodeMissingSource
			st.Error = "source not loaded yet"
		}
		return st
	}
	st.Loaded = true
	st.SnapshotID = s.table.ID
	st.Rows = s.table.Len()
	if s.notice != nil {
		st.Code = errors.GetCode(s.notice)
		st.Error = s.notice.Error()
	}
	return st
}

// Table returns the normalized snapshot, or the load error
func (s *Service) Table() (*customer.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.table, nil
}

// Filtered returns the snapshot restricted by f
func (s *Service) Filtered(f customer.Filter) (*customer.Table, error) {
	table, err := s.Table()
	if err != nil {
		return nil, err
	}
	filtered, err := dataset.ApplyFilter(table, f)
	if err != nil {
		return nil, errors.InvalidInput("invalid filter", err)
	}
	return filtered, nil
}

// Summarize computes every dashboard figure for f. Results are cached per
// snapshot and filter until the next load.
func (s *Service) Summarize(ctx context.Context, f customer.Filter) (*Summary, error) {
	table, err := s.Table()
	if err != nil {
		return nil, err
	}

	key := f.Hash(table.ID)
	if cached, ok := s.cache.get(key); ok {
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}
		return cached, nil
	}

	start := time.Now()
	filtered, err := dataset.ApplyFilter(table, f)
	if err != nil {
		return nil, errors.InvalidInput("invalid filter", err)
	}

	sum := &Summary{
		SnapshotID:  table.ID,
		Filter:      f,
		GeneratedAt: time.Now().UTC(),
		Empty:       filtered.Len() == 0,
		Preview:     dataset.Preview(filtered, s.opts.PreviewRows),
		Options:     dataset.FilterOptions(table),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum.Metrics = analysis.ComputeMetrics(filtered)
		return gctx.Err()
	})
	g.Go(func() error {
		sum.Insights = analysis.ComputeInsights(filtered)
		return gctx.Err()
	})
	g.Go(func() error {
		sum.Delay = analysis.DelayDistribution(filtered)
		sum.ByTier, _ = analysis.ChurnBy(filtered, customer.ColSubscriptionTier)
		sum.ByGender, _ = analysis.ChurnBy(filtered, customer.ColGender)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.put(key, sum)
	if s.metrics != nil {
		s.metrics.Summaries.Inc()
		s.metrics.ComputeSec.Observe(time.Since(start).Seconds())
	}
	return sum, nil
}

func (s *Service) observeLoad(loadErr, notice error, report dataset.LoadReport) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	switch {
	case loadErr != nil:
		outcome = errors.GetCode(loadErr)
	case notice != nil:
		outcome = errors.GetCode(notice)
	}
	s.metrics.Loads.WithLabelValues(outcome).Inc()
	s.metrics.RowsLoaded.Set(float64(report.Rows))
	s.metrics.MalformedCells.Set(float64(report.Malformed()))
}
