package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/siderealab/orrery/pkg/aspect"
	"github.com/siderealab/orrery/pkg/cache"
	"github.com/siderealab/orrery/pkg/chart"
	"github.com/siderealab/orrery/pkg/errors"
	"github.com/siderealab/orrery/pkg/layout"
	"github.com/siderealab/orrery/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete chart → aspects → layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Charts:      make([]*chart.Chart, 0, len(opts.Subjects)),
		ChartHashes: make([]string, 0, len(opts.Subjects)),
	}
	result.CacheInfo.ChartHits = make([]bool, 0, len(opts.Subjects))

	// Stage 1: Charts
	chartStart := time.Now()
	for _, subject := range opts.Subjects {
		c, hit, err := r.BuildChartWithCacheInfo(ctx, subject, opts)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize chart")
		}
		result.Charts = append(result.Charts, c)
		result.ChartHashes = append(result.ChartHashes, cache.Hash(data))
		result.CacheInfo.ChartHits = append(result.CacheInfo.ChartHits, hit)
		result.Stats.BodyCount += len(c.Positions)
	}
	result.Stats.ChartTime = time.Since(chartStart)

	r.Logger.Info("computed charts",
		"subjects", len(result.Charts),
		"bodies", result.Stats.BodyCount,
		"duration", result.Stats.ChartTime)

	// Stage 2: Aspects
	aspectStart := time.Now()
	records, aspectHit, err := r.DetectAspectsWithCacheInfo(ctx, result.Charts, result.ChartHashes)
	if err != nil {
		return nil, err
	}
	result.Aspects = records
	result.Stats.AspectCount = len(records)
	result.Stats.AspectTime = time.Since(aspectStart)
	result.CacheInfo.AspectHit = aspectHit

	r.Logger.Info("detected aspects",
		"records", len(records),
		"duration", result.Stats.AspectTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	entries, layoutHit, err := r.ResolveLayoutWithCacheInfo(ctx, result.Charts, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = entries
	result.Stats.TrackCount = countTracks(entries)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("resolved layout",
		"entries", len(entries),
		"tracks", result.Stats.TrackCount,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// BuildChartWithCacheInfo computes one subject's chart with caching and
// returns cache hit info.
func (r *Runner) BuildChartWithCacheInfo(ctx context.Context, subject chart.Subject, opts Options) (*chart.Chart, bool, error) {
	opts.SetDefaults()
	r.applyLogger(&opts)
	if opts.Ephemeris == nil || opts.Sidereal == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "ephemeris and sidereal time providers are required")
	}

	start := time.Now()
	observability.Engine().OnChartStart(ctx, subject.Name)

	cacheKey := r.Keyer.ChartKey(opts.ProviderName, opts.ChartKeyOpts(subject))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached chart.Chart
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "chart")
				observability.Engine().OnChartComplete(ctx, subject.Name, time.Since(start), nil)
				return &cached, true, nil
			}
			// Corrupt entry, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "chart")
	}

	builder := chart.NewBuilder(opts.Ephemeris, opts.Sidereal)
	c, err := builder.Build(ctx, subject)
	if err != nil {
		observability.Engine().OnChartComplete(ctx, subject.Name, time.Since(start), err)
		return nil, false, err
	}

	if data, err := json.Marshal(c); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLChart)
		observability.Cache().OnCacheSet(ctx, "chart", len(data))
	}

	observability.Engine().OnChartComplete(ctx, subject.Name, time.Since(start), nil)
	return c, false, nil
}

// BuildChart is a convenience wrapper that calls BuildChartWithCacheInfo
// and discards the cache hit info.
func (r *Runner) BuildChart(ctx context.Context, subject chart.Subject, opts Options) (*chart.Chart, error) {
	c, _, err := r.BuildChartWithCacheInfo(ctx, subject, opts)
	return c, err
}

// DetectAspectsWithCacheInfo detects aspects with caching and returns
// cache hit info. With one chart the detection is intra-chart; with two
// it is the cross-chart synastry comparison.
func (r *Runner) DetectAspectsWithCacheInfo(ctx context.Context, charts []*chart.Chart, hashes []string) ([]aspect.Record, bool, error) {
	if len(charts) == 0 || len(charts) > MaxSubjects {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "aspect detection needs one or two charts, got %d", len(charts))
	}
	if len(hashes) != len(charts) {
		return nil, false, errors.New(errors.ErrCodeInternal, "chart hash count %d does not match chart count %d", len(hashes), len(charts))
	}

	start := time.Now()
	pairs := len(charts[0].Positions) * len(charts[len(charts)-1].Positions)
	observability.Engine().OnAspectsStart(ctx, pairs)

	hashA := hashes[0]
	hashB := hashA
	if len(hashes) == 2 {
		hashB = hashes[1]
	}
	cacheKey := r.Keyer.SynastryKey(hashA, hashB)

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached []aspect.Record
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "synastry")
			observability.Engine().OnAspectsComplete(ctx, len(cached), time.Since(start), nil)
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "synastry")

	var records []aspect.Record
	if len(charts) == 2 {
		records = aspect.Detect(charts[0].Positions, charts[1].Positions)
	} else {
		records = aspect.DetectWithin(charts[0].Positions)
	}

	if data, err := json.Marshal(records); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSynastry)
		observability.Cache().OnCacheSet(ctx, "synastry", len(data))
	}

	observability.Engine().OnAspectsComplete(ctx, len(records), time.Since(start), nil)
	return records, false, nil
}

// DetectAspects is a convenience wrapper that calls
// DetectAspectsWithCacheInfo and discards the cache hit info.
func (r *Runner) DetectAspects(ctx context.Context, charts []*chart.Chart, hashes []string) ([]aspect.Record, error) {
	records, _, err := r.DetectAspectsWithCacheInfo(ctx, charts, hashes)
	return records, err
}

// ResolveLayoutWithCacheInfo resolves display tracks for every body in
// the given charts, with caching, and returns cache hit info.
func (r *Runner) ResolveLayoutWithCacheInfo(ctx context.Context, charts []*chart.Chart, opts Options) ([]layout.Entry, bool, error) {
	opts.SetDefaults()
	r.applyLogger(&opts)

	entities := Entities(charts)

	start := time.Now()
	observability.Engine().OnLayoutStart(ctx, len(entities))

	entityData, err := json.Marshal(entities)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout entities")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(entityData), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached []layout.Entry
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			observability.Engine().OnLayoutComplete(ctx, countTracks(cached), time.Since(start), nil)
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	resolver := layout.Resolver{MinSeparation: opts.MinSeparation}
	entries := resolver.Resolve(entities)

	if data, err := json.Marshal(entries); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	observability.Engine().OnLayoutComplete(ctx, countTracks(entries), time.Since(start), nil)
	return entries, false, nil
}

// ResolveLayout is a convenience wrapper that calls
// ResolveLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ResolveLayout(ctx context.Context, charts []*chart.Chart, opts Options) ([]layout.Entry, error) {
	entries, _, err := r.ResolveLayoutWithCacheInfo(ctx, charts, opts)
	return entries, err
}

// Entities flattens chart positions into layout entities, tagging each
// with its owning subject's name so synastry renderings can distinguish
// the two wheels.
func Entities(charts []*chart.Chart) []layout.Entity {
	var entities []layout.Entity
	for _, c := range charts {
		for _, pos := range c.Positions {
			entities = append(entities, layout.Entity{
				Body:      pos.Body,
				Owner:     c.Subject.Name,
				Longitude: pos.Longitude,
			})
		}
	}
	return entities
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// countTracks returns the number of distinct display tracks in use.
func countTracks(entries []layout.Entry) int {
	seen := make(map[int]bool)
	for _, e := range entries {
		seen[e.Track] = true
	}
	return len(seen)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
