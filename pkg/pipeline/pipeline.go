// Package pipeline provides the core computation pipeline for Orrery.
//
// This package implements the complete chart → aspects → layout pipeline
// that can be used by CLI, API, and worker components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Chart: Compute body positions and the ascendant, assemble placements
//  2. Aspects: Detect angular aspects within a chart or between two charts
//  3. Layout: Resolve radial display tracks for every placed body
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Subjects:  []chart.Subject{{Instant: born, Latitude: 51.5, Longitude: -0.12}},
//	    Ephemeris: provider,
//	    Sidereal:  provider,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range result.Aspects { ... }
//
// Run individual stages:
//
//	// Chart only
//	c, err := runner.BuildChart(ctx, subject, opts)
//
//	// Layout with existing charts
//	entries, err := runner.ResolveLayout(ctx, charts, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/siderealab/orrery/pkg/aspect"
	"github.com/siderealab/orrery/pkg/cache"
	"github.com/siderealab/orrery/pkg/chart"
	"github.com/siderealab/orrery/pkg/ephemeris"
	"github.com/siderealab/orrery/pkg/errors"
	"github.com/siderealab/orrery/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultProviderName identifies the built-in analytic ephemeris in
	// cache keys. Callers injecting a different provider must set
	// Options.ProviderName, or cached charts from another source would be
	// served.
	DefaultProviderName = "analytic"

	// DefaultMinSeparation is the angular collision threshold for layout,
	// in degrees.
	DefaultMinSeparation = layout.DefaultMinSeparation

	// MaxSubjects is the largest number of subjects a single run accepts.
	// One subject is a natal reading, two is a synastry comparison.
	MaxSubjects = 2
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the computation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Subjects are the birth data to chart: one for a natal reading, two
	// for a synastry comparison.
	Subjects []chart.Subject `json:"subjects"`

	// ProviderName namespaces cache keys by ephemeris source.
	ProviderName string `json:"provider_name,omitempty"`

	// MinSeparation overrides the layout collision threshold when positive.
	MinSeparation float64 `json:"min_separation,omitempty"`

	// Refresh bypasses cached chart results and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Ephemeris ephemeris.Provider             `json:"-"`
	Sidereal  ephemeris.SiderealTimeProvider `json:"-"`
	Logger    *log.Logger                    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Charts are the assembled charts, one per subject in input order.
	Charts []*chart.Chart

	// ChartHashes are content hashes of the charts, used for synastry and
	// layout cache keys and exposed to API responses.
	ChartHashes []string

	// Aspects are the detected aspect records, tightest first.
	Aspects []aspect.Record

	// Layout holds the resolved display tracks for every charted body.
	Layout []layout.Entry

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BodyCount   int
	AspectCount int
	TrackCount  int // distinct display tracks used by the layout
	ChartTime   time.Duration
	AspectTime  time.Duration
	LayoutTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ChartHits []bool // per subject, whether the chart came from cache
	AspectHit bool   // whether aspect records came from cache
	LayoutHit bool   // whether the layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateSubjects(); err != nil {
		return err
	}
	if o.Ephemeris == nil || o.Sidereal == nil {
		return errors.New(errors.ErrCodeInvalidInput, "ephemeris and sidereal time providers are required")
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// ValidateSubjects checks that the subject list is well formed: between
// one and two subjects, each with a finite location and a non-zero
// instant.
func (o *Options) ValidateSubjects() error {
	if len(o.Subjects) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one subject is required")
	}
	if len(o.Subjects) > MaxSubjects {
		return errors.New(errors.ErrCodeInvalidInput, "at most %d subjects are supported, got %d", MaxSubjects, len(o.Subjects))
	}
	for i, s := range o.Subjects {
		if err := errors.ValidateInstant(s.Instant); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "subject %d", i)
		}
		if err := errors.ValidateLatitude(s.Latitude); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "subject %d", i)
		}
		if err := errors.ValidateLongitude(s.Longitude); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "subject %d", i)
		}
	}
	return nil
}

// SetDefaults fills in provider name, separation threshold, and logger.
func (o *Options) SetDefaults() {
	if o.ProviderName == "" {
		o.ProviderName = DefaultProviderName
	}
	if o.MinSeparation <= 0 {
		o.MinSeparation = DefaultMinSeparation
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsSynastry returns true if this run compares two subjects.
func (o *Options) IsSynastry() bool {
	return len(o.Subjects) == 2
}

// ChartKeyOpts returns cache key options for one subject's chart.
func (o *Options) ChartKeyOpts(s chart.Subject) cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Instant:   s.Instant,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	}
}

// LayoutKeyOpts returns cache key options for layout resolution.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		MinSeparation: o.MinSeparation,
	}
}
