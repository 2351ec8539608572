package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/cache"
	"github.com/siderealab/orrery/pkg/chart"
	"github.com/siderealab/orrery/pkg/ephemeris"
	"github.com/siderealab/orrery/pkg/errors"
)

// fixtureProvider returns a static provider with the ten bodies spaced
// evenly 36 degrees apart, which yields exactly five zero-orb
// oppositions within a single chart.
func fixtureProvider() *ephemeris.Fixed {
	longs := make(map[astro.Body]float64, astro.BodyCount)
	for i, b := range astro.Bodies() {
		longs[b] = float64(i * 36)
	}
	return &ephemeris.Fixed{Longitudes: longs, GMST: 0}
}

func fixtureSubject(name string, lat float64) chart.Subject {
	return chart.Subject{
		Name:      name,
		Instant:   time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		Latitude:  lat,
		Longitude: 0,
	}
}

func fixtureOptions(subjects ...chart.Subject) Options {
	p := fixtureProvider()
	return Options{
		Subjects:     subjects,
		ProviderName: "fixture",
		Ephemeris:    p,
		Sidereal:     p,
	}
}

func TestOptionsValidateSubjects(t *testing.T) {
	valid := fixtureSubject("a", 0)

	tests := []struct {
		name     string
		subjects []chart.Subject
		wantCode errors.Code
	}{
		{"none", nil, errors.ErrCodeInvalidInput},
		{"too many", []chart.Subject{valid, valid, valid}, errors.ErrCodeInvalidInput},
		{"zero instant", []chart.Subject{{Latitude: 0, Longitude: 0}}, errors.ErrCodeInvalidInstant},
		{"polar latitude", []chart.Subject{{Instant: valid.Instant, Latitude: 90}}, errors.ErrCodePolarLatitude},
		{"one valid", []chart.Subject{valid}, ""},
		{"two valid", []chart.Subject{valid, valid}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Subjects: tt.subjects}
			err := opts.ValidateSubjects()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateSubjects() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateSubjects() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	opts := Options{}
	opts.SetDefaults()

	if opts.ProviderName != DefaultProviderName {
		t.Errorf("ProviderName = %q, want %q", opts.ProviderName, DefaultProviderName)
	}
	if opts.MinSeparation != DefaultMinSeparation {
		t.Errorf("MinSeparation = %v, want %v", opts.MinSeparation, DefaultMinSeparation)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := fixtureOptions(fixtureSubject("a", 0))

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validation failed: %v", err)
	}
	sep := opts.MinSeparation

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validation failed: %v", err)
	}
	if opts.MinSeparation != sep {
		t.Error("MinSeparation changed on second call")
	}
}

func TestOptionsValidateRequiresProviders(t *testing.T) {
	opts := Options{Subjects: []chart.Subject{fixtureSubject("a", 0)}}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing providers: got %v, want INVALID_INPUT", err)
	}
}

func TestOptionsIsSynastry(t *testing.T) {
	opts := fixtureOptions(fixtureSubject("a", 0))
	if opts.IsSynastry() {
		t.Error("one subject should not be synastry")
	}
	opts.Subjects = append(opts.Subjects, fixtureSubject("b", 10))
	if !opts.IsSynastry() {
		t.Error("two subjects should be synastry")
	}
}

func TestRunnerExecuteNatal(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := fixtureOptions(fixtureSubject("natal", 0))

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(result.Charts) != 1 {
		t.Fatalf("Charts = %d, want 1", len(result.Charts))
	}
	if result.Stats.BodyCount != astro.BodyCount {
		t.Errorf("BodyCount = %d, want %d", result.Stats.BodyCount, astro.BodyCount)
	}

	// Bodies spaced 36 degrees apart oppose exactly in five pairs and
	// form no other aspect.
	if len(result.Aspects) != 5 {
		t.Fatalf("Aspects = %d, want 5", len(result.Aspects))
	}
	for _, rec := range result.Aspects {
		if rec.Type != "opposition" || rec.Orb != 0 {
			t.Errorf("aspect %v/%v = %s orb %v, want opposition orb 0", rec.BodyA, rec.BodyB, rec.Type, rec.Orb)
		}
	}

	// All bodies are far apart, so everything lands on track zero.
	if len(result.Layout) != astro.BodyCount {
		t.Fatalf("Layout = %d entries, want %d", len(result.Layout), astro.BodyCount)
	}
	if result.Stats.TrackCount != 1 {
		t.Errorf("TrackCount = %d, want 1", result.Stats.TrackCount)
	}
	for _, e := range result.Layout {
		if !e.Isolated {
			t.Errorf("%v should be isolated at 36 degree spacing", e.Entity.Body)
		}
	}

	// NullCache never hits.
	for i, hit := range result.CacheInfo.ChartHits {
		if hit {
			t.Errorf("ChartHits[%d] = true with NullCache", i)
		}
	}
	if result.CacheInfo.AspectHit || result.CacheInfo.LayoutHit {
		t.Error("aspect/layout cache hit with NullCache")
	}
}

func TestRunnerExecuteSynastry(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := fixtureOptions(fixtureSubject("a", 0), fixtureSubject("b", 10))

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(result.Charts) != 2 {
		t.Fatalf("Charts = %d, want 2", len(result.Charts))
	}
	if result.ChartHashes[0] == result.ChartHashes[1] {
		t.Error("charts at different latitudes should hash differently")
	}

	// Identical position sets produce a zero-orb cross-aspect for every
	// conjunct and opposing pair, far more than the record cap.
	if len(result.Aspects) != 8 {
		t.Errorf("Aspects = %d, want cap of 8", len(result.Aspects))
	}
	for _, rec := range result.Aspects {
		if rec.Orb != 0 {
			t.Errorf("orb = %v, want 0", rec.Orb)
		}
	}

	// Twenty entities stacked in coincident pairs need two tracks.
	if len(result.Layout) != 2*astro.BodyCount {
		t.Fatalf("Layout = %d entries, want %d", len(result.Layout), 2*astro.BodyCount)
	}
	if result.Stats.TrackCount != 2 {
		t.Errorf("TrackCount = %d, want 2", result.Stats.TrackCount)
	}
}

func TestRunnerExecuteCacheHits(t *testing.T) {
	dir := t.TempDir()
	fileCache, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)
	defer runner.Close()

	opts := fixtureOptions(fixtureSubject("natal", 0))
	ctx := context.Background()

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ChartHits[0] || first.CacheInfo.AspectHit || first.CacheInfo.LayoutHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(ctx, fixtureOptions(fixtureSubject("natal", 0)))
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ChartHits[0] {
		t.Error("second run should hit the chart cache")
	}
	if !second.CacheInfo.AspectHit {
		t.Error("second run should hit the synastry cache")
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}

	if second.ChartHashes[0] != first.ChartHashes[0] {
		t.Error("cached chart hash differs from computed hash")
	}
	if len(second.Aspects) != len(first.Aspects) {
		t.Errorf("cached aspects = %d, computed = %d", len(second.Aspects), len(first.Aspects))
	}
}

func TestRunnerExecuteRefreshBypassesCache(t *testing.T) {
	dir := t.TempDir()
	fileCache, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	if _, err := runner.Execute(ctx, fixtureOptions(fixtureSubject("natal", 0))); err != nil {
		t.Fatalf("warmup Execute: %v", err)
	}

	opts := fixtureOptions(fixtureSubject("natal", 0))
	opts.Refresh = true
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.ChartHits[0] {
		t.Error("refresh run should recompute the chart")
	}
}

func TestRunnerPropagatesProviderError(t *testing.T) {
	p := fixtureProvider()
	delete(p.Longitudes, astro.Pluto)

	runner := NewRunner(nil, nil, nil)
	opts := Options{
		Subjects:     []chart.Subject{fixtureSubject("natal", 0)},
		ProviderName: "fixture",
		Ephemeris:    p,
		Sidereal:     p,
	}

	_, err := runner.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeProvider) {
		t.Errorf("Execute() = %v, want PROVIDER_ERROR", err)
	}
}

func TestEntitiesTagOwner(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := fixtureOptions(fixtureSubject("a", 0), fixtureSubject("b", 10))

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	owners := make(map[string]int)
	for _, e := range result.Layout {
		owners[e.Entity.Owner]++
	}
	if owners["a"] != astro.BodyCount || owners["b"] != astro.BodyCount {
		t.Errorf("owner counts = %v, want %d each for a and b", owners, astro.BodyCount)
	}
}
