package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEngineHooks struct {
	NoopEngineHooks
	chartStarts int
	chartDone   int
}

func (r *recordingEngineHooks) OnChartStart(context.Context, string) {
	r.chartStarts++
}

func (r *recordingEngineHooks) OnChartComplete(context.Context, string, time.Duration, error) {
	r.chartDone++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)  { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string) { r.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	ctx := context.Background()

	// These should not panic.
	Engine().OnChartStart(ctx, "natal")
	Engine().OnChartComplete(ctx, "natal", time.Millisecond, nil)
	Engine().OnAspectsStart(ctx, 45)
	Engine().OnAspectsComplete(ctx, 8, time.Millisecond, nil)
	Engine().OnLayoutStart(ctx, 10)
	Engine().OnLayoutComplete(ctx, 3, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "chart")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "chart", 1024)
	Provider().OnLookup(ctx, "analytic", "longitude")
	Provider().OnResult(ctx, "analytic", "longitude", time.Microsecond)
	Provider().OnError(ctx, "analytic", "longitude", context.Canceled)
}

func TestSetEngineHooks(t *testing.T) {
	defer Reset()

	rec := &recordingEngineHooks{}
	SetEngineHooks(rec)

	ctx := context.Background()
	Engine().OnChartStart(ctx, "natal")
	Engine().OnChartStart(ctx, "partner")
	Engine().OnChartComplete(ctx, "natal", time.Millisecond, nil)

	if rec.chartStarts != 2 {
		t.Errorf("chartStarts = %d, want 2", rec.chartStarts)
	}
	if rec.chartDone != 1 {
		t.Errorf("chartDone = %d, want 1", rec.chartDone)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "chart")
	Cache().OnCacheMiss(ctx, "chart")
	Cache().OnCacheMiss(ctx, "synastry")

	if rec.hits != 1 || rec.misses != 2 {
		t.Errorf("hits=%d misses=%d, want 1 and 2", rec.hits, rec.misses)
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	defer Reset()

	SetEngineHooks(nil)
	SetCacheHooks(nil)
	SetProviderHooks(nil)

	if Engine() == nil || Cache() == nil || Provider() == nil {
		t.Fatal("nil hooks should be ignored, defaults retained")
	}
}

func TestReset(t *testing.T) {
	SetEngineHooks(&recordingEngineHooks{})
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Errorf("Reset did not restore NoopEngineHooks, got %T", Engine())
	}
}
