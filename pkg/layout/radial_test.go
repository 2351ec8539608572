package layout

import (
	"testing"

	"github.com/siderealab/orrery/pkg/astro"
)

func entities(longitudes ...float64) []Entity {
	bodies := astro.Bodies()
	out := make([]Entity, len(longitudes))
	for i, lon := range longitudes {
		out[i] = Entity{Body: bodies[i%len(bodies)], Longitude: lon}
	}
	return out
}

func tracksOf(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Track
	}
	return out
}

func TestResolveClusterExample(t *testing.T) {
	// Four entities packed at 2° spacing plus one far away. The cluster
	// climbs tracks as the lookback finds collisions; the entity at 6° is
	// exactly at the threshold distance from 0°, so track 0 is free again.
	entries := Resolve(entities(0, 2, 4, 6, 100))

	want := []int{0, 1, 2, 0, 0}
	got := tracksOf(entries)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d (%.0f°): track %d, want %d",
				i, entries[i].Entity.Longitude, got[i], want[i])
		}
	}

	// Only the entity at 100° is isolated.
	for i, e := range entries {
		wantIsolated := e.Entity.Longitude == 100
		if e.Isolated != wantIsolated {
			t.Errorf("entry %d (%.0f°): isolated = %v, want %v",
				i, e.Entity.Longitude, e.Isolated, wantIsolated)
		}
	}
}

func TestResolveSingleEntity(t *testing.T) {
	entries := Resolve(entities(42))
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !entries[0].Isolated {
		t.Error("single entity must be isolated")
	}
	if entries[0].Track != 0 {
		t.Errorf("single entity track = %d, want 0", entries[0].Track)
	}
}

func TestResolveEmpty(t *testing.T) {
	if entries := Resolve(nil); len(entries) != 0 {
		t.Errorf("got %d entries for empty input", len(entries))
	}
}

func TestResolveSortsByLongitude(t *testing.T) {
	entries := Resolve(entities(300, 10, 150))
	for i := 1; i < len(entries); i++ {
		if entries[i].Entity.Longitude < entries[i-1].Entity.Longitude {
			t.Errorf("entries not sorted: %v before %v",
				entries[i-1].Entity.Longitude, entries[i].Entity.Longitude)
		}
	}
	// All spread out: every entity isolated on track 0.
	for _, e := range entries {
		if !e.Isolated || e.Track != 0 {
			t.Errorf("spread entity %+v: want isolated on track 0", e)
		}
	}
}

func TestResolveWrapAroundPatch(t *testing.T) {
	// The last sorted entity (358°) is outside the lookback window of the
	// first (2°), so both land on track 0; their circular distance is 4°.
	// The patch bumps the first entity's track.
	entries := Resolve(entities(2, 20, 40, 60, 80, 358))

	first, last := entries[0], entries[len(entries)-1]
	if first.Entity.Longitude != 2 || last.Entity.Longitude != 358 {
		t.Fatalf("unexpected sort order: first %v, last %v",
			first.Entity.Longitude, last.Entity.Longitude)
	}
	if last.Track != 0 {
		t.Errorf("last track = %d, want 0", last.Track)
	}
	if first.Track != 1 {
		t.Errorf("first track = %d, want 1 (wrap patch)", first.Track)
	}
}

func TestResolveSeamWithinLookback(t *testing.T) {
	// Neighbors across the seam that fall inside the lookback window are
	// handled by the regular pass; the patch must not double-correct.
	entries := Resolve(entities(359, 1))

	if entries[0].Entity.Longitude != 1 {
		t.Fatalf("sort order: got first %v", entries[0].Entity.Longitude)
	}
	if entries[0].Track == entries[1].Track {
		t.Errorf("colliding seam neighbors share track %d", entries[0].Track)
	}
}

func TestResolveCustomSeparation(t *testing.T) {
	// With a 10° threshold, entities 8° apart collide.
	entries := Resolver{MinSeparation: 10}.Resolve(entities(0, 8))
	if entries[0].Track == entries[1].Track {
		t.Error("entities within custom threshold share a track")
	}

	// With the default threshold they do not.
	entries = Resolve(entities(0, 8))
	if entries[0].Track != entries[1].Track {
		t.Error("entities beyond default threshold should share track 0")
	}
}

func TestResolveIsolationThreshold(t *testing.T) {
	// 14° gap: neighbors, not isolated. 16° gap on both sides: isolated.
	entries := Resolve(entities(0, 14))
	for _, e := range entries {
		if e.Isolated {
			t.Errorf("entity at %v with 14° neighbor marked isolated", e.Entity.Longitude)
		}
	}

	entries = Resolve(entities(0, 100, 200))
	for _, e := range entries {
		if !e.Isolated {
			t.Errorf("entity at %v with distant neighbors not isolated", e.Entity.Longitude)
		}
	}
}

func TestResolveChartCardinality(t *testing.T) {
	// Two full subjects: 20 entities spread evenly plus a dense cluster.
	// Tracks stay non-negative and deterministic across calls.
	longs := make([]float64, 0, 20)
	for i := 0; i < 16; i++ {
		longs = append(longs, float64(i*22))
	}
	longs = append(longs, 45, 46.5, 48, 49.5)

	a := Resolve(entities(longs...))
	b := Resolve(entities(longs...))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic resolve at %d: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].Track < 0 {
			t.Errorf("negative track at %d", i)
		}
	}
}
