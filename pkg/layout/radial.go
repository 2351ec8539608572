// Package layout packs angular entities onto a ring without visual
// overlap.
//
// The resolver is purely geometric: it knows nothing about astronomy and
// is reused for any set of angular positions that a rendering layer needs
// to draw on a circle. Entities sorted by longitude are assigned the
// smallest free track among their recent predecessors, and entities with
// no close neighbor are flagged isolated so a renderer can drop their
// guide lines.
//
// The lookback window (4 entities) and the single-entity wrap-around
// patch are bounded heuristics sized for chart cardinalities (at most
// twelve entities per subject); they are not a general interval-packing
// algorithm.
package layout

import (
	"sort"

	"github.com/siderealab/orrery/pkg/astro"
)

const (
	// DefaultMinSeparation is the angular distance below which two
	// entities are considered colliding and need distinct tracks.
	DefaultMinSeparation = 6.0

	// isolationThreshold is the distance to the nearest sorted neighbor
	// above which an entity counts as isolated.
	isolationThreshold = 15.0

	// lookback is how many preceding sorted entities are examined for
	// track collisions.
	lookback = 4
)

// Entity is one angular item to place: a body, its owning subject, and
// its longitude.
type Entity struct {
	Body      astro.Body `json:"body" bson:"body"`
	Owner     string     `json:"owner,omitempty" bson:"owner,omitempty"`
	Longitude float64    `json:"longitude" bson:"longitude"`
}

// Entry is a placed entity: the track it was assigned and whether it sat
// alone on the ring. Entries are recomputed on every call; track numbers
// carry no identity across calls.
type Entry struct {
	Entity   Entity `json:"entity" bson:"entity"`
	Track    int    `json:"track" bson:"track"` // non-negative display track
	Isolated bool   `json:"isolated" bson:"isolated"`
}

// Resolver assigns display tracks. The zero value uses
// [DefaultMinSeparation].
type Resolver struct {
	// MinSeparation overrides the collision threshold when positive.
	MinSeparation float64
}

// Resolve places the entities and returns entries in longitude-sorted
// order. The input slice is not modified.
//
// Algorithm: sort by longitude; flag isolation by circular distance to
// the sorted neighbors; per entity, occupy the tracks of up to four
// predecessors within the separation threshold and take the smallest
// free track; finally patch the seam by bumping the first entity's track
// if it collides with the last on the same track. The patch is
// one-sided and does not guarantee resolution under dense clustering at
// the 0°/360° boundary.
func (r Resolver) Resolve(entities []Entity) []Entry {
	minSep := r.MinSeparation
	if minSep <= 0 {
		minSep = DefaultMinSeparation
	}

	entries := make([]Entry, len(entities))
	for i, e := range entities {
		e.Longitude = astro.Normalize(e.Longitude)
		entries[i] = Entry{Entity: e}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Entity.Longitude < entries[j].Entity.Longitude
	})

	n := len(entries)
	if n == 0 {
		return entries
	}

	// Isolation: no neighbor within the threshold on either side. A
	// single entity has no neighbors and is always isolated.
	for i := range entries {
		if n == 1 {
			entries[i].Isolated = true
			break
		}
		prev := entries[(i-1+n)%n].Entity.Longitude
		next := entries[(i+1)%n].Entity.Longitude
		lon := entries[i].Entity.Longitude
		entries[i].Isolated = astro.Separation(lon, prev) >= isolationThreshold &&
			astro.Separation(lon, next) >= isolationThreshold
	}

	// Track assignment with a bounded lookback window.
	for i := range entries {
		occupied := make(map[int]bool, lookback)
		for j := i - 1; j >= 0 && j >= i-lookback; j-- {
			d := astro.Separation(entries[i].Entity.Longitude, entries[j].Entity.Longitude)
			if d < minSep {
				occupied[entries[j].Track] = true
			}
		}
		track := 0
		for occupied[track] {
			track++
		}
		entries[i].Track = track
	}

	// Wrap-around patch: the lookback never sees across the seam, so the
	// first and last sorted entities can collide on the same track.
	if n > 1 {
		first, last := &entries[0], &entries[n-1]
		d := astro.Separation(first.Entity.Longitude, last.Entity.Longitude)
		if d < minSep && first.Track == last.Track {
			first.Track++
		}
	}

	return entries
}

// Resolve places entities using the default separation threshold.
func Resolve(entities []Entity) []Entry {
	return Resolver{}.Resolve(entities)
}
