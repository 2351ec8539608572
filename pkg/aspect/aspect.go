// Package aspect classifies angular relationships between two sets of
// body positions.
//
// Classification walks an explicit ordered table of (center angle, orb)
// bands; the first band containing the pair's separation wins. Keeping
// the bands in one table, evaluated in a fixed documented order, means
// adding an aspect type cannot silently reorder existing behavior.
//
// Results are ranked by tightness (ascending orb) with a stable sort, so
// equal orbs keep their cross-pair enumeration order, and truncated to
// the eight tightest.
package aspect

import (
	"sort"

	"github.com/siderealab/orrery/pkg/astro"
)

// Type names a recognized aspect.
type Type string

// The five recognized aspect types.
const (
	Conjunction Type = "conjunction"
	Sextile     Type = "sextile"
	Square      Type = "square"
	Trine       Type = "trine"
	Opposition  Type = "opposition"
)

// Band is one classification band: a center angle and the orb tolerance
// around it.
type Band struct {
	Type  Type
	Angle float64 // exact aspect angle in degrees
	Orb   float64 // tolerance in degrees
}

// Bands is the classification table in priority order. A pair matching
// several bands takes the first; a pair matching none is unaspected and
// omitted from results.
var Bands = []Band{
	{Conjunction, 0, 6},
	{Sextile, 60, 4.2},
	{Square, 90, 6},
	{Trine, 120, 6},
	{Opposition, 180, 6},
}

// MaxRecords caps the number of aspects returned by [Detect].
const MaxRecords = 8

// Record is one classified aspect between two bodies, with the orb as
// its tightness score (0 = exact).
type Record struct {
	BodyA astro.Body `json:"body_a" bson:"body_a"`
	BodyB astro.Body `json:"body_b" bson:"body_b"`
	Type  Type       `json:"type" bson:"type"`
	Orb   float64    `json:"orb" bson:"orb"` // degrees, >= 0
}

// Classify returns the aspect band for an angular separation in [0,180],
// or false if the separation falls in no band. Classification depends
// only on the separation, so it is symmetric in the two longitudes that
// produced it.
func Classify(separation float64) (Band, float64, bool) {
	for _, b := range Bands {
		orb := separation - b.Angle
		if orb < 0 {
			orb = -orb
		}
		if orb <= b.Orb {
			return b, orb, true
		}
	}
	return Band{}, 0, false
}

// Detect classifies every cross-pair between two position sets and
// returns the eight tightest aspects, ascending by orb. Ties keep
// enumeration order (a outer, b inner).
func Detect(a, b []astro.Position) []Record {
	return detect(a, b, false)
}

// DetectWithin classifies aspects inside a single chart. Pairs where the
// second index is at or before the first are skipped, so each unordered
// pair appears once and bodies are never compared with themselves.
func DetectWithin(positions []astro.Position) []Record {
	return detect(positions, positions, true)
}

func detect(a, b []astro.Position, sameSubject bool) []Record {
	var records []Record

	for i, pa := range a {
		for j, pb := range b {
			if sameSubject && j <= i {
				continue
			}
			sep := astro.Separation(pa.Longitude, pb.Longitude)
			band, orb, ok := Classify(sep)
			if !ok {
				continue
			}
			records = append(records, Record{
				BodyA: pa.Body,
				BodyB: pb.Body,
				Type:  band.Type,
				Orb:   orb,
			})
		}
	}

	// Stable: equal orbs keep enumeration order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Orb < records[j].Orb
	})

	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	return records
}
