package chart

import (
	"context"
	"math"
	"time"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/ephemeris"
)

// Subject is the birth data for one chart: a UTC instant and geographic
// coordinates in degrees.
type Subject struct {
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Instant   time.Time `json:"instant" bson:"instant"`
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
}

// Placement is one body's assignment within a chart.
type Placement struct {
	Position       astro.Position `json:"position" bson:"position"`
	SignIndex      int            `json:"sign_index" bson:"sign_index"`
	SignName       string         `json:"sign_name" bson:"sign_name"`
	House          int            `json:"house" bson:"house"` // whole-sign house in [1,12]
	RelativeDegree float64        `json:"relative_degree" bson:"relative_degree"`

	// Interpretation is appended by an external text-enrichment layer.
	// The engine never populates it.
	Interpretation string `json:"interpretation,omitempty" bson:"interpretation,omitempty"`
}

// ElementBalance holds elemental percentages that always sum to exactly
// 100. Fire, earth and air are rounded independently; water absorbs the
// remainder and is clipped at 0.
type ElementBalance struct {
	Fire  int `json:"fire" bson:"fire"`
	Earth int `json:"earth" bson:"earth"`
	Air   int `json:"air" bson:"air"`
	Water int `json:"water" bson:"water"`
}

// BigThree names the three headline placements of a chart.
type BigThree struct {
	Sun    string `json:"sun" bson:"sun"`
	Moon   string `json:"moon" bson:"moon"`
	Rising string `json:"rising" bson:"rising"`
}

// Chart is a fully assembled natal chart. Built once per request and not
// mutated afterward, except for the interpretation strings an external
// enrichment layer may append.
type Chart struct {
	Subject    Subject          `json:"subject" bson:"subject"`
	Positions  []astro.Position `json:"positions" bson:"positions"`
	Ascendant  float64          `json:"ascendant" bson:"ascendant"` // degrees in [0,360)
	Placements []Placement      `json:"placements" bson:"placements"`
	Elements   ElementBalance   `json:"elements" bson:"elements"`
	BigThree   BigThree         `json:"big_three" bson:"big_three"`

	// Summary is appended by an external text-enrichment layer.
	Summary string `json:"summary,omitempty" bson:"summary,omitempty"`
}

// AscendantSign returns the sign containing the ascendant.
func (c *Chart) AscendantSign() astro.Sign {
	return astro.SignAt(c.Ascendant)
}

// Placement returns the placement for a body, or nil if the body is not
// in the chart.
func (c *Chart) Placement(body astro.Body) *Placement {
	for i := range c.Placements {
		if c.Placements[i].Position.Body == body {
			return &c.Placements[i]
		}
	}
	return nil
}

// Assemble builds a chart from computed positions and an ascendant
// longitude. It is pure: all sign, house and element assignments are
// derived from the inputs.
//
// House numbering is whole-sign: the ascendant's sign is house 1 and
// each subsequent sign is the next house, giving a bijection between the
// twelve signs and houses 1-12 for any fixed ascendant.
func Assemble(subject Subject, positions []astro.Position, ascendant float64) *Chart {
	ascendant = astro.Normalize(ascendant)
	ascIndex := astro.SignIndexAt(ascendant)

	// Store a normalized copy so Chart.Positions honors the [0,360)
	// invariant even when the caller's longitudes do not.
	normalized := make([]astro.Position, 0, len(positions))
	placements := make([]Placement, 0, len(positions))
	var counts [astro.ElementCount]int
	var sunSign, moonSign string

	for _, pos := range positions {
		pos.Longitude = astro.Normalize(pos.Longitude)
		normalized = append(normalized, pos)
		sign := astro.SignAt(pos.Longitude)
		counts[sign.Element]++

		placements = append(placements, Placement{
			Position:       pos,
			SignIndex:      sign.Index,
			SignName:       sign.Name,
			House:          ((sign.Index-ascIndex+12)%12 + 1),
			RelativeDegree: astro.RelativeDegree(pos.Longitude),
		})

		switch pos.Body {
		case astro.Sun:
			sunSign = sign.Name
		case astro.Moon:
			moonSign = sign.Name
		}
	}

	return &Chart{
		Subject:    subject,
		Positions:  normalized,
		Ascendant:  ascendant,
		Placements: placements,
		Elements:   elementBalance(counts, len(positions)),
		BigThree: BigThree{
			Sun:    sunSign,
			Moon:   moonSign,
			Rising: astro.SignAt(ascendant).Name,
		},
	}
}

// elementBalance converts element counts into percentages summing to
// exactly 100. The first three categories round independently; water is
// the remainder, clipped at 0. Under skewed distributions water can
// absorb a disproportionate share of rounding error; that is the
// documented policy, not a defect.
func elementBalance(counts [astro.ElementCount]int, total int) ElementBalance {
	if total == 0 {
		return ElementBalance{}
	}
	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(total) * 100))
	}

	fire := pct(counts[astro.Fire])
	earth := pct(counts[astro.Earth])
	air := pct(counts[astro.Air])
	water := 100 - fire - earth - air
	if water < 0 {
		water = 0
	}

	return ElementBalance{Fire: fire, Earth: earth, Air: air, Water: water}
}

// Builder wires the two calculators into a one-call chart build.
type Builder struct {
	positions *PositionCalculator
	ascendant *AscendantCalculator
}

// NewBuilder creates a Builder from an ephemeris provider and a sidereal
// time provider.
func NewBuilder(eph ephemeris.Provider, sid ephemeris.SiderealTimeProvider) *Builder {
	return &Builder{
		positions: NewPositionCalculator(eph),
		ascendant: NewAscendantCalculator(sid),
	}
}

// Build computes the full chart for a subject: all ten body positions,
// the ascendant, and the assembled placements.
func (b *Builder) Build(ctx context.Context, subject Subject) (*Chart, error) {
	positions, err := b.positions.Positions(ctx, subject.Instant)
	if err != nil {
		return nil, err
	}
	asc, err := b.ascendant.Ascendant(ctx, subject.Instant, subject.Latitude, subject.Longitude)
	if err != nil {
		return nil, err
	}
	return Assemble(subject, positions, asc), nil
}
