// Package wheel renders charts as classic circular wheel diagrams.
//
// The wheel shows the zodiac ring with sign glyphs, every charted body
// placed at its ecliptic longitude, and the ascendant marker on the
// left. Bodies too close together are offset inward onto the display
// tracks resolved by the layout package; the renderer never does its own
// collision handling.
//
// The ascendant is pinned to the 9 o'clock position and longitudes
// increase counterclockwise, the conventional chart orientation.
//
//	entries := layout.Resolve(entities)
//	svg := wheel.RenderSVG(c, entries, wheel.WithAspects(records))
package wheel

import (
	"bytes"
	"fmt"
	"math"

	"github.com/siderealab/orrery/pkg/aspect"
	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/chart"
	"github.com/siderealab/orrery/pkg/layout"
)

const (
	defaultSize = 600.0

	// Radii as fractions of the frame half-size.
	outerRadius  = 0.95
	zodiacRadius = 0.86
	bodyRadius   = 0.72
	innerRadius  = 0.52

	// trackStep is the inward offset per display track, as a fraction of
	// the half-size.
	trackStep = 0.07
)

// Chord colors per aspect type, matching the aspectgraph palette.
var chordColors = map[aspect.Type]string{
	aspect.Conjunction: "#b8860b",
	aspect.Sextile:     "#2e8b57",
	aspect.Square:      "#b22222",
	aspect.Trine:       "#4169e1",
	aspect.Opposition:  "#8b008b",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	size    float64
	aspects []aspect.Record
	title   string
}

// WithSize sets the frame size in pixels (default 600).
func WithSize(px float64) SVGOption { return func(r *svgRenderer) { r.size = px } }

// WithAspects draws aspect chords between the aspected bodies across the
// inner circle.
func WithAspects(records []aspect.Record) SVGOption {
	return func(r *svgRenderer) { r.aspects = records }
}

// WithTitle draws a caption under the wheel.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG renders the chart as an SVG wheel. The entries control where
// each body glyph sits; pass the output of resolving the chart's
// positions through the layout package.
func RenderSVG(c *chart.Chart, entries []layout.Entry, opts ...SVGOption) []byte {
	r := svgRenderer{size: defaultSize}
	for _, opt := range opts {
		opt(&r)
	}

	half := r.size / 2
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		r.size, r.size, r.size, r.size)
	buf.WriteString(`<g font-family="serif" stroke-linecap="round">` + "\n")

	r.renderRings(&buf, half)
	r.renderSigns(&buf, half, c.Ascendant)
	r.renderChords(&buf, half, c)
	r.renderBodies(&buf, half, c.Ascendant, entries)
	r.renderAscendant(&buf, half)

	if r.title != "" {
		fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16">%s</text>`+"\n",
			half, r.size-8, escape(r.title))
	}

	buf.WriteString("</g>\n</svg>\n")
	return buf.Bytes()
}

// point maps an ecliptic longitude and radius fraction to frame
// coordinates, with the ascendant fixed at 9 o'clock and longitudes
// increasing counterclockwise.
func point(half, ascendant, lon, radius float64) (float64, float64) {
	theta := (180 + lon - ascendant) * math.Pi / 180
	return half + half*radius*math.Cos(theta), half - half*radius*math.Sin(theta)
}

func (r *svgRenderer) renderRings(buf *bytes.Buffer, half float64) {
	for _, radius := range []float64{outerRadius, zodiacRadius, innerRadius} {
		fmt.Fprintf(buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="black" stroke-width="1.5"/>`+"\n",
			half, half, half*radius)
	}
}

func (r *svgRenderer) renderSigns(buf *bytes.Buffer, half, ascendant float64) {
	for _, sign := range astro.Signs() {
		// Cusp tick between outer ring and zodiac ring.
		x1, y1 := point(half, ascendant, sign.StartDegree, zodiacRadius)
		x2, y2 := point(half, ascendant, sign.StartDegree, outerRadius)
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black" stroke-width="1"/>`+"\n",
			x1, y1, x2, y2)

		// Glyph at mid-sign.
		gx, gy := point(half, ascendant, sign.StartDegree+15, (outerRadius+zodiacRadius)/2)
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%.0f">%s</text>`+"\n",
			gx, gy, half*0.07, sign.Symbol)
	}
}

func (r *svgRenderer) renderBodies(buf *bytes.Buffer, half, ascendant float64, entries []layout.Entry) {
	for _, e := range entries {
		radius := bodyRadius - float64(e.Track)*trackStep
		bx, by := point(half, ascendant, e.Entity.Longitude, radius)

		// Guide line from the glyph out to its true angular position on
		// the zodiac ring. Isolated bodies sit where they belong and
		// need no guide.
		if !e.Isolated {
			gx, gy := point(half, ascendant, e.Entity.Longitude, zodiacRadius)
			fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="grey" stroke-width="0.7"/>`+"\n",
				bx, by, gx, gy)
		}

		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%.0f">%s</text>`+"\n",
			bx, by, half*0.08, e.Entity.Body.Symbol())
	}
}

func (r *svgRenderer) renderChords(buf *bytes.Buffer, half float64, c *chart.Chart) {
	if len(r.aspects) == 0 {
		return
	}
	lons := make(map[astro.Body]float64, len(c.Positions))
	for _, pos := range c.Positions {
		lons[pos.Body] = pos.Longitude
	}
	for _, rec := range r.aspects {
		la, okA := lons[rec.BodyA]
		lb, okB := lons[rec.BodyB]
		if !okA || !okB {
			continue
		}
		x1, y1 := point(half, c.Ascendant, la, innerRadius)
		x2, y2 := point(half, c.Ascendant, lb, innerRadius)
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.2" opacity="0.8"/>`+"\n",
			x1, y1, x2, y2, chordColors[rec.Type])
	}
}

func (r *svgRenderer) renderAscendant(buf *bytes.Buffer, half float64) {
	// The ascendant is pinned to 9 o'clock by construction.
	x1 := half - half*outerRadius
	x2 := half - half*innerRadius
	fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black" stroke-width="2.5"/>`+"\n",
		x1, half, x2, half)
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="start" font-size="%.0f">AC</text>`+"\n",
		x1+4, half-6, half*0.05)
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
