package aspectgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/siderealab/orrery/pkg/aspect"
	"github.com/siderealab/orrery/pkg/render"
)

// Options configures aspect graph rendering.
type Options struct {
	// Detailed includes the orb in degrees on edge labels.
	// When false, only the aspect symbol is shown.
	Detailed bool

	// OwnerA and OwnerB name the subjects of a synastry comparison.
	// When both are set, BodyA nodes are attributed to OwnerA and BodyB
	// nodes to OwnerB, so the same body can appear on both sides.
	OwnerA string
	OwnerB string
}

// Edge colors and symbols per aspect type. Harmonious aspects render in
// cool colors, tense aspects in warm ones.
var edgeStyles = map[aspect.Type]struct {
	symbol string
	color  string
}{
	aspect.Conjunction: {"☌", "#b8860b"},
	aspect.Sextile:     {"⚹", "#2e8b57"},
	aspect.Square:      {"□", "#b22222"},
	aspect.Trine:       {"△", "#4169e1"},
	aspect.Opposition:  {"☍", "#8b008b"},
}

// ToDOT converts aspect records to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Only bodies participating in at least one aspect become nodes;
// unaspected bodies are omitted, matching the records themselves.
func ToDOT(records []aspect.Record, opts Options) string {
	synastry := opts.OwnerA != "" && opts.OwnerB != "" && opts.OwnerA != opts.OwnerB

	var buf bytes.Buffer
	buf.WriteString("graph aspects {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18, fixedsize=true, width=1.1];\n")
	buf.WriteString("  edge [fontsize=14, penwidth=2];\n")
	buf.WriteString("\n")

	seen := make(map[string]bool)
	for _, rec := range records {
		a := nodeID(rec.BodyA.String(), opts.OwnerA, synastry)
		b := nodeID(rec.BodyB.String(), opts.OwnerB, synastry)
		for _, n := range []struct{ id, label string }{
			{a, nodeLabel(rec.BodyA.String(), rec.BodyA.Symbol(), opts.OwnerA, synastry)},
			{b, nodeLabel(rec.BodyB.String(), rec.BodyB.Symbol(), opts.OwnerB, synastry)},
		} {
			if !seen[n.id] {
				seen[n.id] = true
				fmt.Fprintf(&buf, "  %q [label=%q];\n", n.id, n.label)
			}
		}
	}

	buf.WriteString("\n")
	for _, rec := range records {
		a := nodeID(rec.BodyA.String(), opts.OwnerA, synastry)
		b := nodeID(rec.BodyB.String(), opts.OwnerB, synastry)
		style := edgeStyles[rec.Type]
		label := style.symbol
		if opts.Detailed {
			label = fmt.Sprintf("%s %.1f°", style.symbol, rec.Orb)
		}
		fmt.Fprintf(&buf, "  %q -- %q [label=%q, color=%q, tooltip=%q];\n",
			a, b, label, style.color, string(rec.Type))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(body, owner string, synastry bool) string {
	if !synastry {
		return body
	}
	return owner + "/" + body
}

func nodeLabel(body, symbol, owner string, synastry bool) string {
	label := symbol + "\n" + body
	if synastry {
		label += "\n" + owner
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
