// Package render provides visualization rendering for computed charts.
//
// # Overview
//
// This package contains the rendering layer that transforms chart
// engine output into visual artifacts. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Chart wheel rendering (in [wheel] subpackage)
//   - Aspect graph diagrams (in [aspectgraph] subpackage)
//
// The engine itself never draws; everything here consumes the plain
// data structures it emits (placements, aspect records, layout entries).
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg). They are shared
// by both renderers.
//
//	svg := wheel.RenderSVG(chart, entries)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Chart Wheel
//
// The [wheel] subpackage renders the classic circular chart: the zodiac
// ring, body glyphs placed on their resolved display tracks, and the
// ascendant marker. Collision handling comes entirely from the layout
// entries; the renderer just honors the track offsets.
//
// # Aspect Graphs
//
// The [aspectgraph] subpackage renders detected aspects as a Graphviz
// diagram where bodies are nodes and aspects are typed edges.
//
//	dot := aspectgraph.ToDOT(records, aspectgraph.Options{})
//	svg, err := aspectgraph.RenderSVG(dot)
//
// [wheel]: github.com/siderealab/orrery/pkg/render/wheel
// [aspectgraph]: github.com/siderealab/orrery/pkg/render/aspectgraph
package render
