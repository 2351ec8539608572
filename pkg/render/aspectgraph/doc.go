// Package aspectgraph renders detected aspects as node-link diagrams.
//
// # Overview
//
// This package produces graph visualizations using Graphviz, where
// bodies appear as circular nodes connected by edges typed and colored
// by aspect. It's an alternative to the chart wheel for cases where the
// aspect structure matters more than angular positions.
//
// # Usage
//
// Convert aspect records to DOT format, then render to SVG:
//
//	dot := aspectgraph.ToDOT(records, aspectgraph.Options{Detailed: true})
//	svg, err := aspectgraph.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := aspectgraph.RenderPDF(dot)
//	png, err := aspectgraph.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, edge labels include the orb in degrees
//   - OwnerA/OwnerB: Subject names for synastry diagrams; when both are
//     set, each body appears once per subject
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses the circo engine so bodies sit on a ring,
// echoing the chart wheel's circular arrangement.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package aspectgraph
