// Package pkg provides the core libraries for Orrery chart computation.
//
// # Overview
//
// Orrery computes astrology charts deterministically: given a birth
// instant and location it derives body positions, the ascendant,
// whole-sign houses, aspects, and a collision-free radial layout. The
// pkg directory is organized into four main areas:
//
//  1. Core domain (astro, chart, aspect, layout) - pure computation
//  2. Providers (ephemeris, ephemeris/analytic) - position sources
//  3. Infrastructure (cache, store, errors, observability) - persistence and reporting
//  4. Orchestration (pipeline) - the chart → aspects → layout runner
//
// # Architecture
//
// The typical data flow through Orrery:
//
//	Birth instant + coordinates
//	         ↓
//	    [ephemeris] package (body longitudes, sidereal time)
//	         ↓
//	    [chart] package (positions, ascendant, houses, elements)
//	         ↓
//	    [aspect] package (angular relationships within orb)
//	         ↓
//	    [layout] package (radial display tracks)
//	         ↓
//	    SVG/PDF/PNG wheel or aspect graph output
//
// # Quick Start
//
// Compute a chart and detect its aspects:
//
//	import (
//	    "context"
//	    "github.com/siderealab/orrery/pkg/chart"
//	    "github.com/siderealab/orrery/pkg/ephemeris/analytic"
//	    "github.com/siderealab/orrery/pkg/pipeline"
//	)
//
//	p := &analytic.Provider{}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Subjects: []chart.Subject{{
//	        Instant:   birth,
//	        Latitude:  52.52,
//	        Longitude: 13.40,
//	    }},
//	    Ephemeris: p,
//	    Sidereal:  p,
//	})
//
// # Main Packages
//
// ## Core Domain
//
// [astro] - The closed vocabulary: ten bodies, twelve signs, four
// elements, and angle arithmetic on the ecliptic circle.
//
// [chart] - Chart assembly: position calculation with retrograde
// detection, the ascendant from spherical trigonometry, whole-sign
// houses, elemental balance, and the big three.
//
// [aspect] - Aspect detection over an ordered band table (conjunction,
// sextile, square, trine, opposition), sorted by orb and capped.
//
// [layout] - Radial collision layout: entities closer than a threshold
// are pushed onto outward tracks so wheel glyphs never overlap.
//
// ## Providers
//
// [ephemeris] - Provider interfaces for body longitudes and Greenwich
// sidereal time, plus a fixed provider for deterministic tests.
//
// [ephemeris/analytic] - The built-in mean-element ephemeris. Low
// precision, zero external data.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching of charts, aspects, and layouts
// with null, file, and Redis backends.
//
// [store] - Saved chart reports with memory and MongoDB backends.
//
// [errors] - Structured error codes shared by every layer.
//
// [observability] - Optional lifecycle hooks for embedding metrics.
//
// ## Orchestration and Output
//
// [pipeline] - The chart → aspects → layout runner with per-stage
// caching, used by the CLI and the HTTP server alike.
//
// [render/wheel] - The chart wheel SVG.
//
// [render/aspectgraph] - Aspect graphs via Graphviz.
//
// [render] - Format conversion (SVG to PDF/PNG).
//
// [buildinfo] - Version metadata injected at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/chart/...        # Specific package
//	go test -run Example           # Examples only
//
// [astro]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/astro
// [chart]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/chart
// [aspect]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/aspect
// [layout]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/layout
// [ephemeris]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/ephemeris
// [ephemeris/analytic]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/ephemeris/analytic
// [cache]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/cache
// [store]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/store
// [errors]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/errors
// [observability]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/render
// [render/wheel]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/render/wheel
// [render/aspectgraph]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/render/aspectgraph
// [buildinfo]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/buildinfo
package pkg
