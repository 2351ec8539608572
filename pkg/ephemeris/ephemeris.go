// Package ephemeris defines the data-source boundary of the chart engine.
//
// The engine itself never computes raw celestial positions; it consumes
// them from an injected [Provider] and [SiderealTimeProvider]. This keeps
// the geometric core pure and lets callers choose their source: the
// built-in low-precision [analytic] provider, a Swiss-Ephemeris bridge, a
// remote service, or a fixed table in tests.
//
// Provider failures are wrapped by callers as PROVIDER_ERROR and
// propagated unchanged; any retry policy belongs to the application, not
// to the engine.
//
// [analytic]: https://pkg.go.dev/github.com/siderealab/orrery/pkg/ephemeris/analytic
package ephemeris

import (
	"context"
	"time"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/errors"
)

// Provider supplies geocentric ecliptic longitudes for the ten supported
// bodies. Implementations must be safe for concurrent use: the engine may
// issue the two samples of a retrograde determination in parallel.
type Provider interface {
	// Longitude returns the geocentric ecliptic longitude of body at the
	// given UTC instant, in degrees. The result does not need to be
	// pre-normalized; the engine normalizes into [0,360).
	Longitude(ctx context.Context, body astro.Body, t time.Time) (float64, error)
}

// SiderealTimeProvider supplies Greenwich mean sidereal time.
type SiderealTimeProvider interface {
	// SiderealTime returns GMST at the given UTC instant, in hours.
	SiderealTime(ctx context.Context, t time.Time) (float64, error)
}

// Fixed is a deterministic in-memory provider for tests and examples.
// Each body moves linearly from its base longitude at Epoch by its rate
// in degrees per hour (negative rates simulate retrograde motion).
type Fixed struct {
	// Epoch anchors the linear motion. Zero means longitudes are static.
	Epoch time.Time

	// Longitudes maps bodies to their longitude at Epoch, in degrees.
	Longitudes map[astro.Body]float64

	// Rates maps bodies to degrees per hour of motion. Missing bodies
	// are static.
	Rates map[astro.Body]float64

	// GMST is the sidereal time returned for every instant, in hours.
	GMST float64
}

// Longitude implements [Provider].
// Requesting a body absent from Longitudes fails with PROVIDER_ERROR.
func (f *Fixed) Longitude(ctx context.Context, body astro.Body, t time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	base, ok := f.Longitudes[body]
	if !ok {
		return 0, errors.New(errors.ErrCodeProvider, "no fixture longitude for %s", body)
	}
	if f.Epoch.IsZero() {
		return base, nil
	}
	hours := t.Sub(f.Epoch).Hours()
	return base + f.Rates[body]*hours, nil
}

// SiderealTime implements [SiderealTimeProvider].
func (f *Fixed) SiderealTime(ctx context.Context, t time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return f.GMST, nil
}

var (
	_ Provider             = (*Fixed)(nil)
	_ SiderealTimeProvider = (*Fixed)(nil)
)
