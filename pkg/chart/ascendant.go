package chart

import (
	"context"
	"math"
	"time"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/ephemeris"
	"github.com/siderealab/orrery/pkg/errors"
)

// Obliquity is the fixed obliquity of the ecliptic in degrees (J2000).
const Obliquity = 23.4392911

// AscendantCalculator computes the rising longitude from sidereal time
// and observer coordinates.
type AscendantCalculator struct {
	provider ephemeris.SiderealTimeProvider
}

// NewAscendantCalculator creates a calculator backed by the given
// sidereal time provider.
func NewAscendantCalculator(p ephemeris.SiderealTimeProvider) *AscendantCalculator {
	return &AscendantCalculator{provider: p}
}

// Ascendant returns the ecliptic longitude of the ascendant in [0,360)
// for an observer at (latitude, longitude) degrees at the given UTC
// instant.
//
// Latitudes at or beyond ±90° fail with POLAR_LATITUDE: tan(lat) is
// undefined at the poles and the horizon degenerates, so no numeric
// answer is produced there.
func (c *AscendantCalculator) Ascendant(ctx context.Context, t time.Time, latitude, longitude float64) (float64, error) {
	if err := errors.ValidateInstant(t); err != nil {
		return 0, err
	}
	if err := errors.ValidateLatitude(latitude); err != nil {
		return 0, err
	}
	if err := errors.ValidateLongitude(longitude); err != nil {
		return 0, err
	}

	gmst, err := c.provider.SiderealTime(ctx, t)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeProvider, err, "sidereal time")
	}

	return AscendantFromSidereal(gmst, latitude, longitude)
}

// AscendantFromSidereal computes the ascendant from Greenwich mean
// sidereal time in hours. Exposed separately so callers with their own
// sidereal source can reuse the geometry.
func AscendantFromSidereal(gmstHours, latitude, longitude float64) (float64, error) {
	if err := errors.ValidateLatitude(latitude); err != nil {
		return 0, err
	}
	if err := errors.ValidateLongitude(longitude); err != nil {
		return 0, err
	}

	// Local sidereal time in hours, then the RAMC in radians.
	lstHours := gmstHours + longitude/15
	ramc := lstHours * 15 * math.Pi / 180

	eps := Obliquity * math.Pi / 180
	lat := latitude * math.Pi / 180

	asc := math.Atan2(
		math.Cos(ramc),
		-math.Sin(ramc)*math.Cos(eps)-math.Tan(lat)*math.Sin(eps),
	)

	return astro.Normalize(asc * 180 / math.Pi), nil
}
