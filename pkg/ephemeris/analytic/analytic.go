package analytic

import (
	"context"
	"math"
	"time"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/ephemeris"
	"github.com/siderealab/orrery/pkg/errors"
)

// Provider computes geocentric ecliptic longitudes and Greenwich mean
// sidereal time from closed-form series. The zero value is ready to use.
type Provider struct{}

// New returns a ready-to-use analytic provider.
func New() *Provider { return &Provider{} }

var (
	_ ephemeris.Provider             = (*Provider)(nil)
	_ ephemeris.SiderealTimeProvider = (*Provider)(nil)
)

// dayNumber converts a UTC instant to the day offset from the series
// epoch (1999 Dec 31.0 UT).
func dayNumber(t time.Time) float64 {
	jd := float64(t.UnixMilli())/86400000.0 + 2440587.5
	return jd - 2451543.5
}

// Longitude implements [ephemeris.Provider].
func (p *Provider) Longitude(ctx context.Context, body astro.Body, t time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !body.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidBody, "invalid body value: %d", int(body))
	}
	if err := errors.ValidateInstant(t); err != nil {
		return 0, err
	}

	d := dayNumber(t)
	switch body {
	case astro.Sun:
		lon, _, _ := sunPosition(d)
		return astro.Normalize(lon), nil
	case astro.Moon:
		return astro.Normalize(moonLongitude(d)), nil
	case astro.Pluto:
		return astro.Normalize(plutoLongitude(d)), nil
	default:
		return astro.Normalize(planetLongitude(body, d)), nil
	}
}

// SiderealTime implements [ephemeris.SiderealTimeProvider].
// GMST is computed from the standard linear expression in days since
// J2000.0 and reduced into [0, 24) hours.
func (p *Provider) SiderealTime(ctx context.Context, t time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := errors.ValidateInstant(t); err != nil {
		return 0, err
	}
	jd := float64(t.UnixMilli())/86400000.0 + 2440587.5
	days := jd - 2451545.0
	gmst := math.Mod(18.697374558+24.06570982441908*days, 24)
	if gmst < 0 {
		gmst += 24
	}
	return gmst, nil
}

// rad and deg convert between degrees and radians.
func rad(x float64) float64 { return x * math.Pi / 180 }
func deg(x float64) float64 { return x * 180 / math.Pi }

// solveKepler iterates Kepler's equation E - e*sin(E) = M to ~1e-6 deg.
// M is in degrees, e is the dimensionless eccentricity.
func solveKepler(M, e float64) float64 {
	Mr := rad(astro.Normalize(M))
	E := Mr + e*math.Sin(Mr)*(1+e*math.Cos(Mr))
	for i := 0; i < 20; i++ {
		delta := (E - e*math.Sin(E) - Mr) / (1 - e*math.Cos(E))
		E -= delta
		if math.Abs(delta) < 1e-8 {
			break
		}
	}
	return E
}

// trueAnomaly returns the true anomaly (degrees) and radius (in the
// element's distance unit) for the given elements.
func trueAnomaly(el elements) (v, r float64) {
	E := solveKepler(el.M, el.e)
	xv := el.a * (math.Cos(E) - el.e)
	yv := el.a * math.Sqrt(1-el.e*el.e) * math.Sin(E)
	return deg(math.Atan2(yv, xv)), math.Hypot(xv, yv)
}

// heliocentric converts elements to heliocentric ecliptic coordinates:
// longitude and latitude in degrees, radius in the element's unit.
func heliocentric(el elements) (lon, lat, r float64) {
	v, r := trueAnomaly(el)
	vw := rad(v + el.w)
	N := rad(el.N)
	i := rad(el.i)

	xh := r * (math.Cos(N)*math.Cos(vw) - math.Sin(N)*math.Sin(vw)*math.Cos(i))
	yh := r * (math.Sin(N)*math.Cos(vw) + math.Cos(N)*math.Sin(vw)*math.Cos(i))
	zh := r * math.Sin(vw) * math.Sin(i)

	return deg(math.Atan2(yh, xh)), deg(math.Asin(zh / r)), r
}

// sunPosition returns the Sun's geocentric ecliptic longitude (degrees),
// plus its rectangular ecliptic coordinates in AU for geocentric
// reduction of the planets.
func sunPosition(d float64) (lon, xs, ys float64) {
	el := sunElements(d)
	v, r := trueAnomaly(el)
	lon = astro.Normalize(v + el.w)
	return lon, r * math.Cos(rad(lon)), r * math.Sin(rad(lon))
}

// planetLongitude returns the geocentric ecliptic longitude of a planet
// (Mercury through Neptune) at day offset d, with the major periodic
// perturbations applied for Jupiter, Saturn and Uranus.
func planetLongitude(body astro.Body, d float64) float64 {
	el, ok := planetElements(body, d)
	if !ok {
		return math.NaN() // unreachable for the bodies routed here
	}
	lon, lat, r := heliocentric(el)
	lon += perturbation(body, d)

	// Back to rectangular, then shift to the geocenter via the Sun.
	lonr, latr := rad(lon), rad(lat)
	xh := r * math.Cos(lonr) * math.Cos(latr)
	yh := r * math.Sin(lonr) * math.Cos(latr)

	_, xs, ys := sunPosition(d)
	return deg(math.Atan2(yh+ys, xh+xs))
}

// perturbation returns the periodic longitude correction in degrees for
// the mutual Jupiter/Saturn/Uranus terms. Other bodies get zero.
func perturbation(body astro.Body, d float64) float64 {
	Mj := rad(19.8950 + 0.0830853001*d)
	Ms := rad(316.9670 + 0.0334442282*d)
	Mu := rad(142.5905 + 0.011725806*d)

	switch body {
	case astro.Jupiter:
		return -0.332*math.Sin(2*Mj-5*Ms-rad(67.6)) -
			0.056*math.Sin(2*Mj-2*Ms+rad(21)) +
			0.042*math.Sin(3*Mj-5*Ms+rad(21)) -
			0.036*math.Sin(Mj-2*Ms) +
			0.022*math.Cos(Mj-Ms) +
			0.023*math.Sin(2*Mj-3*Ms+rad(52)) -
			0.016*math.Sin(Mj-5*Ms-rad(69))
	case astro.Saturn:
		return 0.812*math.Sin(2*Mj-5*Ms-rad(67.6)) -
			0.229*math.Cos(2*Mj-4*Ms-rad(2)) +
			0.119*math.Sin(Mj-2*Ms-rad(3)) +
			0.046*math.Sin(2*Mj-6*Ms-rad(69)) +
			0.014*math.Sin(Mj-3*Ms+rad(32))
	case astro.Uranus:
		return 0.040*math.Sin(Ms-2*Mu+rad(6)) +
			0.035*math.Sin(Ms-3*Mu+rad(33)) -
			0.015*math.Sin(Mj-Mu+rad(20))
	}
	return 0
}

// moonLongitude returns the Moon's geocentric ecliptic longitude at day
// offset d, including the twelve largest periodic longitude terms
// (evection, variation, yearly equation, parallactic inequality, ...).
func moonLongitude(d float64) float64 {
	el := moonElements(d)
	lon, _, _ := heliocentric(el) // geocentric already: elements are Earth-centered

	// Fundamental arguments for the perturbation series.
	Ms := rad(356.0470 + 0.9856002585*d)                      // Sun mean anomaly
	Mm := rad(el.M)                                           // Moon mean anomaly
	Ls := 356.0470 + 0.9856002585*d + 282.9404 + 4.70935e-5*d // Sun mean longitude
	Lm := el.N + el.w + el.M                                  // Moon mean longitude
	D := rad(Lm - Ls)                                         // mean elongation
	F := rad(Lm - el.N)                                       // argument of latitude

	lon += -1.274*math.Sin(Mm-2*D) +
		0.658*math.Sin(2*D) -
		0.186*math.Sin(Ms) -
		0.059*math.Sin(2*Mm-2*D) -
		0.057*math.Sin(Mm-2*D+Ms) +
		0.053*math.Sin(Mm+2*D) +
		0.046*math.Sin(2*D-Ms) +
		0.041*math.Sin(Mm-Ms) -
		0.035*math.Sin(D) -
		0.031*math.Sin(Mm+Ms) -
		0.015*math.Sin(2*F-2*D) +
		0.011*math.Sin(Mm-4*D)

	return lon
}

// plutoLongitude returns Pluto's geocentric ecliptic longitude from a
// periodic series valid roughly 1900-2100. Pluto is distant enough that
// the heliocentric series is converted through the Sun like the planets.
func plutoLongitude(d float64) float64 {
	S := rad(50.03 + 0.033459652*d)
	P := rad(238.95 + 0.003968789*d)

	lon := 238.9508 + 0.00400703*d -
		19.799*math.Sin(P) + 19.848*math.Cos(P) +
		0.897*math.Sin(2*P) - 4.956*math.Cos(2*P) +
		0.610*math.Sin(3*P) + 1.211*math.Cos(3*P) -
		0.341*math.Sin(4*P) - 0.190*math.Cos(4*P) +
		0.128*math.Sin(5*P) - 0.034*math.Cos(5*P) -
		0.038*math.Sin(6*P) + 0.031*math.Cos(6*P) +
		0.020*math.Sin(S-P) - 0.010*math.Cos(S-P)

	lat := -3.9082 -
		5.453*math.Sin(P) - 14.975*math.Cos(P) +
		0.695*math.Sin(2*P) + 3.527*math.Cos(2*P) -
		1.151*math.Cos(3*P) +
		0.312*math.Sin(4*P) + 0.208*math.Cos(4*P) -
		0.127*math.Sin(5*P) - 0.081*math.Cos(5*P)

	r := 40.72 +
		6.68*math.Sin(P) + 6.90*math.Cos(P) -
		1.18*math.Sin(2*P) - 0.03*math.Cos(2*P) +
		0.15*math.Sin(3*P) - 0.14*math.Cos(3*P)

	lonr, latr := rad(lon), rad(lat)
	xh := r * math.Cos(lonr) * math.Cos(latr)
	yh := r * math.Sin(lonr) * math.Cos(latr)

	_, xs, ys := sunPosition(d)
	return deg(math.Atan2(yh+ys, xh+xs))
}
