package analytic

import "github.com/siderealab/orrery/pkg/astro"

// elements holds Keplerian orbital elements at a day offset from the
// 1999 Dec 31.0 epoch. Angles are degrees, the semi-major axis is in AU
// (Earth radii for the Moon).
type elements struct {
	N float64 // longitude of the ascending node
	i float64 // inclination to the ecliptic
	w float64 // argument of perihelion
	a float64 // semi-major axis
	e float64 // eccentricity
	M float64 // mean anomaly
}

// sunElements returns the Sun's apparent orbital elements (the Earth's
// orbit reflected) at day offset d.
func sunElements(d float64) elements {
	return elements{
		N: 0,
		i: 0,
		w: 282.9404 + 4.70935e-5*d,
		a: 1.0,
		e: 0.016709 - 1.151e-9*d,
		M: 356.0470 + 0.9856002585*d,
	}
}

// moonElements returns the Moon's geocentric orbital elements at day
// offset d. The semi-major axis is in Earth radii; only the longitude is
// used by this provider.
func moonElements(d float64) elements {
	return elements{
		N: 125.1228 - 0.0529538083*d,
		i: 5.1454,
		w: 318.0634 + 0.1643573223*d,
		a: 60.2666,
		e: 0.054900,
		M: 115.3654 + 13.0649929509*d,
	}
}

// planetElements returns heliocentric orbital elements at day offset d
// for Mercury through Neptune. The second return is false for bodies not
// covered by Keplerian elements (Sun, Moon, Pluto).
func planetElements(b astro.Body, d float64) (elements, bool) {
	switch b {
	case astro.Mercury:
		return elements{
			N: 48.3313 + 3.24587e-5*d,
			i: 7.0047 + 5.00e-8*d,
			w: 29.1241 + 1.01444e-5*d,
			a: 0.387098,
			e: 0.205635 + 5.59e-10*d,
			M: 168.6562 + 4.0923344368*d,
		}, true
	case astro.Venus:
		return elements{
			N: 76.6799 + 2.46590e-5*d,
			i: 3.3946 + 2.75e-8*d,
			w: 54.8910 + 1.38374e-5*d,
			a: 0.723330,
			e: 0.006773 - 1.302e-9*d,
			M: 48.0052 + 1.6021302244*d,
		}, true
	case astro.Mars:
		return elements{
			N: 49.5574 + 2.11081e-5*d,
			i: 1.8497 - 1.78e-8*d,
			w: 286.5016 + 2.92961e-5*d,
			a: 1.523688,
			e: 0.093405 + 2.516e-9*d,
			M: 18.6021 + 0.5240207766*d,
		}, true
	case astro.Jupiter:
		return elements{
			N: 100.4542 + 2.76854e-5*d,
			i: 1.3030 - 1.557e-7*d,
			w: 273.8777 + 1.64505e-5*d,
			a: 5.20256,
			e: 0.048498 + 4.469e-9*d,
			M: 19.8950 + 0.0830853001*d,
		}, true
	case astro.Saturn:
		return elements{
			N: 113.6634 + 2.38980e-5*d,
			i: 2.4886 - 1.081e-7*d,
			w: 339.3939 + 2.97661e-5*d,
			a: 9.55475,
			e: 0.055546 - 9.499e-9*d,
			M: 316.9670 + 0.0334442282*d,
		}, true
	case astro.Uranus:
		return elements{
			N: 74.0005 + 1.3978e-5*d,
			i: 0.7733 + 1.9e-8*d,
			w: 96.6612 + 3.0565e-5*d,
			a: 19.18171 - 1.55e-8*d,
			e: 0.047318 + 7.45e-9*d,
			M: 142.5905 + 0.011725806*d,
		}, true
	case astro.Neptune:
		return elements{
			N: 131.7806 + 3.0173e-5*d,
			i: 1.7700 - 2.55e-7*d,
			w: 272.8461 - 6.027e-6*d,
			a: 30.05826 + 3.313e-8*d,
			e: 0.008606 + 2.15e-9*d,
			M: 260.2471 + 0.005995147*d,
		}, true
	}
	return elements{}, false
}
