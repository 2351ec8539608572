package astro

import "math"

// Normalize reduces an angle in degrees into [0, 360).
// It is idempotent: Normalize(Normalize(x)) == Normalize(x).
// Non-finite inputs are returned unchanged; callers validating external
// input should reject NaN/Inf before computing with it.
func Normalize(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return deg
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// Mod can return 360 for tiny negative inputs after the correction.
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Separation returns the angular separation between two ecliptic
// longitudes, measured the short way around the circle. The result is
// always in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// RelativeDegree returns the position of a longitude within its sign,
// in [0, 30).
func RelativeDegree(longitude float64) float64 {
	return math.Mod(Normalize(longitude), 30)
}
