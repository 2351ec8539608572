package errors

import (
	"math"
	"time"
)

// ValidateLatitude validates an observer latitude in degrees.
//
// The validation rules mirror the geometry of the ascendant formula:
//   - Must be finite (no NaN/Inf)
//   - Must lie in (-90, 90) exclusive; tan(lat) is undefined at the poles,
//     so ±90 fails with POLAR_LATITUDE rather than producing garbage
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return New(ErrCodeInvalidInput, "latitude must be finite")
	}
	if lat <= -90 || lat >= 90 {
		return New(ErrCodePolarLatitude, "polar latitudes unsupported: %.4f", lat)
	}
	return nil
}

// ValidateLongitude validates an observer longitude in degrees.
// Any finite value is accepted; it is normalized downstream.
func ValidateLongitude(lon float64) error {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return New(ErrCodeInvalidInput, "longitude must be finite")
	}
	return nil
}

// ValidateInstant validates a chart instant.
// The zero time is rejected as it almost always indicates an unset field
// rather than an intentional request for year 1.
func ValidateInstant(t time.Time) error {
	if t.IsZero() {
		return New(ErrCodeInvalidInstant, "instant is unset")
	}
	return nil
}
