// Package astro defines the fundamental vocabulary of the chart engine:
// celestial bodies, zodiac signs, elements, and angle arithmetic on the
// ecliptic circle.
//
// All angles in this package and its consumers are ecliptic longitudes in
// degrees, normalized to the half-open interval [0, 360). The package is
// pure data and math with no I/O; every function is deterministic.
//
// # Bodies
//
// The engine supports a closed set of ten bodies ([Sun] through [Pluto]).
// Using a typed enumeration instead of name lookup makes an unsupported
// body unrepresentable at most call sites; the only validation boundary
// is [ParseBody] for external string input.
//
// # Signs
//
// The twelve zodiac signs are a static table. Each sign covers exactly 30
// degrees of longitude starting at index*30 and carries one of the four
// classical elements (fire, earth, air, water).
package astro
