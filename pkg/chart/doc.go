// Package chart computes natal charts from birth data.
//
// The package has three cooperating pieces:
//
//   - [PositionCalculator] samples an injected ephemeris provider for a
//     body's ecliptic longitude and classifies retrograde motion with a
//     one-hour finite difference.
//   - [AscendantCalculator] derives the rising longitude from sidereal
//     time and observer coordinates via spherical trigonometry.
//   - [Assemble] folds positions and the ascendant into sign and
//     whole-sign house placements, elemental balance percentages, and the
//     "big three" summary.
//
// Everything here is a deterministic function of its inputs. The only
// effects are the provider calls, which take a context and propagate
// failures unchanged as PROVIDER_ERROR.
//
// # Retrograde caveat
//
// The finite-difference retrograde test compares the longitude now with
// the longitude one hour later. It is reliable for the slow outer bodies
// but can misclassify near true stations and is coarse for the Moon. It
// is a display heuristic, not an astronomical station finder.
package chart
