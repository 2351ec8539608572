// Package analytic implements a self-contained low-precision ephemeris.
//
// Positions are computed from Keplerian mean orbital elements with the
// largest periodic perturbations applied for the Moon, Jupiter, Saturn and
// Uranus, and a dedicated periodic series for Pluto. Accuracy is on the
// order of arcminutes for the planets and a few arcminutes for the Moon,
// which is ample for sign, house and aspect classification at degree-scale
// orbs. It is not suitable for eclipse prediction or station timing.
//
// The provider needs no data files and is safe for concurrent use.
package analytic
