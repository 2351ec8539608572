package astro

import (
	"fmt"

	"github.com/siderealab/orrery/pkg/errors"
)

// Body identifies one of the ten supported celestial bodies.
//
// The set is closed: values outside [Sun, Pluto] are invalid and only
// arise from unchecked conversions. Code receiving a Body from an
// external source should go through [ParseBody].
type Body int

// The ten supported bodies, in traditional order.
const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// BodyCount is the number of supported bodies.
const BodyCount = 10

// Bodies returns all supported bodies in traditional order.
// The returned slice is freshly allocated and safe to modify.
func Bodies() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
}

var bodyNames = [BodyCount]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

var bodySymbols = [BodyCount]string{
	"☉", "☽", "☿", "♀", "♂", "♃", "♄", "♅", "♆", "♇",
}

// String returns the body's display name, or "Body(n)" for invalid values.
func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// Symbol returns the body's astrological glyph.
// Invalid values return "?".
func (b Body) Symbol() string {
	if !b.Valid() {
		return "?"
	}
	return bodySymbols[b]
}

// Valid reports whether b is one of the ten supported bodies.
func (b Body) Valid() bool {
	return b >= Sun && b <= Pluto
}

// ParseBody converts a case-sensitive body name ("Sun", "Moon", ...) into
// a Body. Unknown names fail with an INVALID_BODY error.
func ParseBody(name string) (Body, error) {
	for i, n := range bodyNames {
		if n == name {
			return Body(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidBody, "unknown body: %q", name)
}

// MarshalText implements encoding.TextMarshaler using the display name.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidBody, "invalid body value: %d", int(b))
	}
	return []byte(bodyNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via [ParseBody].
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
