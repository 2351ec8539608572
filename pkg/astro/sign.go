package astro

// Element is one of the four classical elements a sign belongs to.
type Element int

// The four elements, in canonical counting order (fire, earth, air, water).
// The order matters for elemental balance rounding: the first three are
// rounded independently and water absorbs the remainder.
const (
	Fire Element = iota
	Earth
	Air
	Water
)

// ElementCount is the number of elements.
const ElementCount = 4

var elementNames = [ElementCount]string{"fire", "earth", "air", "water"}

// String returns the lowercase element name.
func (e Element) String() string {
	if e < Fire || e > Water {
		return "element(?)"
	}
	return elementNames[e]
}

// Sign is one of the twelve zodiac signs.
type Sign struct {
	Index       int     // 0 (Aries) through 11 (Pisces)
	Name        string  // Display name
	Symbol      string  // Astrological glyph
	Element     Element // Classical element
	StartDegree float64 // Ecliptic longitude where the sign begins (Index*30)
}

// SignCount is the number of zodiac signs.
const SignCount = 12

// signs is the static zodiac table. Elements repeat fire, earth, air,
// water starting from Aries.
var signs = [SignCount]Sign{
	{0, "Aries", "♈", Fire, 0},
	{1, "Taurus", "♉", Earth, 30},
	{2, "Gemini", "♊", Air, 60},
	{3, "Cancer", "♋", Water, 90},
	{4, "Leo", "♌", Fire, 120},
	{5, "Virgo", "♍", Earth, 150},
	{6, "Libra", "♎", Air, 180},
	{7, "Scorpio", "♏", Water, 210},
	{8, "Sagittarius", "♐", Fire, 240},
	{9, "Capricorn", "♑", Earth, 270},
	{10, "Aquarius", "♒", Air, 300},
	{11, "Pisces", "♓", Water, 330},
}

// Signs returns the full zodiac table in order.
// The returned slice is freshly allocated and safe to modify.
func Signs() []Sign {
	out := make([]Sign, SignCount)
	copy(out[:], signs[:])
	return out
}

// SignAt returns the sign containing the given ecliptic longitude.
// The longitude is normalized first, so any finite value is accepted.
func SignAt(longitude float64) Sign {
	return signs[SignIndexAt(longitude)]
}

// SignIndexAt returns the index in [0,12) of the sign containing the
// given ecliptic longitude.
func SignIndexAt(longitude float64) int {
	idx := int(Normalize(longitude) / 30)
	if idx >= SignCount { // guard against float edge at exactly 360-ε
		idx = SignCount - 1
	}
	return idx
}

// SignByIndex returns the sign with the given index in [0,12).
// Out-of-range indices are reduced modulo 12.
func SignByIndex(index int) Sign {
	return signs[((index%SignCount)+SignCount)%SignCount]
}
