package astro

// Position is a body's computed angular state at one instant.
// Created once per chart computation and immutable afterward.
type Position struct {
	Body       Body    `json:"body" bson:"body"`
	Longitude  float64 `json:"longitude" bson:"longitude"` // ecliptic degrees in [0,360)
	Retrograde bool    `json:"retrograde,omitempty" bson:"retrograde,omitempty"`
}

// Sign returns the zodiac sign containing the position.
func (p Position) Sign() Sign {
	return SignAt(p.Longitude)
}
