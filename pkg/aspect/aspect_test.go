package aspect

import (
	"math"
	"testing"

	"github.com/siderealab/orrery/pkg/astro"
)

func pos(body astro.Body, lon float64) astro.Position {
	return astro.Position{Body: body, Longitude: lon}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		separation float64
		wantType   Type
		wantOrb    float64
		wantOK     bool
	}{
		{"exact conjunction", 0, Conjunction, 0, true},
		{"loose conjunction", 5.9, Conjunction, 5.9, true},
		{"conjunction boundary", 6, Conjunction, 6, true},
		{"just unaspected", 6.1, "", 0, false},
		{"exact sextile", 60, Sextile, 0, true},
		{"sextile edge", 64.2, Sextile, 4.2, true},
		{"sextile miss", 64.3, "", 0, false},
		{"exact square", 90, Square, 0, true},
		{"exact trine", 120, Trine, 0, true},
		{"exact opposition", 180, Opposition, 0, true},
		{"opposition within orb", 155, "", 0, false}, // 25° short of exact
		{"dead zone", 40, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, orb, ok := Classify(tt.separation)
			if ok != tt.wantOK {
				t.Fatalf("Classify(%v) ok = %v, want %v", tt.separation, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if band.Type != tt.wantType {
				t.Errorf("type = %v, want %v", band.Type, tt.wantType)
			}
			if math.Abs(orb-tt.wantOrb) > 1e-9 {
				t.Errorf("orb = %v, want %v", orb, tt.wantOrb)
			}
		})
	}
}

func TestDetectSextileExample(t *testing.T) {
	// Body A at 10°, body B at 70°: separation exactly 60° → sextile, orb 0.
	records := Detect(
		[]astro.Position{pos(astro.Sun, 10)},
		[]astro.Position{pos(astro.Moon, 70)},
	)

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Type != Sextile {
		t.Errorf("type = %v, want sextile", r.Type)
	}
	if r.Orb != 0 {
		t.Errorf("orb = %v, want 0", r.Orb)
	}
	if r.BodyA != astro.Sun || r.BodyB != astro.Moon {
		t.Errorf("bodies = %v/%v, want Sun/Moon", r.BodyA, r.BodyB)
	}
}

func TestDetectUnaspectedExample(t *testing.T) {
	// 95° vs 300°: separation min(205, 155) = 155°, outside every band.
	records := Detect(
		[]astro.Position{pos(astro.Mars, 95)},
		[]astro.Position{pos(astro.Venus, 300)},
	)
	if len(records) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(records), records)
	}
}

func TestDetectSymmetric(t *testing.T) {
	a := []astro.Position{pos(astro.Sun, 12), pos(astro.Mars, 210.4)}
	b := []astro.Position{pos(astro.Moon, 100.7), pos(astro.Venus, 342)}

	forward := Detect(a, b)
	reverse := Detect(b, a)

	if len(forward) != len(reverse) {
		t.Fatalf("asymmetric counts: %d vs %d", len(forward), len(reverse))
	}
	for _, f := range forward {
		found := false
		for _, r := range reverse {
			if r.BodyA == f.BodyB && r.BodyB == f.BodyA &&
				r.Type == f.Type && math.Abs(r.Orb-f.Orb) < 1e-9 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no mirror record for %+v", f)
		}
	}
}

func TestDetectSortedAndCapped(t *testing.T) {
	// Ten bodies of one subject conjunct across the other's ten bodies
	// would produce far more than eight qualifying pairs; the result must
	// be the eight tightest, ascending by orb.
	bodies := astro.Bodies()
	a := make([]astro.Position, len(bodies))
	b := make([]astro.Position, len(bodies))
	for i := range bodies {
		a[i] = pos(bodies[i], float64(i)*0.5)
		b[i] = pos(bodies[i], float64(i)*0.5+1)
	}

	records := Detect(a, b)
	if len(records) != MaxRecords {
		t.Fatalf("got %d records, want %d", len(records), MaxRecords)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Orb < records[i-1].Orb {
			t.Errorf("records not ascending by orb at %d: %v < %v",
				i, records[i].Orb, records[i-1].Orb)
		}
	}
}

func TestDetectStableTieOrder(t *testing.T) {
	// Two pairs with identical orb: enumeration order (Sun pair first)
	// must survive the sort.
	a := []astro.Position{pos(astro.Sun, 0), pos(astro.Moon, 100)}
	b := []astro.Position{pos(astro.Mercury, 2), pos(astro.Venus, 102)}

	records := Detect(a, b)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].BodyA != astro.Sun {
		t.Errorf("first record BodyA = %v, want Sun (stable tie order)", records[0].BodyA)
	}
	if records[1].BodyA != astro.Moon {
		t.Errorf("second record BodyA = %v, want Moon", records[1].BodyA)
	}
}

func TestDetectWithinSkipsDuplicates(t *testing.T) {
	positions := []astro.Position{
		pos(astro.Sun, 10),
		pos(astro.Moon, 70),  // sextile to Sun
		pos(astro.Mars, 190), // opposition to Sun, trine to Moon
	}

	records := DetectWithin(positions)

	// Expect exactly: Sun-Moon sextile, Sun-Mars opposition, Moon-Mars trine.
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(records), records)
	}
	for _, r := range records {
		if r.BodyA == r.BodyB {
			t.Errorf("self-aspect recorded: %+v", r)
		}
	}

	// No reversed duplicates.
	seen := make(map[[2]astro.Body]bool)
	for _, r := range records {
		key := [2]astro.Body{r.BodyA, r.BodyB}
		rev := [2]astro.Body{r.BodyB, r.BodyA}
		if seen[key] || seen[rev] {
			t.Errorf("duplicate pair %v-%v", r.BodyA, r.BodyB)
		}
		seen[key] = true
	}
}

func TestConjunctionPriorityOverWrap(t *testing.T) {
	// 358° vs 2°: separation 4° across the seam → conjunction, orb 4.
	records := Detect(
		[]astro.Position{pos(astro.Jupiter, 358)},
		[]astro.Position{pos(astro.Saturn, 2)},
	)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Type != Conjunction {
		t.Errorf("type = %v, want conjunction", records[0].Type)
	}
	if math.Abs(records[0].Orb-4) > 1e-9 {
		t.Errorf("orb = %v, want 4", records[0].Orb)
	}
}
