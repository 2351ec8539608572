package astro

import (
	"math"
	"testing"

	"github.com/siderealab/orrery/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 123.45, 123.45},
		{"exactly 360", 360, 0},
		{"above 360", 370.5, 10.5},
		{"multiple wraps", 725, 5},
		{"negative", -10, 350},
		{"negative wrap", -370, 350},
		{"just below 360", 359.999, 359.999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []float64{-720.25, -1, 0, 45, 359.9999, 360, 1080.5}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %v: %v != %v", in, once, twice)
		}
		if once < 0 || once >= 360 {
			t.Errorf("Normalize(%v) = %v, outside [0,360)", in, once)
		}
	}
}

func TestSeparation(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{10, 70, 60},
		{70, 10, 60},
		{0, 180, 180},
		{350, 10, 20},  // across the seam
		{10, 350, 20},  // symmetric
		{95, 300, 155}, // min(205, 155)
		{42, 42, 0},
	}

	for _, tt := range tests {
		got := Separation(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Separation(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSignAt(t *testing.T) {
	tests := []struct {
		longitude float64
		wantName  string
		wantIndex int
	}{
		{0, "Aries", 0},
		{29.999, "Aries", 0},
		{30, "Taurus", 1},
		{123.4, "Leo", 4},
		{359.9, "Pisces", 11},
		{365, "Aries", 0}, // normalized first
		{-5, "Pisces", 11},
	}

	for _, tt := range tests {
		s := SignAt(tt.longitude)
		if s.Name != tt.wantName || s.Index != tt.wantIndex {
			t.Errorf("SignAt(%v) = %s/%d, want %s/%d",
				tt.longitude, s.Name, s.Index, tt.wantName, tt.wantIndex)
		}
	}
}

func TestSignTable(t *testing.T) {
	all := Signs()
	if len(all) != SignCount {
		t.Fatalf("Signs() returned %d entries, want %d", len(all), SignCount)
	}

	elementCycle := []Element{Fire, Earth, Air, Water}
	for i, s := range all {
		if s.Index != i {
			t.Errorf("sign %s Index = %d, want %d", s.Name, s.Index, i)
		}
		if s.StartDegree != float64(i*30) {
			t.Errorf("sign %s StartDegree = %v, want %v", s.Name, s.StartDegree, i*30)
		}
		if s.Element != elementCycle[i%4] {
			t.Errorf("sign %s Element = %v, want %v", s.Name, s.Element, elementCycle[i%4])
		}
	}
}

func TestRelativeDegree(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{15.5, 15.5},
		{30, 0},
		{123.4, 3.4},
		{-5, 25}, // normalized to 355 first
	}

	for _, tt := range tests {
		if got := RelativeDegree(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RelativeDegree(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseBody(t *testing.T) {
	for _, b := range Bodies() {
		parsed, err := ParseBody(b.String())
		if err != nil {
			t.Errorf("ParseBody(%q) error: %v", b.String(), err)
		}
		if parsed != b {
			t.Errorf("ParseBody(%q) = %v, want %v", b.String(), parsed, b)
		}
	}

	_, err := ParseBody("Ceres")
	if !errors.Is(err, errors.ErrCodeInvalidBody) {
		t.Errorf("ParseBody(Ceres) code = %v, want INVALID_BODY", errors.GetCode(err))
	}
}

func TestBodySymbols(t *testing.T) {
	if got := Sun.Symbol(); got != "☉" {
		t.Errorf("Sun.Symbol() = %q", got)
	}
	if got := Body(99).Symbol(); got != "?" {
		t.Errorf("invalid body Symbol() = %q, want ?", got)
	}
	if len(Bodies()) != BodyCount {
		t.Errorf("Bodies() length = %d, want %d", len(Bodies()), BodyCount)
	}
}
