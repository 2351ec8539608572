package cli

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/chart"
)

func TestSubjectFromFlags(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config = defaultConfig()

	t.Run("explicit coordinates", func(t *testing.T) {
		s, err := c.subjectFromFlags("1990-06-15T08:30:00Z", 52.52, 13.40, "Ada", true)
		if err != nil {
			t.Fatal(err)
		}
		if s.Latitude != 52.52 || s.Longitude != 13.40 || s.Name != "Ada" {
			t.Errorf("subject = %+v", s)
		}
		want := time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC)
		if !s.Instant.Equal(want) {
			t.Errorf("Instant = %v, want %v", s.Instant, want)
		}
	})

	t.Run("default time is now", func(t *testing.T) {
		before := time.Now().UTC()
		s, err := c.subjectFromFlags("", 10, 20, "", true)
		if err != nil {
			t.Fatal(err)
		}
		if s.Instant.Before(before) || s.Instant.After(time.Now().UTC()) {
			t.Errorf("Instant = %v, want roughly now", s.Instant)
		}
	})

	t.Run("bad time", func(t *testing.T) {
		if _, err := c.subjectFromFlags("15/06/1990", 0, 0, "", true); err == nil {
			t.Error("non-RFC3339 time should error")
		}
	})

	t.Run("missing coordinates without observer", func(t *testing.T) {
		if _, err := c.subjectFromFlags("", 0, 0, "", false); err == nil {
			t.Error("missing coordinates should error without a configured observer")
		}
	})

	t.Run("observer fallback", func(t *testing.T) {
		withObserver := New(io.Discard, LogInfo)
		withObserver.Config = &Config{
			Observer: ObserverConfig{Name: "home", Latitude: 48.85, Longitude: 2.35, Set: true},
		}
		s, err := withObserver.subjectFromFlags("", 0, 0, "", false)
		if err != nil {
			t.Fatal(err)
		}
		if s.Latitude != 48.85 || s.Longitude != 2.35 {
			t.Errorf("subject = %+v, want observer coordinates", s)
		}
		if s.Name != "home" {
			t.Errorf("Name = %q, want observer name", s.Name)
		}
	})
}

func TestParseSubject(t *testing.T) {
	s, err := parseSubject("1988-01-02T21:15:00Z", 48.85, 2.35, "Ben", "b")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "Ben" || s.Latitude != 48.85 {
		t.Errorf("subject = %+v", s)
	}

	if _, err := parseSubject("", 0, 0, "x", "a"); err == nil {
		t.Error("missing time should error")
	}
	if _, err := parseSubject("yesterday", 0, 0, "x", "a"); err == nil {
		t.Error("bad time should error")
	}
}

func TestParseEntities(t *testing.T) {
	entities, err := parseEntities([]string{"Sun=10", "Moon=372.5"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entities) != 2 {
		t.Fatalf("len = %d", len(entities))
	}
	if entities[0].Body != astro.Sun || entities[0].Longitude != 10 {
		t.Errorf("entities[0] = %+v", entities[0])
	}
	if entities[1].Longitude != 12.5 {
		t.Errorf("longitude should be normalized, got %v", entities[1].Longitude)
	}

	for _, bad := range []string{"Sun", "Pluto=abc", "Vulcan=10"} {
		if _, err := parseEntities([]string{bad}); err == nil {
			t.Errorf("parseEntities(%q) should error", bad)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"chart", "synastry", "layout", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestNewRunnerNoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatal(err)
	}
	defer runner.Close()
	if runner == nil {
		t.Fatal("runner is nil")
	}
}

func sampleChart(t *testing.T) *chart.Chart {
	t.Helper()
	subject := chart.Subject{
		Name:      "Ada",
		Instant:   time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC),
		Latitude:  52.52,
		Longitude: 13.40,
	}
	positions := make([]astro.Position, 0, astro.BodyCount)
	for i, body := range astro.Bodies() {
		positions = append(positions, astro.Position{
			Body:       body,
			Longitude:  float64(i) * 36,
			Retrograde: body == astro.Mercury,
		})
	}
	return chart.Assemble(subject, positions, 100)
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestPlacementModelNavigation(t *testing.T) {
	// Keyboard navigation moves the cursor within bounds.
	ch := sampleChart(t)
	m := NewPlacementModel(ch)

	down := keyMsg("j")
	model, _ := m.Update(down)
	m = model.(PlacementModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down, want 1", m.Cursor)
	}

	up := keyMsg("k")
	model, _ = m.Update(up)
	m = model.(PlacementModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up, want 0", m.Cursor)
	}

	model, _ = m.Update(up)
	m = model.(PlacementModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, must not go negative", m.Cursor)
	}

	view := m.View()
	if view == "" {
		t.Error("View returned empty string")
	}
}
