package core

import (
	"testing"
	"time"
)

type stubSim struct{ steps int }

func (s *stubSim) Name() string   { return "stub" }
func (s *stubSim) Size() Size     { return Size{W: 2, H: 2} }
func (s *stubSim) Reset(int64)    { s.steps = 0 }
func (s *stubSim) Step() error    { s.steps++; return nil }
func (s *stubSim) Cells() []uint8 { return make([]uint8, 4) }

func TestBuildUnknownSim(t *testing.T) {
	if _, err := Build("no-such-sim", nil); err == nil {
		t.Fatal("expected an error for an unregistered sim")
	}
}

func TestRegisterAndBuild(t *testing.T) {
	Register("stub-test", func(map[string]string) (Sim, error) { return &stubSim{}, nil })
	defer delete(sims, "stub-test")

	sim, err := Build("stub-test", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sim.Name() != "stub" {
		t.Fatalf("Name = %q", sim.Name())
	}
	found := false
	for _, name := range Names() {
		if name == "stub-test" {
			found = true
		}
	}
	if !found {
		t.Fatal("Names should list registered sims")
	}
}

func TestFixedStepReleasesDueSteps(t *testing.T) {
	fs := NewFixedStep(10)
	start := time.Unix(0, 0)
	if n := fs.Advance(0, start); n != 1 {
		t.Fatalf("first advance released %d steps, want 1", n)
	}
	if n := fs.Advance(50*time.Millisecond, start.Add(50*time.Millisecond)); n != 0 {
		t.Fatalf("half a period released %d steps, want 0", n)
	}
	if n := fs.Advance(60*time.Millisecond, start.Add(110*time.Millisecond)); n != 1 {
		t.Fatalf("released %d steps, want 1", n)
	}
	if n := fs.Advance(10*time.Second, start.Add(10*time.Second)); n != maxCatchUp {
		t.Fatalf("stall released %d steps, want cap %d", n, maxCatchUp)
	}
}

func TestByteGridCount(t *testing.T) {
	g := NewByteGrid(3, 2)
	copy(g.Cells(), []uint8{1, 1, 1, 1, 1, 0})
	if got := g.Count(1); got != 5 {
		t.Fatalf("Count(1) = %d, want 5", got)
	}
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{
		Name:   "Canvas",
		Params: []Parameter{{Key: "w", Value: "96"}},
	}}}
	if p, ok := snap.Lookup("w"); !ok || p.Value != "96" {
		t.Fatalf("Lookup(w) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup should miss unknown keys")
	}
}
