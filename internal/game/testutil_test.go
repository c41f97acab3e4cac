package game

import (
	"math/rand/v2"
	"testing"

	"github.com/peterkuimelis/chipsmult/internal/log"
)

// cards parses compact card notation or fails the test.
func cards(t *testing.T, s string) []Card {
	t.Helper()
	cs, err := ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", s, err)
	}
	return cs
}

// heldCards parses cards for the held hand, giving them IDs that cannot
// collide with a selection.
func heldCards(t *testing.T, s string) []Card {
	t.Helper()
	cs := cards(t, s)
	for i := range cs {
		cs[i].ID = 100 + i
	}
	return cs
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newTestEvaluator builds an evaluator with a memory logger and the named
// catalog agents, in order.
func newTestEvaluator(t *testing.T, agents ...string) (*Evaluator, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	ev := NewEvaluator(logger)
	ev.Agents.Capacity = 0
	for _, name := range agents {
		if _, err := ev.AddAgent(name); err != nil {
			t.Fatalf("AddAgent(%q): %v", name, err)
		}
	}
	return ev, logger
}

// mustEvaluate evaluates selection and fails the test on error.
func mustEvaluate(t *testing.T, ev *Evaluator, st *State, selection string, rng *rand.Rand) Result {
	t.Helper()
	res, err := ev.Evaluate(st, cards(t, selection), rng)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", selection, err)
	}
	return res
}

// classify classifies selection with relax and fails the test on error.
func classify(t *testing.T, selection string, relax Relaxations) Match {
	t.Helper()
	m, err := Classify(cards(t, selection), relax)
	if err != nil {
		t.Fatalf("Classify(%q): %v", selection, err)
	}
	return m
}

func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
