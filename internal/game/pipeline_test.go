package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/peterkuimelis/chipsmult/internal/log"
)

// Five same-suit cards with no repeated rank score level chips plus card
// ranks, times level mult.
func TestScenarioFlush(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	st := NewState()
	res := mustEvaluate(t, ev, st, "2h 5h 9h Jh Kh", seeded(1))
	if res.Category != Flush {
		t.Fatalf("category = %s, want Flush", res.Category)
	}
	wantChips := 35 + 2 + 5 + 9 + 10 + 10
	if res.Chips != wantChips || res.Score != wantChips*4 {
		t.Errorf("chips %d score %d, want %d and %d", res.Chips, res.Score, wantChips, wantChips*4)
	}
}

// Only the matched pair contributes unless every card scores.
func TestScenarioPairWithBonus(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	res := mustEvaluate(t, ev, NewState(), "7h 7s:bonus 2d 9c Kh", seeded(1))
	if res.Category != Pair {
		t.Fatalf("category = %s, want Pair", res.Category)
	}
	if res.Chips != 10+7+37 || res.Score != 108 {
		t.Errorf("chips %d score %d, want 54 and 108", res.Chips, res.Score)
	}

	ev, _ = newTestEvaluator(t, "Splash")
	res = mustEvaluate(t, ev, NewState(), "7h 7s:bonus 2d 9c Kh", seeded(1))
	if len(res.Scoring) != 5 {
		t.Fatalf("with Splash %d cards scored, want 5", len(res.Scoring))
	}
	if res.Chips != 54+2+9+10 || res.Score != 150 {
		t.Errorf("with Splash chips %d score %d, want 75 and 150", res.Chips, res.Score)
	}
}

// A "+1 Mult per hand played" agent reads its live counter every hand.
func TestScenarioPerHandAgent(t *testing.T) {
	ev, logger := newTestEvaluator(t, "Green Joker")
	st := NewState()
	st.HandsRemaining = 10
	for hand, want := range []float64{1, 2, 3} {
		res := mustEvaluate(t, ev, st, "7h 7s", seeded(uint64(hand)))
		if res.Mult != 2+want {
			t.Errorf("hand %d: mult = %g, want %g", hand+1, res.Mult, 2+want)
		}
	}
	scored := logger.EventsOfType(log.EventAgentScored)
	if len(scored) != 3 {
		t.Fatalf("got %d agent events, want 3", len(scored))
	}
}

func TestScenarioFlintHalves(t *testing.T) {
	ev, logger := newTestEvaluator(t)
	base := mustEvaluate(t, ev, NewState(), "5h 5s:bonus", seeded(1))
	if base.Score != 100 {
		t.Fatalf("base score = %d, want 100", base.Score)
	}

	ev.Boss = TheFlint
	res := mustEvaluate(t, ev, NewState(), "5h 5s:bonus", seeded(1))
	if res.Score != 50 {
		t.Errorf("score under The Flint = %d, want 50", res.Score)
	}
	if len(logger.EventsOfType(log.EventBossTransform)) != 1 {
		t.Error("expected one boss transform event")
	}
}

func TestScenarioDebuffedFlush(t *testing.T) {
	ev, logger := newTestEvaluator(t)
	ev.Boss = TheGoad
	res := mustEvaluate(t, ev, NewState(), "2s 5s 9s Js Ks", seeded(1))
	if res.Category != Flush {
		t.Fatalf("category = %s, want Flush", res.Category)
	}
	if res.Chips != 35 || res.Score != 140 {
		t.Errorf("chips %d score %d, want level chips only (35, 140)", res.Chips, res.Score)
	}
	if len(res.Debuffed) != 5 || len(logger.EventsOfType(log.EventCardDebuffed)) != 5 {
		t.Errorf("expected 5 debuffed cards, got %d", len(res.Debuffed))
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (Result, *State) {
		ev, _ := newTestEvaluator(t, "Business Card", "Hiker", "Ride the Bus")
		ev.Boss = TheHook
		st := NewState()
		st.Held = heldCards(t, "2c 3c 4c 5c 6c Kh:steel")
		res := mustEvaluate(t, ev, st, "Jh:lucky Jd:glass:red Qc:lucky Qs Ks", seeded(42))
		return res, st
	}
	r1, s1 := run()
	r2, s2 := run()
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("results differ:\n%+v\n%+v", r1, r2)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("states differ:\n%+v\n%+v", s1, s2)
	}
}

func TestContextResetAfterEveryCall(t *testing.T) {
	ev, _ := newTestEvaluator(t, "Joker", "Hiker")
	ev.Boss = TheEye
	st := NewState()

	mustEvaluate(t, ev, st, "7h 7s:glass", seeded(3))
	if ctx := ev.Context(); !ctx.IsBaseline() || ev.Phase() != PhaseIdle {
		t.Errorf("after success: context %+v phase %s", ctx, ev.Phase())
	}

	if _, err := ev.Evaluate(st, cards(t, "8h 8s"), seeded(3)); err == nil {
		t.Fatal("expected The Eye to reject a repeated Pair")
	}
	if ctx := ev.Context(); !ctx.IsBaseline() || ev.Phase() != PhaseIdle {
		t.Errorf("after constraint failure: context %+v phase %s", ctx, ev.Phase())
	}

	if _, err := ev.Evaluate(st, nil, seeded(3)); err == nil {
		t.Fatal("expected classification failure")
	}
	if ctx := ev.Context(); !ctx.IsBaseline() {
		t.Errorf("after classification failure: context %+v", ctx)
	}
}

func TestFailureDoesNotMutate(t *testing.T) {
	ev, _ := newTestEvaluator(t, "Green Joker", "Ice Cream")
	ev.Boss = TheEye
	st := NewState()
	mustEvaluate(t, ev, st, "7h 7s", seeded(1))

	before := st.Clone()
	levels := ev.Levels.Snapshot()
	green := ev.Agents.Agents()[0].Counter(counterMult)
	cream := ev.Agents.Agents()[1].Counter(counterChips)

	_, err := ev.Evaluate(st, cards(t, "9h 9s"), seeded(1))
	var ce *ConstraintError
	if !errors.As(err, &ce) || ce.Category != Pair {
		t.Fatalf("got %v, want ConstraintError for Pair", err)
	}
	if !reflect.DeepEqual(before, st) {
		t.Errorf("state changed on failure:\n%+v\n%+v", before, st)
	}
	if !reflect.DeepEqual(levels, ev.Levels.Snapshot()) {
		t.Error("level table changed on failure")
	}
	if ev.Agents.Agents()[0].Counter(counterMult) != green || ev.Agents.Agents()[1].Counter(counterChips) != cream {
		t.Error("agent counters changed on failure")
	}

	_, err = ev.Evaluate(st, cards(t, "7h:down"), seeded(1))
	var cle *ClassificationError
	if !errors.As(err, &cle) || !errors.Is(err, ErrNoCards) {
		t.Errorf("got %v, want ClassificationError(ErrNoCards)", err)
	}
	if !reflect.DeepEqual(before, st) {
		t.Error("state changed on classification failure")
	}
}

func TestFaceDownCardsContributeNothing(t *testing.T) {
	ev, _ := newTestEvaluator(t, "Splash")
	a := mustEvaluate(t, ev, NewState(), "7h 7s", seeded(1))
	b := mustEvaluate(t, ev, NewState(), "7h 7s Ah:bonus:foil:down", seeded(1))
	if a.Chips != b.Chips || a.Mult != b.Mult || a.Factor != b.Factor {
		t.Errorf("face-down card changed the totals: %+v vs %+v", a, b)
	}
}

func TestRedSealRetriggers(t *testing.T) {
	ev, logger := newTestEvaluator(t)
	res := mustEvaluate(t, ev, NewState(), "7h:red 7s", seeded(1))
	if res.Chips != 10+14+7 {
		t.Errorf("chips = %d, want 31", res.Chips)
	}
	if len(logger.EventsOfType(log.EventCardRetrigger)) != 1 {
		t.Error("expected one retrigger event")
	}
}

func TestRetriggerRepeatsSideEffects(t *testing.T) {
	ev, _ := newTestEvaluator(t, "Hack")
	st := NewState()
	res := mustEvaluate(t, ev, st, "5h:goldseal 5s", seeded(1))
	money := 0
	for _, e := range res.Effects {
		if e.Kind == EffectCurrencyDelta {
			money += e.Amount
		}
	}
	if money != 6 || st.Money != 6 {
		t.Errorf("gold seal paid %d (state %d), want 6", money, st.Money)
	}
}

func TestFactorAppliedAfterSums(t *testing.T) {
	ev, _ := newTestEvaluator(t, "Joker")
	res := mustEvaluate(t, ev, NewState(), "7h:glass 7s:mult", seeded(99))
	// (10 + 7 + 7) × (2 + 4 + 4) × 2
	if res.Score != 24*10*2 {
		t.Errorf("score = %d, want %d", res.Score, 24*10*2)
	}
}

func TestSteelHeldCards(t *testing.T) {
	ev, logger := newTestEvaluator(t)
	st := NewState()
	st.Held = heldCards(t, "Kh:steel 2c Qd:steel:red")
	res := mustEvaluate(t, ev, st, "7h 7s", seeded(1))
	want := 1.5 * 1.5 * 1.5
	if res.Factor != want {
		t.Errorf("factor = %g, want %g", res.Factor, want)
	}
	if len(logger.EventsOfType(log.EventHeldCard)) != 3 {
		t.Error("expected three held-card events")
	}
}

func TestGlassDestruction(t *testing.T) {
	destroyed, kept := 0, 0
	for seed := uint64(0); seed < 100; seed++ {
		ev, _ := newTestEvaluator(t)
		st := NewState()
		res := mustEvaluate(t, ev, st, "7h:glass 7s", seeded(seed))
		hit := false
		for _, e := range res.Effects {
			if e.Kind == EffectCardDestroyed {
				hit = true
			}
		}
		if hit {
			destroyed++
			if len(st.Destroyed) != 1 || st.Destroyed[0].Enhancement != EnhGlass {
				t.Fatalf("seed %d: destroyed effect not applied: %+v", seed, st.Destroyed)
			}
		} else {
			kept++
		}
		if res.Factor != 2 {
			t.Fatalf("seed %d: glass factor %g, want 2", seed, res.Factor)
		}
	}
	if destroyed == 0 || kept == 0 {
		t.Errorf("destroyed %d kept %d over 100 seeds", destroyed, kept)
	}
}

func TestLuckyCards(t *testing.T) {
	boosted, money := 0, 0
	for seed := uint64(0); seed < 200; seed++ {
		ev, _ := newTestEvaluator(t)
		st := NewState()
		res := mustEvaluate(t, ev, st, "7h:lucky 7s", seeded(seed))
		if res.Mult == 22 {
			boosted++
		}
		if st.Money == 20 {
			money++
		}
	}
	if boosted == 0 || money == 0 {
		t.Errorf("lucky never triggered: mult %d money %d", boosted, money)
	}
}

func TestDiscard(t *testing.T) {
	ev, logger := newTestEvaluator(t, "Green Joker")
	st := NewState()
	st.Held = heldCards(t, "2c 3c 4c")
	mustEvaluate(t, ev, st, "7h 7s", seeded(1))

	if err := ev.Discard(st, st.Held[:2], seeded(1)); err != nil {
		t.Fatal(err)
	}
	if st.DiscardsRemaining != DefaultDiscards-1 || len(st.Held) != 1 || len(st.Discarded) != 2 {
		t.Errorf("after discard: remaining %d held %d discarded %d", st.DiscardsRemaining, len(st.Held), len(st.Discarded))
	}
	if got := ev.Agents.Agents()[0].Counter(counterMult); got != 0 {
		t.Errorf("Green Joker counter = %d after discard, want 0", got)
	}
	if len(logger.EventsOfType(log.EventDiscard)) != 1 {
		t.Error("expected a discard event")
	}

	st.DiscardsRemaining = 0
	if err := ev.Discard(st, st.Held, seeded(1)); !errors.Is(err, ErrNoDiscardsLeft) {
		t.Errorf("got %v, want ErrNoDiscardsLeft", err)
	}
}

func TestBookkeeping(t *testing.T) {
	ev, logger := newTestEvaluator(t)
	st := NewState()
	mustEvaluate(t, ev, st, "7h 7s", seeded(1))
	mustEvaluate(t, ev, st, "2h 5h 9h Jh Kh", seeded(1))
	mustEvaluate(t, ev, st, "8h 8s", seeded(1))

	if st.HandsPlayed != 3 || st.HandsPlayedThisRound != 3 || st.HandsRemaining != DefaultHands-3 {
		t.Errorf("counters: %+v", st)
	}
	if st.PlayCount(Pair) != 2 || st.PlayCount(Flush) != 1 {
		t.Errorf("play counts: %v", st.PlayCounts)
	}
	want := []Category{Pair, Flush, Pair}
	if !reflect.DeepEqual(st.RoundCategories, want) {
		t.Errorf("round categories = %v, want %v", st.RoundCategories, want)
	}
	if len(logger.EventsOfType(log.EventScored)) != 3 {
		t.Error("expected three scored events")
	}
}

func TestLoggedPhaseOrder(t *testing.T) {
	ev, logger := newTestEvaluator(t)
	mustEvaluate(t, ev, NewState(), "7h 7s", seeded(1))
	var phases []string
	for _, e := range logger.EventsOfType(log.EventPhaseChange) {
		phases = append(phases, e.Phase)
	}
	want := []string{"Classifying", "Accumulating", "Finalizing"}
	if !reflect.DeepEqual(phases, want) {
		t.Errorf("phases = %v, want %v", phases, want)
	}
}
