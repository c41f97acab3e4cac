package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/peterkuimelis/chipsmult/internal/log"
)

var ErrNoDiscardsLeft = errors.New("no discards remaining")

// Phase is the evaluator's position in the scoring pipeline.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseClassifying
	PhaseAccumulating
	PhaseFinalizing
)

func (p Phase) String() string {
	switch p {
	case PhaseClassifying:
		return "Classifying"
	case PhaseAccumulating:
		return "Accumulating"
	case PhaseFinalizing:
		return "Finalizing"
	default:
		return "Idle"
	}
}

// Result is the outcome of a successful evaluation.
type Result struct {
	Category Category
	Level    Level
	Scoring  []Card // credited cards, including debuffed ones
	Debuffed []Card
	Chips    int
	Mult     float64
	Factor   float64
	Score    int
	Effects  []SideEffect
}

// Evaluator scores played hands. It is not safe for concurrent use.
type Evaluator struct {
	Levels *LevelTable
	Agents *Registry
	Boss   Boss
	Logger log.EventLogger

	phase Phase
	sc    *ScoringContext
}

// NewEvaluator returns an evaluator with level-1 categories, an empty agent
// registry with the default slot count and no boss.
func NewEvaluator(logger log.EventLogger) *Evaluator {
	return &Evaluator{
		Levels: NewLevelTable(),
		Agents: NewRegistry(DefaultMaxAgents),
		Logger: logger,
		sc:     newScoringContext(),
	}
}

func (e *Evaluator) log(event log.GameEvent) {
	if e.Logger != nil {
		e.Logger.Log(event)
	}
}

func (e *Evaluator) setPhase(p Phase, hand int) {
	e.phase = p
	e.log(log.NewPhaseChangeEvent(hand, p.String()))
}

// Phase returns the current pipeline phase. It is PhaseIdle between calls.
func (e *Evaluator) Phase() Phase {
	return e.phase
}

// Context returns a copy of the running totals.
func (e *Evaluator) Context() ScoringContext {
	if e.sc == nil {
		return ScoringContext{Factor: 1}
	}
	c := *e.sc
	c.Effects = slices.Clone(e.sc.Effects)
	return c
}

func (e *Evaluator) context() *ScoringContext {
	if e.sc == nil {
		e.sc = newScoringContext()
	}
	return e.sc
}

// Evaluate classifies and scores selection against st. A
// *ClassificationError or *ConstraintError is returned before anything in
// st, the level table or the agents changes. On success every side effect
// has been applied to st and the level table, in order, before returning.
// All randomness is drawn from rng.
func (e *Evaluator) Evaluate(st *State, selection []Card, rng *rand.Rand) (Result, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}
	sc := e.context()
	sc.Reset()
	defer func() {
		sc.Reset()
		e.phase = PhaseIdle
	}()

	hand := st.HandsPlayed + 1
	e.setPhase(PhaseClassifying, hand)
	relax := e.Agents.Relaxations()
	m, err := Classify(selection, relax)
	if err != nil {
		e.log(log.NewRejectedEvent(hand, err.Error()))
		return Result{}, err
	}
	e.log(log.NewClassifiedEvent(hand, m.Category.String(), cardStrings(m.Scoring)))
	if err := e.checkConstraints(m.Category, st); err != nil {
		e.log(log.NewRejectedEvent(hand, err.Error()))
		return Result{}, err
	}

	// The hand is legal from here on.
	st.recordPlay(m.Category)
	hc := HookContext{State: st, Match: m, Relax: relax, Rng: rng}
	e.notify(hc, Trigger{Kind: TriggerHandPlayed, Match: m})

	e.setPhase(PhaseAccumulating, hand)
	active, debuffed := e.partitionDebuffed(m, relax)
	for _, c := range debuffed {
		e.log(log.NewCardDebuffedEvent(hand, c.String(), e.Boss.String()))
	}
	lvl := e.Levels.Get(m.Category)
	e.log(log.NewLevelLookupEvent(hand, m.Category.String(), lvl.Level, lvl.Chips, lvl.Mult))
	sc.AddChips(lvl.Chips)
	sc.AddMult(float64(lvl.Mult))

	e.resolveCards(hc, active, sc)
	e.resolveHeld(hc, sc)
	for _, r := range e.Agents.Score(hc, sc) {
		if r.Source != r.Agent {
			e.log(log.NewAgentCopiedEvent(hand, r.Agent.Def.Name, r.Source.Def.Name))
		}
		e.log(log.NewAgentScoredEvent(hand, r.Agent.Def.Name, r.Chips, r.Mult, r.Factor))
	}

	e.setPhase(PhaseFinalizing, hand)
	score := sc.Score()
	if e.Boss.ForcesZeroFirstHand() && st.HandsPlayedThisRound == 1 {
		score = 0
		e.log(log.NewBossTransformEvent(hand, e.Boss.String(), "first hand scores 0"))
	}
	if e.Boss.HalvesFinalScore() {
		score /= 2
		e.log(log.NewBossTransformEvent(hand, e.Boss.String(), "final score halved"))
	}
	e.bossEffects(st, m, len(selection), rng, sc)
	e.log(log.NewScoredEvent(hand, m.Category.String(), sc.Chips, sc.Mult, sc.Factor, score))

	res := Result{
		Category: m.Category,
		Level:    lvl,
		Scoring:  m.Scoring,
		Debuffed: debuffed,
		Chips:    sc.Chips,
		Mult:     sc.Mult,
		Factor:   sc.Factor,
		Score:    score,
		Effects:  slices.Clone(sc.Effects),
	}

	e.notify(hc, Trigger{Kind: TriggerHandScored, Match: m})
	st.Played = slices.Clone(selection)
	st.Apply(res.Effects, e.Levels)
	st.returnPlayed()
	for _, eff := range res.Effects {
		e.log(log.NewSideEffectEvent(hand, PhaseFinalizing.String(), eff.String()))
	}
	return res, nil
}

// checkConstraints rejects categories the boss does not allow.
func (e *Evaluator) checkConstraints(cat Category, st *State) error {
	b := e.Boss
	if n := b.MaxHands(); n > 0 && st.HandsPlayedThisRound >= n {
		return &ConstraintError{Boss: b.String(), Category: cat, Reason: fmt.Sprintf("only %d hand(s) may be played", n)}
	}
	if b.CategoryForbidden(cat, st) {
		return &ConstraintError{Boss: b.String(), Category: cat, Reason: "already played this round"}
	}
	if req, ok := b.RequiredCategory(st); ok && req != cat {
		return &ConstraintError{Boss: b.String(), Category: cat, Required: req, Reason: fmt.Sprintf("only %s may be played", req)}
	}
	return nil
}

// bossEffects appends the boss's post-play side effects.
func (e *Evaluator) bossEffects(st *State, m Match, played int, rng *rand.Rand, sc *ScoringContext) {
	b := e.Boss
	if n := b.MoneyPerCardPlayed(); n > 0 {
		// charge no more than the player will hold once this hand pays out
		sc.AddMoney(-min(n*played, max(st.Money+sc.MoneyDelta(), 0)), b.String())
	}
	if b.DecreasesLevel() {
		sc.Emit(SideEffect{Kind: EffectCategoryDowngraded, Category: m.Category, Source: b.String()})
	}
	if n := min(b.DiscardsAfterPlay(), len(st.Held)); n > 0 {
		for _, i := range rng.Perm(len(st.Held))[:n] {
			sc.Emit(SideEffect{Kind: EffectCardDiscarded, Card: st.Held[i], Source: b.String()})
		}
	}
}

// notify delivers ev to the agents and logs any that expired.
func (e *Evaluator) notify(hc HookContext, ev Trigger) {
	for _, a := range e.Agents.Notify(hc, ev) {
		e.log(log.NewAgentRemovedEvent(hc.State.HandsPlayed, a.Def.Name))
	}
}

// Discard moves cards from the held hand to the discard pile and tells the
// agents about it.
func (e *Evaluator) Discard(st *State, cards []Card, rng *rand.Rand) error {
	if len(cards) == 0 {
		return &ClassificationError{Selected: 0, Err: ErrNoCards}
	}
	if len(cards) > MaxSelection {
		return &ClassificationError{Selected: len(cards), Err: ErrTooManyCards}
	}
	if st.DiscardsRemaining <= 0 {
		return ErrNoDiscardsLeft
	}
	st.DiscardsRemaining--
	effects := make([]SideEffect, len(cards))
	for i, c := range cards {
		effects[i] = SideEffect{Kind: EffectCardDiscarded, Card: c, Source: "discard"}
	}
	st.Apply(effects, e.Levels)
	e.log(log.NewDiscardEvent(st.HandsPlayed, cardStrings(cards)))
	e.notify(HookContext{State: st, Rng: rng}, Trigger{Kind: TriggerDiscard, Cards: cards})
	return nil
}

// EndRound tells the agents the round is over. Agents that expire are
// removed and returned.
func (e *Evaluator) EndRound(st *State, rng *rand.Rand) []*Agent {
	expired := e.Agents.Notify(HookContext{State: st, Rng: rng}, Trigger{Kind: TriggerRoundEnd})
	for _, a := range expired {
		e.log(log.NewAgentRemovedEvent(st.HandsPlayed, a.Def.Name))
	}
	return expired
}

// AddAgent acquires the named catalog agent.
func (e *Evaluator) AddAgent(name string) (*Agent, error) {
	if !HasAgent(name) {
		return nil, fmt.Errorf("unknown agent %q", name)
	}
	a, err := e.Agents.Add(LookupAgent(name))
	if err != nil {
		return nil, err
	}
	e.log(log.NewAgentAddedEvent(0, a.Def.Name, e.Agents.Len()-1))
	return a, nil
}

// UpgradeCategory raises cat by n levels.
func (e *Evaluator) UpgradeCategory(cat Category, n int) Level {
	l := e.Levels.UpgradeBy(cat, n)
	e.log(log.NewCategoryUpgradedEvent(0, cat.String(), l.Level))
	return l
}
