package game

import "fmt"

// EffectKind identifies a side effect produced by an evaluation.
type EffectKind int

const (
	EffectCurrencyDelta EffectKind = iota
	EffectCardDestroyed
	EffectCardMutated
	EffectCategoryUpgraded
	EffectCategoryDowngraded
	EffectCardDiscarded
)

func (k EffectKind) String() string {
	switch k {
	case EffectCurrencyDelta:
		return "CurrencyDelta"
	case EffectCardDestroyed:
		return "CardDestroyed"
	case EffectCardMutated:
		return "CardMutated"
	case EffectCategoryUpgraded:
		return "CategoryUpgraded"
	case EffectCategoryDowngraded:
		return "CategoryDowngraded"
	case EffectCardDiscarded:
		return "CardDiscarded"
	default:
		return "Unknown"
	}
}

// SideEffect is a state change produced by a successful evaluation. Side
// effects are applied in order, after the score is final.
type SideEffect struct {
	Kind     EffectKind
	Amount   int      // CurrencyDelta
	Card     Card     // card after the change (CardDestroyed, CardMutated, CardDiscarded)
	Category Category // CategoryUpgraded, CategoryDowngraded
	Source   string   // what produced the effect
}

func (e SideEffect) String() string {
	switch e.Kind {
	case EffectCurrencyDelta:
		return fmt.Sprintf("%s: %+d money", e.Source, e.Amount)
	case EffectCardDestroyed:
		return fmt.Sprintf("%s: %s destroyed", e.Source, e.Card)
	case EffectCardMutated:
		return fmt.Sprintf("%s: %s mutated", e.Source, e.Card)
	case EffectCategoryUpgraded:
		return fmt.Sprintf("%s: %s upgraded", e.Source, e.Category)
	case EffectCategoryDowngraded:
		return fmt.Sprintf("%s: %s downgraded", e.Source, e.Category)
	case EffectCardDiscarded:
		return fmt.Sprintf("%s: %s discarded", e.Source, e.Card)
	default:
		return e.Source
	}
}

// ScoringContext holds the running totals of a single evaluation. Chips and
// Mult are summed; Factor collects every multiplicative effect and is applied
// once at the end.
type ScoringContext struct {
	Chips   int
	Mult    float64
	Factor  float64
	Effects []SideEffect
}

func newScoringContext() *ScoringContext {
	sc := &ScoringContext{}
	sc.Reset()
	return sc
}

// Reset returns the context to its baseline.
func (sc *ScoringContext) Reset() {
	sc.Chips = 0
	sc.Mult = 0
	sc.Factor = 1
	sc.Effects = nil
}

// IsBaseline reports whether the context holds no accumulated values.
func (sc *ScoringContext) IsBaseline() bool {
	return sc.Chips == 0 && sc.Mult == 0 && sc.Factor == 1 && len(sc.Effects) == 0
}

func (sc *ScoringContext) AddChips(n int) { sc.Chips += n }

func (sc *ScoringContext) AddMult(n float64) { sc.Mult += n }

func (sc *ScoringContext) MulFactor(f float64) { sc.Factor *= f }

func (sc *ScoringContext) Emit(e SideEffect) { sc.Effects = append(sc.Effects, e) }

func (sc *ScoringContext) AddMoney(n int, src string) {
	if n != 0 {
		sc.Emit(SideEffect{Kind: EffectCurrencyDelta, Amount: n, Source: src})
	}
}

// MoneyDelta sums the currency effects emitted so far.
func (sc *ScoringContext) MoneyDelta() int {
	total := 0
	for _, e := range sc.Effects {
		if e.Kind == EffectCurrencyDelta {
			total += e.Amount
		}
	}
	return total
}

// Score is chips × mult × factor, floored.
func (sc *ScoringContext) Score() int {
	v := float64(sc.Chips) * sc.Mult * sc.Factor
	if v < 0 {
		return 0
	}
	return int(v)
}

// Contribution is an additive/multiplicative bundle returned by agent hooks.
type Contribution struct {
	Chips  int
	Mult   float64
	Factor float64 // 0 means no factor
	Money  int
}

// IsZero reports whether the contribution changes nothing.
func (c Contribution) IsZero() bool {
	return c.Chips == 0 && c.Mult == 0 && (c.Factor == 0 || c.Factor == 1) && c.Money == 0
}

func (sc *ScoringContext) apply(c Contribution, src string) {
	sc.AddChips(c.Chips)
	sc.AddMult(c.Mult)
	if c.Factor != 0 {
		sc.MulFactor(c.Factor)
	}
	sc.AddMoney(c.Money, src)
}

// latest returns card as changed by any mutation already pending in this
// evaluation.
func (sc *ScoringContext) latest(card Card) Card {
	for i := len(sc.Effects) - 1; i >= 0; i-- {
		e := sc.Effects[i]
		if e.Kind == EffectCardMutated && e.Card.ID == card.ID {
			return e.Card
		}
	}
	return card
}
