package game

import "github.com/peterkuimelis/chipsmult/internal/log"

// partitionDebuffed splits the credited cards into the ones that contribute
// and the ones the boss debuffs. Both keep selection order.
func (e *Evaluator) partitionDebuffed(m Match, relax Relaxations) (active, debuffed []Card) {
	for _, c := range m.Scoring {
		if e.Boss.IsDebuffed(c, relax) {
			debuffed = append(debuffed, c)
			continue
		}
		active = append(active, c)
	}
	return active, debuffed
}

// resolveCards adds every active card's contribution to sc. Each card runs
// once plus one time per retrigger; every run adds its chips and mult,
// multiplies its factor, pays seal money, rolls Lucky and runs the agents'
// per-card hooks. Glass rolls for destruction once, after the card's runs.
func (e *Evaluator) resolveCards(hc HookContext, active []Card, sc *ScoringContext) {
	hand := hc.State.HandsPlayed
	for _, card := range active {
		triggers := 1 + e.Agents.Retriggers(hc, card)
		if card.HasRetrigger() {
			triggers++
		}
		for t := 0; t < triggers; t++ {
			if t > 0 {
				e.log(log.NewCardRetriggerEvent(hand, card.String(), t+1))
			}
			sc.AddChips(card.Chips())
			sc.AddMult(card.Mult())
			sc.MulFactor(card.Factor())
			sc.AddMoney(card.SealMoney(), "Gold Seal")
			if card.Enhancement == EnhLucky {
				if hc.chance(luckyMultOdds) {
					sc.AddMult(luckyMult)
				}
				if hc.chance(luckyMoneyOdds) {
					sc.AddMoney(luckyMoney, "Lucky Card")
				}
			}
			e.log(log.NewCardScoredEvent(hand, card.String(), card.Chips(), card.Mult(), card.Factor()))
			e.Agents.CardScored(hc, card, sc)
		}
		if card.Enhancement == EnhGlass && hc.chance(glassBreakOdds) {
			sc.Emit(SideEffect{Kind: EffectCardDestroyed, Card: card, Source: "Glass Card"})
		}
	}
}

// resolveHeld applies the factors of cards held in hand. Debuffed held cards
// do nothing; a red seal repeats the effect.
func (e *Evaluator) resolveHeld(hc HookContext, sc *ScoringContext) {
	for _, card := range hc.State.Held {
		f := card.HeldFactor()
		if f == 1 || e.Boss.IsDebuffed(card, hc.Relax) {
			continue
		}
		triggers := 1
		if card.HasRetrigger() {
			triggers++
		}
		for t := 0; t < triggers; t++ {
			sc.MulFactor(f)
			e.log(log.NewHeldCardEvent(hc.State.HandsPlayed, card.String(), f))
		}
	}
}
