package game

import (
	"maps"
	"slices"
)

const (
	DefaultHands     = 4
	DefaultDiscards  = 3
	DefaultHandSize  = 8
	DefaultMaxAgents = 5
)

// State is the live game state owned by the caller. The engine reads it
// during evaluation and changes it only by applying side effects.
type State struct {
	Money             int
	HandsRemaining    int
	DiscardsRemaining int
	HandSize          int
	Ante              int
	Round             int

	HandsPlayed          int // whole run
	HandsPlayedThisRound int
	RoundCategories      []Category // categories played this round, in order
	PlayCounts           map[Category]int
	CardsDiscarded       int // whole run

	Held      []Card // cards held in hand, not part of the selection
	Played    []Card // the last committed hand, after its effects
	Deck      []Card
	Destroyed []Card
	Discarded []Card

	nextDeckID int
}

// deckIDBase is the first ID given to cards returned to the deck, above
// selection (1..5) and held (100+) IDs.
const deckIDBase = 1000

// NewState returns the state at the start of a run.
func NewState() *State {
	return &State{
		HandsRemaining:    DefaultHands,
		DiscardsRemaining: DefaultDiscards,
		HandSize:          DefaultHandSize,
		Ante:              1,
		Round:             1,
		PlayCounts:        make(map[Category]int),
	}
}

// StartRound resets the per-round counters.
func (st *State) StartRound(hands, discards int) {
	st.Round++
	st.HandsRemaining = hands
	st.DiscardsRemaining = discards
	st.HandsPlayedThisRound = 0
	st.RoundCategories = nil
}

// StartBlind starts a new round under boss, applying its hand size, discard
// and hand limit rules.
func (st *State) StartBlind(boss Boss, hands, discards int) {
	if boss.StartsWithNoDiscards() {
		discards = 0
	}
	if n := boss.MaxHands(); n > 0 && hands > n {
		hands = n
	}
	st.StartRound(hands, discards)
	st.HandSize = DefaultHandSize + boss.HandSizeDelta()
}

// PlayedThisRound reports whether c was already played this round.
func (st *State) PlayedThisRound(c Category) bool {
	return slices.Contains(st.RoundCategories, c)
}

// PlayCount returns how often c was played this run.
func (st *State) PlayCount(c Category) int {
	return st.PlayCounts[c]
}

// recordPlay updates the play bookkeeping for a committed hand.
func (st *State) recordPlay(c Category) {
	if st.PlayCounts == nil {
		st.PlayCounts = make(map[Category]int)
	}
	st.HandsPlayed++
	st.HandsPlayedThisRound++
	st.PlayCounts[c]++
	st.RoundCategories = append(st.RoundCategories, c)
	if st.HandsRemaining > 0 {
		st.HandsRemaining--
	}
}

// Apply applies side effects in order. Level changes go to levels.
func (st *State) Apply(effects []SideEffect, levels *LevelTable) {
	for _, e := range effects {
		switch e.Kind {
		case EffectCurrencyDelta:
			st.Money = spend(st.Money, e.Amount)
		case EffectCardDestroyed:
			st.Held = removeCard(st.Held, e.Card.ID)
			st.Played = removeCard(st.Played, e.Card.ID)
			st.Deck = removeCard(st.Deck, e.Card.ID)
			st.Destroyed = append(st.Destroyed, e.Card)
		case EffectCardMutated:
			replaceCard(st.Held, e.Card)
			replaceCard(st.Played, e.Card)
			replaceCard(st.Deck, e.Card)
		case EffectCategoryUpgraded:
			levels.Upgrade(e.Category)
		case EffectCategoryDowngraded:
			levels.Downgrade(e.Category)
		case EffectCardDiscarded:
			st.Held = removeCard(st.Held, e.Card.ID)
			st.Discarded = append(st.Discarded, e.Card)
			st.CardsDiscarded++
		}
	}
}

// Clone returns a deep copy of st.
func (st *State) Clone() *State {
	c := *st
	c.RoundCategories = slices.Clone(st.RoundCategories)
	c.PlayCounts = maps.Clone(st.PlayCounts)
	c.Held = slices.Clone(st.Held)
	c.Played = slices.Clone(st.Played)
	c.Deck = slices.Clone(st.Deck)
	c.Destroyed = slices.Clone(st.Destroyed)
	c.Discarded = slices.Clone(st.Discarded)
	return &c
}

// returnPlayed puts the surviving played cards back into the deck under
// fresh IDs, face up.
func (st *State) returnPlayed() {
	st.nextDeckID = max(st.nextDeckID, deckIDBase)
	for _, c := range st.Played {
		c.ID = st.nextDeckID
		c.FaceDown = false
		st.nextDeckID++
		st.Deck = append(st.Deck, c)
	}
}

// Draw takes the deck's copy of each selected card, matched by rank and
// suit, so permanent changes from earlier hands carry over. Modifiers written
// on a selected card override the deck copy's, and the selection's IDs are
// kept. Cards with no copy in the deck are returned as given.
func (st *State) Draw(selection []Card) []Card {
	out := make([]Card, len(selection))
	for i, c := range selection {
		j := slices.IndexFunc(st.Deck, func(d Card) bool {
			return d.Rank == c.Rank && d.Suit == c.Suit
		})
		if j < 0 {
			out[i] = c
			continue
		}
		d := st.Deck[j]
		st.Deck = slices.Delete(st.Deck, j, j+1)
		d.ID = c.ID
		d.FaceDown = c.FaceDown
		d.BonusChips += c.BonusChips
		if c.Enhancement != EnhNone {
			d.Enhancement = c.Enhancement
		}
		if c.Edition != EditionBase {
			d.Edition = c.Edition
		}
		if c.Seal != SealNone {
			d.Seal = c.Seal
		}
		out[i] = d
	}
	return out
}

// spend adds delta to money. A charge never takes money below zero, and
// never raises a balance that is already negative.
func spend(money, delta int) int {
	if delta >= 0 {
		return money + delta
	}
	return max(money+delta, min(money, 0))
}

// removeCard removes the card with the given ID, preserving order.
func removeCard(cards []Card, id int) []Card {
	for i, c := range cards {
		if c.ID == id {
			return append(cards[:i:i], cards[i+1:]...)
		}
	}
	return cards
}

func replaceCard(cards []Card, card Card) {
	for i, c := range cards {
		if c.ID == card.ID {
			cards[i] = card
		}
	}
}
