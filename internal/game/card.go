package game

const (
	bonusChips       = 30
	stoneChips       = 50
	foilChips        = 50
	multEnhMult      = 4
	holoMult         = 10
	glassFactor      = 2.0
	polychromeFactor = 1.5
	steelFactor      = 1.5
	goldSealMoney    = 3

	luckyMultOdds  = 5
	luckyMult      = 20
	luckyMoneyOdds = 15
	luckyMoney     = 20
	glassBreakOdds = 4
)

// Visible reports whether the card is face-up.
func (c Card) Visible() bool {
	return !c.FaceDown
}

// HasRank reports whether the card takes part in rank matching. Stone cards
// have no rank and no suit.
func (c Card) HasRank() bool {
	return c.Enhancement != EnhStone
}

// IsFace reports whether the card is a Jack, Queen or King. When allFaces is
// set every ranked card counts as a face card.
func (c Card) IsFace(allFaces bool) bool {
	if !c.HasRank() {
		return false
	}
	if allFaces {
		return true
	}
	return c.Rank == RankJack || c.Rank == RankQueen || c.Rank == RankKing
}

// MatchesSuit reports whether the card counts as suit s. Wild cards count as
// every suit; Stone cards count as none. Under smeared suits, Hearts and
// Diamonds are one suit and Spades and Clubs the other.
func (c Card) MatchesSuit(s Suit, smeared bool) bool {
	if !c.HasRank() {
		return false
	}
	if c.Enhancement == EnhWild {
		return true
	}
	if smeared {
		return c.Suit.IsRed() == s.IsRed()
	}
	return c.Suit == s
}

// Chips returns the card's chip contribution for one trigger. Face-down cards
// contribute nothing.
func (c Card) Chips() int {
	if !c.Visible() {
		return 0
	}
	chips := c.BonusChips
	switch c.Enhancement {
	case EnhStone:
		chips += stoneChips
	case EnhBonus:
		chips += c.Rank.Chips() + bonusChips
	default:
		chips += c.Rank.Chips()
	}
	if c.Edition == EditionFoil {
		chips += foilChips
	}
	return chips
}

// Mult returns the card's additive mult contribution for one trigger.
func (c Card) Mult() float64 {
	if !c.Visible() {
		return 0
	}
	mult := 0
	if c.Enhancement == EnhMult {
		mult += multEnhMult
	}
	if c.Edition == EditionHolographic {
		mult += holoMult
	}
	return float64(mult)
}

// Factor returns the card's multiplicative factor for one trigger. Face-down
// cards return the identity.
func (c Card) Factor() float64 {
	if !c.Visible() {
		return 1
	}
	f := 1.0
	if c.Enhancement == EnhGlass {
		f *= glassFactor
	}
	if c.Edition == EditionPolychrome {
		f *= polychromeFactor
	}
	return f
}

// HeldFactor returns the factor the card applies while held in hand rather
// than played. Face-down cards apply nothing.
func (c Card) HeldFactor() float64 {
	if c.Visible() && c.Enhancement == EnhSteel {
		return steelFactor
	}
	return 1
}

func (c Card) HasRetrigger() bool {
	return c.Seal == SealRed
}

// SealMoney is the currency paid each time the card is scored.
func (c Card) SealMoney() int {
	if c.Seal == SealGold {
		return goldSealMoney
	}
	return 0
}

// visibleCards filters out face-down cards, preserving order.
func visibleCards(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.Visible() {
			out = append(out, c)
		}
	}
	return out
}
