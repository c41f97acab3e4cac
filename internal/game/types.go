package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Rank int

const (
	RankTwo Rank = iota + 2
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

// Ranks lists every rank from Two to Ace.
var Ranks = []Rank{
	RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight,
	RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
}

func (r Rank) String() string {
	switch r {
	case RankTen:
		return "T"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	default:
		if r >= RankTwo && r <= RankNine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Chips is the rank's base chip value: face value for 2-10, 10 for
// J/Q/K, 11 for Ace.
func (r Rank) Chips() int {
	switch {
	case r == RankAce:
		return 11
	case r >= RankJack:
		return 10
	default:
		return int(r)
	}
}

type Suit int

const (
	SuitSpade Suit = iota
	SuitClub
	SuitHeart
	SuitDiamond
)

var Suits = []Suit{SuitSpade, SuitClub, SuitHeart, SuitDiamond}

func (s Suit) String() string {
	switch s {
	case SuitSpade:
		return "s"
	case SuitClub:
		return "c"
	case SuitHeart:
		return "h"
	case SuitDiamond:
		return "d"
	default:
		return "?"
	}
}

// Name returns the long form, e.g. "Spade".
func (s Suit) Name() string {
	switch s {
	case SuitSpade:
		return "Spade"
	case SuitClub:
		return "Club"
	case SuitHeart:
		return "Heart"
	case SuitDiamond:
		return "Diamond"
	default:
		return "Unknown"
	}
}

// IsRed reports whether s is Hearts or Diamonds.
func (s Suit) IsRed() bool {
	return s == SuitHeart || s == SuitDiamond
}

type Enhancement int

const (
	EnhNone Enhancement = iota
	EnhBonus
	EnhMult
	EnhWild
	EnhGlass
	EnhSteel
	EnhStone
	EnhGold
	EnhLucky
)

func (e Enhancement) String() string {
	switch e {
	case EnhBonus:
		return "bonus"
	case EnhMult:
		return "mult"
	case EnhWild:
		return "wild"
	case EnhGlass:
		return "glass"
	case EnhSteel:
		return "steel"
	case EnhStone:
		return "stone"
	case EnhGold:
		return "gold"
	case EnhLucky:
		return "lucky"
	default:
		return ""
	}
}

type Edition int

const (
	EditionBase Edition = iota
	EditionFoil
	EditionHolographic
	EditionPolychrome
	EditionNegative
)

func (e Edition) String() string {
	switch e {
	case EditionFoil:
		return "foil"
	case EditionHolographic:
		return "holo"
	case EditionPolychrome:
		return "poly"
	case EditionNegative:
		return "negative"
	default:
		return ""
	}
}

type Seal int

const (
	SealNone Seal = iota
	SealGold
	SealRed
	SealBlue
	SealPurple
)

func (s Seal) String() string {
	switch s {
	case SealGold:
		return "goldseal"
	case SealRed:
		return "red"
	case SealBlue:
		return "blue"
	case SealPurple:
		return "purple"
	default:
		return ""
	}
}

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// --- Card (value record) ---

// Card is a single playing card. Rank and suit are fixed for the card's
// lifetime; the modifiers and visibility flag can be changed between hands by
// whoever owns the card.
type Card struct {
	ID          int
	Rank        Rank
	Suit        Suit
	Enhancement Enhancement
	Edition     Edition
	Seal        Seal
	FaceDown    bool
	BonusChips  int // permanent chips added by agents (e.g. Hiker)
}

// String renders the card in the compact notation accepted by ParseCard.
func (c Card) String() string {
	var sb strings.Builder
	sb.WriteString(c.Rank.String())
	sb.WriteString(c.Suit.String())
	for _, mod := range []string{c.Enhancement.String(), c.Edition.String(), c.Seal.String()} {
		if mod != "" {
			sb.WriteByte(':')
			sb.WriteString(mod)
		}
	}
	if c.FaceDown {
		sb.WriteString(":down")
	}
	return sb.String()
}

func cardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
