package game

import (
	"fmt"
	"strings"
)

// ParseCard parses the compact card notation: a rank character, a suit
// character, then optional colon-separated modifiers.
//
//	7h
//	Th:bonus:red
//	As:glass:poly:down
func ParseCard(s string) (Card, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	head := parts[0]
	if len(head) != 2 {
		return Card{}, fmt.Errorf("card %q: want rank and suit, e.g. 7h", s)
	}

	var c Card
	var err error
	if c.Rank, err = parseRank(head[0]); err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	if c.Suit, err = parseSuit(head[1]); err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}

	for _, mod := range parts[1:] {
		switch strings.ToLower(mod) {
		case "bonus":
			c.Enhancement = EnhBonus
		case "mult":
			c.Enhancement = EnhMult
		case "wild":
			c.Enhancement = EnhWild
		case "glass":
			c.Enhancement = EnhGlass
		case "steel":
			c.Enhancement = EnhSteel
		case "stone":
			c.Enhancement = EnhStone
		case "gold":
			c.Enhancement = EnhGold
		case "lucky":
			c.Enhancement = EnhLucky
		case "foil":
			c.Edition = EditionFoil
		case "holo", "holographic":
			c.Edition = EditionHolographic
		case "poly", "polychrome":
			c.Edition = EditionPolychrome
		case "negative":
			c.Edition = EditionNegative
		case "goldseal":
			c.Seal = SealGold
		case "red":
			c.Seal = SealRed
		case "blue":
			c.Seal = SealBlue
		case "purple":
			c.Seal = SealPurple
		case "down":
			c.FaceDown = true
		default:
			return Card{}, fmt.Errorf("card %q: unknown modifier %q", s, mod)
		}
	}
	return c, nil
}

// ParseCards parses a whitespace- or comma-separated list of cards and
// assigns sequential IDs starting at 1.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	for i, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		c.ID = i + 1
		cards = append(cards, c)
	}
	return cards, nil
}

func parseRank(b byte) (Rank, error) {
	switch b {
	case 'T', 't':
		return RankTen, nil
	case 'J', 'j':
		return RankJack, nil
	case 'Q', 'q':
		return RankQueen, nil
	case 'K', 'k':
		return RankKing, nil
	case 'A', 'a':
		return RankAce, nil
	}
	if b >= '2' && b <= '9' {
		return Rank(b - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank %q", b)
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 's', 'S':
		return SuitSpade, nil
	case 'c', 'C':
		return SuitClub, nil
	case 'h', 'H':
		return SuitHeart, nil
	case 'd', 'D':
		return SuitDiamond, nil
	}
	return 0, fmt.Errorf("unknown suit %q", b)
}
