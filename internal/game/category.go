package game

import (
	"fmt"
	"strings"
)

// Category is a scoring pattern. Higher values take precedence.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
	FiveOfAKind
	FlushHouse
	FlushFive

	numCategories = int(FlushFive) + 1
)

// Categories lists every category from lowest to highest precedence.
var Categories = []Category{
	HighCard, Pair, TwoPair, ThreeOfAKind, Straight, Flush, FullHouse,
	FourOfAKind, StraightFlush, RoyalFlush, FiveOfAKind, FlushHouse, FlushFive,
}

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	case FiveOfAKind:
		return "Five of a Kind"
	case FlushHouse:
		return "Flush House"
	case FlushFive:
		return "Flush Five"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Valid reports whether c is one of the 13 defined categories.
func (c Category) Valid() bool {
	return c >= HighCard && c <= FlushFive
}

// ParseCategory accepts a category's display name in any case, with spaces,
// dashes or underscores ("two pair", "Two_Pair").
func ParseCategory(s string) (Category, error) {
	norm := func(v string) string {
		v = strings.ToLower(v)
		return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(v)
	}
	want := norm(s)
	for _, c := range Categories {
		if norm(c.String()) == want {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHand, s)
}

// Level is a category's current base chips and mult.
type Level struct {
	Level int
	Chips int
	Mult  int
}

// baseLevel returns the level-1 values for a category.
func baseLevel(c Category) Level {
	switch c {
	case HighCard:
		return Level{1, 5, 1}
	case Pair:
		return Level{1, 10, 2}
	case TwoPair:
		return Level{1, 20, 2}
	case ThreeOfAKind:
		return Level{1, 30, 3}
	case Straight:
		return Level{1, 30, 4}
	case Flush:
		return Level{1, 35, 4}
	case FullHouse:
		return Level{1, 40, 4}
	case FourOfAKind:
		return Level{1, 60, 7}
	case StraightFlush, RoyalFlush:
		return Level{1, 100, 8}
	case FiveOfAKind:
		return Level{1, 120, 12}
	case FlushHouse:
		return Level{1, 140, 14}
	case FlushFive:
		return Level{1, 160, 16}
	}
	panic(fmt.Sprintf("invariant violation: no base level for %s", c))
}

// upgradeDelta is the chips/mult gained when moving from level to level+1.
func upgradeDelta(level int) (chips, mult int) {
	switch level {
	case 1:
		return 30, 3
	case 2:
		return 25, 2
	default:
		return 20, 2
	}
}
