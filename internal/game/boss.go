package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Boss is a difficulty constraint active for one challenge. BossNone means
// no constraint. Every method is a pure query; the evaluator decides where
// each answer applies.
type Boss int

const (
	BossNone Boss = iota
	TheWall
	TheManacle
	TheWater
	TheNeedle
	TheArm
	TheTooth
	TheClub
	TheGoad
	TheWindow
	TheHead
	ThePlant
	TheFlint
	TheEye
	TheMouth
	TheSerpent
	TheHook
	TheOx
	TheHouse
	TheWheel
	ThePillar
)

// Bosses lists every boss constraint.
var Bosses = []Boss{
	TheWall, TheManacle, TheWater, TheNeedle, TheArm, TheTooth, TheClub,
	TheGoad, TheWindow, TheHead, ThePlant, TheFlint, TheEye, TheMouth,
	TheSerpent, TheHook, TheOx, TheHouse, TheWheel, ThePillar,
}

func (b Boss) String() string {
	switch b {
	case BossNone:
		return "None"
	case TheWall:
		return "The Wall"
	case TheManacle:
		return "The Manacle"
	case TheWater:
		return "The Water"
	case TheNeedle:
		return "The Needle"
	case TheArm:
		return "The Arm"
	case TheTooth:
		return "The Tooth"
	case TheClub:
		return "The Club"
	case TheGoad:
		return "The Goad"
	case TheWindow:
		return "The Window"
	case TheHead:
		return "The Head"
	case ThePlant:
		return "The Plant"
	case TheFlint:
		return "The Flint"
	case TheEye:
		return "The Eye"
	case TheMouth:
		return "The Mouth"
	case TheSerpent:
		return "The Serpent"
	case TheHook:
		return "The Hook"
	case TheOx:
		return "The Ox"
	case TheHouse:
		return "The House"
	case TheWheel:
		return "The Wheel"
	case ThePillar:
		return "The Pillar"
	default:
		return fmt.Sprintf("Boss(%d)", int(b))
	}
}

func (b Boss) Description() string {
	switch b {
	case TheWall:
		return "Extra large blind: requires ×2.5 score instead of ×2."
	case TheManacle:
		return "-1 hand size."
	case TheWater:
		return "Start with 0 discards."
	case TheNeedle:
		return "Only 1 hand can be played."
	case TheArm:
		return "Decrease level of played poker hand."
	case TheTooth:
		return "Lose $1 per card played."
	case TheClub:
		return "All Club cards are debuffed."
	case TheGoad:
		return "All Spade cards are debuffed."
	case TheWindow:
		return "All Diamond cards are debuffed."
	case TheHead:
		return "All Heart cards are debuffed."
	case ThePlant:
		return "All face cards are debuffed."
	case TheFlint:
		return "Final score is halved."
	case TheEye:
		return "No repeat hand types this round."
	case TheMouth:
		return "Play only 1 hand type this round."
	case TheSerpent:
		return "First hand always scores 0."
	case TheHook:
		return "Discards 2 random cards held in hand after every played hand."
	case TheOx:
		return "Leftmost card is dealt face down."
	case TheHouse:
		return "First hand is dealt with only 1 card."
	case TheWheel:
		return "1 in 7 cards get drawn face down."
	case ThePillar:
		return "Cards are selected randomly."
	default:
		return ""
	}
}

// Active reports whether b is a real constraint.
func (b Boss) Active() bool {
	return b != BossNone
}

// LookupBoss finds a boss by name, with or without the leading "The".
func LookupBoss(name string) (Boss, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" || want == "none" {
		return BossNone, nil
	}
	for _, b := range Bosses {
		full := strings.ToLower(b.String())
		if want == full || "the "+want == full {
			return b, nil
		}
	}
	return BossNone, fmt.Errorf("unknown boss %q", name)
}

// ScoreRequirementMultiplier scales the external score threshold.
func (b Boss) ScoreRequirementMultiplier() float64 {
	switch b {
	case BossNone:
		return 1
	case TheWall:
		return 2.5
	default:
		return 2
	}
}

// debuffSuit returns the suit a suit boss debuffs.
func (b Boss) debuffSuit() (Suit, bool) {
	switch b {
	case TheClub:
		return SuitClub, true
	case TheGoad:
		return SuitSpade, true
	case TheWindow:
		return SuitDiamond, true
	case TheHead:
		return SuitHeart, true
	}
	return 0, false
}

// IsDebuffed reports whether card contributes nothing under b. Debuffed cards
// are still classified. Wild cards count as every suit; smeared suits do not
// widen a suit debuff.
func (b Boss) IsDebuffed(card Card, relax Relaxations) bool {
	if s, ok := b.debuffSuit(); ok {
		return card.MatchesSuit(s, false)
	}
	if b == ThePlant {
		return card.IsFace(relax.AllFaces)
	}
	return false
}

// CategoryForbidden reports whether cat may not be played given the
// categories already played this round.
func (b Boss) CategoryForbidden(cat Category, st *State) bool {
	return b == TheEye && st.PlayedThisRound(cat)
}

// RequiredCategory returns the only category that may be played this round,
// once one has been fixed by the first hand.
func (b Boss) RequiredCategory(st *State) (Category, bool) {
	if b != TheMouth || len(st.RoundCategories) == 0 {
		return 0, false
	}
	return st.RoundCategories[0], true
}

func (b Boss) ForcesZeroFirstHand() bool { return b == TheSerpent }

func (b Boss) HalvesFinalScore() bool { return b == TheFlint }

func (b Boss) DecreasesLevel() bool { return b == TheArm }

// DiscardsAfterPlay is the number of random held cards discarded after each
// played hand.
func (b Boss) DiscardsAfterPlay() int {
	if b == TheHook {
		return 2
	}
	return 0
}

// MoneyPerCardPlayed is the money lost for each card in the selection.
func (b Boss) MoneyPerCardPlayed() int {
	if b == TheTooth {
		return 1
	}
	return 0
}

func (b Boss) HandSizeDelta() int {
	if b == TheManacle {
		return -1
	}
	return 0
}

func (b Boss) StartsWithNoDiscards() bool { return b == TheWater }

// MaxHands returns the hand limit for the round, or 0 for no limit.
func (b Boss) MaxHands() int {
	if b == TheNeedle {
		return 1
	}
	return 0
}

func (b Boss) LeftmostFaceDown() bool { return b == TheOx }

// FaceDownChance is the probability that each dealt card is face down.
func (b Boss) FaceDownChance() float64 {
	if b == TheWheel {
		return 1.0 / 7.0
	}
	return 0
}

func (b Boss) RandomSelection() bool { return b == ThePillar }

func (b Boss) FirstDealOneCard() bool { return b == TheHouse }

// DealVisibility returns a copy of dealt with the boss's face-down rules
// applied. dealt is not modified.
func (b Boss) DealVisibility(dealt []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(dealt))
	copy(out, dealt)
	if b.LeftmostFaceDown() && len(out) > 0 {
		out[0].FaceDown = true
	}
	if p := b.FaceDownChance(); p > 0 && rng != nil {
		for i := range out {
			if rng.Float64() < p {
				out[i].FaceDown = true
			}
		}
	}
	return out
}
