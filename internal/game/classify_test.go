package game

import (
	"errors"
	"testing"
)

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		name    string
		hand    string
		relax   Relaxations
		want    Category
		scoring int
	}{
		{"high card", "2h 5s 9d Jc Kh", Relaxations{}, HighCard, 1},
		{"single card", "Ah", Relaxations{}, HighCard, 1},
		{"pair", "7h 7s 2d 9c Kh", Relaxations{}, Pair, 2},
		{"two pair", "7h 7s 9d 9c Kh", Relaxations{}, TwoPair, 4},
		{"three of a kind", "7h 7s 7d 9c Kh", Relaxations{}, ThreeOfAKind, 3},
		{"straight", "5h 6s 7d 8c 9h", Relaxations{}, Straight, 5},
		{"ace high straight", "Th Js Qd Kc Ah", Relaxations{}, Straight, 5},
		{"ace low straight", "Ah 2s 3d 4c 5h", Relaxations{}, Straight, 5},
		{"flush", "2h 5h 9h Jh Kh", Relaxations{}, Flush, 5},
		{"full house", "7h 7s 7d 9c 9h", Relaxations{}, FullHouse, 5},
		{"four of a kind", "7h 7s 7d 7c 9h", Relaxations{}, FourOfAKind, 4},
		{"straight flush", "5h 6h 7h 8h 9h", Relaxations{}, StraightFlush, 5},
		{"royal flush", "Th Jh Qh Kh Ah", Relaxations{}, RoyalFlush, 5},
		{"five of a kind", "7h 7s 7d 7c 7h", Relaxations{}, FiveOfAKind, 5},
		{"flush house", "7h 7h 7h 9h 9h", Relaxations{}, FlushHouse, 5},
		{"flush five", "7h 7h 7h 7h 7h", Relaxations{}, FlushFive, 5},
		{"four card flush", "2h 5h 9h Jh Ks", Relaxations{FourCardFlush: true}, Flush, 4},
		{"four card straight", "5h 6s 7d 8c Kh", Relaxations{FourCardStraight: true}, Straight, 4},
		{"gap straight", "5h 6s 8d 9c Th", Relaxations{GapStraights: true}, Straight, 5},
		{"low ace gap straight", "Ah 2s 3d 5c 6h", Relaxations{GapStraights: true}, Straight, 5},
		{"smeared flush", "2h 5d 9h Jd Kh", Relaxations{SmearedSuits: true}, Flush, 5},
		{"wild completes flush", "2h 5h 9h Jh Ks:wild", Relaxations{}, Flush, 5},
		{"all cards score", "7h 7s 2d 9c Kh", Relaxations{AllCardsScore: true}, Pair, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := classify(t, tt.hand, tt.relax)
			if m.Category != tt.want {
				t.Fatalf("Classify(%q) = %s, want %s", tt.hand, m.Category, tt.want)
			}
			if len(m.Scoring) != tt.scoring {
				t.Errorf("Classify(%q) credited %d cards, want %d", tt.hand, len(m.Scoring), tt.scoring)
			}
		})
	}
}

func TestClassifyNoWrapStraight(t *testing.T) {
	m := classify(t, "Qh Ks Ad 2c 3h", Relaxations{})
	if m.Category != HighCard {
		t.Errorf("Q-K-A-2-3 = %s, want High Card", m.Category)
	}
}

func TestClassifyOnlyOneGap(t *testing.T) {
	m := classify(t, "3h 5s 7d 8c 9h", Relaxations{GapStraights: true})
	if m.Category == Straight {
		t.Errorf("3-5-7-8-9 with one gap allowed should not be a Straight")
	}
}

func TestClassifyFewCardsStillClassifies(t *testing.T) {
	// Too few cards for a straight or flush still yields a valid category.
	m := classify(t, "5h 6h", Relaxations{})
	if m.Category != HighCard {
		t.Fatalf("got %s, want High Card", m.Category)
	}
	if len(m.Scoring) != 1 || m.Scoring[0].Rank != RankSix {
		t.Errorf("expected the 6 to be credited, got %v", m.Scoring)
	}
}

func TestClassifyErrors(t *testing.T) {
	_, err := Classify(nil, Relaxations{})
	var ce *ClassificationError
	if !errors.As(err, &ce) || !errors.Is(err, ErrNoCards) {
		t.Errorf("empty selection: got %v, want ClassificationError(ErrNoCards)", err)
	}

	_, err = Classify(cards(t, "7h:down 8s:down"), Relaxations{})
	if !errors.Is(err, ErrNoCards) {
		t.Errorf("all face-down: got %v, want ErrNoCards", err)
	}

	_, err = Classify(cards(t, "2h 3h 4h 5h 6h 7h"), Relaxations{})
	if !errors.Is(err, ErrTooManyCards) {
		t.Errorf("six cards: got %v, want ErrTooManyCards", err)
	}
}

func TestClassifyExcludesFaceDown(t *testing.T) {
	m := classify(t, "7h 7s:down 2d 9c Kh", Relaxations{})
	if m.Category != HighCard {
		t.Fatalf("face-down 7 must not complete the pair, got %s", m.Category)
	}
	for _, c := range m.Scoring {
		if c.FaceDown {
			t.Errorf("face-down card %s was credited", c)
		}
	}
	if len(m.Visible) != 4 {
		t.Errorf("visible = %d, want 4", len(m.Visible))
	}
}

func TestClassifyStoneCards(t *testing.T) {
	m := classify(t, "7h 7s 2d:stone", Relaxations{})
	if m.Category != Pair {
		t.Fatalf("got %s, want Pair", m.Category)
	}
	if len(m.Scoring) != 3 {
		t.Errorf("stone card must always be credited, got %d credited", len(m.Scoring))
	}

	m = classify(t, "2d:stone 3c:stone", Relaxations{})
	if m.Category != HighCard || len(m.Matched) != 0 || len(m.Scoring) != 2 {
		t.Errorf("all-stone selection: category %s, matched %d, scoring %d", m.Category, len(m.Matched), len(m.Scoring))
	}

	m = classify(t, "7h 7h 7h 7h 7h:stone", Relaxations{})
	if m.Category != FourOfAKind {
		t.Errorf("stone card must not take part in rank matching, got %s", m.Category)
	}
}

func TestClassifyScoringOrderFollowsSelection(t *testing.T) {
	m := classify(t, "9c 7h Kd 7s", Relaxations{AllCardsScore: true})
	want := cards(t, "9c 7h Kd 7s")
	if !sameCards(m.Scoring, want) {
		t.Errorf("scoring = %v, want selection order %v", m.Scoring, want)
	}
}

func TestClassifyContains(t *testing.T) {
	m := classify(t, "7h 7s 7d 9c 9h", Relaxations{})
	for _, c := range []Category{Pair, TwoPair, ThreeOfAKind, FullHouse, HighCard} {
		if !m.Contains(c) {
			t.Errorf("Full House should contain %s", c)
		}
	}
	if m.Contains(Flush) || m.Contains(Straight) {
		t.Error("Full House should not contain Flush or Straight")
	}
}

func TestRelaxationMonotonicity(t *testing.T) {
	hands := []string{
		"2h 5h 9h Jh Ks",
		"5h 6s 7d 8c Kh",
		"5h 6s 8d 9c Th",
		"2h 5d 9h Jd Kh",
		"7h 7s 2d 9c Kh",
		"Ah 2s 3d 5c Kh",
		"4h 5h 7h 8h Ks",
		"Th Jd Qh Kd Ah",
		"3c 4c 6c 7c 7d",
	}
	flags := []Relaxations{
		{FourCardFlush: true},
		{FourCardStraight: true},
		{GapStraights: true},
		{SmearedSuits: true},
		{AllFaces: true},
		{AllCardsScore: true},
		{FourCardFlush: true, FourCardStraight: true, GapStraights: true, SmearedSuits: true},
	}

	for _, hand := range hands {
		base := classify(t, hand, Relaxations{})
		for _, r := range flags {
			relaxed := classify(t, hand, r)
			if relaxed.Category < base.Category {
				t.Errorf("%q: relaxation %+v lowered %s to %s", hand, r, base.Category, relaxed.Category)
			}
			// adding more flags on top must not lower it either
			stacked := classify(t, hand, r.Merge(Relaxations{SmearedSuits: true, GapStraights: true}))
			if stacked.Category < relaxed.Category {
				t.Errorf("%q: stacking relaxations lowered %s to %s", hand, relaxed.Category, stacked.Category)
			}
		}
	}
}

func TestRelaxedStraightFlush(t *testing.T) {
	m := classify(t, "4h 5h 7h 8h Ks", Relaxations{FourCardFlush: true, FourCardStraight: true, GapStraights: true})
	if m.Category != StraightFlush {
		t.Errorf("got %s, want Straight Flush", m.Category)
	}
}
