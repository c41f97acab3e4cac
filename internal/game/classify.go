package game

import "slices"

// Relaxations loosens category matching. A fresh value is built for every
// evaluation from the active agents.
type Relaxations struct {
	FourCardFlush    bool // flushes need 4 cards instead of 5
	FourCardStraight bool // straights need 4 cards instead of 5
	GapStraights     bool // a straight may skip one rank
	SmearedSuits     bool // Hearts/Diamonds and Spades/Clubs count as one suit
	AllFaces         bool // every ranked card counts as a face card
	AllCardsScore    bool // every visible selected card is credited
}

// Merge returns the union of r and o.
func (r Relaxations) Merge(o Relaxations) Relaxations {
	return Relaxations{
		FourCardFlush:    r.FourCardFlush || o.FourCardFlush,
		FourCardStraight: r.FourCardStraight || o.FourCardStraight,
		GapStraights:     r.GapStraights || o.GapStraights,
		SmearedSuits:     r.SmearedSuits || o.SmearedSuits,
		AllFaces:         r.AllFaces || o.AllFaces,
		AllCardsScore:    r.AllCardsScore || o.AllCardsScore,
	}
}

// Match is the result of classifying a selection.
type Match struct {
	Category Category
	Visible  []Card // face-up cards in selection order
	Matched  []Card // cards that form the category, in selection order
	Scoring  []Card // cards credited for contributions, in selection order

	contains uint16
}

// Contains reports whether the selection satisfies c, even when a higher
// category was chosen (a Full House contains a Pair).
func (m Match) Contains(c Category) bool {
	return c.Valid() && m.contains&(1<<uint(c)) != 0
}

// cardSet marks positions in the visible slice.
type cardSet []bool

func (s cardSet) union(o cardSet) cardSet {
	out := make(cardSet, len(s))
	for i := range s {
		out[i] = s[i] || (i < len(o) && o[i])
	}
	return out
}

func (s cardSet) pick(cards []Card) []Card {
	var out []Card
	for i, in := range s {
		if in {
			out = append(out, cards[i])
		}
	}
	return out
}

type classifier struct {
	cards  []Card
	relax  Relaxations
	groups [][]int // rank groups, largest first then highest rank
}

// Classify finds the highest category the selection satisfies under relax.
// Face-down cards are removed before any predicate runs. Stone cards never
// take part in matching but are always credited.
func Classify(selection []Card, relax Relaxations) (Match, error) {
	if len(selection) > MaxSelection {
		return Match{}, &ClassificationError{Selected: len(selection), Err: ErrTooManyCards}
	}
	visible := visibleCards(selection)
	if len(visible) == 0 {
		return Match{}, &ClassificationError{Selected: len(selection), Err: ErrNoCards}
	}

	cl := &classifier{cards: visible, relax: relax}
	cl.groupRanks()

	results := make(map[Category]cardSet, numCategories)
	found := func(c Category, set cardSet) {
		if set != nil {
			results[c] = set
		}
	}

	flush := cl.flush()
	straight, aceHigh := cl.straight()
	five := cl.ofAKind(5)
	four := cl.ofAKind(4)
	three := cl.ofAKind(3)
	pair := cl.ofAKind(2)
	twoPair := cl.twoGroups(2, 2)
	fullHouse := cl.twoGroups(3, 2)

	found(HighCard, cl.highCard())
	found(Pair, pair)
	found(TwoPair, twoPair)
	found(ThreeOfAKind, three)
	found(Straight, straight)
	found(Flush, flush)
	found(FullHouse, fullHouse)
	found(FourOfAKind, four)
	if straight != nil && flush != nil {
		found(StraightFlush, straight.union(flush))
		if aceHigh {
			found(RoyalFlush, straight.union(flush))
		}
	}
	found(FiveOfAKind, five)
	if fullHouse != nil && flush != nil {
		found(FlushHouse, fullHouse.union(flush))
	}
	if five != nil && flush != nil {
		found(FlushFive, five.union(flush))
	}

	m := Match{Category: HighCard, Visible: visible}
	for c := range results {
		m.contains |= 1 << uint(c)
		if c > m.Category {
			m.Category = c
		}
	}
	matched := results[m.Category]
	m.Matched = matched.pick(visible)

	credited := make(cardSet, len(visible))
	for i, c := range visible {
		credited[i] = relax.AllCardsScore || matched[i] || !c.HasRank()
	}
	m.Scoring = credited.pick(visible)
	return m, nil
}

func (cl *classifier) empty() cardSet {
	return make(cardSet, len(cl.cards))
}

func (cl *classifier) groupRanks() {
	byRank := make(map[Rank][]int)
	for i, c := range cl.cards {
		if c.HasRank() {
			byRank[c.Rank] = append(byRank[c.Rank], i)
		}
	}
	for _, idx := range byRank {
		cl.groups = append(cl.groups, idx)
	}
	slices.SortFunc(cl.groups, func(a, b []int) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return int(cl.cards[b[0]].Rank) - int(cl.cards[a[0]].Rank)
	})
}

func (cl *classifier) highCard() cardSet {
	best := -1
	for i, c := range cl.cards {
		if c.HasRank() && (best < 0 || c.Rank > cl.cards[best].Rank) {
			best = i
		}
	}
	set := cl.empty()
	if best >= 0 {
		set[best] = true
	}
	return set
}

// ofAKind returns the largest rank group with at least n cards.
func (cl *classifier) ofAKind(n int) cardSet {
	if len(cl.groups) == 0 || len(cl.groups[0]) < n {
		return nil
	}
	set := cl.empty()
	for _, i := range cl.groups[0] {
		set[i] = true
	}
	return set
}

// twoGroups finds two distinct rank groups of at least a and b cards.
func (cl *classifier) twoGroups(a, b int) cardSet {
	if len(cl.groups) < 2 || len(cl.groups[0]) < a || len(cl.groups[1]) < b {
		return nil
	}
	set := cl.empty()
	for _, g := range cl.groups[:2] {
		for _, i := range g {
			set[i] = true
		}
	}
	return set
}

func (cl *classifier) minFlush() int {
	if cl.relax.FourCardFlush {
		return 4
	}
	return 5
}

func (cl *classifier) minStraight() int {
	if cl.relax.FourCardStraight {
		return 4
	}
	return 5
}

// flush returns the largest same-suit set of at least the minimum size.
// Wild cards join every suit; smeared suits merge the two colours.
func (cl *classifier) flush() cardSet {
	var best cardSet
	bestCount := 0
	for _, s := range Suits {
		set := cl.empty()
		count := 0
		for i, c := range cl.cards {
			if c.MatchesSuit(s, cl.relax.SmearedSuits) {
				set[i] = true
				count++
			}
		}
		if count >= cl.minFlush() && count > bestCount {
			best, bestCount = set, count
		}
	}
	return best
}

// straight returns the longest run of ranks, preferring the highest top card,
// and whether that run ends on an ace. Aces count high or low but a run never
// wraps. Under gap straights the run may contain one step of two ranks.
func (cl *classifier) straight() (cardSet, bool) {
	first := make(map[int]int) // rank value -> first index holding it
	for i, c := range cl.cards {
		if !c.HasRank() {
			continue
		}
		v := int(c.Rank)
		if _, ok := first[v]; !ok {
			first[v] = i
		}
		if c.Rank == RankAce {
			if _, ok := first[1]; !ok {
				first[1] = i
			}
		}
	}
	values := make([]int, 0, len(first))
	for v := range first {
		values = append(values, v)
	}
	slices.Sort(values)

	bestStart, bestEnd := -1, -1
	for start := range values {
		end := start
		gapUsed := false
		for end+1 < len(values) {
			step := values[end+1] - values[end]
			if step == 1 {
				end++
			} else if step == 2 && cl.relax.GapStraights && !gapUsed {
				gapUsed = true
				end++
			} else {
				break
			}
		}
		length := end - start + 1
		if length < cl.minStraight() {
			continue
		}
		bestLen := bestEnd - bestStart + 1
		if bestStart < 0 || length > bestLen || (length == bestLen && values[end] > values[bestEnd]) {
			bestStart, bestEnd = start, end
		}
	}
	if bestStart < 0 {
		return nil, false
	}

	set := cl.empty()
	for _, v := range values[bestStart : bestEnd+1] {
		set[first[v]] = true
	}
	return set, values[bestEnd] == int(RankAce)
}
