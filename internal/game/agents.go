package game

import "fmt"

// Counter names used by stateful agents.
const (
	counterMult  = "mult"
	counterChips = "chips"
	counterHands = "hands"
)

// Joker (Common): +4 Mult.
func Joker() *AgentDef {
	return &AgentDef{
		Name:        "Joker",
		Description: "+4 Mult.",
		Rarity:      RarityCommon,
		Cost:        2,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddMult(4)
			},
		},
	}
}

// suitMultAgent builds the four "+3 Mult per scored <suit>" agents.
func suitMultAgent(name string, suit Suit) *AgentDef {
	return &AgentDef{
		Name:        name,
		Description: fmt.Sprintf("Played cards with %s suit give +3 Mult when scored.", suit.Name()),
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			OnCardScored: func(hc *HookContext, card Card, sc *ScoringContext) {
				if card.MatchesSuit(suit, hc.Relax.SmearedSuits) {
					sc.AddMult(3)
				}
			},
		},
	}
}

func GreedyJoker() *AgentDef     { return suitMultAgent("Greedy Joker", SuitDiamond) }
func LustyJoker() *AgentDef      { return suitMultAgent("Lusty Joker", SuitHeart) }
func WrathfulJoker() *AgentDef   { return suitMultAgent("Wrathful Joker", SuitSpade) }
func GluttonousJoker() *AgentDef { return suitMultAgent("Gluttonous Joker", SuitClub) }

// containsAgent builds the agents that pay out when the played hand contains
// a category.
func containsAgent(name string, cat Category, rarity Rarity, cost int, c Contribution) *AgentDef {
	var what string
	switch {
	case c.Factor != 0:
		what = fmt.Sprintf("X%g Mult", c.Factor)
	case c.Chips != 0:
		what = fmt.Sprintf("+%d Chips", c.Chips)
	default:
		what = fmt.Sprintf("+%g Mult", c.Mult)
	}
	return &AgentDef{
		Name:        name,
		Description: fmt.Sprintf("%s if played hand contains a %s.", what, cat),
		Rarity:      rarity,
		Cost:        cost,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				if hc.Match.Contains(cat) {
					sc.apply(c, hc.Agent.Def.Name)
				}
			},
		},
	}
}

func JollyJoker() *AgentDef {
	return containsAgent("Jolly Joker", Pair, RarityCommon, 3, Contribution{Mult: 8})
}
func ZanyJoker() *AgentDef {
	return containsAgent("Zany Joker", ThreeOfAKind, RarityCommon, 4, Contribution{Mult: 12})
}
func MadJoker() *AgentDef {
	return containsAgent("Mad Joker", TwoPair, RarityCommon, 4, Contribution{Mult: 10})
}
func CrazyJoker() *AgentDef {
	return containsAgent("Crazy Joker", Straight, RarityCommon, 4, Contribution{Mult: 12})
}
func DrollJoker() *AgentDef {
	return containsAgent("Droll Joker", Flush, RarityCommon, 4, Contribution{Mult: 10})
}
func SlyJoker() *AgentDef {
	return containsAgent("Sly Joker", Pair, RarityCommon, 3, Contribution{Chips: 50})
}
func WilyJoker() *AgentDef {
	return containsAgent("Wily Joker", ThreeOfAKind, RarityCommon, 4, Contribution{Chips: 100})
}
func CleverJoker() *AgentDef {
	return containsAgent("Clever Joker", TwoPair, RarityCommon, 4, Contribution{Chips: 80})
}
func DeviousJoker() *AgentDef {
	return containsAgent("Devious Joker", Straight, RarityCommon, 4, Contribution{Chips: 100})
}
func CraftyJoker() *AgentDef {
	return containsAgent("Crafty Joker", Flush, RarityCommon, 4, Contribution{Chips: 80})
}
func TheDuo() *AgentDef {
	return containsAgent("The Duo", Pair, RarityRare, 8, Contribution{Factor: 2})
}
func TheTrio() *AgentDef {
	return containsAgent("The Trio", ThreeOfAKind, RarityRare, 8, Contribution{Factor: 3})
}
func TheFamily() *AgentDef {
	return containsAgent("The Family", FourOfAKind, RarityRare, 8, Contribution{Factor: 4})
}
func TheOrder() *AgentDef {
	return containsAgent("The Order", Straight, RarityRare, 8, Contribution{Factor: 3})
}
func TheTribe() *AgentDef {
	return containsAgent("The Tribe", Flush, RarityRare, 8, Contribution{Factor: 2})
}

// HalfJoker (Common): +20 Mult if played hand has 3 or fewer cards.
func HalfJoker() *AgentDef {
	return &AgentDef{
		Name:        "Half Joker",
		Description: "+20 Mult if played hand contains 3 or fewer cards.",
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				if len(hc.Match.Visible) <= 3 {
					sc.AddMult(20)
				}
			},
		},
	}
}

// Banner (Common): +30 Chips for each remaining discard.
func Banner() *AgentDef {
	return &AgentDef{
		Name:        "Banner",
		Description: "+30 Chips for each remaining discard.",
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddChips(30 * hc.State.DiscardsRemaining)
			},
		},
	}
}

// MysticSummit (Common): +15 Mult when 0 discards remaining.
func MysticSummit() *AgentDef {
	return &AgentDef{
		Name:        "Mystic Summit",
		Description: "+15 Mult when 0 discards remaining.",
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				if hc.State.DiscardsRemaining == 0 {
					sc.AddMult(15)
				}
			},
		},
	}
}

// AbstractJoker (Common): +3 Mult for each agent currently held.
func AbstractJoker() *AgentDef {
	return &AgentDef{
		Name:        "Abstract Joker",
		Description: "+3 Mult for each Joker card.",
		Rarity:      RarityCommon,
		Cost:        4,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddMult(float64(3 * hc.Registry.Len()))
			},
		},
	}
}

// Supernova (Common): Adds the number of times the played category has been
// played this run to Mult.
func Supernova() *AgentDef {
	return &AgentDef{
		Name:        "Supernova",
		Description: "Adds the number of times poker hand has been played this run to Mult.",
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddMult(float64(hc.State.PlayCount(hc.Match.Category)))
			},
		},
	}
}

// RideTheBus (Common): +1 Mult per consecutive hand played without a scoring
// face card.
func RideTheBus() *AgentDef {
	return &AgentDef{
		Name:        "Ride the Bus",
		Description: "This Joker gains +1 Mult per consecutive hand played without a scoring face card.",
		Rarity:      RarityCommon,
		Cost:        6,
		Effect: &AgentEffect{
			OnEvent: func(hc *HookContext, ev Trigger) {
				if ev.Kind != TriggerHandPlayed {
					return
				}
				for _, c := range ev.Match.Scoring {
					if c.IsFace(hc.Relax.AllFaces) {
						hc.Agent.SetCounter(counterMult, 0)
						return
					}
				}
				hc.Agent.SetCounter(counterMult, hc.Agent.Counter(counterMult)+1)
			},
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddMult(float64(hc.Agent.Counter(counterMult)))
			},
		},
	}
}

// GreenJoker (Common): +1 Mult per hand played, -1 Mult per discard.
func GreenJoker() *AgentDef {
	return &AgentDef{
		Name:        "Green Joker",
		Description: "+1 Mult per hand played, -1 Mult per discard.",
		Rarity:      RarityCommon,
		Cost:        4,
		Effect: &AgentEffect{
			OnEvent: func(hc *HookContext, ev Trigger) {
				m := hc.Agent.Counter(counterMult)
				switch ev.Kind {
				case TriggerHandPlayed:
					m++
				case TriggerDiscard:
					m = max(m-1, 0)
				}
				hc.Agent.SetCounter(counterMult, m)
			},
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddMult(float64(hc.Agent.Counter(counterMult)))
			},
		},
	}
}

// IceCream (Common): +100 Chips, -5 Chips for every hand played. Melts at 0.
func IceCream() *AgentDef {
	return &AgentDef{
		Name:        "Ice Cream",
		Description: "+100 Chips. -5 Chips for every hand played.",
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			Init: func(a *Agent) {
				a.SetCounter(counterChips, 100)
			},
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddChips(hc.Agent.Counter(counterChips))
			},
			OnEvent: func(hc *HookContext, ev Trigger) {
				if ev.Kind != TriggerHandScored {
					return
				}
				chips := hc.Agent.Counter(counterChips) - 5
				hc.Agent.SetCounter(counterChips, max(chips, 0))
				if chips <= 0 {
					hc.Agent.Expired = true
				}
			},
		},
	}
}

// LoyaltyCard (Uncommon): X4 Mult every 6 hands played.
func LoyaltyCard() *AgentDef {
	return &AgentDef{
		Name:        "Loyalty Card",
		Description: "X4 Mult every 6 hands played.",
		Rarity:      RarityUncommon,
		Cost:        5,
		Effect: &AgentEffect{
			OnEvent: func(hc *HookContext, ev Trigger) {
				if ev.Kind == TriggerHandPlayed {
					hc.Agent.SetCounter(counterHands, hc.Agent.Counter(counterHands)+1)
				}
			},
			Score: func(hc *HookContext, sc *ScoringContext) {
				if n := hc.Agent.Counter(counterHands); n > 0 && n%6 == 0 {
					sc.MulFactor(4)
				}
			},
		},
	}
}

// Cavendish (Common): X3 Mult.
func Cavendish() *AgentDef {
	return &AgentDef{
		Name:        "Cavendish",
		Description: "X3 Mult.",
		Rarity:      RarityCommon,
		Cost:        4,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.MulFactor(3)
			},
		},
	}
}

// GrosMichel (Common): +15 Mult; 1 in 6 chance to be destroyed at end of round.
func GrosMichel() *AgentDef {
	return &AgentDef{
		Name:        "Gros Michel",
		Description: "+15 Mult. 1 in 6 chance this is destroyed at the end of round.",
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddMult(15)
			},
			OnEvent: func(hc *HookContext, ev Trigger) {
				if ev.Kind == TriggerRoundEnd && hc.chance(6) {
					hc.Agent.Expired = true
				}
			},
		},
	}
}

// perCardAgent builds agents that pay out for each scored card passing match.
func perCardAgent(name, desc string, rarity Rarity, cost int, match func(hc *HookContext, c Card) bool, c Contribution) *AgentDef {
	return &AgentDef{
		Name:        name,
		Description: desc,
		Rarity:      rarity,
		Cost:        cost,
		Effect: &AgentEffect{
			OnCardScored: func(hc *HookContext, card Card, sc *ScoringContext) {
				if match(hc, card) {
					sc.apply(c, hc.Agent.Def.Name)
				}
			},
		},
	}
}

func isFace(hc *HookContext, c Card) bool {
	return c.IsFace(hc.Relax.AllFaces)
}

func rankIn(ranks ...Rank) func(*HookContext, Card) bool {
	return func(_ *HookContext, c Card) bool {
		if !c.HasRank() {
			return false
		}
		for _, r := range ranks {
			if c.Rank == r {
				return true
			}
		}
		return false
	}
}

func ScaryFace() *AgentDef {
	return perCardAgent("Scary Face", "Played face cards give +30 Chips when scored.",
		RarityCommon, 4, isFace, Contribution{Chips: 30})
}

func SmileyFace() *AgentDef {
	return perCardAgent("Smiley Face", "Played face cards give +5 Mult when scored.",
		RarityCommon, 4, isFace, Contribution{Mult: 5})
}

func EvenSteven() *AgentDef {
	return perCardAgent("Even Steven", "Played cards with even rank give +4 Mult when scored.",
		RarityCommon, 4, rankIn(RankTwo, RankFour, RankSix, RankEight, RankTen), Contribution{Mult: 4})
}

func OddTodd() *AgentDef {
	return perCardAgent("Odd Todd", "Played cards with odd rank give +31 Chips when scored.",
		RarityCommon, 4, rankIn(RankAce, RankThree, RankFive, RankSeven, RankNine), Contribution{Chips: 31})
}

func Scholar() *AgentDef {
	return perCardAgent("Scholar", "Played Aces give +20 Chips and +4 Mult when scored.",
		RarityCommon, 4, rankIn(RankAce), Contribution{Chips: 20, Mult: 4})
}

func Fibonacci() *AgentDef {
	return perCardAgent("Fibonacci", "Each played Ace, 2, 3, 5, or 8 gives +8 Mult when scored.",
		RarityUncommon, 8, rankIn(RankAce, RankTwo, RankThree, RankFive, RankEight), Contribution{Mult: 8})
}

func WalkieTalkie() *AgentDef {
	return perCardAgent("Walkie Talkie", "Each played 10 or 4 gives +10 Chips and +4 Mult when scored.",
		RarityCommon, 4, rankIn(RankTen, RankFour), Contribution{Chips: 10, Mult: 4})
}

func GoldenTicket() *AgentDef {
	return perCardAgent("Golden Ticket", "Played Gold cards earn $4 when scored.",
		RarityCommon, 5, func(_ *HookContext, c Card) bool { return c.Enhancement == EnhGold }, Contribution{Money: 4})
}

// BusinessCard (Common): Played face cards have a 1 in 2 chance to give $2.
func BusinessCard() *AgentDef {
	return &AgentDef{
		Name:        "Business Card",
		Description: "Played face cards have a 1 in 2 chance to give $2 when scored.",
		Rarity:      RarityCommon,
		Cost:        4,
		Effect: &AgentEffect{
			OnCardScored: func(hc *HookContext, card Card, sc *ScoringContext) {
				if isFace(hc, card) && hc.chance(2) {
					sc.AddMoney(2, hc.Agent.Def.Name)
				}
			},
		},
	}
}

// Hiker (Uncommon): Every played card permanently gains +5 Chips when scored.
func Hiker() *AgentDef {
	return &AgentDef{
		Name:        "Hiker",
		Description: "Every played card permanently gains +5 Chips when scored.",
		Rarity:      RarityUncommon,
		Cost:        5,
		Effect: &AgentEffect{
			OnCardScored: func(hc *HookContext, card Card, sc *ScoringContext) {
				cur := sc.latest(card)
				cur.BonusChips += 5
				sc.Emit(SideEffect{Kind: EffectCardMutated, Card: cur, Source: hc.Agent.Def.Name})
			},
		},
	}
}

// RaisedFist (Common): Adds double the rank of the lowest ranked card held in
// hand to Mult.
func RaisedFist() *AgentDef {
	return &AgentDef{
		Name:        "Raised Fist",
		Description: "Adds double the rank of lowest ranked card held in hand to Mult.",
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				lowest := -1
				for _, c := range hc.State.Held {
					if c.Visible() && c.HasRank() && (lowest < 0 || c.Rank.Chips() < lowest) {
						lowest = c.Rank.Chips()
					}
				}
				if lowest > 0 {
					sc.AddMult(float64(2 * lowest))
				}
			},
		},
	}
}

// Baron (Rare): Each King held in hand gives X1.5 Mult.
func Baron() *AgentDef {
	return &AgentDef{
		Name:        "Baron",
		Description: "Each King held in hand gives X1.5 Mult.",
		Rarity:      RarityRare,
		Cost:        8,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				for _, c := range hc.State.Held {
					if c.Visible() && c.HasRank() && c.Rank == RankKing {
						sc.MulFactor(1.5)
					}
				}
			},
		},
	}
}

// CardSharp (Uncommon): X3 Mult if the played category was already played
// this round.
func CardSharp() *AgentDef {
	return &AgentDef{
		Name:        "Card Sharp",
		Description: "X3 Mult if played poker hand has already been played this round.",
		Rarity:      RarityUncommon,
		Cost:        6,
		Effect: &AgentEffect{
			Score: func(hc *HookContext, sc *ScoringContext) {
				n := 0
				for _, c := range hc.State.RoundCategories {
					if c == hc.Match.Category {
						n++
					}
				}
				// the current hand is already recorded
				if n > 1 {
					sc.MulFactor(3)
				}
			},
		},
	}
}

// --- Copying ---

// Blueprint (Rare): Copies the ability of the agent to the right.
func Blueprint() *AgentDef {
	return &AgentDef{
		Name:        "Blueprint",
		Description: "Copies ability of Joker to the right.",
		Rarity:      RarityRare,
		Cost:        10,
		Effect: &AgentEffect{
			CopyTarget: func(hc *HookContext) int {
				if hc.Slot+1 >= hc.Registry.Len() {
					return -1
				}
				return hc.Slot + 1
			},
		},
	}
}

// Brainstorm (Rare): Copies the ability of the leftmost agent.
func Brainstorm() *AgentDef {
	return &AgentDef{
		Name:        "Brainstorm",
		Description: "Copies the ability of leftmost Joker.",
		Rarity:      RarityRare,
		Cost:        10,
		Effect: &AgentEffect{
			CopyTarget: func(hc *HookContext) int {
				if hc.Registry.Len() == 0 {
					return -1
				}
				return 0
			},
		},
	}
}

// --- Rule relaxations ---

func relaxAgent(name, desc string, rarity Rarity, cost int, r Relaxations) *AgentDef {
	return &AgentDef{
		Name:        name,
		Description: desc,
		Rarity:      rarity,
		Cost:        cost,
		Effect:      &AgentEffect{Relax: r},
	}
}

func FourFingers() *AgentDef {
	return relaxAgent("Four Fingers", "All Flushes and Straights can be made with 4 cards.",
		RarityUncommon, 7, Relaxations{FourCardFlush: true, FourCardStraight: true})
}

func Shortcut() *AgentDef {
	return relaxAgent("Shortcut", "Allows Straights to be made with gaps of 1 rank.",
		RarityUncommon, 7, Relaxations{GapStraights: true})
}

func SmearedJoker() *AgentDef {
	return relaxAgent("Smeared Joker", "Hearts and Diamonds count as the same suit, Spades and Clubs count as the same suit.",
		RarityUncommon, 7, Relaxations{SmearedSuits: true})
}

func Pareidolia() *AgentDef {
	return relaxAgent("Pareidolia", "All cards are considered face cards.",
		RarityUncommon, 5, Relaxations{AllFaces: true})
}

func Splash() *AgentDef {
	return relaxAgent("Splash", "Every played card counts in scoring.",
		RarityCommon, 3, Relaxations{AllCardsScore: true})
}

// --- Retriggers ---

func retriggerAgent(name, desc string, rarity Rarity, cost int, match func(hc *HookContext, c Card) bool) *AgentDef {
	return &AgentDef{
		Name:        name,
		Description: desc,
		Rarity:      rarity,
		Cost:        cost,
		Effect: &AgentEffect{
			Retriggers: func(hc *HookContext, card Card) int {
				if match(hc, card) {
					return 1
				}
				return 0
			},
		},
	}
}

func Hack() *AgentDef {
	return retriggerAgent("Hack", "Retrigger each played 2, 3, 4, or 5.",
		RarityUncommon, 6, rankIn(RankTwo, RankThree, RankFour, RankFive))
}

func SockAndBuskin() *AgentDef {
	return retriggerAgent("Sock and Buskin", "Retrigger all played face cards.",
		RarityUncommon, 6, isFace)
}

// Dusk (Uncommon): Retrigger all played cards in the final hand of the round.
func Dusk() *AgentDef {
	return retriggerAgent("Dusk", "Retrigger all played cards in final hand of round.",
		RarityUncommon, 5, func(hc *HookContext, _ Card) bool {
			return hc.State.HandsRemaining == 0
		})
}

// Seltzer (Uncommon): Retrigger all played cards for the next 10 hands.
func Seltzer() *AgentDef {
	def := retriggerAgent("Seltzer", "Retrigger all cards played for the next 10 hands.",
		RarityUncommon, 6, func(hc *HookContext, _ Card) bool {
			return hc.Agent.Counter(counterHands) > 0
		})
	def.Effect.Init = func(a *Agent) {
		a.SetCounter(counterHands, 10)
	}
	def.Effect.OnEvent = func(hc *HookContext, ev Trigger) {
		if ev.Kind != TriggerHandScored {
			return
		}
		n := hc.Agent.Counter(counterHands) - 1
		hc.Agent.SetCounter(counterHands, n)
		if n <= 0 {
			hc.Agent.Expired = true
		}
	}
	return def
}

// --- Round-scaling ---

// Popcorn (Common): +20 Mult, -4 Mult per round played.
func Popcorn() *AgentDef {
	return &AgentDef{
		Name:        "Popcorn",
		Description: "+20 Mult. -4 Mult per round played.",
		Rarity:      RarityCommon,
		Cost:        5,
		Effect: &AgentEffect{
			Init: func(a *Agent) {
				a.SetCounter(counterMult, 20)
			},
			Score: func(hc *HookContext, sc *ScoringContext) {
				sc.AddMult(float64(hc.Agent.Counter(counterMult)))
			},
			OnEvent: func(hc *HookContext, ev Trigger) {
				if ev.Kind != TriggerRoundEnd {
					return
				}
				m := hc.Agent.Counter(counterMult) - 4
				hc.Agent.SetCounter(counterMult, max(m, 0))
				if m <= 0 {
					hc.Agent.Expired = true
				}
			},
		},
	}
}
