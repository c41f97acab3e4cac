package game

import (
	"fmt"
	"sort"
)

// AgentCatalog maps agent names to their constructor functions.
var AgentCatalog = map[string]func() *AgentDef{
	"Joker":            Joker,
	"Greedy Joker":     GreedyJoker,
	"Lusty Joker":      LustyJoker,
	"Wrathful Joker":   WrathfulJoker,
	"Gluttonous Joker": GluttonousJoker,
	"Jolly Joker":      JollyJoker,
	"Zany Joker":       ZanyJoker,
	"Mad Joker":        MadJoker,
	"Crazy Joker":      CrazyJoker,
	"Droll Joker":      DrollJoker,
	"Sly Joker":        SlyJoker,
	"Wily Joker":       WilyJoker,
	"Clever Joker":     CleverJoker,
	"Devious Joker":    DeviousJoker,
	"Crafty Joker":     CraftyJoker,
	"The Duo":          TheDuo,
	"The Trio":         TheTrio,
	"The Family":       TheFamily,
	"The Order":        TheOrder,
	"The Tribe":        TheTribe,
	"Half Joker":       HalfJoker,
	"Banner":           Banner,
	"Mystic Summit":    MysticSummit,
	"Abstract Joker":   AbstractJoker,
	"Supernova":        Supernova,
	"Ride the Bus":     RideTheBus,
	"Green Joker":      GreenJoker,
	"Ice Cream":        IceCream,
	"Loyalty Card":     LoyaltyCard,
	"Cavendish":        Cavendish,
	"Gros Michel":      GrosMichel,
	"Scary Face":       ScaryFace,
	"Smiley Face":      SmileyFace,
	"Even Steven":      EvenSteven,
	"Odd Todd":         OddTodd,
	"Scholar":          Scholar,
	"Fibonacci":        Fibonacci,
	"Walkie Talkie":    WalkieTalkie,
	"Golden Ticket":    GoldenTicket,
	"Business Card":    BusinessCard,
	"Hiker":            Hiker,
	"Raised Fist":      RaisedFist,
	"Baron":            Baron,
	"Card Sharp":       CardSharp,
	"Blueprint":        Blueprint,
	"Brainstorm":       Brainstorm,
	"Four Fingers":     FourFingers,
	"Shortcut":         Shortcut,
	"Smeared Joker":    SmearedJoker,
	"Pareidolia":       Pareidolia,
	"Splash":           Splash,
	"Hack":             Hack,
	"Sock and Buskin":  SockAndBuskin,
	"Dusk":             Dusk,
	"Seltzer":          Seltzer,
	"Popcorn":          Popcorn,
}

// LookupAgent looks up an agent by name and returns a new definition.
// Panics if the agent is not found.
func LookupAgent(name string) *AgentDef {
	ctor, ok := AgentCatalog[name]
	if !ok {
		panic(fmt.Sprintf("agent not found in catalog: %q", name))
	}
	return ctor()
}

// HasAgent reports whether name is in the catalog.
func HasAgent(name string) bool {
	_, ok := AgentCatalog[name]
	return ok
}

// AgentNames returns every catalog name, sorted.
func AgentNames() []string {
	names := make([]string, 0, len(AgentCatalog))
	for name := range AgentCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
