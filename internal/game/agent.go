package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// MaxCopyDepth bounds how many copy hops are followed when an agent copies
// another agent's effect.
const MaxCopyDepth = 1

var ErrAgentSlotsFull = errors.New("no free agent slot")

// TriggerKind identifies a game event an agent can react to.
type TriggerKind int

const (
	TriggerHandPlayed TriggerKind = iota // before the hand is scored
	TriggerHandScored                    // after the hand is scored
	TriggerDiscard
	TriggerRoundEnd
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerHandPlayed:
		return "HandPlayed"
	case TriggerHandScored:
		return "HandScored"
	case TriggerDiscard:
		return "Discard"
	case TriggerRoundEnd:
		return "RoundEnd"
	default:
		return "Unknown"
	}
}

// Trigger is an event delivered to every agent's OnEvent hook.
type Trigger struct {
	Kind  TriggerKind
	Match Match  // HandPlayed, HandScored
	Cards []Card // Discard
}

// HookContext is what an agent hook sees. State is the caller's live state;
// hooks must derive every "current" quantity from it when they run.
type HookContext struct {
	State    *State
	Match    Match
	Relax    Relaxations
	Rng      *rand.Rand
	Registry *Registry

	// Agent owns the effect being run. When a copy is resolved this is the
	// copied agent, so its counters are read.
	Agent *Agent
	// Slot is the registry position of the agent that was invoked.
	Slot int
}

// chance returns true with probability 1/n.
func (hc *HookContext) chance(n int) bool {
	return hc.Rng != nil && hc.Rng.IntN(n) == 0
}

// AgentEffect holds the optional hooks that make up an agent's behavior.
// Nil hooks are skipped.
type AgentEffect struct {
	// Init sets up counters when the agent is acquired.
	Init func(a *Agent)

	// Score runs once per scored hand, after every card has been resolved.
	Score func(hc *HookContext, sc *ScoringContext)

	// OnCardScored runs for every trigger of every credited, non-debuffed card.
	OnCardScored func(hc *HookContext, card Card, sc *ScoringContext)

	// Retriggers returns extra triggers granted to a scored card.
	Retriggers func(hc *HookContext, card Card) int

	// Relax loosens category matching while the agent is active.
	Relax Relaxations

	// OnEvent updates the agent's own counters. It is never copied.
	OnEvent func(hc *HookContext, ev Trigger)

	// CopyTarget returns the registry index whose effect this agent uses,
	// or -1 when there is nothing to copy.
	CopyTarget func(hc *HookContext) int
}

// AgentDef is the static definition of a modifier agent.
type AgentDef struct {
	Name        string
	Description string
	Rarity      Rarity
	Cost        int
	Effect      *AgentEffect
}

func (d *AgentDef) String() string {
	return d.Name
}

// Agent is an acquired agent. Its counters live from acquisition until it is
// removed from the registry.
type Agent struct {
	ID       uuid.UUID
	Def      *AgentDef
	Counters map[string]int
	Expired  bool // set by a hook to request removal after the current event
}

func (a *Agent) String() string {
	return a.Def.Name
}

func (a *Agent) Counter(name string) int {
	return a.Counters[name]
}

func (a *Agent) SetCounter(name string, v int) {
	a.Counters[name] = v
}

// AgentResult records one agent's scoring contribution.
type AgentResult struct {
	Agent  *Agent
	Source *Agent // the agent whose effect ran; differs from Agent when copying
	Chips  int
	Mult   float64
	Factor float64
}

// Registry holds the active agents in acquisition order.
type Registry struct {
	agents   []*Agent
	Capacity int // 0 means unlimited
}

func NewRegistry(capacity int) *Registry {
	return &Registry{Capacity: capacity}
}

// Add acquires a new agent from def and appends it to the registry.
func (r *Registry) Add(def *AgentDef) (*Agent, error) {
	if r.Capacity > 0 && len(r.agents) >= r.Capacity {
		return nil, fmt.Errorf("add %s: %w", def.Name, ErrAgentSlotsFull)
	}
	a := &Agent{ID: uuid.New(), Def: def, Counters: make(map[string]int)}
	if def.Effect != nil && def.Effect.Init != nil {
		def.Effect.Init(a)
	}
	r.agents = append(r.agents, a)
	return a, nil
}

// Remove destroys the agent with the given ID. Its counters are dropped and
// none of its hooks run again.
func (r *Registry) Remove(id uuid.UUID) (*Agent, bool) {
	for i, a := range r.agents {
		if a.ID == id {
			r.agents = append(r.agents[:i:i], r.agents[i+1:]...)
			a.Counters = nil
			return a, true
		}
	}
	return nil, false
}

// Agents returns the active agents in order. The slice must not be modified.
func (r *Registry) Agents() []*Agent {
	return r.agents
}

func (r *Registry) Len() int {
	return len(r.agents)
}

// Find returns the agent with the given ID.
func (r *Registry) Find(id uuid.UUID) (*Agent, bool) {
	for _, a := range r.agents {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Relaxations merges the relaxations of every active agent.
func (r *Registry) Relaxations() Relaxations {
	var out Relaxations
	for _, a := range r.agents {
		if a.Def.Effect != nil {
			out = out.Merge(a.Def.Effect.Relax)
		}
	}
	return out
}

// resolve returns the agent whose effect runs when slot is invoked. Copy
// targets are looked up by index in the live registry; chains stop after
// MaxCopyDepth hops and never return to the invoked agent.
func (r *Registry) resolve(hc HookContext, slot int) *Agent {
	cur := r.agents[slot]
	for depth := 0; ; depth++ {
		eff := cur.Def.Effect
		if eff == nil || eff.CopyTarget == nil {
			return cur
		}
		if depth >= MaxCopyDepth {
			return nil
		}
		hc.Agent = cur
		target := eff.CopyTarget(&hc)
		if target < 0 || target >= len(r.agents) || target == slot {
			return nil
		}
		cur = r.agents[target]
	}
}

func (r *Registry) hookContext(base HookContext, slot int) (HookContext, *Agent) {
	hc := base
	hc.Registry = r
	hc.Slot = slot
	src := r.resolve(hc, slot)
	hc.Agent = src
	return hc, src
}

// Score runs every agent's scoring hook in registration order.
func (r *Registry) Score(base HookContext, sc *ScoringContext) []AgentResult {
	var results []AgentResult
	for slot, a := range r.agents {
		hc, src := r.hookContext(base, slot)
		if src == nil || src.Def.Effect == nil || src.Def.Effect.Score == nil {
			continue
		}
		chips, mult, factor := sc.Chips, sc.Mult, sc.Factor
		src.Def.Effect.Score(&hc, sc)
		res := AgentResult{Agent: a, Source: src, Chips: sc.Chips - chips, Mult: sc.Mult - mult, Factor: 1}
		if factor != 0 {
			res.Factor = sc.Factor / factor
		}
		results = append(results, res)
	}
	return results
}

// CardScored runs every agent's per-card hook for one trigger of card.
func (r *Registry) CardScored(base HookContext, card Card, sc *ScoringContext) {
	for slot := range r.agents {
		hc, src := r.hookContext(base, slot)
		if src == nil || src.Def.Effect == nil || src.Def.Effect.OnCardScored == nil {
			continue
		}
		src.Def.Effect.OnCardScored(&hc, card, sc)
	}
}

// Retriggers sums the extra triggers every agent grants to card.
func (r *Registry) Retriggers(base HookContext, card Card) int {
	n := 0
	for slot := range r.agents {
		hc, src := r.hookContext(base, slot)
		if src == nil || src.Def.Effect == nil || src.Def.Effect.Retriggers == nil {
			continue
		}
		n += src.Def.Effect.Retriggers(&hc, card)
	}
	return n
}

// Notify delivers ev to every agent's own OnEvent hook, then removes agents
// that expired. The removed agents are returned.
func (r *Registry) Notify(base HookContext, ev Trigger) []*Agent {
	for slot, a := range r.agents {
		if a.Def.Effect == nil || a.Def.Effect.OnEvent == nil {
			continue
		}
		hc := base
		hc.Registry = r
		hc.Slot = slot
		hc.Agent = a
		a.Def.Effect.OnEvent(&hc, ev)
	}

	var expired []*Agent
	for _, a := range r.agents {
		if a.Expired {
			expired = append(expired, a)
		}
	}
	for _, a := range expired {
		r.Remove(a.ID)
	}
	return expired
}
