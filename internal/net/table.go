package net

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/peterkuimelis/chipsmult/internal/game"
	"github.com/peterkuimelis/chipsmult/internal/log"
	"github.com/rs/zerolog"
)

// Table is one player's scoring session: an evaluator, its game state and
// the random source every evaluation draws from. It is safe for concurrent
// use; requests are applied one at a time.
type Table struct {
	mu     sync.Mutex
	ev     *game.Evaluator
	st     *game.State
	rng    *rand.Rand
	logger *log.ZerologLogger
}

// NewTable builds a table from a loadout. Events go to zl and are returned
// with each response.
func NewTable(l game.Loadout, zl zerolog.Logger, seed uint64) (*Table, error) {
	logger := log.NewZerologLogger(zl)
	rng := newRand(seed)
	ev, st, err := l.BuildWithRand(logger, rng)
	if err != nil {
		return nil, err
	}
	logger.Reset()
	return &Table{
		ev:     ev,
		st:     st,
		rng:    rng,
		logger: logger,
	}, nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}

// Handle applies one client message and returns the reply. Failures come
// back as "error" messages; Handle itself never fails.
func (t *Table) Handle(msg ClientMessage) ServerMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer t.logger.Reset()

	var (
		resp ServerMessage
		err  error
	)
	switch msg.Type {
	case MsgEvaluate:
		resp, err = t.evaluate(msg.Cards)
	case MsgDiscard:
		err = t.discard(msg.Indices)
	case MsgAddAgent:
		_, err = t.ev.AddAgent(msg.Agent)
	case MsgRemoveAgent:
		err = t.removeAgent(msg.Agent)
	case MsgSetBoss:
		err = t.setBoss(msg.Boss)
	case MsgUpgrade:
		err = t.upgrade(msg.Category, msg.Levels)
	case MsgSetState:
		err = t.setState(msg)
	case MsgEndRound:
		resp.Expired = t.endRound()
	case MsgState:
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		return errorMessage(err, EventViews(t.logger.Events()))
	}
	if resp.Type == "" {
		resp.Type = MsgState
	}
	resp.State = BuildStateView(t.ev, t.st)
	resp.Events = EventViews(t.logger.Events())
	return resp
}

func (t *Table) evaluate(notation string) (ServerMessage, error) {
	cards, err := game.ParseCards(notation)
	if err != nil {
		return ServerMessage{}, err
	}
	deck := slices.Clone(t.st.Deck)
	res, err := t.ev.Evaluate(t.st, t.st.Draw(cards), t.rng)
	if err != nil {
		t.st.Deck = deck
		return ServerMessage{}, err
	}
	return ServerMessage{Type: MsgResult, Result: BuildResultView(res)}, nil
}

func (t *Table) discard(indices []int) error {
	var cards []game.Card
	seen := make(map[int]bool)
	for _, i := range indices {
		if i < 0 || i >= len(t.st.Held) {
			return fmt.Errorf("held card %d out of range (have %d)", i, len(t.st.Held))
		}
		if seen[i] {
			return fmt.Errorf("held card %d selected twice", i)
		}
		seen[i] = true
		cards = append(cards, t.st.Held[i])
	}
	return t.ev.Discard(t.st, cards, t.rng)
}

// removeAgent accepts an agent ID or a 1-based slot number.
func (t *Table) removeAgent(ref string) error {
	agents := t.ev.Agents.Agents()
	var id uuid.UUID
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(agents) {
			return fmt.Errorf("no agent in slot %d", n)
		}
		id = agents[n-1].ID
	} else if id, err = uuid.Parse(ref); err != nil {
		return fmt.Errorf("agent reference %q: %w", ref, err)
	}
	a, ok := t.ev.Agents.Remove(id)
	if !ok {
		return fmt.Errorf("no agent with id %s", id)
	}
	t.logger.Log(log.NewAgentRemovedEvent(t.st.HandsPlayed, a.Def.Name))
	return nil
}

func (t *Table) setBoss(name string) error {
	b, err := game.LookupBoss(name)
	if err != nil {
		return err
	}
	t.ev.Boss = b
	t.st.StartBlind(b, game.DefaultHands, game.DefaultDiscards)
	return nil
}

// MaxUpgradeLevels bounds a single upgrade request.
const MaxUpgradeLevels = 100

func (t *Table) upgrade(category string, n int) error {
	cat, err := game.ParseCategory(category)
	if err != nil {
		return err
	}
	if n == 0 {
		n = 1
	}
	if n < 0 || n > MaxUpgradeLevels {
		return fmt.Errorf("levels must be between 1 and %d, got %d", MaxUpgradeLevels, n)
	}
	t.ev.UpgradeCategory(cat, n)
	return nil
}

func (t *Table) setState(msg ClientMessage) error {
	var held []game.Card
	if msg.Held != nil {
		cards, err := game.ParseCards(*msg.Held)
		if err != nil {
			return err
		}
		for i := range cards {
			cards[i].ID = 100 + i
		}
		held = cards
	}
	if msg.Money != nil {
		t.st.Money = *msg.Money
	}
	if msg.Hands != nil {
		t.st.HandsRemaining = *msg.Hands
	}
	if msg.Discards != nil {
		t.st.DiscardsRemaining = *msg.Discards
	}
	if msg.Held != nil {
		t.st.Held = t.ev.Boss.DealVisibility(held, t.rng)
	}
	if msg.Seed != nil {
		t.rng = newRand(*msg.Seed)
	}
	return nil
}

// endRound closes the round and starts the next one under the same boss.
func (t *Table) endRound() []AgentView {
	expired := t.ev.EndRound(t.st, t.rng)
	t.st.StartBlind(t.ev.Boss, game.DefaultHands, game.DefaultDiscards)
	views := make([]AgentView, len(expired))
	for i, a := range expired {
		views[i] = BuildAgentView(a, 0)
	}
	return views
}

// State returns the current table view.
func (t *Table) State() *StateView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return BuildStateView(t.ev, t.st)
}

func errorMessage(err error, events []EventView) ServerMessage {
	code := CodeBadRequest
	var ce *game.ConstraintError
	switch {
	case errors.Is(err, game.ErrNoCards):
		code = CodeNoCards
	case errors.Is(err, game.ErrTooManyCards):
		code = CodeTooManyCards
	case errors.As(err, &ce):
		code = CodeConstraint
	case errors.Is(err, game.ErrNoDiscardsLeft):
		code = CodeNoDiscards
	}
	return ServerMessage{Type: MsgError, Code: code, Error: err.Error(), Events: events}
}

// --- Views ---

// BuildStateView creates a StateView of st under ev.
func BuildStateView(ev *game.Evaluator, st *game.State) *StateView {
	sv := &StateView{
		Boss:              ev.Boss.String(),
		Money:             st.Money,
		HandsRemaining:    st.HandsRemaining,
		DiscardsRemaining: st.DiscardsRemaining,
		HandSize:          st.HandSize,
		Round:             st.Round,
		HandsPlayed:       st.HandsPlayed,
		Held:              cardStrings(st.Held),
		Agents:            []AgentView{},
	}
	for i, a := range ev.Agents.Agents() {
		sv.Agents = append(sv.Agents, BuildAgentView(a, i+1))
	}
	for _, c := range game.Categories {
		l := ev.Levels.Get(c)
		sv.Levels = append(sv.Levels, LevelView{Category: c.String(), Level: l.Level, Chips: l.Chips, Mult: l.Mult})
	}
	return sv
}

// BuildAgentView describes a in the given 1-based slot (0 when it no
// longer has one).
func BuildAgentView(a *game.Agent, slot int) AgentView {
	return AgentView{
		Slot:        slot,
		ID:          a.ID.String(),
		Name:        a.Def.Name,
		Rarity:      a.Def.Rarity.String(),
		Description: a.Def.Description,
		Counters:    maps.Clone(a.Counters),
	}
}

// BuildResultView flattens a scored hand for the wire.
func BuildResultView(res game.Result) *ResultView {
	rv := &ResultView{
		Category: res.Category.String(),
		Level:    res.Level.Level,
		Scoring:  cardStrings(res.Scoring),
		Debuffed: cardStrings(res.Debuffed),
		Chips:    res.Chips,
		Mult:     res.Mult,
		Factor:   res.Factor,
		Score:    res.Score,
	}
	for _, e := range res.Effects {
		rv.Effects = append(rv.Effects, e.String())
	}
	return rv
}

// EventViews converts logged events for the wire.
func EventViews(events []log.GameEvent) []EventView {
	views := make([]EventView, len(events))
	for i, e := range events {
		views[i] = EventView{
			Seq:     e.Seq,
			Hand:    e.Hand,
			Phase:   e.Phase,
			Type:    e.Type.String(),
			Card:    e.Card,
			Agent:   e.Agent,
			Details: e.Details,
		}
	}
	return views
}

// CatalogAgents lists every agent that can be acquired, by name.
func CatalogAgents() []CatalogAgentView {
	var out []CatalogAgentView
	for _, name := range game.AgentNames() {
		d := game.LookupAgent(name)
		out = append(out, CatalogAgentView{Name: d.Name, Rarity: d.Rarity.String(), Cost: d.Cost, Description: d.Description})
	}
	return out
}

// BossViews lists every boss constraint.
func BossViews() []BossView {
	out := make([]BossView, len(game.Bosses))
	for i, b := range game.Bosses {
		out[i] = BossView{
			Name:            b.String(),
			Description:     b.Description(),
			ScoreMultiplier: b.ScoreRequirementMultiplier(),
			Dealing:         dealingRules(b),
		}
	}
	return out
}

func dealingRules(b game.Boss) []string {
	var rules []string
	if b.LeftmostFaceDown() {
		rules = append(rules, "leftmost card face down")
	}
	if p := b.FaceDownChance(); p > 0 {
		rules = append(rules, fmt.Sprintf("%.0f%% of cards face down", p*100))
	}
	if b.RandomSelection() {
		rules = append(rules, "selection chosen at random")
	}
	if b.FirstDealOneCard() {
		rules = append(rules, "first deal is one card")
	}
	if d := b.HandSizeDelta(); d != 0 {
		rules = append(rules, fmt.Sprintf("hand size %+d", d))
	}
	return rules
}

func cardStrings(cards []game.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// ParseIndices parses space- or comma-separated 0-based indices.
func ParseIndices(s string) ([]int, error) {
	var out []int
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' }) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", f, err)
		}
		out = append(out, n)
	}
	return out, nil
}
