package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// EventLogger is the interface for logging scoring events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Reset drops all recorded events. Sequence numbers keep counting.
func (l *MemoryLogger) Reset() {
	l.events = nil
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- ZerologLogger: writes structured JSON events through zerolog ---

type ZerologLogger struct {
	MemoryLogger
	zl zerolog.Logger
}

// NewZerologLogger wraps zl. Events are also kept in memory so callers can
// drain them per evaluation.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

func (l *ZerologLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	entry := l.zl.Debug()
	switch event.Type {
	case EventRejected:
		entry = l.zl.Warn()
	case EventScored, EventCategoryUpgraded, EventAgentAdded, EventAgentRemoved:
		entry = l.zl.Info()
	}
	entry = entry.
		Int("seq", l.seq).
		Int("hand", event.Hand).
		Str("event", event.Type.String())
	if event.Phase != "" {
		entry = entry.Str("phase", event.Phase)
	}
	if event.Card != "" {
		entry = entry.Str("card", event.Card)
	}
	if event.Agent != "" {
		entry = entry.Str("agent", event.Agent)
	}
	entry.Msg(event.Details)
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 13 chars for alignment
	for len(phase) < 13 {
		phase += " "
	}

	return fmt.Sprintf("H%-2d %s| %s", e.Hand, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(hand int, phase string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewClassifiedEvent(hand int, category string, scoring []string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Classifying",
		Type:    EventClassified,
		Details: fmt.Sprintf("Classified as %s (scoring: %s)", category, strings.Join(scoring, " ")),
	}
}

func NewRejectedEvent(hand int, reason string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Classifying",
		Type:    EventRejected,
		Details: fmt.Sprintf("Hand rejected: %s", reason),
	}
}

func NewLevelLookupEvent(hand int, category string, level, chips, mult int) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Accumulating",
		Type:    EventLevelLookup,
		Details: fmt.Sprintf("%s lvl.%d: %d chips × %d mult", category, level, chips, mult),
	}
}

func NewCardScoredEvent(hand int, card string, chips int, mult, factor float64) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Accumulating",
		Type:    EventCardScored,
		Card:    card,
		Details: fmt.Sprintf("%s scores +%d chips, +%g mult, ×%g", card, chips, mult, factor),
	}
}

func NewCardRetriggerEvent(hand int, card string, trigger int) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Accumulating",
		Type:    EventCardRetrigger,
		Card:    card,
		Details: fmt.Sprintf("%s retriggers (trigger %d)", card, trigger),
	}
}

func NewCardDebuffedEvent(hand int, card string, boss string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Accumulating",
		Type:    EventCardDebuffed,
		Card:    card,
		Details: fmt.Sprintf("%s is debuffed by %s", card, boss),
	}
}

func NewHeldCardEvent(hand int, card string, factor float64) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Accumulating",
		Type:    EventHeldCard,
		Card:    card,
		Details: fmt.Sprintf("%s held in hand gives ×%g", card, factor),
	}
}

func NewAgentScoredEvent(hand int, agent string, chips int, mult, factor float64) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Accumulating",
		Type:    EventAgentScored,
		Agent:   agent,
		Details: fmt.Sprintf("%s: %d chips × %g mult × %g", agent, chips, mult, factor),
	}
}

func NewAgentCopiedEvent(hand int, agent, target string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Accumulating",
		Type:    EventAgentCopied,
		Agent:   agent,
		Details: fmt.Sprintf("%s copies %s", agent, target),
	}
}

func NewAgentAddedEvent(hand int, agent string, slot int) GameEvent {
	return GameEvent{
		Hand:    hand,
		Type:    EventAgentAdded,
		Agent:   agent,
		Details: fmt.Sprintf("%s joins agent slot %d", agent, slot+1),
	}
}

func NewAgentRemovedEvent(hand int, agent string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Type:    EventAgentRemoved,
		Agent:   agent,
		Details: fmt.Sprintf("%s is removed", agent),
	}
}

func NewBossTransformEvent(hand int, boss string, details string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Finalizing",
		Type:    EventBossTransform,
		Details: fmt.Sprintf("%s: %s", boss, details),
	}
}

func NewSideEffectEvent(hand int, phase string, details string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   phase,
		Type:    EventSideEffect,
		Details: details,
	}
}

func NewScoredEvent(hand int, category string, chips int, mult, factor float64, score int) GameEvent {
	return GameEvent{
		Hand:    hand,
		Phase:   "Finalizing",
		Type:    EventScored,
		Details: fmt.Sprintf("%s: %d chips × %g mult × %g = %d", category, chips, mult, factor, score),
	}
}

func NewDiscardEvent(hand int, cards []string) GameEvent {
	return GameEvent{
		Hand:    hand,
		Type:    EventDiscard,
		Details: fmt.Sprintf("Discarded %s", strings.Join(cards, " ")),
	}
}

func NewCategoryUpgradedEvent(hand int, category string, level int) GameEvent {
	return GameEvent{
		Hand:    hand,
		Type:    EventCategoryUpgraded,
		Details: fmt.Sprintf("%s upgraded to lvl.%d", category, level),
	}
}
