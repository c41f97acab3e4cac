package log

// EventType enumerates all observable scoring events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventClassified
	EventRejected
	EventLevelLookup
	EventCardScored
	EventCardRetrigger
	EventCardDebuffed
	EventHeldCard
	EventAgentScored
	EventAgentCopied
	EventAgentAdded
	EventAgentRemoved
	EventBossTransform
	EventSideEffect
	EventScored
	EventDiscard
	EventCategoryUpgraded
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventClassified:
		return "Classified"
	case EventRejected:
		return "Rejected"
	case EventLevelLookup:
		return "LevelLookup"
	case EventCardScored:
		return "CardScored"
	case EventCardRetrigger:
		return "CardRetrigger"
	case EventCardDebuffed:
		return "CardDebuffed"
	case EventHeldCard:
		return "HeldCard"
	case EventAgentScored:
		return "AgentScored"
	case EventAgentCopied:
		return "AgentCopied"
	case EventAgentAdded:
		return "AgentAdded"
	case EventAgentRemoved:
		return "AgentRemoved"
	case EventBossTransform:
		return "BossTransform"
	case EventSideEffect:
		return "SideEffect"
	case EventScored:
		return "Scored"
	case EventDiscard:
		return "Discard"
	case EventCategoryUpgraded:
		return "CategoryUpgraded"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event during scoring.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Hand    int       // hands played this run when the event fired
	Phase   string    // pipeline phase name (e.g. "Accumulating")
	Type    EventType // event type
	Card    string    // card notation (if applicable)
	Agent   string    // agent name (if applicable)
	Details string    // human-readable detail string
}
