package net

// Message types for the JSON protocol. The same envelopes travel as
// newline-delimited JSON over TCP and as text frames over a websocket.

// Client → server message types.
const (
	MsgEvaluate    = "evaluate"
	MsgDiscard     = "discard"
	MsgAddAgent    = "add_agent"
	MsgRemoveAgent = "remove_agent"
	MsgSetBoss     = "set_boss"
	MsgUpgrade     = "upgrade"
	MsgSetState    = "set_state"
	MsgEndRound    = "end_round"
	MsgState       = "state"
)

// Server → client message types.
const (
	MsgResult = "result"
	MsgError  = "error"
)

// Error codes carried in ServerMessage.Code.
const (
	CodeNoCards      = "no_cards"
	CodeTooManyCards = "too_many_cards"
	CodeConstraint   = "constraint"
	CodeNoDiscards   = "no_discards"
	CodeBadRequest   = "bad_request"
)

// --- Client → Server ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "evaluate": compact card notation, e.g. "7h 7s:glass Kd:down"
	Cards string `json:"cards,omitempty"`

	// For "discard": 0-based positions in the held hand
	Indices []int `json:"indices,omitempty"`

	// For "add_agent" (catalog name) and "remove_agent" (id or 1-based slot)
	Agent string `json:"agent,omitempty"`

	// For "set_boss"
	Boss string `json:"boss,omitempty"`

	// For "upgrade"
	Category string `json:"category,omitempty"`
	Levels   int    `json:"levels,omitempty"`

	// For "set_state"; nil fields are left alone
	Money    *int    `json:"money,omitempty"`
	Hands    *int    `json:"hands,omitempty"`
	Discards *int    `json:"discards,omitempty"`
	Held     *string `json:"held,omitempty"`
	Seed     *uint64 `json:"seed,omitempty"`
}

// --- Server → Client ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	Result  *ResultView `json:"result,omitempty"`
	State   *StateView  `json:"state,omitempty"`
	Events  []EventView `json:"events,omitempty"`
	Expired []AgentView `json:"expired,omitempty"`

	// For "error"
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// EventView is a logged scoring event.
type EventView struct {
	Seq     int    `json:"seq"`
	Hand    int    `json:"hand"`
	Phase   string `json:"phase,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Agent   string `json:"agent,omitempty"`
	Details string `json:"details"`
}

// ResultView is a scored hand.
type ResultView struct {
	Category string   `json:"category"`
	Level    int      `json:"level"`
	Scoring  []string `json:"scoring"`
	Debuffed []string `json:"debuffed,omitempty"`
	Chips    int      `json:"chips"`
	Mult     float64  `json:"mult"`
	Factor   float64  `json:"factor"`
	Score    int      `json:"score"`
	Effects  []string `json:"effects,omitempty"`
}

// StateView is the table as the player sees it.
type StateView struct {
	Boss              string      `json:"boss"`
	Money             int         `json:"money"`
	HandsRemaining    int         `json:"hands_remaining"`
	DiscardsRemaining int         `json:"discards_remaining"`
	HandSize          int         `json:"hand_size"`
	Round             int         `json:"round"`
	HandsPlayed       int         `json:"hands_played"`
	Held              []string    `json:"held,omitempty"`
	Agents            []AgentView `json:"agents"`
	Levels            []LevelView `json:"levels"`
}

// AgentView describes one acquired agent.
type AgentView struct {
	Slot        int            `json:"slot"` // 1-based
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Rarity      string         `json:"rarity"`
	Description string         `json:"description"`
	Counters    map[string]int `json:"counters,omitempty"`
}

// LevelView is one row of the level table.
type LevelView struct {
	Category string `json:"category"`
	Level    int    `json:"level"`
	Chips    int    `json:"chips"`
	Mult     int    `json:"mult"`
}

// BossView describes a boss constraint.
type BossView struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	ScoreMultiplier float64 `json:"score_multiplier"`
	// Dealing lists rules the dealer applies outside scoring.
	Dealing []string `json:"dealing,omitempty"`
}

// CatalogAgentView describes an agent that can be acquired.
type CatalogAgentView struct {
	Name        string `json:"name"`
	Rarity      string `json:"rarity"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}
