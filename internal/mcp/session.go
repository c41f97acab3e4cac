package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/chipsmult/internal/game"
	chipsnet "github.com/peterkuimelis/chipsmult/internal/net"
	"github.com/rs/zerolog"
)

// Session holds the scoring table of one MCP stdio process.
type Session struct {
	table   *chipsnet.Table
	loadout string
}

var (
	sessMu        sync.Mutex
	activeSession *Session

	// set by main
	loadoutsFile string
	defaultSeed  uint64
	eventLogger  = zerolog.Nop()
)

// SetLoadoutsFile sets the path to the loadouts YAML file.
func SetLoadoutsFile(path string) {
	loadoutsFile = path
}

// SetSeed sets the seed new sessions start from.
func SetSeed(seed uint64) {
	defaultSeed = seed
}

// SetLogger sets where scoring events are written. MCP owns stdout, so this
// must not write there.
func SetLogger(zl zerolog.Logger) {
	eventLogger = zl
}

// NewSession builds a session from the Nth loadout in the loadouts file, or
// from an empty loadout when n is 0.
func NewSession(n int, seed uint64) (*Session, error) {
	l := game.Loadout{Name: "blank"}
	if n > 0 {
		var err error
		l, err = game.LoadoutByNumber(loadoutsFile, n)
		if err != nil {
			return nil, fmt.Errorf("load loadout %d: %w", n, err)
		}
	}
	t, err := chipsnet.NewTable(l, eventLogger, seed)
	if err != nil {
		return nil, err
	}
	return &Session{table: t, loadout: l.Name}, nil
}

// current returns the active session, starting a blank one if needed.
func current() (*Session, error) {
	sessMu.Lock()
	defer sessMu.Unlock()
	if activeSession == nil {
		s, err := NewSession(0, defaultSeed)
		if err != nil {
			return nil, err
		}
		activeSession = s
	}
	return activeSession, nil
}

func replace(s *Session) {
	sessMu.Lock()
	defer sessMu.Unlock()
	activeSession = s
}

// ToolResponse is the JSON envelope returned by the session tools.
type ToolResponse struct {
	Loadout string `json:"loadout"`
	chipsnet.ServerMessage
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
