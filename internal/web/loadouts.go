package web

import (
	"fmt"
	"os"

	"github.com/peterkuimelis/chipsmult/internal/game"
)

// LoadoutInfo is the JSON representation of a loadout for /api/loadouts.
type LoadoutInfo struct {
	Number int            `json:"number"`
	Name   string         `json:"name"`
	Boss   string         `json:"boss,omitempty"`
	Agents []string       `json:"agents"`
	Levels map[string]int `json:"levels,omitempty"`
}

func readLoadouts(path string) ([]game.Loadout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lf, err := game.ParseLoadouts(data)
	if err != nil {
		return nil, err
	}
	return lf.Loadouts, nil
}

// loadout returns the Nth loadout (1-indexed), or an empty one for 0.
func (s *Server) loadout(n int) (game.Loadout, error) {
	if n == 0 {
		return game.Loadout{Name: "blank"}, nil
	}
	all, err := readLoadouts(s.loadoutsFile)
	if err != nil {
		return game.Loadout{}, err
	}
	if n < 1 || n > len(all) {
		return game.Loadout{}, fmt.Errorf("loadout %d not found (have %d loadouts)", n, len(all))
	}
	return all[n-1], nil
}
