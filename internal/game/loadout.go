package game

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/peterkuimelis/chipsmult/internal/log"
	"gopkg.in/yaml.v3"
)

// LoadoutFile represents the top-level YAML structure.
type LoadoutFile struct {
	Loadouts []Loadout `yaml:"loadouts"`
}

// Loadout is a named starting configuration: agents, boss, category levels
// and the parts of the game state hooks read.
type Loadout struct {
	Name     string         `yaml:"name"`
	Boss     string         `yaml:"boss"`
	Money    int            `yaml:"money"`
	Hands    int            `yaml:"hands"`
	Discards *int           `yaml:"discards"`
	Agents   []string       `yaml:"agents"`
	Levels   map[string]int `yaml:"levels"`
	Held     []string       `yaml:"held"`
}

// ParseLoadouts parses YAML loadout data.
func ParseLoadouts(data []byte) (LoadoutFile, error) {
	var lf LoadoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return LoadoutFile{}, fmt.Errorf("parse loadout YAML: %w", err)
	}
	for _, l := range lf.Loadouts {
		if err := l.Validate(); err != nil {
			return LoadoutFile{}, err
		}
	}
	return lf, nil
}

// ParseLoadoutFile parses a YAML loadout file and returns a map of loadout
// name → loadout.
func ParseLoadoutFile(path string) (map[string]Loadout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lf, err := ParseLoadouts(data)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Loadout, len(lf.Loadouts))
	for _, l := range lf.Loadouts {
		out[l.Name] = l
	}
	return out, nil
}

// LoadoutByNumber returns the Nth loadout (1-indexed) from the file.
func LoadoutByNumber(path string, n int) (Loadout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loadout{}, err
	}
	lf, err := ParseLoadouts(data)
	if err != nil {
		return Loadout{}, err
	}
	if n < 1 || n > len(lf.Loadouts) {
		return Loadout{}, fmt.Errorf("loadout %d not found (have %d loadouts)", n, len(lf.Loadouts))
	}
	return lf.Loadouts[n-1], nil
}

// Validate checks every name in the loadout against the catalogs so that
// Build cannot hit a catalog panic.
func (l Loadout) Validate() error {
	if _, err := LookupBoss(l.Boss); err != nil {
		return fmt.Errorf("loadout %q: %w", l.Name, err)
	}
	for _, name := range l.Agents {
		if !HasAgent(name) {
			return fmt.Errorf("loadout %q: unknown agent %q", l.Name, name)
		}
	}
	for name, lvl := range l.Levels {
		if _, err := ParseCategory(name); err != nil {
			return fmt.Errorf("loadout %q: %w", l.Name, err)
		}
		if lvl < 1 {
			return fmt.Errorf("loadout %q: level for %s must be at least 1", l.Name, name)
		}
	}
	for _, s := range l.Held {
		if _, err := ParseCard(s); err != nil {
			return fmt.Errorf("loadout %q: %w", l.Name, err)
		}
	}
	return nil
}

// Build creates an evaluator and a fresh state from the loadout. Held cards
// are dealt under the boss's face-down rules; chance-based rules need a
// random source, see BuildWithRand.
func (l Loadout) Build(logger log.EventLogger) (*Evaluator, *State, error) {
	return l.BuildWithRand(logger, nil)
}

// BuildWithRand is Build with the random source used to deal held cards.
func (l Loadout) BuildWithRand(logger log.EventLogger, rng *rand.Rand) (*Evaluator, *State, error) {
	if err := l.Validate(); err != nil {
		return nil, nil, err
	}
	ev := NewEvaluator(logger)
	ev.Boss, _ = LookupBoss(l.Boss)

	for _, name := range l.Agents {
		if _, err := ev.AddAgent(name); err != nil {
			return nil, nil, fmt.Errorf("loadout %q: %w", l.Name, err)
		}
	}
	for name, lvl := range l.Levels {
		cat, _ := ParseCategory(name)
		ev.Levels.Set(cat, lvl)
	}

	st := NewState()
	st.Money = l.Money
	hands, discards := DefaultHands, DefaultDiscards
	if l.Hands > 0 {
		hands = l.Hands
	}
	if l.Discards != nil {
		discards = *l.Discards
	}
	st.StartBlind(ev.Boss, hands, discards)
	st.Round = 1

	// held cards get IDs after any selection (1..5)
	var held []Card
	for i, s := range l.Held {
		c, _ := ParseCard(s)
		c.ID = 100 + i
		held = append(held, c)
	}
	st.Held = ev.Boss.DealVisibility(held, rng)
	return ev, st, nil
}
