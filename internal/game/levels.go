package game

import "fmt"

// LevelTable holds the current level of every category for a run.
type LevelTable struct {
	levels [numCategories]Level
}

// NewLevelTable returns a table with every category at level 1.
func NewLevelTable() *LevelTable {
	t := &LevelTable{}
	for _, c := range Categories {
		t.levels[c] = baseLevel(c)
	}
	return t
}

func (t *LevelTable) mustIndex(c Category) int {
	if !c.Valid() {
		panic(fmt.Sprintf("invariant violation: level lookup for unknown category %d", int(c)))
	}
	return int(c)
}

// Get returns the current level of c. It panics if c is not a defined
// category.
func (t *LevelTable) Get(c Category) Level {
	return t.levels[t.mustIndex(c)]
}

// Upgrade raises c by one level and returns the new level.
func (t *LevelTable) Upgrade(c Category) Level {
	i := t.mustIndex(c)
	l := t.levels[i]
	chips, mult := upgradeDelta(l.Level)
	t.levels[i] = Level{Level: l.Level + 1, Chips: l.Chips + chips, Mult: l.Mult + mult}
	return t.levels[i]
}

// UpgradeBy applies n upgrades in sequence.
func (t *LevelTable) UpgradeBy(c Category, n int) Level {
	l := t.Get(c)
	for i := 0; i < n; i++ {
		l = t.Upgrade(c)
	}
	return l
}

// Downgrade lowers c by one level, reversing the delta that produced the
// current level. Level 1 is a floor.
func (t *LevelTable) Downgrade(c Category) Level {
	i := t.mustIndex(c)
	l := t.levels[i]
	if l.Level <= 1 {
		return l
	}
	chips, mult := upgradeDelta(l.Level - 1)
	t.levels[i] = Level{
		Level: l.Level - 1,
		Chips: max(l.Chips-chips, 0),
		Mult:  max(l.Mult-mult, 0),
	}
	return t.levels[i]
}

// Set overwrites the level of c. Used when restoring a loadout.
func (t *LevelTable) Set(c Category, level int) Level {
	i := t.mustIndex(c)
	t.levels[i] = baseLevel(c)
	return t.UpgradeBy(c, level-1)
}

// Snapshot returns a copy of every category's level keyed by category.
func (t *LevelTable) Snapshot() map[Category]Level {
	out := make(map[Category]Level, numCategories)
	for _, c := range Categories {
		out[c] = t.levels[c]
	}
	return out
}
