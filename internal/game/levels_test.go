package game

import "testing"

func TestLevelTableDefaults(t *testing.T) {
	lt := NewLevelTable()
	tests := []struct {
		cat         Category
		chips, mult int
	}{
		{HighCard, 5, 1},
		{Pair, 10, 2},
		{TwoPair, 20, 2},
		{ThreeOfAKind, 30, 3},
		{Straight, 30, 4},
		{Flush, 35, 4},
		{FullHouse, 40, 4},
		{FourOfAKind, 60, 7},
		{StraightFlush, 100, 8},
		{RoyalFlush, 100, 8},
		{FiveOfAKind, 120, 12},
		{FlushHouse, 140, 14},
		{FlushFive, 160, 16},
	}
	for _, tt := range tests {
		got := lt.Get(tt.cat)
		if got.Level != 1 || got.Chips != tt.chips || got.Mult != tt.mult {
			t.Errorf("%s = %+v, want level 1 %d/%d", tt.cat, got, tt.chips, tt.mult)
		}
	}
}

func TestLevelUpgradeSchedule(t *testing.T) {
	lt := NewLevelTable()
	want := []Level{
		{2, 40, 5},   // +30/+3
		{3, 65, 7},   // +25/+2
		{4, 85, 9},   // +20/+2
		{5, 105, 11}, // +20/+2
	}
	for i, w := range want {
		got := lt.Upgrade(Pair)
		if got != w {
			t.Fatalf("upgrade %d: got %+v, want %+v", i+1, got, w)
		}
	}
	if lt.Get(Flush).Level != 1 {
		t.Error("upgrading Pair must not touch Flush")
	}
}

func TestLevelDowngradeReversesUpgrade(t *testing.T) {
	lt := NewLevelTable()
	base := lt.Get(Straight)
	lt.UpgradeBy(Straight, 3)
	for i := 0; i < 3; i++ {
		lt.Downgrade(Straight)
	}
	if got := lt.Get(Straight); got != base {
		t.Errorf("after 3 up and 3 down: %+v, want %+v", got, base)
	}
	if got := lt.Downgrade(Straight); got != base {
		t.Errorf("downgrade at level 1 must be a no-op, got %+v", got)
	}
}

func TestLevelSet(t *testing.T) {
	lt := NewLevelTable()
	lt.UpgradeBy(Flush, 5)
	got := lt.Set(Flush, 2)
	if got != (Level{2, 65, 7}) {
		t.Errorf("Set(Flush, 2) = %+v", got)
	}
}

func TestLevelUnknownCategoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a category outside the enumeration")
		}
	}()
	NewLevelTable().Get(Category(42))
}

func TestLevelSnapshotIsCopy(t *testing.T) {
	lt := NewLevelTable()
	snap := lt.Snapshot()
	lt.Upgrade(Pair)
	if snap[Pair].Level != 1 {
		t.Error("snapshot changed after upgrade")
	}
	if len(snap) != len(Categories) {
		t.Errorf("snapshot has %d entries, want %d", len(snap), len(Categories))
	}
}
