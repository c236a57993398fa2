package leveling

import "testing"

func TestLevelFromExperience(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{250, 3},
		{2000, 21},
		{-5, 1},
	}
	for _, c := range cases {
		if got := LevelFromExperience(c.xp); got != c.want {
			t.Fatalf("LevelFromExperience(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestExperienceBounds(t *testing.T) {
	if got := ExperienceFloorForLevel(1); got != 0 {
		t.Fatalf("floor(1) = %d, want 0", got)
	}
	if got := ExperienceFloorForLevel(3); got != 200 {
		t.Fatalf("floor(3) = %d, want 200", got)
	}
	if got := ExperienceCeilingForLevel(1); got != 100 {
		t.Fatalf("ceiling(1) = %d, want 100", got)
	}
	if got := ExperienceCeilingForLevel(3); got != 300 {
		t.Fatalf("ceiling(3) = %d, want 300", got)
	}
}

func TestProgressWithinLevelBounded(t *testing.T) {
	for xp := 0; xp <= 2500; xp++ {
		p := ProgressWithinLevel(xp)
		if p < 0 || p >= ExperiencePerLevel {
			t.Fatalf("ProgressWithinLevel(%d) = %d, out of [0,%d)", xp, p, ExperiencePerLevel)
		}
	}
	if got := ProgressWithinLevel(250); got != 50 {
		t.Fatalf("ProgressWithinLevel(250) = %d, want 50", got)
	}
}

func TestTierForTotalAndOrdered(t *testing.T) {
	// Every level maps to exactly one band, and bands only ever move
	// forward as the level grows.
	lastIdx := -1
	idxOf := func(tier Tier) int {
		for i, band := range tierBands {
			if band.tier.Key == tier.Key {
				return i
			}
		}
		return -1
	}
	for level := 1; level <= 60; level++ {
		tier := TierFor(level)
		if tier.Name == "" || tier.Key == "" {
			t.Fatalf("TierFor(%d) returned empty tier", level)
		}
		idx := idxOf(tier)
		if idx < lastIdx {
			t.Fatalf("TierFor(%d) went backwards: %s", level, tier.Key)
		}
		lastIdx = idx
	}
	if TierFor(1).Key != "beginner" {
		t.Fatalf("TierFor(1) = %q, want beginner", TierFor(1).Key)
	}
	if TierFor(2).Key != "beginner" {
		t.Fatalf("TierFor(2) = %q, want beginner", TierFor(2).Key)
	}
	if TierFor(21).Key != "legendary" {
		t.Fatalf("TierFor(21) = %q, want legendary", TierFor(21).Key)
	}
	if TierFor(500).Key != "legendary" {
		t.Fatalf("TierFor(500) = %q, want legendary", TierFor(500).Key)
	}
}
