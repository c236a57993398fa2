package catalog

import (
	"encoding/json"
	"testing"

	"github.com/bloomwell/bloom-backend/internal/domain/missions"
)

func TestLoad(t *testing.T) {
	defs, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(defs) != 32 {
		t.Fatalf("Load: got %d definitions, want 32", len(defs))
	}

	categories := map[missions.Category]int{}
	ids := map[string]bool{}
	for _, d := range defs {
		if ids[d.ID] {
			t.Fatalf("duplicate id %q", d.ID)
		}
		ids[d.ID] = true
		categories[d.Category]++

		if d.XPReward <= 0 {
			t.Errorf("%s: non-positive xp_reward %d", d.ID, d.XPReward)
		}
		if d.MinLevel < 1 {
			t.Errorf("%s: min_level %d below 1", d.ID, d.MinLevel)
		}
		if d.EstimatedMinutes <= 0 {
			t.Errorf("%s: non-positive estimated_minutes", d.ID)
		}

		var tips []string
		if err := json.Unmarshal(d.Tips, &tips); err != nil {
			t.Errorf("%s: tips not a JSON string array: %v", d.ID, err)
		}
	}

	if len(categories) != 8 {
		t.Fatalf("got %d categories, want 8", len(categories))
	}
	for cat, n := range categories {
		if n != 4 {
			t.Errorf("category %s has %d missions, want 4", cat, n)
		}
	}

	// Every category must have at least one level-1 mission so new users
	// can always draw a diverse set.
	levelOne := map[missions.Category]bool{}
	for _, d := range defs {
		if d.MinLevel == 1 {
			levelOne[d.Category] = true
		}
	}
	for cat := range categories {
		if !levelOne[cat] {
			t.Errorf("category %s has no level-1 mission", cat)
		}
	}
}
