// Package catalog holds the built-in mission definitions. The catalog
// ships embedded in the binary and is seeded into the database at
// startup; the database rows are the runtime source of truth.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Missions []seedMission `yaml:"missions"`
}

type seedMission struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Category         string   `yaml:"category"`
	Difficulty       string   `yaml:"difficulty"`
	XPReward         int      `yaml:"xp_reward"`
	MinLevel         int      `yaml:"min_level"`
	Icon             string   `yaml:"icon"`
	Tips             []string `yaml:"tips"`
	EstimatedMinutes int      `yaml:"estimated_minutes"`
}

var validCategories = map[missions.Category]bool{
	missions.CategoryMindfulness: true,
	missions.CategoryGratitude:   true,
	missions.CategoryMovement:    true,
	missions.CategorySocial:      true,
	missions.CategorySelfcare:    true,
	missions.CategoryCreativity:  true,
	missions.CategoryNature:      true,
	missions.CategoryLearning:    true,
}

var validDifficulties = map[missions.Difficulty]bool{
	missions.DifficultyEasy:   true,
	missions.DifficultyMedium: true,
	missions.DifficultyHard:   true,
}

// Load parses the embedded seed file into definition rows, validating
// each entry. A malformed seed is a build artifact defect, so errors
// here are fatal to startup.
func Load() ([]*types.MissionDefinition, error) {
	var file seedFile
	if err := yaml.Unmarshal(seedYAML, &file); err != nil {
		return nil, fmt.Errorf("parse mission seed: %w", err)
	}
	if len(file.Missions) == 0 {
		return nil, fmt.Errorf("mission seed is empty")
	}

	seen := make(map[string]bool, len(file.Missions))
	defs := make([]*types.MissionDefinition, 0, len(file.Missions))
	for i, m := range file.Missions {
		if m.ID == "" {
			return nil, fmt.Errorf("mission seed entry %d: missing id", i)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("mission seed: duplicate id %q", m.ID)
		}
		seen[m.ID] = true

		if m.Title == "" || m.Description == "" {
			return nil, fmt.Errorf("mission seed %q: missing title or description", m.ID)
		}
		if !validCategories[missions.Category(m.Category)] {
			return nil, fmt.Errorf("mission seed %q: unknown category %q", m.ID, m.Category)
		}
		if !validDifficulties[missions.Difficulty(m.Difficulty)] {
			return nil, fmt.Errorf("mission seed %q: unknown difficulty %q", m.ID, m.Difficulty)
		}
		if m.XPReward <= 0 {
			return nil, fmt.Errorf("mission seed %q: xp_reward must be positive", m.ID)
		}
		if m.MinLevel < 1 {
			return nil, fmt.Errorf("mission seed %q: min_level must be at least 1", m.ID)
		}

		tips, err := json.Marshal(m.Tips)
		if err != nil {
			return nil, fmt.Errorf("mission seed %q: encode tips: %w", m.ID, err)
		}

		defs = append(defs, &types.MissionDefinition{
			ID:               m.ID,
			Title:            m.Title,
			Description:      m.Description,
			Category:         missions.Category(m.Category),
			Difficulty:       missions.Difficulty(m.Difficulty),
			XPReward:         m.XPReward,
			MinLevel:         m.MinLevel,
			Icon:             m.Icon,
			Tips:             datatypes.JSON(tips),
			EstimatedMinutes: m.EstimatedMinutes,
		})
	}

	return defs, nil
}
