// Package leveling holds the pure experience-to-level math used by the
// progression system: a flat 100 XP per level, level 1 starting at zero,
// and a fixed table of named tiers layered on top of the level number.
package leveling

// ExperiencePerLevel is the flat amount of experience that separates two
// consecutive levels.
const ExperiencePerLevel = 100

// LevelFromExperience maps a cumulative experience total to a level.
// 0..99 XP is level 1, 100..199 is level 2, and so on.
func LevelFromExperience(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/ExperiencePerLevel + 1
}

// ExperienceFloorForLevel is the minimum cumulative experience at which the
// given level is held.
func ExperienceFloorForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return (level - 1) * ExperiencePerLevel
}

// ExperienceCeilingForLevel is the cumulative experience required to reach
// the level after the given one.
func ExperienceCeilingForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * ExperiencePerLevel
}

// ProgressWithinLevel is how far into the current level the total sits,
// always in [0, ExperiencePerLevel).
func ProgressWithinLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp - ExperienceFloorForLevel(LevelFromExperience(xp))
}

// Tier is presentational metadata for a band of levels.
type Tier struct {
	Name        string
	Emoji       string
	Description string
	Key         string
}

type tierBand struct {
	maxLevel int // inclusive; 0 means uncapped
	tier     Tier
}

// Ordered bands; the last entry is uncapped so every level >= 1 maps to
// exactly one tier.
var tierBands = []tierBand{
	{2, Tier{Name: "Seedling", Emoji: "🌱", Description: "Planting the first seeds of self-care", Key: "beginner"}},
	{5, Tier{Name: "Cultivator", Emoji: "🌿", Description: "Nurturing your wellbeing habits", Key: "growth"}},
	{8, Tier{Name: "Blossoming", Emoji: "🌸", Description: "Seeing the fruits of your effort", Key: "flourishing"}},
	{12, Tier{Name: "Rooted", Emoji: "🌳", Description: "Strong and emotionally balanced", Key: "stability"}},
	{16, Tier{Name: "Transformed", Emoji: "🦋", Description: "Evolved and resilient", Key: "transformation"}},
	{20, Tier{Name: "Luminary", Emoji: "✨", Description: "A master of self-care", Key: "mastery"}},
	{0, Tier{Name: "Guardian", Emoji: "🌟", Description: "Inspiring others on the journey", Key: "legendary"}},
}

// TierFor returns the tier band holding the given level.
func TierFor(level int) Tier {
	if level < 1 {
		level = 1
	}
	for _, band := range tierBands {
		if band.maxLevel == 0 || level <= band.maxLevel {
			return band.tier
		}
	}
	return tierBands[len(tierBands)-1].tier
}
