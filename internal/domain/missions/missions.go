// Package missions holds the persistent records of the daily mission
// engine: the immutable mission catalog, the per-day committed selection,
// the completion ledger, and the per-user progression aggregate.
package missions

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryMindfulness Category = "mindfulness"
	CategoryGratitude   Category = "gratitude"
	CategoryMovement    Category = "movement"
	CategorySocial      Category = "social"
	CategorySelfcare    Category = "selfcare"
	CategoryCreativity  Category = "creativity"
	CategoryNature      Category = "nature"
	CategoryLearning    Category = "learning"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DayOf is the canonical calendar-date key for an instant: the UTC date
// component, formatted YYYY-MM-DD. All per-day uniqueness in this package
// is keyed on it.
func DayOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Definition is one immutable catalog row. Rows are seeded once at startup
// and never mutated or deleted while referenced.
type Definition struct {
	ID               string         `gorm:"primaryKey;column:id" json:"id"`
	Title            string         `gorm:"not null;column:title" json:"title"`
	Description      string         `gorm:"not null;column:description" json:"description"`
	Category         Category       `gorm:"not null;index;column:category" json:"category"`
	Difficulty       Difficulty     `gorm:"not null;column:difficulty" json:"difficulty"`
	XPReward         int            `gorm:"not null;column:xp_reward" json:"xp_reward"`
	MinLevel         int            `gorm:"not null;default:1;index;column:min_level" json:"min_level"`
	Icon             string         `gorm:"column:icon" json:"icon"`
	Tips             datatypes.JSON `gorm:"column:tips" json:"tips,omitempty"`
	EstimatedMinutes int            `gorm:"not null;column:estimated_minutes" json:"estimated_minutes"`
	CreatedAt        time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Definition) TableName() string { return "mission_definition" }

// DailySelection is the committed set of mission ids chosen for one
// (user, day) pair. At most one row per pair; immutable once created.
type DailySelection struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"not null;uniqueIndex:ux_daily_selection_user_day,priority:1" json:"user_id"`
	Day        string         `gorm:"type:varchar(10);not null;uniqueIndex:ux_daily_selection_user_day,priority:2;column:day" json:"day"`
	MissionIDs datatypes.JSON `gorm:"not null;column:mission_ids" json:"mission_ids"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (DailySelection) TableName() string { return "daily_selection" }

func (s *DailySelection) DecodeMissionIDs() ([]string, error) {
	var ids []string
	if err := json.Unmarshal(s.MissionIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func EncodeMissionIDs(ids []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Completion is the ledger fact that a user completed a mission on a day.
// The composite unique index is what makes completion exactly-once; the
// XP amount is captured at completion time and never recomputed.
type Completion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"not null;uniqueIndex:ux_completion_user_mission_day,priority:1" json:"user_id"`
	MissionID   string    `gorm:"not null;uniqueIndex:ux_completion_user_mission_day,priority:2;column:mission_id" json:"mission_id"`
	Day         string    `gorm:"type:varchar(10);not null;uniqueIndex:ux_completion_user_mission_day,priority:3;column:day" json:"day"`
	XPEarned    int       `gorm:"not null;column:xp_earned" json:"xp_earned"`
	CompletedAt time.Time `gorm:"not null;column:completed_at" json:"completed_at"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Completion) TableName() string { return "mission_completion" }

// Progression is the single mutable aggregate: a user's lifetime
// experience total and the cached level derived from it. Mutated only by
// the progression repo's atomic increment.
type Progression struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalXP      int       `gorm:"not null;default:0;column:total_xp" json:"total_xp"`
	CurrentLevel int       `gorm:"not null;default:1;column:current_level" json:"current_level"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Progression) TableName() string { return "user_progression" }
