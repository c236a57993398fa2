// Package wellness holds the journaling records that sit alongside the
// mission engine: mood diary, gratitude journal, breathing sessions, and
// reminder schedules.
package wellness

import (
	"time"

	"github.com/google/uuid"
)

const (
	MoodLevelMin = 1
	MoodLevelMax = 5
)

// MoodEntry is the single diary record for a (user, day) pair. Posting
// again on the same day updates the existing row in place.
type MoodEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"not null;uniqueIndex:ux_mood_entry_user_day,priority:1" json:"user_id"`
	Day         string    `gorm:"type:varchar(10);not null;uniqueIndex:ux_mood_entry_user_day,priority:2;column:day" json:"day"`
	MoodLevel   int       `gorm:"not null;column:mood_level" json:"mood_level"`
	MoodEmoji   string    `gorm:"not null;column:mood_emoji" json:"mood_emoji"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (MoodEntry) TableName() string { return "mood_entry" }
