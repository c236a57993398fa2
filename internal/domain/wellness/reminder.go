package wellness

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReminderType string

const (
	ReminderMood       ReminderType = "mood"
	ReminderWater      ReminderType = "water"
	ReminderBreak      ReminderType = "break"
	ReminderSleep      ReminderType = "sleep"
	ReminderMeditation ReminderType = "meditation"
	ReminderGratitude  ReminderType = "gratitude"
)

// Reminder is a user-configured notification schedule. TimeOfDay is a
// wall-clock HH:MM string interpreted by the client in its own zone;
// Days holds weekday indices 0-6 (Monday to Sunday) as a JSON array.
type Reminder struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"not null;index" json:"user_id"`
	Type      ReminderType   `gorm:"not null;column:type" json:"type"`
	Title     string         `gorm:"not null;column:title" json:"title"`
	TimeOfDay string         `gorm:"type:varchar(5);not null;column:time_of_day" json:"time"`
	Days      datatypes.JSON `gorm:"not null;column:days" json:"days"`
	Enabled   bool           `gorm:"not null;default:true;column:enabled" json:"enabled"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Reminder) TableName() string { return "reminder" }

func EncodeDays(days []int) (datatypes.JSON, error) {
	raw, err := json.Marshal(days)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
