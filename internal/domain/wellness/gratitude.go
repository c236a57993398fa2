package wellness

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxGratitudes caps the list stored per entry.
const MaxGratitudes = 3

// GratitudeEntry is one journal entry per (user, day): up to three
// gratitude items plus an optional reflection. Writing one grants a small
// fixed experience reward through the progression store.
type GratitudeEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"not null;uniqueIndex:ux_gratitude_entry_user_day,priority:1" json:"user_id"`
	Day        string         `gorm:"type:varchar(10);not null;uniqueIndex:ux_gratitude_entry_user_day,priority:2;column:day" json:"day"`
	Gratitudes datatypes.JSON `gorm:"not null;column:gratitudes" json:"gratitudes"`
	Reflection string         `gorm:"column:reflection" json:"reflection,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (GratitudeEntry) TableName() string { return "gratitude_entry" }

func (e *GratitudeEntry) DecodeGratitudes() ([]string, error) {
	var items []string
	if err := json.Unmarshal(e.Gratitudes, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func EncodeGratitudes(items []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
