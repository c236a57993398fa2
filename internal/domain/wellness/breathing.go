package wellness

import (
	"time"

	"github.com/google/uuid"
)

type BreathingTechnique string

const (
	TechniqueFourSevenEight BreathingTechnique = "4-7-8"
	TechniqueBox            BreathingTechnique = "box"
	TechniqueDeep           BreathingTechnique = "deep"
)

// BreathingSession records a guided-breathing exercise. Only completed
// sessions earn experience and count toward stats.
type BreathingSession struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID          `gorm:"not null;index" json:"user_id"`
	Technique       BreathingTechnique `gorm:"not null;column:technique" json:"technique"`
	DurationSeconds int                `gorm:"not null;column:duration_seconds" json:"duration_seconds"`
	Completed       bool               `gorm:"not null;column:completed" json:"completed"`
	CreatedAt       time.Time          `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (BreathingSession) TableName() string { return "breathing_session" }
