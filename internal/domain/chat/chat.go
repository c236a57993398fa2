// Package chat holds the persisted transcript of the in-app support
// companion. Conversations group messages; messages store both sides of
// the exchange in insertion order.
package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Conversation struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"not null;index" json:"user_id"`
	Title        string         `gorm:"column:title" json:"title"`
	MessageCount int            `gorm:"not null;default:0;column:message_count" json:"message_count"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Conversation) TableName() string { return "chat_conversation" }

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"not null;index" json:"conversation_id"`
	Role           Role      `gorm:"not null;column:role" json:"role"`
	Content        string    `gorm:"not null;column:content" json:"content"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Message) TableName() string { return "chat_message" }
