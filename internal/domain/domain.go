package domain

import (
	"github.com/bloomwell/bloom-backend/internal/domain/auth"
	"github.com/bloomwell/bloom-backend/internal/domain/chat"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
	"github.com/bloomwell/bloom-backend/internal/domain/user"
	"github.com/bloomwell/bloom-backend/internal/domain/wellness"
)

type User = user.User
type UserToken = auth.UserToken

type MissionDefinition = missions.Definition
type DailySelection = missions.DailySelection
type MissionCompletion = missions.Completion
type UserProgression = missions.Progression

type MoodEntry = wellness.MoodEntry
type GratitudeEntry = wellness.GratitudeEntry
type BreathingSession = wellness.BreathingSession
type Reminder = wellness.Reminder

type ChatConversation = chat.Conversation
type ChatMessage = chat.Message
