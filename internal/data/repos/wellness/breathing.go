package wellness

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type BreathingRepo interface {
	Create(dbc dbctx.Context, session *types.BreathingSession) (*types.BreathingSession, error)
	CountCompleted(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	CountCompletedSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) (int64, error)
	// FavoriteTechnique returns the technique with the most completed
	// sessions, or "" when the user has none.
	FavoriteTechnique(dbc dbctx.Context, userID uuid.UUID) (string, error)
}

type breathingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBreathingRepo(db *gorm.DB, baseLog *logger.Logger) BreathingRepo {
	repoLog := baseLog.With("repo", "BreathingRepo")
	return &breathingRepo{db: db, log: repoLog}
}

func (br *breathingRepo) Create(dbc dbctx.Context, session *types.BreathingSession) (*types.BreathingSession, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(session).Error; err != nil {
		return nil, err
	}

	return session, nil
}

func (br *breathingRepo) CountCompleted(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.BreathingSession{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (br *breathingRepo) CountCompletedSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.BreathingSession{}).
		Where("user_id = ? AND completed = ? AND created_at >= ?", userID, true, since).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (br *breathingRepo) FavoriteTechnique(dbc dbctx.Context, userID uuid.UUID) (string, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}

	var technique string
	err := transaction.WithContext(dbc.Ctx).
		Model(&types.BreathingSession{}).
		Select("technique").
		Where("user_id = ? AND completed = ?", userID, true).
		Group("technique").
		Order("COUNT(*) DESC").
		Limit(1).
		Scan(&technique).Error
	if err != nil {
		return "", err
	}

	return technique, nil
}
