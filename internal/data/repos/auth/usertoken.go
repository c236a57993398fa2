package auth

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type UserTokenRepo interface {
	Create(dbc dbctx.Context, token *types.UserToken) (*types.UserToken, error)
	GetByAccessToken(dbc dbctx.Context, accessToken string) (*types.UserToken, error)
	GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error)
	SoftDeleteByID(dbc dbctx.Context, tokenID uuid.UUID) error
	SoftDeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	repoLog := baseLog.With("repo", "UserTokenRepo")
	return &userTokenRepo{db: db, log: repoLog}
}

func (utr *userTokenRepo) Create(dbc dbctx.Context, token *types.UserToken) (*types.UserToken, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = utr.db
	}

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(token).Error; err != nil {
		return nil, err
	}

	return token, nil
}

func (utr *userTokenRepo) GetByAccessToken(dbc dbctx.Context, accessToken string) (*types.UserToken, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = utr.db
	}

	var result types.UserToken
	if err := transaction.WithContext(dbc.Ctx).
		Where("access_token = ?", accessToken).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (utr *userTokenRepo) GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = utr.db
	}

	var result types.UserToken
	if err := transaction.WithContext(dbc.Ctx).
		Where("refresh_token = ?", refreshToken).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (utr *userTokenRepo) SoftDeleteByID(dbc dbctx.Context, tokenID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = utr.db
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", tokenID).
		Delete(&types.UserToken{}).Error
}

func (utr *userTokenRepo) SoftDeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = utr.db
	}

	return transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserToken{}).Error
}
