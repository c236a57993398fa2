package users

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, user *types.User) (*types.User, error)
	GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	UpdateName(dbc dbctx.Context, userID uuid.UUID, name string) error
	UpdateProfilePhoto(dbc dbctx.Context, userID uuid.UUID, photo string) error
	SoftDeleteByID(dbc dbctx.Context, userID uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, user *types.User) (*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (ur *userRepo) GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (ur *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	if err := transaction.WithContext(dbc.Ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (ur *userRepo) UpdateName(dbc dbctx.Context, userID uuid.UUID, name string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("name", name).Error
}

func (ur *userRepo) UpdateProfilePhoto(dbc dbctx.Context, userID uuid.UUID, photo string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("profile_photo", photo).Error
}

func (ur *userRepo) SoftDeleteByID(dbc dbctx.Context, userID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", userID).
		Delete(&types.User{}).Error
}
