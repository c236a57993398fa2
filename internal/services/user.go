package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bloomwell/bloom-backend/internal/data/repos/users"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

// maxProfilePhotoBytes caps the stored data URL (roughly a 7MB image
// after base64 expansion).
const maxProfilePhotoBytes = 10 * 1024 * 1024

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfilePhoto(ctx context.Context, userID uuid.UUID, photo string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo users.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo users.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (us *userService) UpdateProfilePhoto(ctx context.Context, userID uuid.UUID, photo string) (*types.User, error) {
	if photo == "" {
		return nil, invalidInput(errors.New("photo must not be empty"))
	}
	if !strings.HasPrefix(photo, "data:image/") {
		return nil, invalidInput(errors.New("photo must be a data:image/ URL"))
	}
	if len(photo) > maxProfilePhotoBytes {
		return nil, invalidInput(errors.New("photo too large"))
	}

	dbc := dbctx.Context{Ctx: ctx}
	if err := us.userRepo.UpdateProfilePhoto(dbc, userID, photo); err != nil {
		return nil, fmt.Errorf("update profile photo: %w", err)
	}
	return us.GetByID(ctx, userID)
}
