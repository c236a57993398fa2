package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authrepo "github.com/bloomwell/bloom-backend/internal/data/repos/auth"
	"github.com/bloomwell/bloom-backend/internal/data/repos/users"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/ctxutil"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, name, email, password string) (*types.User, string, string, error)
	LoginUser(ctx context.Context, email, password string) (*types.User, string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      users.UserRepo
	userTokenRepo authrepo.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo users.UserRepo,
	userTokenRepo authrepo.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, name, email, password string) (*types.User, string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if len(name) < 2 {
		return nil, "", "", invalidInput(errors.New("name must have at least 2 characters"))
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", "", invalidInput(errors.New("invalid email"))
	}
	if len(password) < 6 {
		return nil, "", "", invalidInput(errors.New("password must have at least 6 characters"))
	}

	if _, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email); err == nil {
		return nil, "", "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", fmt.Errorf("check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := as.userRepo.Create(dbc, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		accessToken, refreshToken, err = as.issueTokens(dbc, user)
		return err
	}); err != nil {
		return nil, "", "", err
	}

	as.log.Info("user registered", "user_id", user.ID.String())
	return user, accessToken, refreshToken, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("lookup user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		accessToken, refreshToken, err = as.issueTokens(dbc, user)
		return err
	}); err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", ErrInvalidCredentials
	}

	var accessToken, refreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := as.userTokenRepo.GetByRefreshToken(dbc, rd.RefreshToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCredentials
			}
			return fmt.Errorf("lookup refresh token: %w", err)
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if dErr := as.userTokenRepo.SoftDeleteByID(dbc, existing.ID); dErr != nil {
				return fmt.Errorf("delete expired token: %w", dErr)
			}
			return ErrInvalidCredentials
		}

		user, err := as.userRepo.GetByID(dbc, existing.UserID)
		if err != nil {
			return fmt.Errorf("load user for refresh: %w", err)
		}

		accessToken, refreshToken, err = as.issueTokens(dbc, user)
		if err != nil {
			return err
		}
		return as.userTokenRepo.SoftDeleteByID(dbc, existing.ID)
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return ErrInvalidCredentials
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		token, err := as.userTokenRepo.GetByAccessToken(dbc, rd.TokenString)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("lookup access token: %w", err)
		}
		return as.userTokenRepo.SoftDeleteByID(dbc, token.ID)
	})
}

// SetContextFromToken validates the JWT and attaches request data for
// downstream handlers. The token must also still back a live session row.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, errors.New("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}

	userToken, err := as.userTokenRepo.GetByAccessToken(dbctx.Context{Ctx: ctx}, tokenString)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx, errors.New("session revoked")
		}
		return ctx, fmt.Errorf("lookup session: %w", err)
	}

	rd := &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: userToken.RefreshToken,
		UserID:       userID,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokens(dbc dbctx.Context, user *types.User) (string, string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(dbc, userToken); err != nil {
		return "", "", fmt.Errorf("create user token: %w", err)
	}
	return accessToken, refreshToken, nil
}
