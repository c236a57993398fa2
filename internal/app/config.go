package app

import (
	"time"

	"github.com/bloomwell/bloom-backend/internal/pkg/envutil"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	OpenAIAPIKey string
	OpenAIModel  string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)
	openAIAPIKey := envutil.GetEnv("OPENAI_API_KEY", "", log)
	openAIModel := envutil.GetEnv("OPENAI_MODEL", "gpt-4o-mini", log)

	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		OpenAIAPIKey:    openAIAPIKey,
		OpenAIModel:     openAIModel,
	}
}
