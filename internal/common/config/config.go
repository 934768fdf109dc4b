package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AlibekovAA/postboard/internal/common/constants"
	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
)

var (
	ErrMissingRequiredEnv = commonerrors.ErrMissingRequiredEnv
	ErrInvalidJWTSecret   = commonerrors.ErrInvalidJWTSecret
)

type APIConfig struct {
	HTTPPort       string
	JWTSecret      string
	AccessTokenTTL time.Duration
	BcryptCost     int
	RequestTimeout time.Duration
}

func LoadAPIConfig() (APIConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return APIConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return APIConfig{}, err
	}

	return APIConfig{
		HTTPPort:       getEnv("API_HTTP_PORT", constants.DefaultHTTPPort),
		JWTSecret:      jwtSecret,
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		BcryptCost:     getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost),
		RequestTimeout: getDurationEnv("API_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
