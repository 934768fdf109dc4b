package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
	commonhttp "github.com/AlibekovAA/postboard/internal/common/http"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	"github.com/AlibekovAA/postboard/internal/observability/metrics"
)

// Claims is the caller identity carried by a validated access token.
type Claims struct {
	UserID string
	Email  string
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware rejects requests without a valid bearer token and stores the
// extracted identity in the request context.
func Middleware(secret string, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("jwt auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.HandleError(w, r, commonerrors.ErrMissingAuthorization, log)
				return
			}

			tokenString := strings.TrimPrefix(raw, "Bearer ")
			claims, err := ParseToken(tokenString, secretBytes)
			if err != nil {
				log.Warnf("jwt auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.HandleError(w, r, err, log)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	val := ctx.Value(claimsKey)
	claims, ok := val.(Claims)
	return claims, ok
}

// ParseToken verifies signature and expiry. An expired token and a
// malformed or tampered one surface as distinct domain errors; both map
// to 401 at the boundary.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, commonerrors.ErrInvalidTokenSigningMethod
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		metrics.JWTValidationsFailed.Inc()
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, commonerrors.ErrTokenExpired.WithCause(err)
		}
		if err == nil {
			return Claims{}, commonerrors.ErrInvalidToken
		}
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["eml"].(string)
	if sub == "" {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}

	return Claims{
		UserID: sub,
		Email:  email,
	}, nil
}
