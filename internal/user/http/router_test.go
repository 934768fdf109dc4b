package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	authhttp "github.com/AlibekovAA/postboard/internal/auth/http"
	authservice "github.com/AlibekovAA/postboard/internal/auth/service"
	"github.com/AlibekovAA/postboard/internal/common/clock"
	"github.com/AlibekovAA/postboard/internal/common/config"
	commoncrypto "github.com/AlibekovAA/postboard/internal/common/crypto"
	"github.com/AlibekovAA/postboard/internal/common/jwtverify"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	userhttp "github.com/AlibekovAA/postboard/internal/user/http"
	userrepo "github.com/AlibekovAA/postboard/internal/user/repository"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setupUserHandler(t *testing.T) *http.ServeMux {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	cfg := config.APIConfig{
		JWTSecret:      testSecret,
		AccessTokenTTL: 24 * time.Hour,
		BcryptCost:     bcrypt.MinCost,
		RequestTimeout: 5 * time.Second,
	}

	mockClock := clock.NewMockClock(time.Now())
	idGenerator := commoncrypto.NewUUIDGenerator()
	issuer := authservice.NewTokenIssuer(cfg.JWTSecret, idGenerator, cfg.AccessTokenTTL, mockClock)

	svc := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        userrepo.NewMemoryRepository(),
		Hasher:      commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		IDGenerator: idGenerator,
		Tokens:      issuer,
		Clock:       mockClock,
		Log:         log,
	})

	authMW := jwtverify.Middleware(cfg.JWTSecret, log)

	mux := http.NewServeMux()
	authhttp.NewHandler(svc, cfg, log).Register(mux)
	userhttp.NewHandler(svc, cfg, log).Register(mux, authMW)
	return mux
}

func signup(t *testing.T, mux *http.ServeMux) (token, userID string) {
	t.Helper()

	raw, err := json.Marshal(map[string]string{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "password123",
	})
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode signup response: %v", err)
	}
	return body.Token, body.User.ID
}

func TestMe_Success(t *testing.T) {
	mux := setupUserHandler(t)
	token, userID := signup(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.ID != userID {
		t.Errorf("expected id %s, got %s", userID, body.ID)
	}

	if body.Email != "alice@example.com" || body.Username != "alice" {
		t.Errorf("unexpected profile: %+v", body)
	}
}

func TestMe_RequiresAuth(t *testing.T) {
	mux := setupUserHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMe_RejectsInvalidToken(t *testing.T) {
	mux := setupUserHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMe_MethodNotAllowed(t *testing.T) {
	mux := setupUserHandler(t)
	token, _ := signup(t, mux)

	req := httptest.NewRequest(http.MethodPost, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
