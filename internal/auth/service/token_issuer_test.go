package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/AlibekovAA/postboard/internal/auth/service"
	"github.com/AlibekovAA/postboard/internal/common/clock"
	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
)

func testUser() userdomain.User {
	return userdomain.User{
		ID:       "user-123",
		Email:    "alice@example.com",
		Username: "alice",
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Now())

	issuer := service.NewTokenIssuer(testSecret, idGen, 24*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if token == "" {
		t.Fatal("expected token to be set")
	}

	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("expected subject user-123, got %s", claims.UserID)
	}

	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
}

func TestTokenIssuer_IssueAccessToken_IDGenerationError(t *testing.T) {
	idGen := &mockIDGenerator{}
	idGen.newIDFunc = func() (string, error) {
		return "", errors.New("id generation failed")
	}
	mockClock := clock.NewMockClock(time.Now())

	issuer := service.NewTokenIssuer(testSecret, idGen, 24*time.Hour, mockClock)

	_, err := issuer.IssueAccessToken(testUser())

	if err == nil {
		t.Fatal("expected error")
	}
}

func TestTokenIssuer_ParseToken_Expired(t *testing.T) {
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Now().Add(-48 * time.Hour))

	issuer := service.NewTokenIssuer(testSecret, idGen, 24*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = issuer.ParseToken(token)

	if err == nil {
		t.Fatal("expected error for expired token")
	}

	if !errors.Is(err, commonerrors.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenIssuer_ParseToken_WrongSecret(t *testing.T) {
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Now())

	issuer1 := service.NewTokenIssuer(testSecret, idGen, 24*time.Hour, mockClock)
	issuer2 := service.NewTokenIssuer("different-secret-key-must-be-at-least-32-bytes", idGen, 24*time.Hour, mockClock)

	token, err := issuer1.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = issuer2.ParseToken(token)

	if err == nil {
		t.Fatal("expected error for wrong secret")
	}

	if !errors.Is(err, commonerrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenIssuer_ParseToken_Tampered(t *testing.T) {
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Now())

	issuer := service.NewTokenIssuer(testSecret, idGen, 24*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"

	_, err = issuer.ParseToken(tampered)

	if err == nil {
		t.Fatal("expected error for tampered token")
	}

	if !errors.Is(err, commonerrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenIssuer_ParseToken_Malformed(t *testing.T) {
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Now())

	issuer := service.NewTokenIssuer(testSecret, idGen, 24*time.Hour, mockClock)

	_, err := issuer.ParseToken("not-a-token")

	if err == nil {
		t.Fatal("expected error for malformed token")
	}

	if !errors.Is(err, commonerrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
