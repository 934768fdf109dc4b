package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/AlibekovAA/postboard/internal/auth/service"
	"github.com/AlibekovAA/postboard/internal/common/clock"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "generated-id", nil
}

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *mockIDGenerator, *clock.MockClock) {
	t.Helper()

	mockRepo := &mockUserRepo{}
	hasher := &mockHasher{}
	idGenerator := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	issuer := service.NewTokenIssuer(testSecret, idGenerator, 24*time.Hour, mockClock)

	svc := service.NewAuthService(service.AuthServiceDeps{
		Repo:        mockRepo,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Tokens:      issuer,
		Clock:       mockClock,
		Log:         log,
	})

	return svc, mockRepo, hasher, idGenerator, mockClock
}
