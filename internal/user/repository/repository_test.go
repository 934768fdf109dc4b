package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AlibekovAA/postboard/internal/user/domain"
	"github.com/AlibekovAA/postboard/internal/user/repository"
)

func testUser(id, email string) domain.User {
	return domain.User{
		ID:           domain.ID(id),
		Email:        email,
		Username:     "testuser",
		PasswordHash: "hashed",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryRepository_Create_Success(t *testing.T) {
	repo := repository.NewMemoryRepository()

	err := repo.Create(context.Background(), testUser("user-1", "alice@example.com"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if repo.Len() != 1 {
		t.Errorf("expected 1 stored user, got %d", repo.Len())
	}
}

func TestMemoryRepository_Create_DuplicateEmail(t *testing.T) {
	repo := repository.NewMemoryRepository()

	if err := repo.Create(context.Background(), testUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	err := repo.Create(context.Background(), testUser("user-2", "alice@example.com"))

	if !errors.Is(err, repository.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}

	if repo.Len() != 1 {
		t.Errorf("expected 1 stored user, got %d", repo.Len())
	}
}

func TestMemoryRepository_Create_ConcurrentSameEmail(t *testing.T) {
	repo := repository.NewMemoryRepository()

	const attempts = 50

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(context.Background(), domain.User{
				ID:           domain.ID(fmt.Sprintf("user-%d", i)),
				Email:        "race@example.com",
				Username:     "racer",
				PasswordHash: "hashed",
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	conflicts := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, repository.ErrEmailAlreadyExists):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}

	if conflicts != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
	}

	if repo.Len() != 1 {
		t.Errorf("expected 1 stored user, got %d", repo.Len())
	}
}

func TestMemoryRepository_FindByEmail(t *testing.T) {
	repo := repository.NewMemoryRepository()

	user := testUser("user-1", "alice@example.com")
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	found, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if found.ID != user.ID {
		t.Errorf("expected id %s, got %s", user.ID, found.ID)
	}

	if found.PasswordHash != user.PasswordHash {
		t.Error("expected stored password hash to round-trip")
	}
}

func TestMemoryRepository_FindByEmail_NotFound(t *testing.T) {
	repo := repository.NewMemoryRepository()

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")

	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryRepository_FindByEmail_CaseSensitive(t *testing.T) {
	repo := repository.NewMemoryRepository()

	if err := repo.Create(context.Background(), testUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := repo.FindByEmail(context.Background(), "Alice@Example.com")

	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for differently cased email, got %v", err)
	}
}

func TestMemoryRepository_FindByID(t *testing.T) {
	repo := repository.NewMemoryRepository()

	user := testUser("user-1", "alice@example.com")
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	found, err := repo.FindByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if found.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, found.Email)
	}
}

func TestMemoryRepository_FindByID_NotFound(t *testing.T) {
	repo := repository.NewMemoryRepository()

	_, err := repo.FindByID(context.Background(), "missing")

	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
