package repository

import (
	"errors"
	"testing"

	"github.com/propmart/catalog-backend/internal/domain"
)

func TestUserCreateAndFind(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	user := &domain.User{Username: "alice", PasswordHash: "x"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byID, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if byID.Username != "alice" {
		t.Fatalf("unexpected username %q", byID.Username)
	}

	byName, err := repo.FindByUsername("alice")
	if err != nil {
		t.Fatalf("find by username failed: %v", err)
	}
	if byName.ID != user.ID {
		t.Fatalf("lookup mismatch: %d vs %d", byName.ID, user.ID)
	}
}

func TestUserFindMissing(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	if _, err := repo.FindByID(404); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByUsername("nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserDuplicateUsernameRejected(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	if err := repo.Create(&domain.User{Username: "alice", PasswordHash: "x"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(&domain.User{Username: "alice", PasswordHash: "y"}); err == nil {
		t.Fatal("expected unique index violation")
	}
}
