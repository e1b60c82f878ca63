package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndAuthenticate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, "maria", "s3creto"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user, err := store.Authenticate(ctx, "maria", "s3creto")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Username != "maria" {
		t.Errorf("Expected username 'maria', got %q", user.Username)
	}
	if user.ID == 0 {
		t.Error("Expected non-zero user ID")
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, "maria", "s3creto"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := store.Authenticate(ctx, "maria", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Authenticate(context.Background(), "nobody", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, "maria", "uno"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := store.CreateUser(ctx, "maria", "dos"); err == nil {
		t.Error("Expected error for duplicate username, got nil")
	}
}

func TestCreateUserEmptyFields(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, "", "pass"); err == nil {
		t.Error("Expected error for empty username, got nil")
	}
	if err := store.CreateUser(ctx, "user", ""); err == nil {
		t.Error("Expected error for empty password, got nil")
	}
}
