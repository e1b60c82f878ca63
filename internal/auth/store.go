package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// ErrInvalidCredentials is returned when the username/password pair does
// not match a stored user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash keeps Authenticate timing-safe: the bcrypt comparison always
// runs even when the username does not exist.
const dummyHash = "$2b$12$eiUra.fVGQpbFjX3OEMfW.QB9PjShRDkMhiAYzwE8WLlvBCH3h6e2"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);
`

// User is an authenticated account.
type User struct {
	ID       int64
	Username string
}

// Store persists user accounts in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and initializes if needed) the user database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open user database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize user database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser stores a new account with a bcrypt-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, string(hash))
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", username, err)
	}
	return nil
}

// Authenticate verifies a username/password pair. The comparison cost is
// the same whether or not the user exists.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var user User
	var hash string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM users WHERE username = ?",
		username).Scan(&user.ID, &user.Username, &hash)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
