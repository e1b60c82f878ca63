// Package auth provides the session login subsystem: a SQLite-backed user
// store with bcrypt password hashing and cookie-session HTTP handlers.
package auth
