package domain

import (
	"errors"
	"log/slog"
	"time"
)

// MinPasswordLength applies to registration only; existing accounts keep
// whatever they were created with.
const MinPasswordLength = 8

var (
	ErrMissingUsername  = errors.New("domain: username must not be empty")
	ErrMissingPassword  = errors.New("domain: password must not be empty")
	ErrPasswordTooShort = errors.New("domain: password too short")
)

// User is an account record. PasswordHash never leaves the process: it is
// excluded from JSON and from log output.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LogValue keeps the hash out of structured logs even when a User is logged
// as a whole value.
func (u User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("id", u.ID),
		slog.String("username", u.Username),
	)
}

// LoginCredentials are the ephemeral inputs to a login attempt. Only
// non-emptiness is enforced here; everything else is the verifier's job.
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c LoginCredentials) Validate() error {
	if c.Username == "" {
		return ErrMissingUsername
	}
	if c.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// RegisterCredentials additionally enforce the minimum password length at the
// boundary, before any hashing happens.
type RegisterCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c RegisterCredentials) Validate() error {
	if c.Username == "" {
		return ErrMissingUsername
	}
	if len(c.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
