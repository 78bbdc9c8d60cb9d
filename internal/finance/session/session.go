// Package session tracks authenticated browser sessions. A session is a
// random opaque id mapped to a user id, expiring after a period of
// inactivity.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNotFound reports a session id that is unknown or already expired.
var ErrNotFound = errors.New("session: not found")

// Session is a live session as the backend knows it. ExpiresAt is the
// absolute end of the inactivity window the backend last set.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
}

// Store is the session backend. The redis driver is used in production, the
// memory driver in tests.
type Store interface {
	// Create mints a fresh session for userID with the full inactivity TTL.
	Create(ctx context.Context, userID int64) (Session, error)

	// Get resolves id without extending its lifetime.
	Get(ctx context.Context, id string) (Session, error)

	// Touch resolves id and resets the inactivity TTL.
	Touch(ctx context.Context, id string) (Session, error)

	// Invalidate removes id. Removing an unknown id is not an error.
	Invalidate(ctx context.Context, id string) error
}

// newID returns 32 hex characters of CSPRNG output. Guessing a live id is the
// only way to hijack a session, so the id carries 128 bits of entropy.
func newID() (string, error) {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw[:]), nil
}
