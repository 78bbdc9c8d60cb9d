package service

import (
	"context"
	"errors"
	"time"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/session"
)

// ErrInvalidCredentials covers every failed login or registration outcome:
// unknown username, wrong password, taken username. Callers get one
// indistinguishable answer.
var ErrInvalidCredentials = errors.New("invalid_credentials")

// SessionCoordinator binds authentication outcomes to session lifecycle. The
// ordering rule it enforces: any session id presented with a login or
// registration attempt is invalidated before the outcome is known, and a
// fresh id is minted only on success. An id from before authentication never
// survives into an authenticated session.
type SessionCoordinator struct {
	Auth     *AuthService
	Sessions session.Store

	// TTL is the inactivity timeout, reported to clients alongside the
	// session cookie.
	TTL time.Duration
}

// Login invalidates priorID, verifies the credentials and creates a session.
// ErrInvalidCredentials carries no detail about which part failed.
func (c *SessionCoordinator) Login(ctx context.Context, priorID string, creds domain.LoginCredentials) (session.Session, domain.User, error) {
	if err := c.dropPrior(ctx, priorID); err != nil {
		return session.Session{}, domain.User{}, err
	}

	user, err := c.Auth.Authenticate(ctx, creds)
	if err != nil {
		return session.Session{}, domain.User{}, err
	}
	if user == nil {
		return session.Session{}, domain.User{}, ErrInvalidCredentials
	}

	sess, err := c.Sessions.Create(ctx, user.ID)
	if err != nil {
		return session.Session{}, domain.User{}, err
	}
	return sess, *user, nil
}

// Register invalidates priorID, creates the account and logs it in. A taken
// username fails exactly like bad credentials.
func (c *SessionCoordinator) Register(ctx context.Context, priorID string, creds domain.RegisterCredentials) (session.Session, domain.User, error) {
	if err := c.dropPrior(ctx, priorID); err != nil {
		return session.Session{}, domain.User{}, err
	}

	user, err := c.Auth.Register(ctx, creds)
	if err != nil {
		return session.Session{}, domain.User{}, err
	}
	if user == nil {
		return session.Session{}, domain.User{}, ErrInvalidCredentials
	}

	sess, err := c.Sessions.Create(ctx, user.ID)
	if err != nil {
		return session.Session{}, domain.User{}, err
	}
	return sess, *user, nil
}

// Logout invalidates the session. Like every authenticated operation it
// reports ErrNoSession when the id is missing, unknown or expired.
func (c *SessionCoordinator) Logout(ctx context.Context, id string) error {
	if id == "" {
		return ErrNoSession
	}
	if _, err := c.Sessions.Get(ctx, id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrNoSession
		}
		return err
	}
	return c.Sessions.Invalidate(ctx, id)
}

// Refresh extends the inactivity timeout and returns the session user.
func (c *SessionCoordinator) Refresh(ctx context.Context, id string) (session.Session, domain.User, error) {
	return c.resolve(ctx, id)
}

// Whoami reports the session user. Like Refresh it counts as activity and
// extends the inactivity timeout.
func (c *SessionCoordinator) Whoami(ctx context.Context, id string) (session.Session, domain.User, error) {
	return c.resolve(ctx, id)
}

// Resolve validates a session id for request authentication. It does not
// extend the timeout.
func (c *SessionCoordinator) Resolve(ctx context.Context, id string) (session.Session, error) {
	if id == "" {
		return session.Session{}, ErrNoSession
	}
	sess, err := c.Sessions.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return session.Session{}, ErrNoSession
	}
	return sess, err
}

func (c *SessionCoordinator) resolve(ctx context.Context, id string) (session.Session, domain.User, error) {
	if id == "" {
		return session.Session{}, domain.User{}, ErrNoSession
	}

	sess, err := c.Sessions.Touch(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return session.Session{}, domain.User{}, ErrNoSession
		}
		return session.Session{}, domain.User{}, err
	}

	user, err := c.Auth.UserByID(ctx, sess.UserID)
	if err != nil {
		return session.Session{}, domain.User{}, err
	}
	return sess, user, nil
}

func (c *SessionCoordinator) dropPrior(ctx context.Context, priorID string) error {
	if priorID == "" {
		return nil
	}
	return c.Sessions.Invalidate(ctx, priorID)
}
