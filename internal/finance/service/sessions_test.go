package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/session"
)

func newCoordinator(ttl time.Duration) (*SessionCoordinator, *session.MemoryStore) {
	sessions := session.NewMemoryStore(ttl)
	return &SessionCoordinator{
		Auth:     newAuthService(),
		Sessions: sessions,
		TTL:      ttl,
	}, sessions
}

func register(t *testing.T, c *SessionCoordinator, username string) session.Session {
	t.Helper()
	sess, user, err := c.Register(context.Background(), "", domain.RegisterCredentials{
		Username: username,
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, username, user.Username)
	require.NotEmpty(t, sess.ID)
	return sess
}

func TestSessionCoordinatorLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	coord, _ := newCoordinator(time.Minute)
	register(t, coord, "alice")

	t.Run("success mints a fresh session", func(t *testing.T) {
		sess, user, err := coord.Login(ctx, "", domain.LoginCredentials{Username: "alice", Password: "correct horse"})
		require.NoError(t, err)
		require.Equal(t, "alice", user.Username)

		resolved, err := coord.Resolve(ctx, sess.ID)
		require.NoError(t, err)
		require.Equal(t, user.ID, resolved.UserID)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, _, err := coord.Login(ctx, "", domain.LoginCredentials{Username: "alice", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = coord.Login(ctx, "", domain.LoginCredentials{Username: "nobody", Password: "whatever"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionCoordinatorFixation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	coord, _ := newCoordinator(time.Minute)
	prior := register(t, coord, "alice")

	t.Run("presented session dies even when login fails", func(t *testing.T) {
		_, _, err := coord.Login(ctx, prior.ID, domain.LoginCredentials{Username: "alice", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = coord.Resolve(ctx, prior.ID)
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("successful login never reuses the presented id", func(t *testing.T) {
		first := register(t, coord, "bob")

		sess, _, err := coord.Login(ctx, first.ID, domain.LoginCredentials{Username: "bob", Password: "correct horse"})
		require.NoError(t, err)
		require.NotEqual(t, first.ID, sess.ID)

		_, err = coord.Resolve(ctx, first.ID)
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("registration invalidates the presented session too", func(t *testing.T) {
		sess, _, err := coord.Login(ctx, "", domain.LoginCredentials{Username: "alice", Password: "correct horse"})
		require.NoError(t, err)

		_, _, err = coord.Register(ctx, sess.ID, domain.RegisterCredentials{Username: "alice", Password: "correct horse"})
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = coord.Resolve(ctx, sess.ID)
		require.ErrorIs(t, err, ErrNoSession)
	})
}

func TestSessionCoordinatorExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	coord, sessions := newCoordinator(100 * time.Second)

	now := time.Now()
	sessions.Now = func() time.Time { return now }

	sess := register(t, coord, "alice")

	t.Run("refresh and whoami extend the inactivity window", func(t *testing.T) {
		now = now.Add(60 * time.Second)
		_, user, err := coord.Refresh(ctx, sess.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", user.Username)

		now = now.Add(60 * time.Second)
		_, _, err = coord.Whoami(ctx, sess.ID)
		require.NoError(t, err)

		now = now.Add(101 * time.Second)
		_, _, err = coord.Whoami(ctx, sess.ID)
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("resolve does not extend it", func(t *testing.T) {
		other := register(t, coord, "bob")

		now = now.Add(60 * time.Second)
		_, err := coord.Resolve(ctx, other.ID)
		require.NoError(t, err)

		now = now.Add(60 * time.Second)
		_, err = coord.Resolve(ctx, other.ID)
		require.ErrorIs(t, err, ErrNoSession)
	})
}

func TestSessionCoordinatorLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	coord, _ := newCoordinator(time.Minute)

	sess := register(t, coord, "alice")
	require.NoError(t, coord.Logout(ctx, sess.ID))

	_, err := coord.Resolve(ctx, sess.ID)
	require.ErrorIs(t, err, ErrNoSession)

	t.Run("logout requires a live session", func(t *testing.T) {
		require.ErrorIs(t, coord.Logout(ctx, ""), ErrNoSession)
		require.ErrorIs(t, coord.Logout(ctx, "unknown"), ErrNoSession)
		require.ErrorIs(t, coord.Logout(ctx, sess.ID), ErrNoSession)
	})

	t.Run("missing session id", func(t *testing.T) {
		_, err := coord.Resolve(ctx, "")
		require.ErrorIs(t, err, ErrNoSession)
	})
}
