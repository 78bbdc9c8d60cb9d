package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for range 64 {
		id, err := newID()
		require.NoError(t, err)
		require.Len(t, id, 32)
		require.Regexp(t, "^[0-9a-f]+$", id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemoryStore(100 * time.Second)
	now := time.Now()
	s.Now = func() time.Time { return now }

	sess, err := s.Create(ctx, 42)
	require.NoError(t, err)
	require.EqualValues(t, 42, sess.UserID)
	require.True(t, sess.ExpiresAt.Equal(now.Add(100*time.Second)))

	t.Run("get resolves without extending", func(t *testing.T) {
		got, err := s.Get(ctx, sess.ID)
		require.NoError(t, err)
		require.Equal(t, sess, got)
	})

	t.Run("touch extends the deadline", func(t *testing.T) {
		now = now.Add(90 * time.Second)
		touched, err := s.Touch(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, touched.ExpiresAt.Equal(now.Add(100*time.Second)))

		now = now.Add(90 * time.Second)
		_, err = s.Get(ctx, sess.ID)
		require.NoError(t, err)

		now = now.Add(101 * time.Second)
		_, err = s.Get(ctx, sess.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalidate is idempotent", func(t *testing.T) {
		other, err := s.Create(ctx, 7)
		require.NoError(t, err)

		require.NoError(t, s.Invalidate(ctx, other.ID))
		_, err = s.Get(ctx, other.ID)
		require.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, s.Invalidate(ctx, other.ID))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Get(ctx, "ffffffffffffffffffffffffffffffff")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
