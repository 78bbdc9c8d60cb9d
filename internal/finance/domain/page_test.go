package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	t.Run("zero limit selects the default", func(t *testing.T) {
		page, err := NewPage(0, 0)
		require.NoError(t, err)
		require.Equal(t, DefaultPageLimit, page.Limit)
		require.Equal(t, 0, page.Offset)
	})

	t.Run("accepts limit at the cap", func(t *testing.T) {
		page, err := NewPage(MaxPageLimit, 50)
		require.NoError(t, err)
		require.Equal(t, MaxPageLimit, page.Limit)
		require.Equal(t, 50, page.Offset)
	})

	t.Run("rejects limit above the cap", func(t *testing.T) {
		_, err := NewPage(MaxPageLimit+1, 0)
		require.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		_, err := NewPage(-1, 0)
		require.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("rejects negative offset", func(t *testing.T) {
		_, err := NewPage(10, -1)
		require.ErrorIs(t, err, ErrInvalidOffset)
	})
}
