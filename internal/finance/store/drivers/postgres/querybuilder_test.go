package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryBuilderWhere(t *testing.T) {
	t.Parallel()

	t.Run("no conjuncts renders empty clause", func(t *testing.T) {
		var b QueryBuilder
		require.Empty(t, b.WhereClause())
		require.Empty(t, b.Args())
	})

	t.Run("placeholders are numbered in bind order", func(t *testing.T) {
		var b QueryBuilder
		b.Where("user_id = %s", int64(7))
		b.Where("amount >= %s", int64(100))
		b.Where("(month_to IS NULL OR month_to >= %s)", "2024-01-01")

		require.Equal(t,
			" WHERE user_id = $1 AND amount >= $2 AND (month_to IS NULL OR month_to >= $3)",
			b.WhereClause())
		require.Equal(t, []any{int64(7), int64(100), "2024-01-01"}, b.Args())
	})

	t.Run("fragments without values bind nothing", func(t *testing.T) {
		var b QueryBuilder
		b.Where("month_to IS NULL")

		require.Equal(t, " WHERE month_to IS NULL", b.WhereClause())
		require.Empty(t, b.Args())
	})
}

func TestQueryBuilderSet(t *testing.T) {
	t.Parallel()

	var b QueryBuilder
	require.False(t, b.HasSets())

	b.Set("amount = %s", int64(250))
	b.Set("description = %s", nil)
	b.Where("user_id = %s", int64(7))
	b.Where("id = %s", int64(3))

	require.True(t, b.HasSets())
	require.Equal(t, "SET amount = $1, description = $2", b.SetClause())
	require.Equal(t, " WHERE user_id = $3 AND id = $4", b.WhereClause())
	require.Equal(t, []any{int64(250), nil, int64(7), int64(3)}, b.Args())
}

func TestQueryBuilderLimitOffset(t *testing.T) {
	t.Parallel()

	var b QueryBuilder
	b.Where("user_id = %s", int64(1))
	limit := b.Bind(5)
	offset := b.Bind(10)

	require.Equal(t, "$2", limit)
	require.Equal(t, "$3", offset)
	require.Equal(t, []any{int64(1), 5, 10}, b.Args())
}
