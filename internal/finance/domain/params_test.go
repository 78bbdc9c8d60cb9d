package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTransactionParamsValidate(t *testing.T) {
	t.Parallel()

	valid := TransactionParams{IsExpense: true, Amount: 1299, CategoryID: 3}
	require.NoError(t, valid.Validate())

	t.Run("rejects non-positive amount", func(t *testing.T) {
		p := valid
		p.Amount = 0
		require.ErrorIs(t, p.Validate(), ErrInvalidAmount)
		p.Amount = -5
		require.ErrorIs(t, p.Validate(), ErrInvalidAmount)
	})

	t.Run("requires a category", func(t *testing.T) {
		p := valid
		p.CategoryID = 0
		require.ErrorIs(t, p.Validate(), ErrMissingCategory)
	})
}

func TestMonthlyParamsValidate(t *testing.T) {
	t.Parallel()

	from := NewMonth(2024, time.March)
	base := MonthlyParams{
		TransactionParams: TransactionParams{Amount: 100, CategoryID: 1},
		MonthFrom:         from,
	}

	t.Run("open-ended range is valid", func(t *testing.T) {
		require.NoError(t, base.Validate())
	})

	t.Run("range may end in the starting month", func(t *testing.T) {
		p := base
		to := from
		p.MonthTo = &to
		require.NoError(t, p.Validate())
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		p := base
		to := NewMonth(2024, time.February)
		p.MonthTo = &to
		require.ErrorIs(t, p.Validate(), ErrInvalidMonthRange)
	})
}

func TestTransactionPatchDecoding(t *testing.T) {
	t.Parallel()

	t.Run("absent keys stay undefined", func(t *testing.T) {
		var p TransactionPatch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		require.True(t, p.Empty())
		require.False(t, p.Description.Defined())
		require.False(t, p.ShopID.Defined())
	})

	t.Run("explicit null clears a nullable field", func(t *testing.T) {
		var p TransactionPatch
		require.NoError(t, json.Unmarshal([]byte(`{"description":null,"shopId":null}`), &p))
		require.True(t, p.Description.IsNull())
		require.True(t, p.ShopID.IsNull())
		require.False(t, p.Empty())
	})

	t.Run("values are carried", func(t *testing.T) {
		var p TransactionPatch
		require.NoError(t, json.Unmarshal([]byte(`{"amount":250,"description":"weekly shop","shopId":7}`), &p))
		require.NotNil(t, p.Amount)
		require.EqualValues(t, 250, *p.Amount)

		desc, ok := p.Description.Get()
		require.True(t, ok)
		require.Equal(t, "weekly shop", desc)

		shop, ok := p.ShopID.Get()
		require.True(t, ok)
		require.EqualValues(t, 7, shop)
	})

	t.Run("untouched fields are not validated", func(t *testing.T) {
		var p TransactionPatch
		require.NoError(t, json.Unmarshal([]byte(`{"isExpense":false}`), &p))
		require.NoError(t, p.Validate())
	})

	t.Run("touched fields are validated", func(t *testing.T) {
		var p TransactionPatch
		require.NoError(t, json.Unmarshal([]byte(`{"amount":0}`), &p))
		require.ErrorIs(t, p.Validate(), ErrInvalidAmount)
	})
}

func TestMonthlyPatchDecoding(t *testing.T) {
	t.Parallel()

	t.Run("clearing the end month", func(t *testing.T) {
		var p MonthlyPatch
		require.NoError(t, json.Unmarshal([]byte(`{"monthTo":null}`), &p))
		require.True(t, p.MonthTo.IsNull())
		require.False(t, p.Empty())
	})

	t.Run("setting the end month", func(t *testing.T) {
		var p MonthlyPatch
		require.NoError(t, json.Unmarshal([]byte(`{"monthTo":"2025-06"}`), &p))
		to, ok := p.MonthTo.Get()
		require.True(t, ok)
		require.Equal(t, "2025-06", to.String())
	})

	t.Run("absent end month stays untouched", func(t *testing.T) {
		var p MonthlyPatch
		require.NoError(t, json.Unmarshal([]byte(`{"monthFrom":"2025-01"}`), &p))
		require.False(t, p.MonthTo.Defined())
		require.NotNil(t, p.MonthFrom)
	})
}

func TestParseOrderKey(t *testing.T) {
	t.Parallel()

	key, err := ParseOrderKey("")
	require.NoError(t, err)
	require.Equal(t, OrderByTime, key)

	for _, s := range []string{"time", "amount", "category", "shop"} {
		key, err := ParseOrderKey(s)
		require.NoError(t, err)
		require.Equal(t, OrderKey(s), key)
	}

	_, err = ParseOrderKey("id; DROP TABLE users")
	require.ErrorIs(t, err, ErrInvalidOrderKey)
}

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	order, err := ParseSortOrder("")
	require.NoError(t, err)
	require.Equal(t, SortAsc, order)

	order, err = ParseSortOrder("DESC")
	require.NoError(t, err)
	require.Equal(t, SortDesc, order)

	_, err = ParseSortOrder("desc")
	require.ErrorIs(t, err, ErrInvalidOrder)
}
