package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
	"github.com/pfennigfuchs/pfennig/internal/finance/store/memstore"
	"github.com/pfennigfuchs/pfennig/pkg/optional"
)

type resourceEnv struct {
	store   *memstore.Store
	alice   int64
	bob     int64
	cats    *LookupService
	shops   *LookupService
	oneoff  *OneoffTransactionService
	monthly *MonthlyTransactionService
}

func newResourceEnv(t *testing.T) resourceEnv {
	t.Helper()
	ctx := context.Background()
	st := memstore.NewStore()

	alice, err := st.Users().CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	bob, err := st.Users().CreateUser(ctx, "bob", "hash")
	require.NoError(t, err)

	return resourceEnv{
		store:   st,
		alice:   alice.ID,
		bob:     bob.ID,
		cats:    NewCategoryService(st),
		shops:   NewShopService(st),
		oneoff:  &OneoffTransactionService{Store: st},
		monthly: &MonthlyTransactionService{Store: st},
	}
}

func (e resourceEnv) category(t *testing.T, userID int64, name string) domain.Lookup {
	t.Helper()
	rec, err := e.cats.Create(context.Background(), userID, domain.LookupParams{Name: name})
	require.NoError(t, err)
	return rec
}

func TestLookupOwnershipIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newResourceEnv(t)

	rec := env.category(t, env.alice, "groceries")

	t.Run("other users cannot see the record", func(t *testing.T) {
		_, err := env.cats.Get(ctx, env.bob, rec.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		records, err := env.cats.Fetch(ctx, env.bob, domain.LookupFilter{}, domain.DefaultPage())
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("other users cannot modify or delete it", func(t *testing.T) {
		_, err := env.cats.Update(ctx, env.bob, rec.ID, domain.LookupParams{Name: "stolen"})
		require.ErrorIs(t, err, store.ErrNotFound)

		err = env.cats.Delete(ctx, env.bob, rec.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		unchanged, err := env.cats.Get(ctx, env.alice, rec.ID)
		require.NoError(t, err)
		require.Equal(t, "groceries", unchanged.Name)
	})

	t.Run("same name is independent per user", func(t *testing.T) {
		other := env.category(t, env.bob, "groceries")
		require.NotEqual(t, rec.ID, other.ID)
	})
}

func TestLookupConflicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newResourceEnv(t)

	env.category(t, env.alice, "groceries")
	env.category(t, env.alice, "rent")

	t.Run("duplicate name is a validation failure", func(t *testing.T) {
		_, err := env.cats.Create(ctx, env.alice, domain.LookupParams{Name: "groceries"})
		var validation ValidationError
		require.ErrorAs(t, err, &validation)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("rename onto a taken name fails", func(t *testing.T) {
		records, err := env.cats.Fetch(ctx, env.alice, domain.LookupFilter{}, domain.DefaultPage())
		require.NoError(t, err)
		require.Len(t, records, 2)

		_, err = env.cats.Update(ctx, env.alice, records[1].ID, domain.LookupParams{Name: records[0].Name})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := env.cats.Create(ctx, env.alice, domain.LookupParams{})
		require.ErrorIs(t, err, domain.ErrMissingName)
	})
}

func TestLookupPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newResourceEnv(t)

	for _, name := range []string{"e", "c", "a", "d", "b"} {
		env.category(t, env.alice, name)
	}

	page := func(limit, offset int) []domain.Lookup {
		p, err := domain.NewPage(limit, offset)
		require.NoError(t, err)
		records, err := env.cats.Fetch(ctx, env.alice, domain.LookupFilter{}, p)
		require.NoError(t, err)
		return records
	}

	first := page(2, 0)
	second := page(2, 2)
	third := page(2, 4)

	names := []string{}
	for _, rec := range append(append(first, second...), third...) {
		names = append(names, rec.Name)
	}
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, names)

	t.Run("offset past the end yields an empty page", func(t *testing.T) {
		require.Empty(t, page(2, 10))
	})
}

func TestOneoffTransactionReferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newResourceEnv(t)

	aliceCat := env.category(t, env.alice, "groceries")
	bobCat := env.category(t, env.bob, "groceries")

	params := func(categoryID int64) domain.OneoffParams {
		return domain.OneoffParams{
			TransactionParams: domain.TransactionParams{
				IsExpense:  true,
				Amount:     1250,
				CategoryID: categoryID,
			},
			Date: domain.NewDate(2025, time.March, 14),
		}
	}

	t.Run("owned category works", func(t *testing.T) {
		rec, err := env.oneoff.Create(ctx, env.alice, params(aliceCat.ID))
		require.NoError(t, err)
		require.Equal(t, aliceCat.ID, rec.Category.ID)
		require.Equal(t, "groceries", rec.Category.Name)
		require.Nil(t, rec.Shop)
	})

	t.Run("another user's category is an invalid reference", func(t *testing.T) {
		_, err := env.oneoff.Create(ctx, env.alice, params(bobCat.ID))
		require.ErrorIs(t, err, store.ErrInvalidReference)
	})

	t.Run("missing shop is an invalid reference", func(t *testing.T) {
		p := params(aliceCat.ID)
		missing := int64(9999)
		p.ShopID = &missing
		_, err := env.oneoff.Create(ctx, env.alice, p)
		require.ErrorIs(t, err, store.ErrInvalidReference)
	})

	t.Run("referenced category cannot be deleted", func(t *testing.T) {
		err := env.cats.Delete(ctx, env.alice, aliceCat.ID)
		require.ErrorIs(t, err, store.ErrInvalidReference)
	})
}

func TestOneoffTransactionPatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newResourceEnv(t)

	clock := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	env.store.SetClock(func() time.Time { return clock })

	cat := env.category(t, env.alice, "groceries")
	shop, err := env.shops.Create(ctx, env.alice, domain.LookupParams{Name: "corner store"})
	require.NoError(t, err)

	desc := "weekly shop"
	created, err := env.oneoff.Create(ctx, env.alice, domain.OneoffParams{
		TransactionParams: domain.TransactionParams{
			IsExpense:   true,
			Amount:      1250,
			Description: &desc,
			CategoryID:  cat.ID,
			ShopID:      &shop.ID,
		},
		Date: domain.NewDate(2025, time.March, 14),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Shop)

	t.Run("absent fields stay untouched", func(t *testing.T) {
		clock = clock.Add(time.Minute)
		amount := int64(999)
		rec, err := env.oneoff.Update(ctx, env.alice, created.ID, domain.OneoffPatch{
			TransactionPatch: domain.TransactionPatch{Amount: &amount},
		})
		require.NoError(t, err)
		require.EqualValues(t, 999, rec.Amount)
		require.NotNil(t, rec.Description)
		require.Equal(t, desc, *rec.Description)
		require.NotNil(t, rec.Shop)

		// A real update moves updated_at and leaves created_at alone.
		require.True(t, rec.CreatedAt.Equal(created.CreatedAt))
		require.True(t, rec.UpdatedAt.After(created.UpdatedAt))
		require.True(t, rec.UpdatedAt.Equal(clock))
	})

	t.Run("explicit null clears nullable fields", func(t *testing.T) {
		rec, err := env.oneoff.Update(ctx, env.alice, created.ID, domain.OneoffPatch{
			TransactionPatch: domain.TransactionPatch{
				Description: optional.Null[string](),
				ShopID:      optional.Null[int64](),
			},
		})
		require.NoError(t, err)
		require.Nil(t, rec.Description)
		require.Nil(t, rec.Shop)
	})

	t.Run("empty patch changes nothing", func(t *testing.T) {
		before, err := env.oneoff.Get(ctx, env.alice, created.ID)
		require.NoError(t, err)

		// Even with the clock moved, no touched field means no write and an
		// unchanged updated_at.
		clock = clock.Add(time.Minute)
		rec, err := env.oneoff.Update(ctx, env.alice, created.ID, domain.OneoffPatch{})
		require.NoError(t, err)
		require.Equal(t, before, rec)
	})

	t.Run("patching another user's record is not found", func(t *testing.T) {
		amount := int64(1)
		_, err := env.oneoff.Update(ctx, env.bob, created.ID, domain.OneoffPatch{
			TransactionPatch: domain.TransactionPatch{Amount: &amount},
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("patch referencing a foreign shop fails", func(t *testing.T) {
		bobShop, err := env.shops.Create(ctx, env.bob, domain.LookupParams{Name: "bob's"})
		require.NoError(t, err)

		_, err = env.oneoff.Update(ctx, env.alice, created.ID, domain.OneoffPatch{
			TransactionPatch: domain.TransactionPatch{ShopID: optional.Of(bobShop.ID)},
		})
		require.ErrorIs(t, err, store.ErrInvalidReference)
	})
}

func TestMonthlyTransactions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newResourceEnv(t)

	cat := env.category(t, env.alice, "subscriptions")

	create := func(from string, to *string, amount int64) domain.MonthlyTransaction {
		t.Helper()
		params := domain.MonthlyParams{
			TransactionParams: domain.TransactionParams{
				IsExpense:  true,
				Amount:     amount,
				CategoryID: cat.ID,
			},
		}
		var err error
		params.MonthFrom, err = domain.ParseMonth(from)
		require.NoError(t, err)
		if to != nil {
			m, err := domain.ParseMonth(*to)
			require.NoError(t, err)
			params.MonthTo = &m
		}
		rec, err := env.monthly.Create(ctx, env.alice, params)
		require.NoError(t, err)
		return rec
	}

	june := "2025-06"
	bounded := create("2025-01", &june, 999)
	openEnded := create("2025-04", nil, 500)

	t.Run("inverted creation range is rejected", func(t *testing.T) {
		params := domain.MonthlyParams{
			TransactionParams: domain.TransactionParams{Amount: 1, CategoryID: cat.ID},
			MonthFrom:         domain.NewMonth(2025, time.June),
		}
		to := domain.NewMonth(2025, time.January)
		params.MonthTo = &to
		_, err := env.monthly.Create(ctx, env.alice, params)
		require.ErrorIs(t, err, domain.ErrInvalidMonthRange)
	})

	t.Run("open-ended filter selects only unterminated recurrences", func(t *testing.T) {
		records, err := env.monthly.Fetch(ctx, env.alice, domain.MonthlyFilter{
			MonthTo: optional.Null[domain.Month](),
		}, domain.DefaultPage())
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, openEnded.ID, records[0].ID)
	})

	t.Run("window filter keeps overlapping recurrences", func(t *testing.T) {
		from := domain.NewMonth(2025, time.July)
		records, err := env.monthly.Fetch(ctx, env.alice, domain.MonthlyFilter{
			MonthFrom: &from,
		}, domain.DefaultPage())
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, openEnded.ID, records[0].ID)
	})

	t.Run("inverted filter window is rejected", func(t *testing.T) {
		from := domain.NewMonth(2025, time.June)
		_, err := env.monthly.Fetch(ctx, env.alice, domain.MonthlyFilter{
			MonthFrom: &from,
			MonthTo:   optional.Of(domain.NewMonth(2025, time.January)),
		}, domain.DefaultPage())
		require.ErrorIs(t, err, domain.ErrInvalidMonthRange)
	})

	t.Run("clearing the end month turns a recurrence open-ended", func(t *testing.T) {
		rec, err := env.monthly.Update(ctx, env.alice, bounded.ID, domain.MonthlyPatch{
			MonthTo: optional.Null[domain.Month](),
		})
		require.NoError(t, err)
		require.Nil(t, rec.MonthTo)
	})
}

func TestTransactionDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newResourceEnv(t)

	cat := env.category(t, env.alice, "groceries")
	rec, err := env.oneoff.Create(ctx, env.alice, domain.OneoffParams{
		TransactionParams: domain.TransactionParams{Amount: 10, CategoryID: cat.ID},
		Date:              domain.NewDate(2025, time.January, 1),
	})
	require.NoError(t, err)

	t.Run("deleting another user's record is not found", func(t *testing.T) {
		require.ErrorIs(t, env.oneoff.Delete(ctx, env.bob, rec.ID), store.ErrNotFound)
	})

	t.Run("delete removes the record once", func(t *testing.T) {
		require.NoError(t, env.oneoff.Delete(ctx, env.alice, rec.ID))
		require.ErrorIs(t, env.oneoff.Delete(ctx, env.alice, rec.ID), store.ErrNotFound)
	})
}

func TestAnalysisYearlySummary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newResourceEnv(t)
	analysis := &AnalysisService{Store: env.store}

	cat := env.category(t, env.alice, "general")
	bobCat := env.category(t, env.bob, "general")

	oneoff := func(userID, categoryID int64, date string, amount int64, expense bool) {
		t.Helper()
		d, err := domain.ParseDate(date)
		require.NoError(t, err)
		_, err = env.oneoff.Create(ctx, userID, domain.OneoffParams{
			TransactionParams: domain.TransactionParams{IsExpense: expense, Amount: amount, CategoryID: categoryID},
			Date:              d,
		})
		require.NoError(t, err)
	}

	oneoff(env.alice, cat.ID, "2025-03-10", 100, true)
	oneoff(env.alice, cat.ID, "2025-03-20", 40, false)
	oneoff(env.alice, cat.ID, "2024-12-31", 777, true) // outside the year
	oneoff(env.bob, bobCat.ID, "2025-03-05", 5000, true)

	apr := domain.NewMonth(2025, time.April)
	_, err := env.monthly.Create(ctx, env.alice, domain.MonthlyParams{
		TransactionParams: domain.TransactionParams{IsExpense: true, Amount: 10, CategoryID: cat.ID},
		MonthFrom:         domain.NewMonth(2025, time.February),
		MonthTo:           &apr,
	})
	require.NoError(t, err)

	_, err = env.monthly.Create(ctx, env.alice, domain.MonthlyParams{
		TransactionParams: domain.TransactionParams{IsExpense: false, Amount: 20, CategoryID: cat.ID},
		MonthFrom:         domain.NewMonth(2024, time.November),
	})
	require.NoError(t, err)

	summary, err := analysis.YearlySummary(ctx, env.alice, 2025)
	require.NoError(t, err)

	march := summary[time.March-1]
	require.EqualValues(t, 100, march.Oneoff.Expenses)
	require.EqualValues(t, 40, march.Oneoff.Incomes)
	require.EqualValues(t, 10, march.Monthly.Expenses)
	require.EqualValues(t, 20, march.Monthly.Incomes)

	t.Run("bounded recurrence stops after its last month", func(t *testing.T) {
		may := summary[time.May-1]
		require.EqualValues(t, 0, may.Monthly.Expenses)
		require.EqualValues(t, 20, may.Monthly.Incomes)
	})

	t.Run("open-ended recurrence covers every month", func(t *testing.T) {
		for m := time.January; m <= time.December; m++ {
			require.EqualValues(t, 20, summary[m-1].Monthly.Incomes, "month %s", m)
		}
	})

	t.Run("other users see only their own records", func(t *testing.T) {
		other, err := analysis.YearlySummary(ctx, env.bob, 2025)
		require.NoError(t, err)
		require.EqualValues(t, 5000, other[time.March-1].Oneoff.Expenses)
		require.EqualValues(t, 0, other[time.March-1].Monthly.Expenses)
		require.EqualValues(t, 0, other[time.February-1].Oneoff.Expenses)
	})

	t.Run("year bounds are validated", func(t *testing.T) {
		_, err := analysis.YearlySummary(ctx, env.alice, 0)
		var validation ValidationError
		require.ErrorAs(t, err, &validation)
	})
}
