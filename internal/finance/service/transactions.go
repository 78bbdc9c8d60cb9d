package service

import (
	"context"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
)

// OneoffTransactionService manages dated bookings.
type OneoffTransactionService struct {
	Store store.Store
}

func (s *OneoffTransactionService) Create(ctx context.Context, userID int64, params domain.OneoffParams) (domain.OneoffTransaction, error) {
	if err := params.Validate(); err != nil {
		return domain.OneoffTransaction{}, invalid(err)
	}
	if err := s.checkRefs(ctx, userID, &params.CategoryID, params.ShopID); err != nil {
		return domain.OneoffTransaction{}, err
	}
	rec, err := s.Store.OneoffTransactions().Create(ctx, userID, params)
	if err != nil {
		return domain.OneoffTransaction{}, mapStoreError(err)
	}
	return rec, nil
}

func (s *OneoffTransactionService) Fetch(ctx context.Context, userID int64, filter domain.OneoffFilter, page domain.Page) ([]domain.OneoffTransaction, error) {
	return s.Store.OneoffTransactions().Fetch(ctx, userID, filter, page)
}

func (s *OneoffTransactionService) Get(ctx context.Context, userID, id int64) (domain.OneoffTransaction, error) {
	return s.Store.OneoffTransactions().GetByID(ctx, userID, id)
}

func (s *OneoffTransactionService) Update(ctx context.Context, userID, id int64, patch domain.OneoffPatch) (domain.OneoffTransaction, error) {
	if err := patch.Validate(); err != nil {
		return domain.OneoffTransaction{}, invalid(err)
	}
	if err := s.checkRefs(ctx, userID, patch.CategoryID, patch.ShopID.Ptr()); err != nil {
		return domain.OneoffTransaction{}, err
	}
	rec, err := s.Store.OneoffTransactions().Update(ctx, userID, id, patch)
	if err != nil {
		return domain.OneoffTransaction{}, mapStoreError(err)
	}
	return rec, nil
}

func (s *OneoffTransactionService) Delete(ctx context.Context, userID, id int64) error {
	rows, err := s.Store.OneoffTransactions().Delete(ctx, userID, id)
	if err != nil {
		return mapStoreError(err)
	}
	return checkDeleted(ctx, "oneoff transaction", userID, id, rows)
}

// checkRefs validates owner-scoped lookup references. Nil means the field is
// untouched (or, for the shop, cleared) and needs no check.
func (s *OneoffTransactionService) checkRefs(ctx context.Context, userID int64, categoryID, shopID *int64) error {
	return checkLookupRefs(ctx, s.Store, userID, categoryID, shopID)
}

// MonthlyTransactionService manages recurring bookings.
type MonthlyTransactionService struct {
	Store store.Store
}

func (s *MonthlyTransactionService) Create(ctx context.Context, userID int64, params domain.MonthlyParams) (domain.MonthlyTransaction, error) {
	if err := params.Validate(); err != nil {
		return domain.MonthlyTransaction{}, invalid(err)
	}
	if err := checkLookupRefs(ctx, s.Store, userID, &params.CategoryID, params.ShopID); err != nil {
		return domain.MonthlyTransaction{}, err
	}
	rec, err := s.Store.MonthlyTransactions().Create(ctx, userID, params)
	if err != nil {
		return domain.MonthlyTransaction{}, mapStoreError(err)
	}
	return rec, nil
}

func (s *MonthlyTransactionService) Fetch(ctx context.Context, userID int64, filter domain.MonthlyFilter, page domain.Page) ([]domain.MonthlyTransaction, error) {
	if err := filter.Validate(); err != nil {
		return nil, invalid(err)
	}
	return s.Store.MonthlyTransactions().Fetch(ctx, userID, filter, page)
}

func (s *MonthlyTransactionService) Get(ctx context.Context, userID, id int64) (domain.MonthlyTransaction, error) {
	return s.Store.MonthlyTransactions().GetByID(ctx, userID, id)
}

func (s *MonthlyTransactionService) Update(ctx context.Context, userID, id int64, patch domain.MonthlyPatch) (domain.MonthlyTransaction, error) {
	if err := patch.Validate(); err != nil {
		return domain.MonthlyTransaction{}, invalid(err)
	}
	if err := checkLookupRefs(ctx, s.Store, userID, patch.CategoryID, patch.ShopID.Ptr()); err != nil {
		return domain.MonthlyTransaction{}, err
	}
	rec, err := s.Store.MonthlyTransactions().Update(ctx, userID, id, patch)
	if err != nil {
		return domain.MonthlyTransaction{}, mapStoreError(err)
	}
	return rec, nil
}

func (s *MonthlyTransactionService) Delete(ctx context.Context, userID, id int64) error {
	rows, err := s.Store.MonthlyTransactions().Delete(ctx, userID, id)
	if err != nil {
		return mapStoreError(err)
	}
	return checkDeleted(ctx, "monthly transaction", userID, id, rows)
}

func checkLookupRefs(ctx context.Context, s store.Store, userID int64, categoryID, shopID *int64) error {
	if categoryID != nil {
		if err := requireOwnedLookup(ctx, s.Categories(), userID, *categoryID); err != nil {
			return err
		}
	}
	if shopID != nil {
		if err := requireOwnedLookup(ctx, s.Shops(), userID, *shopID); err != nil {
			return err
		}
	}
	return nil
}
