package service

import (
	"context"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
)

// LookupService serves one of the two lookup collections. Kind only feeds
// logging and error text; behavior is identical for categories and shops.
type LookupService struct {
	Repo store.Lookups
	Kind string
}

func NewCategoryService(s store.Store) *LookupService {
	return &LookupService{Repo: s.Categories(), Kind: "category"}
}

func NewShopService(s store.Store) *LookupService {
	return &LookupService{Repo: s.Shops(), Kind: "shop"}
}

func (s *LookupService) Create(ctx context.Context, userID int64, params domain.LookupParams) (domain.Lookup, error) {
	if err := params.Validate(); err != nil {
		return domain.Lookup{}, invalid(err)
	}
	rec, err := s.Repo.Create(ctx, userID, params.Name)
	if err != nil {
		return domain.Lookup{}, mapStoreError(err)
	}
	return rec, nil
}

func (s *LookupService) Fetch(ctx context.Context, userID int64, filter domain.LookupFilter, page domain.Page) ([]domain.Lookup, error) {
	return s.Repo.Fetch(ctx, userID, filter, page)
}

func (s *LookupService) Get(ctx context.Context, userID, id int64) (domain.Lookup, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

func (s *LookupService) Update(ctx context.Context, userID, id int64, patch domain.LookupParams) (domain.Lookup, error) {
	if err := patch.Validate(); err != nil {
		return domain.Lookup{}, invalid(err)
	}
	rec, err := s.Repo.Rename(ctx, userID, id, patch.Name)
	if err != nil {
		return domain.Lookup{}, mapStoreError(err)
	}
	return rec, nil
}

func (s *LookupService) Delete(ctx context.Context, userID, id int64) error {
	rows, err := s.Repo.Delete(ctx, userID, id)
	if err != nil {
		return mapStoreError(err)
	}
	return checkDeleted(ctx, s.Kind, userID, id, rows)
}
