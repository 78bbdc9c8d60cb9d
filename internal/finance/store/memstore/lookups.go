package memstore

import (
	"context"
	"sort"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
)

type lookupsRepo struct {
	s          *Store
	records    map[int64]domain.Lookup
	isCategory bool
}

func (r *lookupsRepo) Create(_ context.Context, userID int64, name string) (domain.Lookup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.records {
		if rec.UserID == userID && rec.Name == name {
			return domain.Lookup{}, store.ErrAlreadyExists
		}
	}

	now := r.s.now()
	rec := domain.Lookup{
		ID:        r.s.id(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *lookupsRepo) Fetch(_ context.Context, userID int64, filter domain.LookupFilter, page domain.Page) ([]domain.Lookup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matches := []domain.Lookup{}
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		if filter.Name != nil && rec.Name != *filter.Name {
			continue
		}
		matches = append(matches, rec)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name != matches[j].Name {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].ID < matches[j].ID
	})
	return paginate(matches, page), nil
}

func (r *lookupsRepo) GetByID(_ context.Context, userID, id int64) (domain.Lookup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(userID, id)
}

func (r *lookupsRepo) get(userID, id int64) (domain.Lookup, error) {
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return domain.Lookup{}, store.ErrNotFound
	}
	return rec, nil
}

func (r *lookupsRepo) Rename(_ context.Context, userID, id int64, name string) (domain.Lookup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, err := r.get(userID, id)
	if err != nil {
		return domain.Lookup{}, err
	}
	for _, other := range r.records {
		if other.ID != id && other.UserID == userID && other.Name == name {
			return domain.Lookup{}, store.ErrAlreadyExists
		}
	}

	rec.Name = name
	rec.UpdatedAt = r.s.now()
	r.records[id] = rec
	return rec, nil
}

func (r *lookupsRepo) Delete(_ context.Context, userID, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, err := r.get(userID, id); err != nil {
		return 0, nil
	}
	if r.s.lookupReferenced(id, r.isCategory) {
		return 0, store.ErrInvalidReference
	}
	delete(r.records, id)
	return 1, nil
}

func (r *lookupsRepo) Exists(_ context.Context, userID, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, err := r.get(userID, id)
	return err == nil, nil
}

// lookupReferenced mirrors the RESTRICT foreign keys on the transaction
// tables.
func (s *Store) lookupReferenced(id int64, isCategory bool) bool {
	referenced := func(categoryID int64, shopID *int64) bool {
		if isCategory {
			return categoryID == id
		}
		return shopID != nil && *shopID == id
	}

	for _, row := range s.oneoff {
		if referenced(row.categoryID, row.shopID) {
			return true
		}
	}
	for _, row := range s.monthly {
		if referenced(row.categoryID, row.shopID) {
			return true
		}
	}
	return false
}

func paginate[T any](records []T, page domain.Page) []T {
	if page.Offset >= len(records) {
		return []T{}
	}
	records = records[page.Offset:]
	if page.Limit < len(records) {
		records = records[:page.Limit]
	}
	return records
}
