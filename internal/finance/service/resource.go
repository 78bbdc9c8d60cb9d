package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
	"github.com/pfennigfuchs/pfennig/pkg/slogx"
)

// Resource is the shared contract of every user-owned record collection:
// categories, shops and both transaction kinds all expose the same five
// operations, differing only in their payload types. C creates, F filters a
// fetch, U patches, T is the record. The generic HTTP layer mounts any
// implementation of this interface.
type Resource[C, F, U, T any] interface {
	Create(ctx context.Context, userID int64, params C) (T, error)
	Fetch(ctx context.Context, userID int64, filter F, page domain.Page) ([]T, error)
	Get(ctx context.Context, userID, id int64) (T, error)
	Update(ctx context.Context, userID, id int64, patch U) (T, error)
	Delete(ctx context.Context, userID, id int64) error
}

// checkDeleted escalates a delete that affected more than one row. Every
// delete runs against a primary key, so more than one row means the table
// invariants are broken and the request must fail loudly rather than report
// success.
func checkDeleted(ctx context.Context, kind string, userID, id, rows int64) error {
	switch {
	case rows == 0:
		return store.ErrNotFound
	case rows > 1:
		slogx.FromContext(ctx).Error("delete affected multiple rows",
			"kind", kind, "user_id", userID, "id", id, "rows", rows)
		return fmt.Errorf("%s delete affected %d rows", kind, rows)
	}
	return nil
}

// requireOwnedLookup verifies that a referenced category or shop exists and
// belongs to userID. A reference to another user's record fails exactly like
// a reference to a missing one.
func requireOwnedLookup(ctx context.Context, repo store.Lookups, userID, id int64) error {
	ok, err := repo.Exists(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return invalid(store.ErrInvalidReference)
	}
	return nil
}

// mapStoreError folds constraint violations raised by the store itself into
// validation errors, so racy cases report the same way as pre-checked ones.
func mapStoreError(err error) error {
	if errors.Is(err, store.ErrAlreadyExists) || errors.Is(err, store.ErrInvalidReference) {
		return invalid(err)
	}
	return err
}
