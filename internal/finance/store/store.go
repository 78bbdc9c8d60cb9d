package store

import (
	"context"
	"errors"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
)

var (
	// ErrNotFound covers both "no such record" and "owned by someone else";
	// callers must not be able to tell the two apart.
	ErrNotFound = errors.New("store: not found")
	// ErrAlreadyExists reports a uniqueness violation (username, or
	// (user_id, name) on a lookup).
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrInvalidReference reports a write pointing at a category or shop that
	// does not exist.
	ErrInvalidReference = errors.New("store: invalid reference")
)

// Store is the root data-access interface. The postgres driver implements it
// for production; memstore implements it for tests. Sub-repositories keep the
// per-record-type concerns separated, following the same layout on both
// drivers.
type Store interface {
	Users() Users
	Categories() Lookups
	Shops() Lookups
	OneoffTransactions() OneoffTransactions
	MonthlyTransactions() MonthlyTransactions
	Analysis() Analysis

	// Ping verifies the backing connection is alive.
	Ping(ctx context.Context) error

	// Close releases the underlying pool.
	Close() error
}

type Users interface {
	// CreateUser inserts a new account. ErrAlreadyExists when the username is
	// taken; ids and timestamps are store-assigned.
	CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error)

	// GetUserByUsername is used during credential verification; the returned
	// record includes the password hash.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByID rehydrates the session user.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
}

// Lookups is the shared contract of the categories and shops repositories.
// Every operation is owner-scoped: records of other users behave exactly like
// missing records.
type Lookups interface {
	Create(ctx context.Context, userID int64, name string) (domain.Lookup, error)
	Fetch(ctx context.Context, userID int64, filter domain.LookupFilter, page domain.Page) ([]domain.Lookup, error)
	GetByID(ctx context.Context, userID, id int64) (domain.Lookup, error)
	Rename(ctx context.Context, userID, id int64, name string) (domain.Lookup, error)

	// Delete returns the number of affected rows (0 or 1; more indicates a
	// broken uniqueness invariant and is the caller's problem to escalate).
	Delete(ctx context.Context, userID, id int64) (int64, error)

	// Exists reports whether the id resolves to a record owned by userID.
	Exists(ctx context.Context, userID, id int64) (bool, error)
}

type OneoffTransactions interface {
	Create(ctx context.Context, userID int64, params domain.OneoffParams) (domain.OneoffTransaction, error)
	Fetch(ctx context.Context, userID int64, filter domain.OneoffFilter, page domain.Page) ([]domain.OneoffTransaction, error)
	GetByID(ctx context.Context, userID, id int64) (domain.OneoffTransaction, error)

	// Update applies the touched fields and returns the post-update record.
	// An empty patch must not issue a write.
	Update(ctx context.Context, userID, id int64, patch domain.OneoffPatch) (domain.OneoffTransaction, error)

	Delete(ctx context.Context, userID, id int64) (int64, error)
}

type MonthlyTransactions interface {
	Create(ctx context.Context, userID int64, params domain.MonthlyParams) (domain.MonthlyTransaction, error)
	Fetch(ctx context.Context, userID int64, filter domain.MonthlyFilter, page domain.Page) ([]domain.MonthlyTransaction, error)
	GetByID(ctx context.Context, userID, id int64) (domain.MonthlyTransaction, error)
	Update(ctx context.Context, userID, id int64, patch domain.MonthlyPatch) (domain.MonthlyTransaction, error)
	Delete(ctx context.Context, userID, id int64) (int64, error)
}

type Analysis interface {
	// YearlySummary aggregates the user's transactions of one calendar year
	// into per-month expense and income totals.
	YearlySummary(ctx context.Context, userID int64, year int) (domain.YearlySummary, error)
}
