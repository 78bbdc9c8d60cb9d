// Package memstore implements the store in process memory. It exists for
// tests: same contract and error semantics as the postgres driver, no
// database required.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	now    func() time.Time

	users      map[int64]domain.User
	categories map[int64]domain.Lookup
	shops      map[int64]domain.Lookup
	oneoff     map[int64]oneoffRow
	monthly    map[int64]monthlyRow
}

func NewStore() *Store {
	return &Store{
		now:        time.Now,
		users:      map[int64]domain.User{},
		categories: map[int64]domain.Lookup{},
		shops:      map[int64]domain.Lookup{},
		oneoff:     map[int64]oneoffRow{},
		monthly:    map[int64]monthlyRow{},
	}
}

func (s *Store) Users() store.Users { return (*usersRepo)(s) }
func (s *Store) Categories() store.Lookups {
	return &lookupsRepo{s: s, records: s.categories, isCategory: true}
}
func (s *Store) Shops() store.Lookups                           { return &lookupsRepo{s: s, records: s.shops} }
func (s *Store) OneoffTransactions() store.OneoffTransactions   { return (*oneoffRepo)(s) }
func (s *Store) MonthlyTransactions() store.MonthlyTransactions { return (*monthlyRepo)(s) }
func (s *Store) Analysis() store.Analysis                       { return (*analysisRepo)(s) }

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// SetClock replaces the timestamp source for created_at and updated_at.
// Tests use it to make time deterministic.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

type usersRepo Store

func (r *usersRepo) CreateUser(_ context.Context, username, passwordHash string) (domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return domain.User{}, store.ErrAlreadyExists
		}
	}

	now := s.now()
	u := domain.User{
		ID:           s.id(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (r *usersRepo) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (r *usersRepo) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}
