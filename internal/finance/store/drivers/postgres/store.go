// Package postgres implements the store against PostgreSQL through a bounded
// pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pfennigfuchs/pfennig/internal/finance/store"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Store struct {
	db  *pgxpool.Pool
	url string
}

// NewStore connects a pool of at most maxConns connections. Connections are
// borrowed per statement and never held across unrelated work.
func NewStore(ctx context.Context, url string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	return &Store{db: db, url: url}, nil
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Users() store.Users                             { return &usersRepo{db: s.db} }
func (s *Store) Categories() store.Lookups                      { return &lookupsRepo{db: s.db, table: "categories"} }
func (s *Store) Shops() store.Lookups                           { return &lookupsRepo{db: s.db, table: "shops"} }
func (s *Store) OneoffTransactions() store.OneoffTransactions   { return &oneoffRepo{db: s.db} }
func (s *Store) MonthlyTransactions() store.MonthlyTransactions { return &monthlyRepo{db: s.db} }
func (s *Store) Analysis() store.Analysis                       { return &analysisRepo{db: s.db} }

// mapError translates driver-level failures into store sentinels. Constraint
// codes cover the races a pre-check cannot: a unique insert losing to a
// concurrent one, or a referenced row deleted between validation and write.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return store.ErrAlreadyExists
		case pgForeignKeyViolation:
			return store.ErrInvalidReference
		}
	}
	return err
}
