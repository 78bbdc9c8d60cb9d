package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
	"github.com/pfennigfuchs/pfennig/pkg/cryptox"
	"github.com/pfennigfuchs/pfennig/pkg/slogx"
)

// AuthService verifies and creates accounts. Hashing runs on the bounded
// cryptox pool so a burst of logins cannot occupy every scheduler thread.
type AuthService struct {
	Store  store.Store
	Hasher *cryptox.Pool
}

// Register creates an account. A taken username returns (nil, nil): the
// outcome is reported to the caller the same way as a failed login, so
// registration cannot be used to probe which usernames exist.
func (s *AuthService) Register(ctx context.Context, creds domain.RegisterCredentials) (*domain.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, invalid(err)
	}

	hash, err := s.Hasher.Hash(ctx, creds.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.Store.Users().CreateUser(ctx, creds.Username, hash)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			slogx.FromContext(ctx).Info("registration for taken username",
				slog.String("username", creds.Username))
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords both return (nil, nil); only infrastructure failures surface as
// errors.
func (s *AuthService) Authenticate(ctx context.Context, creds domain.LoginCredentials) (*domain.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, invalid(err)
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.Hasher.Verify(ctx, creds.Password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			slogx.FromContext(ctx).Info("failed login attempt",
				slog.String("username", creds.Username))
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UserByID rehydrates the account behind a session.
func (s *AuthService) UserByID(ctx context.Context, id int64) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}
