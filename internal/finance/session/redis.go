package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in redis with a per-key TTL, so expiry needs no
// sweeper and sessions survive process restarts.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID int64) (Session, error) {
	value := strconv.FormatInt(userID, 10)

	// NX guards against an id collision overwriting a live session. With
	// 128-bit ids a retry is all but unreachable.
	for range 3 {
		id, err := newID()
		if err != nil {
			return Session{}, err
		}
		expiresAt := time.Now().Add(s.ttl)
		ok, err := s.client.SetNX(ctx, keyPrefix+id, value, s.ttl).Result()
		if err != nil {
			return Session{}, fmt.Errorf("session: create: %w", err)
		}
		if ok {
			return Session{ID: id, UserID: userID, ExpiresAt: expiresAt}, nil
		}
	}
	return Session{}, errors.New("session: id collision")
}

// Get reads the entry and its remaining TTL in one round trip, without
// extending the session.
func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	key := keyPrefix + id
	var (
		value *redis.StringCmd
		ttl   *redis.DurationCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		value = pipe.Get(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return Session{}, fmt.Errorf("session: lookup: %w", err)
	}
	return s.session(id, value.Val(), time.Now().Add(ttl.Val()), value.Err())
}

func (s *RedisStore) Touch(ctx context.Context, id string) (Session, error) {
	expiresAt := time.Now().Add(s.ttl)
	value, err := s.client.GetEx(ctx, keyPrefix+id, s.ttl).Result()
	return s.session(id, value, expiresAt, err)
}

func (s *RedisStore) Invalidate(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session: invalidate: %w", err)
	}
	return nil
}

func (s *RedisStore) session(id, value string, expiresAt time.Time, err error) (Session, error) {
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("session: lookup: %w", err)
	}
	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("session: corrupt entry for %q: %w", id, err)
	}
	return Session{ID: id, UserID: userID, ExpiresAt: expiresAt}, nil
}
