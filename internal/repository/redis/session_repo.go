// Package redis backs the session store with Redis, for deployments where
// more than one server instance must share session state. Task and user
// records stay in the relational store; only sessions live here.
package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/dkearns/tasktrack/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

type sessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *sessionRepository {
	return &sessionRepository{rdb: rdb}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, keyPrefix+session.Token, session.UserID, ttl).Err()
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	val, err := r.rdb.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ttl, err := r.rdb.TTL(ctx, keyPrefix+token).Result()
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Token:     token,
		UserID:    uint(userID),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, keyPrefix+token).Err()
}

// DeleteExpired is a no-op: Redis evicts expired keys itself.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
