// Package redisstore implements the refresh token store on Redis.
// Records carry a TTL matching the refresh token lifetime, so entries for
// tokens whose embedded expiry has elapsed fall out of the store on their
// own; expiry is still enforced at verification time.
package redisstore

import (
	"context"
	"time"

	"github.com/bloghq/auth-service/token/refresh"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "refresh:"

var _ refresh.Repo = (*Store)(nil)

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis-backed refresh token store. ttl should match the
// refresh token expiry so revocation records do not outlive their tokens.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		return false, errors.Wrap(err, "[Store.Exists] EXISTS")
	}
	return n > 0, nil
}

func (s *Store) Create(ctx context.Context, token, userID string) error {
	ok, err := s.client.SetNX(ctx, keyPrefix+token, userID, s.ttl).Result()
	if err != nil {
		return errors.Wrap(err, "[Store.Create] SETNX")
	}
	if !ok {
		return refresh.ErrConflict
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return errors.Wrap(err, "[Store.Delete] DEL")
	}
	return nil
}
