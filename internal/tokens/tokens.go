package tokens

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps issued token ids in Redis so a logout can revoke a JWT before
// it expires. A token whose id is absent from the store is treated as
// revoked.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(tokenID string) string {
	return "tokens:" + tokenID
}

func (s *Store) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, key(tokenID), strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *Store) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Delete(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, key(tokenID)).Err()
}
