package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so that several instances can resolve
// the same cookie.  Each session is one key holding the JSON-encoded
// Identity; expiry is delegated to the Redis TTL, so Get never has to
// reason about time itself.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore constructs a RedisStore on an established client.  The
// caller is responsible for having verified the connection (the config
// package returns a nil client when Redis is unreachable, in which case
// the application falls back to the in-memory store).
func NewRedisStore(client *redis.Client, ttlMin int) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttlFromMinutes(ttlMin),
		prefix: "session:",
	}
}

// Create stores a new session under session:<token> with the configured TTL.
func (s *RedisStore) Create(ctx context.Context, id Identity) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.prefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token.  A missing key (unknown or expired by Redis) is
// ok=false, not an error.
func (s *RedisStore) Get(ctx context.Context, token string) (Identity, bool, error) {
	payload, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, false, nil
		}
		return Identity{}, false, err
	}
	var id Identity
	if err := json.Unmarshal(payload, &id); err != nil {
		return Identity{}, false, err
	}
	return id, true, nil
}

// Delete destroys a session.  Deleting an unknown token is not an error.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.prefix+token).Err()
}
