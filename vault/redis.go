package vault

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ciudad:refresh"

// ErrRedisUnavailable is an exported constant or variable used by the vault adapters.
var ErrRedisUnavailable = errors.New("vault redis unavailable")

// Redis persists the refresh token in a Redis key namespaced by installation
// id. TTL should track the backend's refresh-token lifetime; zero means no
// expiry.
type Redis struct {
	client    *redis.Client
	installID string
	ttl       time.Duration
}

// NewRedis creates a Redis-backed vault scoped to one installation.
func NewRedis(client *redis.Client, installID string, ttl time.Duration) *Redis {
	return &Redis{
		client:    client,
		installID: installID,
		ttl:       ttl,
	}
}

func (r *Redis) key() string {
	return redisKeyPrefix + ":" + r.installID
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Redis) Save(ctx context.Context, refreshToken string) error {
	if err := r.client.Set(ctx, r.key(), refreshToken, r.ttl).Err(); err != nil {
		return errors.Join(ErrRedisUnavailable, err)
	}
	return nil
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Redis) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(ErrRedisUnavailable, err)
	}
	return token, nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return errors.Join(ErrRedisUnavailable, err)
	}
	return nil
}
