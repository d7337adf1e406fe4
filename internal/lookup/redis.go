package lookup

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "commune/pkg/domain-errors"
)

const lookupKeyPrefix = "lookup:"

// DefaultRegistryTTL bounds how long a scope's short ids survive without
// activity. Ids are session plumbing, not durable data.
const DefaultRegistryTTL = 30 * 24 * time.Hour

// RedisRegistry shares short ids across instances. Forward and reverse
// mappings live in two hashes per scope plus a sequence counter.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisRegistryOption func(*RedisRegistry)

// WithRegistryTTL overrides the scope expiry.
func WithRegistryTTL(ttl time.Duration) RedisRegistryOption {
	return func(r *RedisRegistry) { r.ttl = ttl }
}

func NewRedisRegistry(client *redis.Client, opts ...RedisRegistryOption) *RedisRegistry {
	r := &RedisRegistry{client: client, ttl: DefaultRegistryTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func forwardKey(scope string) string { return lookupKeyPrefix + scope + ":fwd" }
func reverseKey(scope string) string { return lookupKeyPrefix + scope + ":rev" }
func seqKey(scope string) string     { return lookupKeyPrefix + scope + ":seq" }

func (r *RedisRegistry) Register(ctx context.Context, scope, value string) (string, error) {
	existing, err := r.client.HGet(ctx, forwardKey(scope), value).Result()
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "redis lookup failed")
	}

	seq, err := r.client.Incr(ctx, seqKey(scope)).Result()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "redis sequence failed")
	}
	id := encodeShortID(uint64(seq))

	// HSetNX keeps the registration stable when two instances race on the
	// same value; the loser re-reads the winner's id.
	set, err := r.client.HSetNX(ctx, forwardKey(scope), value, id).Result()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "redis register failed")
	}
	if !set {
		winner, err := r.client.HGet(ctx, forwardKey(scope), value).Result()
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "redis lookup failed")
		}
		return winner, nil
	}
	if err := r.client.HSet(ctx, reverseKey(scope), id, value).Err(); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "redis register failed")
	}

	pipe := r.client.Pipeline()
	pipe.Expire(ctx, forwardKey(scope), r.ttl)
	pipe.Expire(ctx, reverseKey(scope), r.ttl)
	pipe.Expire(ctx, seqKey(scope), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "redis expire failed")
	}
	return id, nil
}

func (r *RedisRegistry) Resolve(ctx context.Context, scope, shortID string) (string, error) {
	value, err := r.client.HGet(ctx, reverseKey(scope), shortID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "redis lookup failed")
	}
	return value, nil
}
