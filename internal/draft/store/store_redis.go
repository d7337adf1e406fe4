package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"commune/internal/draft/models"
	dErrors "commune/pkg/domain-errors"
)

const draftKeyPrefix = "draft:"

// DefaultDraftTTL bounds how long an abandoned draft survives.
const DefaultDraftTTL = 30 * 24 * time.Hour

// RedisStore keeps drafts in Redis so multiple instances share responder
// sessions. Writes are last-writer-wins, matching the store contract.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisStoreOption func(*RedisStore)

// WithTTL overrides the draft expiry.
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, ttl: DefaultDraftTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func redisKey(collectionID, responderID string) string {
	return draftKeyPrefix + collectionID + ":" + responderID
}

func (s *RedisStore) Get(ctx context.Context, collectionID, responderID string) (models.Draft, error) {
	raw, err := s.client.Get(ctx, redisKey(collectionID, responderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Draft{}, ErrNotFound
	}
	if err != nil {
		return models.Draft{}, dErrors.Wrap(err, dErrors.CodeInternal, "redis get failed")
	}
	var draft models.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return models.Draft{}, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt draft payload")
	}
	return draft, nil
}

func (s *RedisStore) Put(ctx context.Context, draft models.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode draft failed")
	}
	key := redisKey(draft.CollectionID, draft.ResponderID)
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "redis set failed")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, collectionID, responderID string) error {
	if err := s.client.Del(ctx, redisKey(collectionID, responderID)).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "redis del failed")
	}
	return nil
}
