package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxUpdateAttempts bounds the optimistic retries of one Update.
const maxUpdateAttempts = 100

var ErrUpdateConflict = errors.New("session kept changing concurrently")

// RedisStore implements Store on Redis. Every save refreshes the TTL.
// Updates use WATCH/MULTI so that replicas sharing the store never lose
// each other's changes.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	return r.get(ctx, r.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisStore) get(ctx context.Context, c getter, id string) (*Session, error) {
	data, err := c.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return decodeSession(data)
}

func (r *RedisStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Update reads, applies fn and writes inside a WATCH on the session key.
// A write by anyone else in between aborts the transaction and fn runs
// again on the fresh value.
func (r *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error) {
	key := sessionKey(id)

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		var saved *Session
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := r.get(ctx, tx, id)
			if errors.Is(err, ErrSessionNotFound) {
				current = nil
			} else if err != nil {
				return err
			}

			next, err := fn(current)
			if err != nil {
				return err
			}
			data, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("marshal session failed: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, r.ttl)
				return nil
			})
			if err != nil {
				return fmt.Errorf("redis set failed: %w", err)
			}
			saved = next
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return saved, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUpdateConflict, id)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("shop:session:%s", id)
}
