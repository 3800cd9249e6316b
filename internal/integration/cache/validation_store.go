// Package cache implements Redis-backed storage adapters.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/domain/entity"
)

// validationKeyPrefix namespaces validation records in the shared keyspace.
const validationKeyPrefix = "trustd:validation:"

// redisValidationStore implements the adapter.ValidationStore interface on
// Redis. Records expire with the store TTL so revoked or abandoned sessions
// do not accumulate.
type redisValidationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisValidationStore creates a Redis-backed validation store. Records
// live for ttl; a non-positive ttl stores them without expiry.
func NewRedisValidationStore(client *redis.Client, ttl time.Duration) adapter.ValidationStore {
	return &redisValidationStore{
		client: client,
		ttl:    ttl,
	}
}

func validationKey(sessionID string) string {
	return validationKeyPrefix + sessionID
}

// Save writes the record under its session key, replacing any previous one.
func (s *redisValidationStore) Save(ctx context.Context, record *entity.ClientValidationRecord) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode validation record: %w", err)
	}

	var ttl time.Duration
	if s.ttl > 0 {
		ttl = s.ttl
	}
	if err := s.client.Set(ctx, validationKey(record.SessionID), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store validation record: %w", err)
	}
	return nil
}

// Load returns the stored record, or (nil, nil) when none exists.
func (s *redisValidationStore) Load(ctx context.Context, sessionID string) (*entity.ClientValidationRecord, error) {
	encoded, err := s.client.Get(ctx, validationKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load validation record: %w", err)
	}

	var record entity.ClientValidationRecord
	if err := json.Unmarshal(encoded, &record); err != nil {
		return nil, fmt.Errorf("failed to decode validation record: %w", err)
	}
	return &record, nil
}

// Delete removes the record. Deleting a missing record is not an error.
func (s *redisValidationStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, validationKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete validation record: %w", err)
	}
	return nil
}
