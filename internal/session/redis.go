package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "smile:session:"
	accountKeyPrefix = "smile:account_sessions:"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a session store backed by redis. Sessions expire
// through redis TTLs; the per-account index sets exist so every session of
// an account can be revoked at once.
func NewRedisStore(addr, password string, db int, ttl time.Duration) Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, data Data) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}

	id := newSessionID()
	key := sessionKeyPrefix + id
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	indexKey := accountKeyPrefix + data.AccountID.String()
	if err := s.client.SAdd(ctx, indexKey, id).Err(); err != nil {
		return "", fmt.Errorf("failed to index session: %w", err)
	}
	// Index members are also pruned by the background sweeper, the expiry
	// here just keeps abandoned indexes from living forever.
	s.client.Expire(ctx, indexKey, s.ttl*2)

	return id, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*Data, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // no such session
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &data, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	data, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if data != nil {
		s.client.SRem(ctx, accountKeyPrefix+data.AccountID.String(), id)
	}
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

func (s *redisStore) DeleteAllForAccount(ctx context.Context, accountID uuid.UUID) error {
	indexKey := accountKeyPrefix + accountID.String()
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list account sessions: %w", err)
	}

	for _, id := range ids {
		if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	return s.client.Del(ctx, indexKey).Err()
}

// SweepAccountIndexes removes index members whose session key has expired.
// Redis drops the sessions themselves via TTL, the set members linger.
func (s *redisStore) SweepAccountIndexes(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, accountKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		indexKey := iter.Val()
		ids, err := s.client.SMembers(ctx, indexKey).Result()
		if err != nil {
			return fmt.Errorf("failed to read index %s: %w", indexKey, err)
		}
		for _, id := range ids {
			exists, err := s.client.Exists(ctx, sessionKeyPrefix+id).Result()
			if err != nil {
				return fmt.Errorf("failed to check session %s: %w", id, err)
			}
			if exists == 0 {
				s.client.SRem(ctx, indexKey, id)
			}
		}
	}
	return iter.Err()
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
