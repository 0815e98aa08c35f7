// Package sessionstore provides the persistent stores for storefront
// sessions. Redis backs production; an in-memory store covers local
// development and tests.
package sessionstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Benmwania/ecomart/config"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const keyPrefix = "storefront:session:"

// RedisStore keeps sessions in Redis, keyed by session id with a TTL
// derived from the session's expiry.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore connects to Redis and registers a close hook on the fx
// lifecycle.
func NewRedisStore(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*RedisStore, error) {
	if cfg.Redis == nil || cfg.Redis.Address == "" {
		return nil, errors.New("redis.address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "ping redis")
			}

			return nil
		},
		OnStop: func(context.Context) error {
			return errors.Wrap(client.Close(), "close redis client")
		},
	})

	return &RedisStore{client: client, logger: logger}, nil
}

func (s *RedisStore) Save(ctx context.Context, session *entity.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	if err := s.client.Set(ctx, keyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "save session")
	}

	return nil
}

func (s *RedisStore) Find(ctx context.Context, id string) (*entity.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.WithStack(gateway.ErrSessionNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	if session.Expired(time.Now()) {
		return nil, errors.WithStack(gateway.ErrSessionNotFound)
	}

	return &session, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return errors.Wrap(err, "delete session")
	}

	return nil
}
