package keystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"adminpro/console/internal/config"
)

// Redis is a shared keyring. Every Set/Delete publishes the changed key on a
// notification channel so other console processes can re-hydrate their
// session state, mirroring the file backend's mtime polling.
type Redis struct {
	client  *redis.Client
	prefix  string
	channel string
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{
		client:  client,
		prefix:  cfg.Prefix,
		channel: cfg.Prefix + ":keyspace",
	}, nil
}

func (s *Redis) key(key string) string {
	return s.prefix + ":" + key
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	s.notify(ctx, key)
	return nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	s.notify(ctx, key)
	return nil
}

func (s *Redis) notify(ctx context.Context, key string) {
	// Best effort; a missed notification is caught by the next hydration.
	_ = s.client.Publish(ctx, s.channel, key).Err()
}

// Watch subscribes to the keyring's notification channel and invokes fn for
// every change to one of the watched keys. Blocks until ctx is done.
func (s *Redis) Watch(ctx context.Context, keys []string, fn func()) error {
	watched := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		watched[key] = struct{}{}
	}

	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if _, hit := watched[msg.Payload]; hit {
				fn()
			}
		}
	}
}

func (s *Redis) Close() error {
	return s.client.Close()
}
