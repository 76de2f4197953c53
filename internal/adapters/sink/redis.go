package sink

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Redis stores terms as a Redis list, one element per term, in order. The
// list at the destination key is replaced on every write.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis sink.
type RedisOption func(*Redis)

// WithKeyPrefix sets the prefix prepended to every destination key.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *Redis) {
		s.prefix = prefix
	}
}

// WithTTL sets the expiration of written lists.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *Redis) {
		s.ttl = ttl
	}
}

// NewRedis creates a Redis sink connected to address.
func NewRedis(address, password string, db int, opts ...RedisOption) *Redis {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(client, opts...)
}

// NewRedisFromClient creates a Redis sink from an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	s := &Redis{
		client: client,
		prefix: "keyterms:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the Redis key used for destination.
func (s *Redis) Key(destination string) string {
	return s.prefix + destination
}

// Write replaces the list at the destination key with terms.
func (s *Redis) Write(ctx context.Context, destination string, terms []string) error {
	key := s.Key(destination)

	values := make([]interface{}, len(terms))
	for i, term := range terms {
		values[i] = term
	}

	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.RPush(ctx, key, values...)
			if s.ttl > 0 {
				pipe.Expire(ctx, key, s.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write terms to redis: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Redis) Close() error {
	return s.client.Close()
}
