package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:embed token_bucket.lua
var tokenBucketLua string

var tokenBucketScript = redis.NewScript(tokenBucketLua)

const DefaultKeyPrefix = "ratelimit:bucket:"

// RedisStore shares buckets between gateway instances. The refill and consume
// run inside a single Lua script so they are atomic on the server.
type RedisStore struct {
	client    redis.UniversalClient
	clock     Clock
	keyPrefix string
}

type RedisOption func(*RedisStore)

func WithRedisClock(clock Clock) RedisOption {
	return func(s *RedisStore) {
		s.clock = clock
	}
}

func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.keyPrefix = prefix
	}
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		clock:     SystemClock{},
		keyPrefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) GetOrCreate(key string, capacity int64, window time.Duration) BucketHandle {
	return &redisHandle{store: s, key: s.keyPrefix + key, limit: Limit{Capacity: capacity, Window: window}}
}

// scriptArgs builds the script arguments. They are int64 throughout so the
// command is identical however it is issued.
func (s *RedisStore) scriptArgs(limit Limit, n int64) []interface{} {
	expiry := (limit.Window + time.Second).Milliseconds()
	return []interface{}{
		limit.units(),
		limit.Window.Microseconds(),
		s.clock.Now().UnixMicro(),
		n * Unit,
		expiry,
	}
}

func (s *RedisStore) consume(ctx context.Context, key string, limit Limit, n int64) (Result, error) {
	args := s.scriptArgs(limit, n)
	// Run falls back to EVAL when the server answers NOSCRIPT
	raw, err := tokenBucketScript.Run(ctx, s.client, []string{key}, args...).Result()
	if err != nil {
		// a caller that went away says nothing about the health of the store
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("bucket %s: %w", key, ctxErr)
		}
		return Result{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return Result{}, fmt.Errorf("%w: unexpected script reply %v", ErrStoreUnavailable, raw)
	}
	allowed, ok1 := values[0].(int64)
	tokens, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return Result{}, fmt.Errorf("%w: unexpected script reply %v", ErrStoreUnavailable, raw)
	}

	res := Result{
		Allowed:   allowed == 1,
		Limit:     limit.Capacity,
		Remaining: tokens / Unit,
	}
	if !res.Allowed {
		res.RetryAfter = retryAfter(limit, tokens, n*Unit)
	}
	return res, nil
}

type redisHandle struct {
	store *RedisStore
	key   string
	limit Limit
}

func (h *redisHandle) TryConsume(ctx context.Context, n int64) (Result, error) {
	if err := h.limit.Validate(); err != nil {
		return Result{}, err
	}
	if err := validateCost(h.limit, n); err != nil {
		return Result{}, err
	}
	return h.store.consume(ctx, h.key, h.limit, n)
}
