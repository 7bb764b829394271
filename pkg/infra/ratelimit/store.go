package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable is returned when bucket state cannot be read or written.
var ErrStoreUnavailable = errors.New("bucket store unavailable")

//go:generate mockery --name=BucketStore --dir=. --output=./mocks --filename=bucket_store_mock.go --case=underscore --with-expecter
type BucketStore interface {
	// GetOrCreate returns the handle of the bucket for key. The bucket itself is
	// created lazily, full, on the first consume.
	GetOrCreate(key string, capacity int64, window time.Duration) BucketHandle
}

//go:generate mockery --name=BucketHandle --dir=. --output=./mocks --filename=bucket_handle_mock.go --case=underscore --with-expecter
type BucketHandle interface {
	// TryConsume refills the bucket and removes n tokens if available, as one
	// indivisible step.
	TryConsume(ctx context.Context, n int64) (Result, error)
}

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)
