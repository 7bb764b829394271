package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

type BreakerConfig struct {
	Name        string
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:        "bucket-store",
		MaxFailures: 5,
		OpenTimeout: 10 * time.Second,
	}
}

// BreakerStore stops calling a failing store for a while so a remote outage
// costs one fast error per request instead of one timeout.
type BreakerStore struct {
	next    BucketStore
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerStore(next BucketStore, cfg BreakerConfig, logger *logrus.Logger) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// only store outages count against the breaker
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrStoreUnavailable)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("bucket store circuit breaker changed state")
		},
	}
	return &BreakerStore{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (s *BreakerStore) GetOrCreate(key string, capacity int64, window time.Duration) BucketHandle {
	return &breakerHandle{next: s.next.GetOrCreate(key, capacity, window), breaker: s.breaker}
}

func (s *BreakerStore) State() gobreaker.State {
	return s.breaker.State()
}

type breakerHandle struct {
	next    BucketHandle
	breaker *gobreaker.CircuitBreaker
}

func (h *breakerHandle) TryConsume(ctx context.Context, n int64) (Result, error) {
	out, err := h.breaker.Execute(func() (interface{}, error) {
		return h.next.TryConsume(ctx, n)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Result{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return Result{}, err
	}
	res, _ := out.(Result)
	return res, nil
}
