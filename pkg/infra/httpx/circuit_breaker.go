package httpx

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// ErrBackendUnavailable is returned while a backend's breaker is open.
var ErrBackendUnavailable = errors.New("backend unavailable")

type CircuitBreaker interface {
	Execute(fn func() error) error
}

type backendBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(name string, timeout time.Duration, maxFailures uint32) CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
	return &backendBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *backendBreaker) Execute(fn func() error) error {
	_, err := b.breaker.Execute(func() (result interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic recovered: %v", r)
			}
		}()
		return nil, fn()
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("breaker (%s): %w: %w", b.breaker.Name(), ErrBackendUnavailable, err)
	}
	return fmt.Errorf("breaker (%s): %w", b.breaker.Name(), err)
}

// BreakerRegistry hands out one breaker per backend so a failing service
// does not trip calls to healthy ones.
type BreakerRegistry struct {
	mu          sync.Mutex
	breakers    map[string]CircuitBreaker
	timeout     time.Duration
	maxFailures uint32
}

func NewBreakerRegistry(timeout time.Duration, maxFailures uint32) *BreakerRegistry {
	return &BreakerRegistry{
		breakers:    make(map[string]CircuitBreaker),
		timeout:     timeout,
		maxFailures: maxFailures,
	}
}

func (r *BreakerRegistry) Get(backend string) CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cb, ok := r.breakers[backend]; ok {
		return cb
	}
	cb := NewCircuitBreaker(backend, r.timeout, r.maxFailures)
	r.breakers[backend] = cb
	return cb
}
