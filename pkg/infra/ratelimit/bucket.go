package ratelimit

import (
	"errors"
	"fmt"
	"math/bits"
	"time"
)

// Unit is the number of fixed-point units in one token. Partial refill is kept
// in units so that slow refill rates still accumulate exactly.
const Unit int64 = 1_000_000

var (
	ErrInvalidLimit = errors.New("invalid rate limit")
	ErrInvalidCost  = errors.New("invalid token cost")
)

// Limit describes a bucket: Capacity tokens, refilled at Capacity per Window.
type Limit struct {
	Capacity int64
	Window   time.Duration
}

func (l Limit) Validate() error {
	if l.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidLimit, l.Capacity)
	}
	if l.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidLimit, l.Window)
	}
	if l.Capacity > maxCapacity {
		return fmt.Errorf("%w: capacity %d exceeds %d", ErrInvalidLimit, l.Capacity, maxCapacity)
	}
	return nil
}

// maxCapacity keeps capacity*Unit inside the exact integer range of a float64,
// which is what the redis script computes with.
const maxCapacity = (1 << 53) / Unit

func (l Limit) units() int64 {
	return l.Capacity * Unit
}

// Result is the outcome of one consume attempt.
type Result struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	// RetryAfter is the wait until the requested tokens are available. Zero when Allowed.
	RetryAfter time.Duration
}

// bucketState is the mutable part of a bucket. Tokens are in units.
type bucketState struct {
	tokens int64
	last   time.Time
}

func newBucketState(limit Limit, now time.Time) bucketState {
	return bucketState{tokens: limit.units(), last: now}
}

// refill adds the tokens earned since the last refill, capped at capacity.
// A clock that moved backwards adds nothing and leaves last untouched.
func (s *bucketState) refill(limit Limit, now time.Time) {
	elapsed := now.Sub(s.last)
	if elapsed <= 0 {
		return
	}
	if elapsed >= limit.Window {
		s.tokens = limit.units()
		s.last = now
		return
	}
	added := scale(uint64(elapsed), uint64(limit.units()), uint64(limit.Window))
	s.tokens += added
	if s.tokens >= limit.units() {
		s.tokens = limit.units()
		s.last = now
		return
	}
	// only the time that produced whole units is spent, the rest carries over
	s.last = s.last.Add(time.Duration(scale(uint64(added), uint64(limit.Window), uint64(limit.units()))))
}

// take refills the bucket then removes cost tokens when enough are available.
func (s *bucketState) take(limit Limit, now time.Time, cost int64) Result {
	s.refill(limit, now)

	need := cost * Unit
	if s.tokens >= need {
		s.tokens -= need
		return Result{Allowed: true, Limit: limit.Capacity, Remaining: s.tokens / Unit}
	}
	return Result{
		Allowed:    false,
		Limit:      limit.Capacity,
		Remaining:  s.tokens / Unit,
		RetryAfter: retryAfter(limit, s.tokens, need),
	}
}

// retryAfter is the time it takes to refill from tokens to need, rounded up.
func retryAfter(limit Limit, tokens, need int64) time.Duration {
	deficit := need - tokens
	if deficit <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(deficit), uint64(limit.Window))
	quo, rem := bits.Div64(hi, lo, uint64(limit.units()))
	if rem != 0 {
		quo++
	}
	return time.Duration(quo)
}

// scale returns a*b/c without overflowing the intermediate product. Callers
// guarantee a < c so the quotient fits in 64 bits.
func scale(a, b, c uint64) int64 {
	hi, lo := bits.Mul64(a, b)
	quo, _ := bits.Div64(hi, lo, c)
	return int64(quo)
}

func validateCost(limit Limit, cost int64) error {
	if cost <= 0 || cost > limit.Capacity {
		return fmt.Errorf("%w: %d for capacity %d", ErrInvalidCost, cost, limit.Capacity)
	}
	return nil
}
