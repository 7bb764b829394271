package rate_limiting_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/filters/rate_limiting"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/infra/ratelimit"
	ratelimitMocks "github.com/NeuralTrust/GateFilters/pkg/infra/ratelimit/mocks"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticResolver map[string]string

// CurrentPrincipal resolves the Authorization header value through the map.
func (r staticResolver) CurrentPrincipal(req *types.RequestContext) (string, bool) {
	login, ok := r[req.Header("Authorization")]
	return login, ok
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func boolPtr(b bool) *bool { return &b }

func newRequest(remoteAddr string) *types.RequestContext {
	req := types.NewRequestContext(context.Background(), http.MethodGet, "/serviceX/api")
	req.RemoteAddr = remoteAddr
	return req
}

func newFilterForTesting(t *testing.T, limit, windowSeconds int64) (*rate_limiting.RateLimitingFilter, *ratelimit.FixedClock) {
	t.Helper()
	clock := ratelimit.NewFixedClock(time.Unix(1_700_000_000, 0))
	store := ratelimit.NewMemoryStore(ratelimit.WithMemoryClock(clock))
	cfg, err := rate_limiting.DecodeConfig(map[string]interface{}{
		"limit":          limit,
		"window_seconds": windowSeconds,
	})
	require.NoError(t, err)
	f, ok := rate_limiting.NewRateLimitingFilter(store, staticResolver{"Bearer alice": "alice"}, cfg, newLogger()).(*rate_limiting.RateLimitingFilter)
	require.True(t, ok)
	return f, clock
}

func TestRateLimitingFilter_Metadata(t *testing.T) {
	f, _ := newFilterForTesting(t, 5, 60)
	assert.Equal(t, "rate_limiting", f.Name())
	assert.Equal(t, filterTypes.Pre, f.Phase())
	assert.Equal(t, 10, f.Order())
}

func TestRateLimitingFilter_ShouldFilter(t *testing.T) {
	f, _ := newFilterForTesting(t, 5, 60)
	req := newRequest("10.0.0.1:1234")
	assert.True(t, f.ShouldFilter(req))

	req.Block(http.StatusForbidden)
	assert.False(t, f.ShouldFilter(req))
}

func TestRateLimitingFilter_SixthRequestIsRejected(t *testing.T) {
	f, _ := newFilterForTesting(t, 5, 60)

	for i := 1; i <= 5; i++ {
		req := newRequest("10.0.0.1:1234")
		require.NoError(t, f.Run(req))
		assert.True(t, req.SendToBackend, "request %d", i)
		assert.Equal(t, http.StatusOK, req.Response.StatusCode)
		assert.Equal(t, "5", req.Response.Header("X-RateLimit-Limit"))
		assert.Equal(t, fmt.Sprint(5-i), req.Response.Header("X-RateLimit-Remaining"))
	}

	req := newRequest("10.0.0.1:4321")
	require.NoError(t, f.Run(req))

	assert.False(t, req.SendToBackend)
	assert.Equal(t, http.StatusTooManyRequests, req.Response.StatusCode)
	assert.Equal(t, "API rate limit exceeded", string(req.Response.Body))
	assert.Equal(t, "12", req.Response.Header("Retry-After"))
	assert.Equal(t, "0", req.Response.Header("X-RateLimit-Remaining"))
}

func TestRateLimitingFilter_RefillsAfterWindow(t *testing.T) {
	f, clock := newFilterForTesting(t, 5, 60)
	for i := 0; i < 6; i++ {
		require.NoError(t, f.Run(newRequest("10.0.0.1:1234")))
	}

	clock.Advance(60 * time.Second)

	req := newRequest("10.0.0.1:1234")
	require.NoError(t, f.Run(req))
	assert.True(t, req.SendToBackend)
	assert.Equal(t, "4", req.Response.Header("X-RateLimit-Remaining"))
}

func TestRateLimitingFilter_ClientKeys(t *testing.T) {
	f, _ := newFilterForTesting(t, 1, 60)

	anonymous := newRequest("10.0.0.1:1234")
	assert.Equal(t, "ip:10.0.0.1", f.ClientKey(anonymous))

	user := newRequest("10.0.0.1:1234")
	user.Headers["Authorization"] = []string{"Bearer alice"}
	assert.Equal(t, "user:alice", f.ClientKey(user))

	// the login and the address draw from separate buckets
	require.NoError(t, f.Run(anonymous))
	require.NoError(t, f.Run(user))
	assert.True(t, anonymous.SendToBackend)
	assert.True(t, user.SendToBackend)

	// same login from another address shares the bucket
	again := newRequest("10.9.9.9:1")
	again.Headers["Authorization"] = []string{"Bearer alice"}
	require.NoError(t, f.Run(again))
	assert.False(t, again.SendToBackend)
}

func TestRateLimitingFilter_KeepsExistingBody(t *testing.T) {
	f, _ := newFilterForTesting(t, 1, 60)
	require.NoError(t, f.Run(newRequest("10.0.0.1:1")))

	req := newRequest("10.0.0.1:1")
	req.Response.WriteBody([]byte("already set"))
	require.NoError(t, f.Run(req))

	assert.Equal(t, http.StatusTooManyRequests, req.Response.StatusCode)
	assert.Equal(t, "already set", string(req.Response.Body))
	assert.True(t, req.SendToBackend)
}

func TestRateLimitingFilter_StoreUnavailable(t *testing.T) {
	storeErr := fmt.Errorf("%w: connection refused", ratelimit.ErrStoreUnavailable)

	newFailingFilter := func(t *testing.T, failOpen bool) *rate_limiting.RateLimitingFilter {
		handle := ratelimitMocks.NewBucketHandle(t)
		handle.EXPECT().TryConsume(mock.Anything, int64(1)).Return(ratelimit.Result{}, storeErr).Once()
		store := ratelimitMocks.NewBucketStore(t)
		store.EXPECT().GetOrCreate("ip:10.0.0.1", int64(5), 60*time.Second).Return(handle).Once()

		cfg, err := rate_limiting.DecodeConfig(map[string]interface{}{
			"limit":          5,
			"window_seconds": 60,
			"store":          "redis",
			"fail_open":      failOpen,
		})
		require.NoError(t, err)
		f, ok := rate_limiting.NewRateLimitingFilter(store, nil, cfg, newLogger()).(*rate_limiting.RateLimitingFilter)
		require.True(t, ok)
		return f
	}

	t.Run("fail open admits the request", func(t *testing.T) {
		f := newFailingFilter(t, true)
		req := newRequest("10.0.0.1:1234")

		require.NoError(t, f.Run(req))

		assert.True(t, req.SendToBackend)
		assert.Equal(t, http.StatusOK, req.Response.StatusCode)
		assert.Empty(t, req.Response.Header("X-RateLimit-Limit"))
	})

	t.Run("fail closed rejects with 503", func(t *testing.T) {
		f := newFailingFilter(t, false)
		req := newRequest("10.0.0.1:1234")

		require.NoError(t, f.Run(req))

		assert.False(t, req.SendToBackend)
		assert.Equal(t, http.StatusServiceUnavailable, req.Response.StatusCode)
		assert.Equal(t, "Service Unavailable", string(req.Response.Body))
	})
}

func TestDecodeConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := rate_limiting.DecodeConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, int64(rate_limiting.DefaultLimit), cfg.Limit)
		assert.Equal(t, time.Hour, cfg.Window())
		assert.Equal(t, ratelimit.StoreMemory, cfg.Store)
		assert.Equal(t, boolPtr(true), cfg.FailOpen)
	})

	t.Run("string values from env", func(t *testing.T) {
		cfg, err := rate_limiting.DecodeConfig(map[string]interface{}{
			"limit":          "5",
			"window_seconds": "60",
			"fail_open":      "false",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), cfg.Limit)
		assert.Equal(t, time.Minute, cfg.Window())
		assert.Equal(t, boolPtr(false), cfg.FailOpen)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, settings := range []map[string]interface{}{
			{"limit": -1},
			{"window_seconds": -5},
			{"store": "memcached"},
			{"limit": "many"},
		} {
			_, err := rate_limiting.DecodeConfig(settings)
			assert.Error(t, err, "%v", settings)
		}
	})
}

