package filters_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/NeuralTrust/GateFilters/pkg/app/identity"
	"github.com/NeuralTrust/GateFilters/pkg/app/routing"
	domain "github.com/NeuralTrust/GateFilters/pkg/domain/errors"
	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
	"github.com/NeuralTrust/GateFilters/pkg/filters"
	"github.com/NeuralTrust/GateFilters/pkg/filters/access_control"
	"github.com/NeuralTrust/GateFilters/pkg/filters/rate_limiting"
	"github.com/NeuralTrust/GateFilters/pkg/filters/swagger_rewrite"
	"github.com/NeuralTrust/GateFilters/pkg/filters/token_relay"
	infraFilters "github.com/NeuralTrust/GateFilters/pkg/infra/filters"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/infra/jwt"
	"github.com/NeuralTrust/GateFilters/pkg/infra/ratelimit"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newDependencies(t *testing.T) filters.Dependencies {
	t.Helper()
	routes, err := routing.NewRouteTable([]route.Route{
		{ID: "serviceX", Path: "/serviceX/**", Location: "http://service-x:8081"},
		{ID: "uaa", Path: "/uaa/**", Location: "http://uaa:9999"},
	})
	require.NoError(t, err)

	manager, err := jwt.NewJwtManager(jwt.Config{Secret: "test-secret"})
	require.NoError(t, err)

	logger := newTestLogger()
	return filters.Dependencies{
		Routes:   routes,
		Identity: identity.NewResolver(manager, logger),
		Logger:   logger,
	}
}

func allFilters(limit int) map[string]filterTypes.FilterConfig {
	return map[string]filterTypes.FilterConfig{
		access_control.FilterName: {
			Name:    access_control.FilterName,
			Enabled: true,
			Settings: map[string]interface{}{
				"authorized_microservices_endpoints": map[string]interface{}{
					"servicex": []interface{}{"/public/**"},
				},
			},
		},
		rate_limiting.FilterName: {
			Name:    rate_limiting.FilterName,
			Enabled: true,
			Settings: map[string]interface{}{
				"limit":          limit,
				"window_seconds": 60,
			},
		},
		token_relay.FilterName:     {Name: token_relay.FilterName, Enabled: true},
		swagger_rewrite.FilterName: {Name: swagger_rewrite.FilterName, Enabled: true},
	}
}

func TestInitializeFilters(t *testing.T) {
	manager := infraFilters.NewManager(newTestLogger(), infraFilters.WithMetrics(false))

	require.NoError(t, filters.InitializeFilters(manager, allFilters(10), newDependencies(t)))

	var pre []string
	for _, f := range manager.Filters(filterTypes.Pre) {
		pre = append(pre, f.Name())
	}
	assert.Equal(t, []string{access_control.FilterName, rate_limiting.FilterName, token_relay.FilterName}, pre)

	post := manager.Filters(filterTypes.Post)
	require.Len(t, post, 1)
	assert.Equal(t, swagger_rewrite.FilterName, post[0].Name())
}

func TestInitializeFilters_SkipsDisabled(t *testing.T) {
	manager := infraFilters.NewManager(newTestLogger(), infraFilters.WithMetrics(false))
	configs := allFilters(10)
	relay := configs[token_relay.FilterName]
	relay.Enabled = false
	configs[token_relay.FilterName] = relay

	require.NoError(t, filters.InitializeFilters(manager, configs, newDependencies(t)))

	assert.Nil(t, manager.GetFilter(token_relay.FilterName))
	assert.NotNil(t, manager.GetFilter(access_control.FilterName))
}

func TestInitializeFilters_UnknownFilter(t *testing.T) {
	manager := infraFilters.NewManager(newTestLogger(), infraFilters.WithMetrics(false))
	configs := map[string]filterTypes.FilterConfig{"sticky_session": {Enabled: true}}

	err := filters.InitializeFilters(manager, configs, newDependencies(t))

	assert.ErrorIs(t, err, filterTypes.ErrUnknownFilter)
}

func TestInitializeFilters_InvalidSettings(t *testing.T) {
	manager := infraFilters.NewManager(newTestLogger(), infraFilters.WithMetrics(false))
	configs := map[string]filterTypes.FilterConfig{
		rate_limiting.FilterName: {Enabled: true, Settings: map[string]interface{}{"limit": -1}},
	}

	err := filters.InitializeFilters(manager, configs, newDependencies(t))

	assert.True(t, domain.IsConfigurationError(err))
}

func TestNewBucketStore(t *testing.T) {
	deps := newDependencies(t)

	store, err := filters.NewBucketStore(ratelimit.StoreMemory, deps)
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.MemoryStore{}, store)

	_, err = filters.NewBucketStore(ratelimit.StoreRedis, deps)
	assert.True(t, domain.IsConfigurationError(err))

	client, _ := redismock.NewClientMock()
	deps.Redis = client
	store, err = filters.NewBucketStore(ratelimit.StoreRedis, deps)
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.BreakerStore{}, store)

	_, err = filters.NewBucketStore("memcached", deps)
	assert.True(t, domain.IsConfigurationError(err))
}

func runPre(t *testing.T, manager infraFilters.Manager, path string) *types.RequestContext {
	t.Helper()
	req := types.NewRequestContext(context.Background(), http.MethodGet, path)
	req.RemoteAddr = "10.1.2.3:40000"
	require.NoError(t, manager.ExecutePhase(req.Context, filterTypes.Pre, req))
	return req
}

func TestPipeline_DeniedRequestsDoNotSpendQuota(t *testing.T) {
	manager := infraFilters.NewManager(newTestLogger(), infraFilters.WithMetrics(false))
	require.NoError(t, filters.InitializeFilters(manager, allFilters(1), newDependencies(t)))

	for i := 0; i < 3; i++ {
		denied := runPre(t, manager, "/serviceX/private/data")
		assert.Equal(t, http.StatusForbidden, denied.Response.StatusCode)
		assert.False(t, denied.SendToBackend)
		assert.Empty(t, denied.Response.Header("X-RateLimit-Remaining"))
	}

	allowed := runPre(t, manager, "/serviceX/public/data")
	assert.True(t, allowed.SendToBackend)
	assert.Equal(t, http.StatusOK, allowed.Response.StatusCode)
	assert.Equal(t, "0", allowed.Response.Header("X-RateLimit-Remaining"))
	require.NotNil(t, allowed.Route)
	assert.Equal(t, "serviceX", allowed.Route.ID)
	assert.False(t, allowed.IsIgnored("Authorization"))

	limited := runPre(t, manager, "/uaa/oauth/token")
	assert.Equal(t, http.StatusTooManyRequests, limited.Response.StatusCode)
	assert.False(t, limited.SendToBackend)
	assert.Equal(t, "API rate limit exceeded", string(limited.Response.Body))
}
