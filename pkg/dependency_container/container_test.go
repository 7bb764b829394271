package dependency_container

import (
	"io"
	"testing"

	"github.com/NeuralTrust/GateFilters/pkg/config"
	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
	"github.com/NeuralTrust/GateFilters/pkg/filters/access_control"
	"github.com/NeuralTrust/GateFilters/pkg/filters/rate_limiting"
	"github.com/NeuralTrust/GateFilters/pkg/filters/swagger_rewrite"
	"github.com/NeuralTrust/GateFilters/pkg/filters/token_relay"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{ProxyPort: 8080, MetricsPort: 9090},
		Routes: []route.Route{
			{ID: "serviceX", Path: "/serviceX/**", Location: "http://service-x:8081"},
		},
		Filters: map[string]filterTypes.FilterConfig{
			access_control.FilterName: {Name: access_control.FilterName, Enabled: true},
			rate_limiting.FilterName: {
				Name:     rate_limiting.FilterName,
				Enabled:  true,
				Settings: map[string]interface{}{"store": "memory"},
			},
			token_relay.FilterName: {Name: token_relay.FilterName, Enabled: true},
		},
	}
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewContainer(t *testing.T) {
	c, err := NewContainer(newTestConfig(), newTestLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Redis)
	assert.Len(t, c.FilterManager.Filters(filterTypes.Pre), 3)
	assert.NotNil(t, c.HandlerTransport.ForwardedHandler)
	assert.NotNil(t, c.HandlerTransport.ListRoutesHandler)
	assert.NotNil(t, c.HandlerTransport.ListSwaggerResourcesHandler)
	assert.NotNil(t, c.MiddlewareTransport.TraceMiddleware)
}

func TestNewContainer_InvalidRoute(t *testing.T) {
	cfg := newTestConfig()
	cfg.Routes = append(cfg.Routes, route.Route{ID: "bad", Path: "/bad", Location: "http://bad"})

	_, err := NewContainer(cfg, newTestLogger())
	assert.Error(t, err)
}

func TestDocsSuffix(t *testing.T) {
	cfg := newTestConfig()
	assert.Equal(t, swagger_rewrite.DefaultDocsSuffix, docsSuffix(cfg))

	cfg.Filters[swagger_rewrite.FilterName] = filterTypes.FilterConfig{
		Name:     swagger_rewrite.FilterName,
		Enabled:  true,
		Settings: map[string]interface{}{"docs_suffix": "/v3/api-docs"},
	}
	assert.Equal(t, "/v3/api-docs", docsSuffix(cfg))
}

func TestNeedsRedis(t *testing.T) {
	cfg := newTestConfig()
	assert.False(t, needsRedis(cfg))

	rl := cfg.Filters[rate_limiting.FilterName]
	rl.Settings = map[string]interface{}{"store": "redis"}
	cfg.Filters[rate_limiting.FilterName] = rl
	assert.True(t, needsRedis(cfg))

	rl.Enabled = false
	cfg.Filters[rate_limiting.FilterName] = rl
	assert.False(t, needsRedis(cfg))
}
