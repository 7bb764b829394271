package access_control_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/NeuralTrust/GateFilters/pkg/app/routing"
	routingMocks "github.com/NeuralTrust/GateFilters/pkg/app/routing/mocks"
	domain "github.com/NeuralTrust/GateFilters/pkg/domain/errors"
	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
	"github.com/NeuralTrust/GateFilters/pkg/filters/access_control"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newFilter(t *testing.T, allow map[string][]string) *access_control.AccessControlFilter {
	t.Helper()
	table, err := routing.NewRouteTable([]route.Route{
		{ID: "serviceX", Path: "/serviceX/**", Location: "http://service-x:8081"},
		{ID: "uaa", Path: "/uaa/**", Location: "http://uaa:9999"},
		{ID: "open", Path: "/open/**", Location: "http://open:8082"},
	})
	require.NoError(t, err)
	policy, err := access_control.NewPolicy(allow)
	require.NoError(t, err)
	f, ok := access_control.NewAccessControlFilter(table, policy, newLogger()).(*access_control.AccessControlFilter)
	require.True(t, ok)
	return f
}

func run(t *testing.T, f *access_control.AccessControlFilter, path string) *types.RequestContext {
	t.Helper()
	req := types.NewRequestContext(context.Background(), http.MethodGet, path)
	require.True(t, f.ShouldFilter(req))
	require.NoError(t, f.Run(req))
	return req
}

func TestAccessControlFilter_Metadata(t *testing.T) {
	f := newFilter(t, nil)
	assert.Equal(t, "access_control", f.Name())
	assert.Equal(t, filterTypes.Pre, f.Phase())
	assert.Equal(t, 0, f.Order())
}

func TestAccessControlFilter_Run(t *testing.T) {
	f := newFilter(t, map[string][]string{
		"serviceX": {"/public/**"},
		"uaa":      {"/api/account", "/oauth/**"},
		"open":     {},
	})

	tests := []struct {
		name    string
		path    string
		allowed bool
	}{
		{name: "endpoint outside allow-list", path: "/serviceX/admin/secret", allowed: false},
		{name: "endpoint inside allow-list", path: "/serviceX/public/info", allowed: true},
		{name: "wildcard endpoint itself", path: "/serviceX/public", allowed: true},
		{name: "wildcard endpoint is segment bounded", path: "/serviceX/publicity", allowed: false},
		{name: "plain endpoint is a plain prefix", path: "/uaa/api/accounts", allowed: true},
		{name: "second endpoint of the list", path: "/uaa/oauth/token", allowed: true},
		{name: "empty list is unrestricted", path: "/open/anything", allowed: true},
		{name: "no matching route", path: "/unknown/x", allowed: false},
		{name: "repeated slashes are normalized", path: "//serviceX//public/info", allowed: true},
		{name: "dot segments leave the allow-list", path: "/serviceX/public/../admin/secret", allowed: false},
		{name: "encoded dot segments leave the allow-list", path: "/serviceX/public/%2e%2e/admin/secret", allowed: false},
		{name: "upper-case encoded dots", path: "/serviceX/public/%2E%2E/admin", allowed: false},
		{name: "dot segments inside the allow-list", path: "/serviceX/public/a/../info", allowed: true},
		{name: "dot segments escaping the route", path: "/serviceX/../uaa/admin", allowed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := run(t, f, tt.path)
			if tt.allowed {
				assert.True(t, req.SendToBackend)
				assert.Equal(t, http.StatusOK, req.Response.StatusCode)
				assert.False(t, req.Response.HasBody())
				return
			}
			assert.False(t, req.SendToBackend)
			assert.Equal(t, http.StatusForbidden, req.Response.StatusCode)
			assert.JSONEq(t, `{"error":"forbidden"}`, string(req.Response.Body))
		})
	}
}

func TestAccessControlFilter_RewritesPathToCanonicalForm(t *testing.T) {
	f := newFilter(t, map[string][]string{"serviceX": {"/public/**"}})

	req := run(t, f, "/serviceX/public/a/./b/../info")

	assert.True(t, req.SendToBackend)
	assert.Equal(t, "/serviceX/public/a/info", req.Path)
}

func TestAccessControlFilter_UnrestrictedServiceNeverDenies(t *testing.T) {
	f := newFilter(t, map[string][]string{"uaa": {"/api/**"}})

	for _, path := range []string{"/serviceX/anything", "/serviceX/admin/secret", "/serviceX", "/serviceX/"} {
		req := run(t, f, path)
		assert.True(t, req.SendToBackend, path)
		require.NotNil(t, req.Route)
		assert.Equal(t, "serviceX", req.Route.ID)
	}
}

func TestAccessControlFilter_ServiceIDsAreCaseInsensitive(t *testing.T) {
	// configuration keys arrive lower-cased
	f := newFilter(t, map[string][]string{"servicex": {"/public/**"}})

	assert.False(t, run(t, f, "/serviceX/admin").SendToBackend)
	assert.True(t, run(t, f, "/serviceX/public/a").SendToBackend)
}

func TestAccessControlFilter_KeepsExistingBody(t *testing.T) {
	f := newFilter(t, map[string][]string{"serviceX": {"/public/**"}})
	req := types.NewRequestContext(context.Background(), http.MethodGet, "/serviceX/admin")
	req.Response.WriteBody([]byte("custom"))

	require.NoError(t, f.Run(req))

	assert.Equal(t, http.StatusForbidden, req.Response.StatusCode)
	assert.Equal(t, "custom", string(req.Response.Body))
}

func TestAccessControlFilter_LookupFailureFailsClosed(t *testing.T) {
	table := routingMocks.NewRouteTable(t)
	table.EXPECT().Lookup(mock.Anything, "/serviceX/public/info").
		Return(nil, errors.New("route registry unreachable")).Once()
	policy, err := access_control.NewPolicy(nil)
	require.NoError(t, err)
	f := access_control.NewAccessControlFilter(table, policy, newLogger())

	req := types.NewRequestContext(context.Background(), http.MethodGet, "/serviceX/public/info")
	require.NoError(t, f.Run(req))

	assert.False(t, req.SendToBackend)
	assert.Equal(t, http.StatusForbidden, req.Response.StatusCode)
	assert.Nil(t, req.Route)
}

func TestNewPolicy_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		allow map[string][]string
	}{
		{name: "relative endpoint", allow: map[string][]string{"svc": {"public/**"}}},
		{name: "inner wildcard", allow: map[string][]string{"svc": {"/a/*/b"}}},
		{name: "empty service id", allow: map[string][]string{"": {"/a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := access_control.NewPolicy(tt.allow)
			assert.True(t, domain.IsConfigurationError(err))
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	policy, err := access_control.DecodeConfig(map[string]interface{}{
		"authorized_microservices_endpoints": map[string]interface{}{
			"servicex": []interface{}{"/public/**"},
		},
	})
	require.NoError(t, err)
	assert.True(t, policy.Restricted("serviceX"))
	assert.False(t, policy.Restricted("uaa"))
}
