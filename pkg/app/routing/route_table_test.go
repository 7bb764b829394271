package routing

import (
	"context"
	"sync"
	"testing"

	domain "github.com/NeuralTrust/GateFilters/pkg/domain/errors"
	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutes() []route.Route {
	return []route.Route{
		{ID: "catchall", Path: "/**", Location: "http://fallback:8080"},
		{ID: "uaa", Path: "/uaa/**", Location: "http://uaa:9999"},
		{ID: "uaa-admin", Path: "/uaa/admin/**", Location: "http://uaa-admin:9999"},
		{ID: "svc", Path: "/svc/**", Location: "http://svc:8081"},
		{ID: "svc-shadow", Path: "/svc/**", Location: "http://svc-shadow:8081"},
	}
}

func TestRouteTable_Lookup(t *testing.T) {
	table, err := NewRouteTable(testRoutes())
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		wantID string
	}{
		{name: "longest prefix wins", path: "/uaa/admin/users", wantID: "uaa-admin"},
		{name: "shorter prefix", path: "/uaa/api/account", wantID: "uaa"},
		{name: "exact prefix", path: "/uaa", wantID: "uaa"},
		{name: "same prefix resolves to first registered", path: "/svc/api", wantID: "svc"},
		{name: "segment boundary", path: "/svc2/api", wantID: "catchall"},
		{name: "repeated slashes", path: "//uaa///admin/x", wantID: "uaa-admin"},
		{name: "catch all", path: "/other", wantID: "catchall"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := table.Lookup(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, r.ID)
		})
	}
}

func TestRouteTable_NoMatch(t *testing.T) {
	table, err := NewRouteTable([]route.Route{{ID: "svc", Path: "/svc/**"}})
	require.NoError(t, err)

	r, err := table.Lookup(context.Background(), "/svc2/x")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRouteTable_CancelledContext(t *testing.T) {
	table, err := NewRouteTable(testRoutes())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = table.Lookup(ctx, "/uaa")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRouteTable_LookupReturnsCopy(t *testing.T) {
	table, err := NewRouteTable(testRoutes())
	require.NoError(t, err)

	r, err := table.Lookup(context.Background(), "/uaa/x")
	require.NoError(t, err)
	r.Location = "http://evil"

	again, err := table.Lookup(context.Background(), "/uaa/x")
	require.NoError(t, err)
	assert.Equal(t, "http://uaa:9999", again.Location)
}

func TestNewRouteTable_InvalidRoutes(t *testing.T) {
	tests := []struct {
		name   string
		routes []route.Route
	}{
		{name: "missing wildcard", routes: []route.Route{{ID: "a", Path: "/a"}}},
		{name: "missing id", routes: []route.Route{{Path: "/a/**"}}},
		{name: "duplicate id", routes: []route.Route{{ID: "a", Path: "/a/**"}, {ID: "a", Path: "/b/**"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRouteTable(tt.routes)
			assert.True(t, domain.IsConfigurationError(err))
		})
	}
}

func TestRouteTable_Replace(t *testing.T) {
	table, err := NewRouteTable([]route.Route{{ID: "old", Path: "/old/**"}})
	require.NoError(t, err)

	require.NoError(t, table.Replace([]route.Route{{ID: "new", Path: "/new/**"}}))

	_, err = table.Lookup(context.Background(), "/old/x")
	assert.ErrorIs(t, err, ErrRouteNotFound)
	r, err := table.Lookup(context.Background(), "/new/x")
	require.NoError(t, err)
	assert.Equal(t, "new", r.ID)

	t.Run("invalid replacement keeps the current snapshot", func(t *testing.T) {
		err := table.Replace([]route.Route{{ID: "bad", Path: "/bad"}})
		assert.Error(t, err)
		assert.Len(t, table.Routes(), 1)
		assert.Equal(t, "new", table.Routes()[0].ID)
	})
}

func TestRouteTable_ConcurrentReplace(t *testing.T) {
	table, err := NewRouteTable(testRoutes())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = table.Replace(testRoutes())
		}()
		go func() {
			defer wg.Done()
			r, err := table.Lookup(context.Background(), "/uaa/admin/x")
			if assert.NoError(t, err) {
				assert.Equal(t, "uaa-admin", r.ID)
			}
		}()
	}
	wg.Wait()
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", NormalizePath(""))
	assert.Equal(t, "/a/b/", NormalizePath("//a//b//"))
	assert.Equal(t, "/a/b", NormalizePath("/a/b"))
	assert.Equal(t, "/a/b", NormalizePath("a/b"))
	assert.Equal(t, "/svc/admin/secret", NormalizePath("/svc/public/../admin/secret"))
	assert.Equal(t, "/svc/admin", NormalizePath("/svc/./public/%2e%2e/admin"))
	assert.Equal(t, "/svc/admin", NormalizePath("/svc/public/%2E%2E/admin"))
	assert.Equal(t, "/", NormalizePath("/../../"))
	assert.Equal(t, "/a b", NormalizePath("/a b"))

	for _, p := range []string{"//a/../b/", "/x/%2e/y", "/svc/public/../../etc"} {
		once := NormalizePath(p)
		assert.Equal(t, once, NormalizePath(once), p)
	}
}

func TestLookup_TraversalResolvesBeforeMatching(t *testing.T) {
	table, err := NewRouteTable([]route.Route{
		{ID: "svc", Path: "/svc/**", Location: "http://svc"},
		{ID: "other", Path: "/other/**", Location: "http://other"},
	})
	require.NoError(t, err)

	r, err := table.Lookup(context.Background(), "/svc/../other/x")
	require.NoError(t, err)
	assert.Equal(t, "other", r.ID)
}
