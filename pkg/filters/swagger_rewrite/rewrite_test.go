package swagger_rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteBasePath(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		prefix string
		want   string
		ok     bool
	}{
		{name: "root base path", body: `{"basePath":"/"}`, prefix: "/service1", want: `{"basePath":"/service1"}`, ok: true},
		{name: "nested base path", body: `{"basePath":"/api"}`, prefix: "/service1", want: `{"basePath":"/service1/api"}`, ok: true},
		{name: "empty prefix", body: `{"basePath":"/api"}`, prefix: "", want: `{"basePath":"/api"}`, ok: true},
		{name: "empty base path", body: `{"basePath":""}`, prefix: "/svc", want: `{"basePath":"/svc"}`, ok: true},
		{
			name:   "other fields are kept in order",
			body:   `{"swagger":"2.0","info":{"title":"svc","version":"1.0.0"},"host":"svc:8081","basePath":"/","paths":{"/a":{}},"n":1.50}`,
			prefix: "/svc",
			want:   `{"swagger":"2.0","info":{"title":"svc","version":"1.0.0"},"host":"svc:8081","basePath":"/svc","paths":{"/a":{}},"n":1.50}`,
			ok:     true,
		},
		{name: "not json", body: `<html>oops</html>`, prefix: "/svc", ok: false},
		{name: "no base path", body: `{"swagger":"2.0"}`, prefix: "/svc", ok: false},
		{name: "base path not a string", body: `{"basePath":42}`, prefix: "/svc", ok: false},
		{name: "array document", body: `[{"basePath":"/"}]`, prefix: "/svc", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RewriteBasePath([]byte(tt.body), tt.prefix)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, string(got))
			}
		})
	}
}
