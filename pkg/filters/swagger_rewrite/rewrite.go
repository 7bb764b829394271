package swagger_rewrite

import (
	"path"

	"github.com/valyala/fastjson"
)

var (
	parserPool fastjson.ParserPool
	arenaPool  fastjson.ArenaPool
)

// RewriteBasePath prefixes the top-level basePath of a swagger document with
// gatewayPrefix. It returns false, and no body, when body is not a JSON object
// with a string basePath.
func RewriteBasePath(body []byte, gatewayPrefix string) ([]byte, bool) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	doc, err := p.ParseBytes(body)
	if err != nil || doc.Type() != fastjson.TypeObject {
		return nil, false
	}
	basePath := doc.Get("basePath")
	if basePath == nil || basePath.Type() != fastjson.TypeString {
		return nil, false
	}

	a := arenaPool.Get()
	defer arenaPool.Put(a)

	doc.Set("basePath", a.NewString(joinBasePath(gatewayPrefix, string(basePath.GetStringBytes()))))
	return doc.MarshalTo(make([]byte, 0, len(body)+len(gatewayPrefix))), true
}

func joinBasePath(prefix, basePath string) string {
	return path.Join("/", prefix, basePath)
}
