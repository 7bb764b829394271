package swagger_rewrite

import (
	"strconv"
	"strings"

	"github.com/NeuralTrust/GateFilters/pkg/common"
	"github.com/NeuralTrust/GateFilters/pkg/infra/filteriface"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/infra/httpx"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

const (
	FilterName = "swagger_rewrite"
	Order      = 100

	DefaultDocsSuffix = "/v2/api-docs"
)

type Config struct {
	DocsSuffix string `mapstructure:"docs_suffix"`
}

func DecodeConfig(settings map[string]interface{}) (Config, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DocsSuffix == "" {
		cfg.DocsSuffix = DefaultDocsSuffix
	}
	return cfg, nil
}

// SwaggerRewriteFilter fixes the basePath of documentation served through the
// gateway so that generated clients call the gateway-side prefix.
type SwaggerRewriteFilter struct {
	docsSuffix string
	logger     *logrus.Logger
}

func NewSwaggerRewriteFilter(config Config, logger *logrus.Logger) filteriface.Filter {
	suffix := config.DocsSuffix
	if suffix == "" {
		suffix = DefaultDocsSuffix
	}
	return &SwaggerRewriteFilter{
		docsSuffix: suffix,
		logger:     logger,
	}
}

func (f *SwaggerRewriteFilter) Name() string {
	return FilterName
}

func (f *SwaggerRewriteFilter) Phase() filterTypes.Phase {
	return filterTypes.Post
}

func (f *SwaggerRewriteFilter) Order() int {
	return Order
}

func (f *SwaggerRewriteFilter) ShouldFilter(req *types.RequestContext) bool {
	status := req.Response.StatusCode
	return strings.HasSuffix(req.Path, f.docsSuffix) && status >= 200 && status < 300
}

func (f *SwaggerRewriteFilter) Run(req *types.RequestContext) error {
	return f.rewrite(req, req.Response)
}

// rewrite only touches the body when the document was rewritten. Anything it
// cannot decode or parse goes back to the client unchanged.
func (f *SwaggerRewriteFilter) rewrite(req *types.RequestContext, body types.BodyAccessor) error {
	raw, err := body.ReadBody()
	if err != nil {
		return err
	}

	decoded, _, err := httpx.DecodeBody(req.Response.Header("Content-Encoding"), raw)
	if err != nil {
		f.logger.WithError(err).WithField("request_id", req.ID).Warn("cannot decode documentation body, passing it through")
		return nil
	}

	gatewayPrefix := strings.TrimSuffix(req.Path, f.docsSuffix)
	rewritten, ok := RewriteBasePath(decoded, gatewayPrefix)
	if !ok {
		f.logger.WithField("request_id", req.ID).Debug("documentation body has no basePath to rewrite")
		return nil
	}

	body.WriteBody(rewritten)
	req.Response.DelHeader("Content-Encoding")
	req.Response.SetHeader("Content-Length", strconv.Itoa(len(rewritten)))
	req.Response.SetHeader("Content-Type", common.JSONContentType)
	return nil
}
