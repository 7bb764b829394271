package rate_limiting

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/app/identity"
	"github.com/NeuralTrust/GateFilters/pkg/common"
	"github.com/NeuralTrust/GateFilters/pkg/infra/filteriface"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/infra/prometheus"
	"github.com/NeuralTrust/GateFilters/pkg/infra/ratelimit"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/sirupsen/logrus"
)

const (
	FilterName = "rate_limiting"
	Order      = 10

	ExceededMessage    = "API rate limit exceeded"
	UnavailableMessage = "Service Unavailable"
)

type RateLimitingFilter struct {
	store    ratelimit.BucketStore
	identity identity.Resolver
	config   Config
	logger   *logrus.Logger
}

func NewRateLimitingFilter(
	store ratelimit.BucketStore,
	resolver identity.Resolver,
	config Config,
	logger *logrus.Logger,
) filteriface.Filter {
	return &RateLimitingFilter{
		store:    store,
		identity: resolver,
		config:   config,
		logger:   logger,
	}
}

func (f *RateLimitingFilter) Name() string {
	return FilterName
}

func (f *RateLimitingFilter) Phase() filterTypes.Phase {
	return filterTypes.Pre
}

func (f *RateLimitingFilter) Order() int {
	return Order
}

// ShouldFilter skips requests already answered by the gateway so they never
// spend a token.
func (f *RateLimitingFilter) ShouldFilter(req *types.RequestContext) bool {
	return req.SendToBackend
}

func (f *RateLimitingFilter) Run(req *types.RequestContext) error {
	key := f.ClientKey(req)
	res, err := f.store.GetOrCreate(key, f.config.Limit, f.config.Window()).TryConsume(req.Context, 1)
	if err != nil {
		f.storeFailure(req, key, err)
		return nil
	}

	setQuotaHeaders(req.Response, res)
	if res.Allowed {
		return nil
	}

	req.Response.StatusCode = http.StatusTooManyRequests
	req.Response.SetHeader(common.RetryAfterHeader, retryAfterSeconds(res.RetryAfter))
	if !req.Response.HasBody() {
		req.Response.WriteBody([]byte(ExceededMessage))
		req.Response.SetHeader("Content-Type", common.TextContentType)
		req.SendToBackend = false
	}
	f.logger.WithFields(logrus.Fields{
		"client":     key,
		"request_id": req.ID,
	}).Debug("rate limit exceeded")
	return nil
}

// ClientKey partitions quota by login, or by remote host for anonymous callers.
func (f *RateLimitingFilter) ClientKey(req *types.RequestContext) string {
	if f.identity != nil {
		if login, ok := f.identity.CurrentPrincipal(req); ok {
			return "user:" + login
		}
	}
	return "ip:" + identity.RemoteHost(req.RemoteAddr)
}

func (f *RateLimitingFilter) storeFailure(req *types.RequestContext, key string, err error) {
	resolution := "fail_open"
	if !f.config.failOpen() {
		resolution = "fail_closed"
	}
	if prometheus.Config.EnableFilters {
		prometheus.BucketStoreErrors.WithLabelValues(f.config.Store, resolution).Inc()
	}

	entry := f.logger.WithError(err).WithFields(logrus.Fields{
		"client":     key,
		"store":      f.config.Store,
		"request_id": req.ID,
	})
	if f.config.failOpen() {
		entry.Warn("bucket store unavailable, admitting request")
		return
	}
	entry.Error("bucket store unavailable, rejecting request")
	req.Block(http.StatusServiceUnavailable)
	if !req.Response.HasBody() {
		req.Response.WriteBody([]byte(UnavailableMessage))
		req.Response.SetHeader("Content-Type", common.TextContentType)
	}
}

func setQuotaHeaders(resp *types.ResponseContext, res ratelimit.Result) {
	resp.SetHeader(common.RateLimitLimitHeader, strconv.FormatInt(res.Limit, 10))
	resp.SetHeader(common.RateLimitRemainingHeader, strconv.FormatInt(res.Remaining, 10))
}

func retryAfterSeconds(d time.Duration) string {
	seconds := int64(math.Ceil(d.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.FormatInt(seconds, 10)
}
