package httpx

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/common"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/NeuralTrust/GateFilters/pkg/version"
	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxConnsPerHost     = 512
	DefaultMaxIdleConnDuration = 10 * time.Second
	DefaultReadBufferSize      = 32768
	DefaultWriteBufferSize     = 32768
	DefaultMaxResponseBodySize = 100 * 1024 * 1024
	DefaultBreakerTimeout      = 30 * time.Second
	DefaultBreakerMaxFailures  = 5
)

var (
	ErrNoRoute        = errors.New("request has no resolved route")
	ErrBackendTimeout = errors.New("backend timeout")
)

// hopHeaders apply to a single connection and are never proxied.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
	"Host",
	"Content-Length",
}

// Forwarder sends a filtered request to the backend of its route and fills
// the response context with what the backend answered.
//
//go:generate mockery --name=Forwarder --dir=. --output=./mocks --filename=forwarder_mock.go --case=underscore --with-expecter
type Forwarder interface {
	Forward(req *types.RequestContext) error
}

type ForwarderOptions struct {
	Timeout             time.Duration
	MaxConnsPerHost     int
	MaxIdleConnDuration time.Duration
	MaxResponseBodySize int
	TLSConfig           *tls.Config
	BreakerTimeout      time.Duration
	BreakerMaxFailures  uint32
	Dial                fasthttp.DialFunc
}

type ForwarderOption func(*ForwarderOptions)

// WithTimeout bounds the whole backend exchange.
func WithTimeout(timeout time.Duration) ForwarderOption {
	return func(o *ForwarderOptions) {
		o.Timeout = timeout
	}
}

func WithMaxConnsPerHost(max int) ForwarderOption {
	return func(o *ForwarderOptions) {
		o.MaxConnsPerHost = max
	}
}

func WithMaxResponseBodySize(size int) ForwarderOption {
	return func(o *ForwarderOptions) {
		o.MaxResponseBodySize = size
	}
}

// WithTLSConfig is used for https backends. Nil keeps the fasthttp defaults.
func WithTLSConfig(cfg *tls.Config) ForwarderOption {
	return func(o *ForwarderOptions) {
		o.TLSConfig = cfg
	}
}

func WithBreaker(timeout time.Duration, maxFailures uint32) ForwarderOption {
	return func(o *ForwarderOptions) {
		o.BreakerTimeout = timeout
		o.BreakerMaxFailures = maxFailures
	}
}

// WithDial replaces the TCP dialer, mostly for in-memory listeners in tests.
func WithDial(dial fasthttp.DialFunc) ForwarderOption {
	return func(o *ForwarderOptions) {
		o.Dial = dial
	}
}

type fastHTTPForwarder struct {
	client   *fasthttp.Client
	timeout  time.Duration
	breakers *BreakerRegistry
}

func NewForwarder(opts ...ForwarderOption) Forwarder {
	options := &ForwarderOptions{
		Timeout:             DefaultTimeout,
		MaxConnsPerHost:     DefaultMaxConnsPerHost,
		MaxIdleConnDuration: DefaultMaxIdleConnDuration,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
		BreakerTimeout:      DefaultBreakerTimeout,
		BreakerMaxFailures:  DefaultBreakerMaxFailures,
	}
	for _, opt := range opts {
		opt(options)
	}

	client := &fasthttp.Client{
		ReadTimeout:                   options.Timeout,
		WriteTimeout:                  options.Timeout,
		MaxConnsPerHost:               options.MaxConnsPerHost,
		MaxIdleConnDuration:           options.MaxIdleConnDuration,
		ReadBufferSize:                DefaultReadBufferSize,
		WriteBufferSize:               DefaultWriteBufferSize,
		MaxResponseBodySize:           options.MaxResponseBodySize,
		NoDefaultUserAgentHeader:      true,
		DisableHeaderNamesNormalizing: true,
		DisablePathNormalizing:        true,
		TLSConfig:                     options.TLSConfig,
		Dial:                          options.Dial,
	}

	return &fastHTTPForwarder{
		client:   client,
		timeout:  options.Timeout,
		breakers: NewBreakerRegistry(options.BreakerTimeout, options.BreakerMaxFailures),
	}
}

func (f *fastHTTPForwarder) Forward(req *types.RequestContext) error {
	if req.Route == nil {
		return ErrNoRoute
	}
	target, err := TargetURL(req.Route.Location, req.Route.StripPrefix(req.Path), req.Query)
	if err != nil {
		return err
	}

	fastReq := fasthttp.AcquireRequest()
	fastResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(fastReq)
	defer fasthttp.ReleaseResponse(fastResp)

	buildRequest(fastReq, req, target)

	deadline := time.Now().Add(f.timeout)
	if ctxDeadline, ok := req.Context.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	err = f.breakers.Get(target.Host).Execute(func() error {
		return f.client.DoDeadline(fastReq, fastResp, deadline)
	})
	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return fmt.Errorf("%w: %s: %w", ErrBackendTimeout, target.Redacted(), err)
		}
		return fmt.Errorf("request failed to %s: %w", target.Redacted(), err)
	}

	copyResponse(req.Response, fastResp)
	return nil
}

// TargetURL joins the backend location with the stripped request path and
// appends the query string. path is decoded; it is escaped exactly once here.
func TargetURL(location, path string, query url.Values) (*url.URL, error) {
	base, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid backend location %q: %w", location, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend location %q: scheme and host are required", location)
	}
	target := *base
	target.Path = strings.TrimSuffix(base.Path, "/") + path
	target.RawPath = ""
	if len(query) > 0 {
		if target.RawQuery != "" {
			target.RawQuery += "&" + query.Encode()
		} else {
			target.RawQuery = query.Encode()
		}
	}
	return &target, nil
}

func buildRequest(fastReq *fasthttp.Request, req *types.RequestContext, target *url.URL) {
	fastReq.SetRequestURI(target.String())
	fastReq.Header.SetMethod(req.Method)
	if len(req.Body) > 0 {
		fastReq.SetBodyRaw(req.Body)
	}
	for k, vals := range req.ForwardHeaders() {
		if isHopHeader(k) {
			continue
		}
		for _, v := range vals {
			fastReq.Header.Add(k, v)
		}
	}
	if host := remoteIP(req.RemoteAddr); host != "" {
		if prior := req.Header("X-Forwarded-For"); prior != "" {
			fastReq.Header.Set("X-Forwarded-For", prior+", "+host)
		} else {
			fastReq.Header.Set("X-Forwarded-For", host)
		}
	}
	if prefix := req.Route.Prefix(); prefix != "" {
		fastReq.Header.Set("X-Forwarded-Prefix", prefix)
	}
	if req.ID != "" {
		fastReq.Header.Set(common.RequestIDHeader, req.ID)
	}
	if prior := req.Header("Via"); prior != "" {
		fastReq.Header.Set("Via", prior+", "+version.Via())
	} else {
		fastReq.Header.Set("Via", version.Via())
	}
}

// copyResponse merges the backend answer into resp. Headers set by PRE filters
// survive unless the backend sends the same name. Names are canonicalized so
// ResponseContext lookups match whatever casing the backend used.
func copyResponse(resp *types.ResponseContext, fastResp *fasthttp.Response) {
	resp.StatusCode = fastResp.StatusCode()
	backend := make(map[string][]string, fastResp.Header.Len())
	fastResp.Header.VisitAll(func(key, value []byte) {
		k := http.CanonicalHeaderKey(string(key))
		if isHopHeader(k) {
			return
		}
		backend[k] = append(backend[k], string(value))
	})
	if resp.Headers == nil {
		resp.Headers = make(map[string][]string, len(backend))
	}
	for k, values := range backend {
		resp.Headers[k] = values
	}
	body := make([]byte, len(fastResp.Body()))
	copy(body, fastResp.Body())
	resp.WriteBody(body)
}

func isHopHeader(name string) bool {
	for _, h := range hopHeaders {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

func remoteIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return strings.Trim(remoteAddr, "[]")
}
