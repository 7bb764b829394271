package types

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/google/uuid"
)

// BodyAccessor is the narrow view POST filters get of a response body.
type BodyAccessor interface {
	ReadBody() ([]byte, error)
	WriteBody(body []byte)
}

// RequestContext represents the state shared by filters while one request is in flight.
// It is created at pipeline entry and must never be shared across requests.
type RequestContext struct {
	ID         string
	Context    context.Context
	Method     string
	Path       string
	Query      url.Values
	Headers    map[string][]string
	RemoteAddr string
	Body       []byte
	Phase      filterTypes.Phase

	// Route is the route resolved for Path, once a filter has looked it up.
	Route *route.Route

	// SendToBackend false means the request is answered by the gateway itself.
	SendToBackend bool

	// IgnoredHeaders holds lower-cased header names stripped before forwarding.
	IgnoredHeaders map[string]struct{}

	Attributes map[string]interface{}
	Response   *ResponseContext
}

// ResponseContext represents the response the gateway is going to write.
type ResponseContext struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
	// Final marks the response as complete; POST filters stop running once set.
	Final   bool
	bodySet bool
}

// DefaultIgnoredHeaders are never forwarded unless a filter relays them explicitly.
var DefaultIgnoredHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

func NewRequestContext(ctx context.Context, method, path string) *RequestContext {
	if ctx == nil {
		ctx = context.Background()
	}
	req := &RequestContext{
		ID:             uuid.NewString(),
		Context:        ctx,
		Method:         method,
		Path:           path,
		Query:          url.Values{},
		Headers:        make(map[string][]string),
		SendToBackend:  true,
		IgnoredHeaders: make(map[string]struct{}),
		Attributes:     make(map[string]interface{}),
		Response:       NewResponseContext(),
	}
	for _, h := range DefaultIgnoredHeaders {
		req.IgnoreHeader(h)
	}
	return req
}

func NewResponseContext() *ResponseContext {
	return &ResponseContext{
		StatusCode: http.StatusOK,
		Headers:    make(map[string][]string),
	}
}

// Header returns the first value of a request header, matching the name case-insensitively.
func (r *RequestContext) Header(name string) string {
	if values, ok := r.Headers[name]; ok && len(values) > 0 {
		return values[0]
	}
	for k, values := range r.Headers {
		if strings.EqualFold(k, name) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (r *RequestContext) IgnoreHeader(name string) {
	r.IgnoredHeaders[strings.ToLower(name)] = struct{}{}
}

// RelayHeader removes name from the ignored set. Removing an absent name is a no-op.
func (r *RequestContext) RelayHeader(name string) {
	delete(r.IgnoredHeaders, strings.ToLower(name))
}

func (r *RequestContext) IsIgnored(name string) bool {
	_, ok := r.IgnoredHeaders[strings.ToLower(name)]
	return ok
}

// ForwardHeaders returns the request headers minus the ignored set.
func (r *RequestContext) ForwardHeaders() map[string][]string {
	out := make(map[string][]string, len(r.Headers))
	for k, v := range r.Headers {
		if r.IsIgnored(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// Block stops the request from reaching the backend and answers it with status.
func (r *RequestContext) Block(status int) {
	r.Response.StatusCode = status
	r.SendToBackend = false
}

func (r *ResponseContext) ReadBody() ([]byte, error) {
	return r.Body, nil
}

func (r *ResponseContext) WriteBody(body []byte) {
	r.Body = body
	r.bodySet = true
}

// HasBody reports whether a body has been set on the response, by a filter or by the backend.
func (r *ResponseContext) HasBody() bool {
	return r.bodySet
}

func (r *ResponseContext) Header(name string) string {
	values := r.Headers[http.CanonicalHeaderKey(name)]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (r *ResponseContext) SetHeader(name, value string) {
	r.Headers[http.CanonicalHeaderKey(name)] = []string{value}
}

func (r *ResponseContext) DelHeader(name string) {
	delete(r.Headers, http.CanonicalHeaderKey(name))
}
