package common

type contextKey string

const (
	TraceIdKey    contextKey = "trace_id"
	LatencyCtxKey contextKey = "__execution_time"
	// RouteIDKey holds the id of the route that served the request, for metric labels.
	RouteIDKey contextKey = "route_id"
)

// UnmatchedRoute labels requests that resolved no route.
const UnmatchedRoute = "unmatched"
