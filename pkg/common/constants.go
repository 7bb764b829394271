package common

const (
	RequestIDHeader = "X-Request-Id"

	RateLimitLimitHeader     = "X-RateLimit-Limit"
	RateLimitRemainingHeader = "X-RateLimit-Remaining"
	RetryAfterHeader         = "Retry-After"

	JSONContentType = "application/json;charset=UTF-8"
	TextContentType = "text/plain;charset=UTF-8"
)

// ErrorAttribute is the request attribute holding the failure ERROR filters react to.
const ErrorAttribute = "error"
