// Package middleware provides HTTP middleware components for the
// application.
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Common error codes and messages used by middleware.
const (
	ErrorCodeInternal          = "INTERNAL_ERROR"
	ErrorCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrorCodeRequestTimeout    = "REQUEST_TIMEOUT"

	ErrorMessageInternal          = "An internal error occurred"
	ErrorMessageRateLimitExceeded = "Too many requests"
	ErrorMessageRequestTimeout    = "Request timeout"
)

// Config holds middleware configuration.
type Config struct {
	Logger *zap.Logger

	AllowedOrigins []string

	RateLimit      rate.Limit
	RateLimitBurst int

	RequestTimeout time.Duration
}

// Chain wraps a handler with the full middleware stack. Order matters:
// the logger runs outermost so every request is recorded, including ones
// rejected further down the chain.
func Chain(config *Config) func(http.Handler) http.Handler {
	rateLimiter := NewRateLimiter(config.RateLimit, config.RateLimitBurst)

	return func(handler http.Handler) http.Handler {
		h := handler

		h = Timeout(config.RequestTimeout)(h)
		h = rateLimiter.Middleware()(h)
		h = CORS(config.AllowedOrigins)(h)
		h = Recovery(config.Logger)(h)
		h = RequestID(h)
		h = Logger(config.Logger)(h)

		return h
	}
}
