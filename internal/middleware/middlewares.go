// Package middleware holds the echo middleware of the service: request
// ids, request-scoped logging, New Relic tracing, rate limiting and the
// global error handler.
package middleware

import (
	"github.com/GonzaMon/muebles-api/internal/server"
)

// Middlewares groups every middleware component so the router is wired
// from a single value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
