// Package ratelimit throttles write endpoints per client IP. The limiter
// state lives in the shared store, Redis in production and in-memory when
// Redis is not configured.
package ratelimit

import (
	"net/http"
	"strconv"

	limiter "github.com/ulule/limiter/v3"

	"github.com/clearlane/freight-console/internal/common"
)

// Middleware wraps a ulule limiter instance as chi middleware.
type Middleware struct {
	Limiter *limiter.Limiter
	// Key derives the throttle key from the request; defaults to client IP.
	Key func(*http.Request) string
	// OnError is invoked when the store fails; the request is let through.
	OnError func(error)
}

// New builds a Middleware from a store and a formatted rate such as "60-M".
func New(store limiter.Store, rate string) (*Middleware, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	return &Middleware{Limiter: limiter.New(store, parsed)}, nil
}

// Handler enforces the limit before delegating to next.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := ""
		if m.Key != nil {
			key = m.Key(r)
		}
		if key == "" {
			key = common.ClientIP(r)
		}

		limitCtx, err := m.Limiter.Get(r.Context(), key)
		if err != nil {
			if m.OnError != nil {
				m.OnError(err)
			}
			// A broken store must not take the write path down with it.
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.FormatInt(limitCtx.Limit, 10))
		headers.Set("X-RateLimit-Remaining", strconv.FormatInt(limitCtx.Remaining, 10))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(limitCtx.Reset, 10))

		if limitCtx.Reached {
			common.Fail(w, http.StatusTooManyRequests, 429, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
