package ratelimit

import (
	"net"
	"net/http"

	"github.com/rs/zerolog"
)

// Middleware rejects requests over the limit with 429. Limiter failures
// let the request through.
func Middleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().
					Err(err).
					Str("client", key).
					Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				http.Error(w, "Demasiadas solicitudes, intente nuevamente más tarde.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
