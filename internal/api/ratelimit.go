package api

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
	problem "schneider.vip/problem"
)

// RateLimiter is a process-wide token bucket in front of serial issuance.
type RateLimiter struct {
	limiter *rate.Limiter
	log     *slog.Logger
}

func NewRateLimiter(rps float64, burst int, log *slog.Logger) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			rl.log.WarnContext(r.Context(), "rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			w.Header().Set("Retry-After", "1")
			_, _ = problem.Of(http.StatusTooManyRequests).
				Append(problem.Title("Too Many Requests")).
				Append(problem.Instance(r.URL.Path)).
				WriteTo(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
