package api

import (
	"log/slog"
	"time"

	"github.com/cheetahbyte/keyforge/internal/config"
	"github.com/cheetahbyte/keyforge/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func Register(r *chi.Mux, h *handlers.Handlers, cfg config.Config, log *slog.Logger) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout(cfg.Server)))

	r.Get("/healthz", h.Health)
	r.Method("GET", "/metrics", h.Services.Metrics().Handler())

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Route("/v1", func(v1Router chi.Router) {
			if cfg.RateLimit.Enabled {
				v1Router.Use(NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log).Handler)
			}
			v1Router.Post("/serials", h.CreateSerials)
		})
	})
}

func requestTimeout(cfg config.ServerConfig) time.Duration {
	if cfg.RequestTimeout <= 0 {
		return 3 * time.Second
	}
	return cfg.RequestTimeout
}
