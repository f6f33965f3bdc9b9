package main

import (
	"context"
	"net/http"
	"time"

	"bookgateway/internal/author"
	"bookgateway/internal/book"
	"bookgateway/internal/config"
	"bookgateway/internal/httpx"
	"bookgateway/internal/platform/upstream"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const readyTimeout = 2 * time.Second

// pinger reports upstream reachability for /readyz.
type pinger interface {
	Ping(ctx context.Context) error
}

// newRouter wires the proxies, probes and middleware onto one handler.
// The returned stop func releases background resources.
func newRouter(cfg *config.Config, client *upstream.Client, gatherer prometheus.Gatherer, logger *zap.Logger) (http.Handler, func()) {
	authorService := author.NewService(client, logger)
	bookService := book.NewService(client, logger)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", readyHandler(client))
	router.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	author.NewHTTPHandler(authorService).Routes(router)
	book.NewHTTPHandler(bookService).Routes(router)

	middlewares := []httpx.Middleware{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.CORSMiddleware(cfg.CORS.AllowedOrigins),
		httpx.SecurityHeadersMiddleware(cfg.Server.EnableHSTS),
	}

	stop := func() {}
	if cfg.RateLimit.RPS > 0 {
		limiter := httpx.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		middlewares = append(middlewares, limiter.Middleware)
		stop = limiter.Stop
	}
	if cfg.Server.MaxBodyBytes > 0 {
		middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes))
	}

	return httpx.Chain(router, middlewares...), stop
}

func readyHandler(p pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			http.Error(w, "upstream not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
