package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hpportal/internal/character"
	"hpportal/internal/house"
	"hpportal/internal/httpx"
	"hpportal/internal/platform/config"
	"hpportal/internal/platform/hpapi"
	"hpportal/internal/platform/logger"
	"hpportal/internal/platform/metrics"
	"hpportal/internal/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hpportal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	handler, rateLimiter, err := newServer(cfg, log, m)
	if err != nil {
		return err
	}
	go rateLimiter.Run(ctx)

	// a characters request may wait on a full upstream refresh
	writeTimeout := cfg.HPAPITimeout + 10*time.Second
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			logger.String("addr", cfg.Addr),
			logger.String("upstream", cfg.HPAPIBaseURL),
			logger.Duration("cache_ttl", cfg.CacheTTL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newServer wires the character core, the pages and the middleware chain.
func newServer(cfg config.Config, log logger.Logger, m *metrics.Metrics) (http.Handler, *httpx.RateLimitMiddleware, error) {
	client := hpapi.NewClient(
		hpapi.WithBaseURL(cfg.HPAPIBaseURL),
		hpapi.WithTimeout(cfg.HPAPITimeout),
	)
	cache := character.NewCache(client,
		character.WithTTL(cfg.CacheTTL),
		character.WithLogger(log),
		character.WithMetrics(m),
	)
	characterService := character.NewService(cache)

	pages, err := web.NewHandler(characterService)
	if err != nil {
		return nil, nil, err
	}
	characterAPI := character.NewHTTPHandler(characterService)
	houseAPI := house.NewHTTPHandler()

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !characterService.Status().Populated {
			http.Error(w, "cache empty", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", m.Handler())

	router.HandleFunc("GET /{$}", pages.Home)
	router.HandleFunc("GET /houses", pages.Houses)
	router.HandleFunc("GET /characters", pages.Characters)

	router.HandleFunc("GET /api/characters", characterAPI.List)
	router.HandleFunc("GET /api/characters/status", characterAPI.Status)
	router.HandleFunc("GET /api/houses", houseAPI.List)
	router.HandleFunc("GET /api/houses/{slug}", houseAPI.Get)

	router.HandleFunc("/", pages.NotFound)

	trustedProxies, err := httpx.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, nil, err
	}
	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, trustedProxies...)

	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.MethodsMiddleware(http.MethodGet, http.MethodHead),
		rateLimiter.Middleware,
		httpx.MetricsMiddleware(m),
	)
	return handler, rateLimiter, nil
}
