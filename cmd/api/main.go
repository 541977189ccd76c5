package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glowtouch/booking-gateway/internal/api/router"
	"github.com/glowtouch/booking-gateway/internal/booking"
	appconfig "github.com/glowtouch/booking-gateway/internal/config"
	"github.com/glowtouch/booking-gateway/internal/observability/metrics"
	"github.com/glowtouch/booking-gateway/internal/payments"
	"github.com/glowtouch/booking-gateway/internal/recommend"
	"github.com/glowtouch/booking-gateway/internal/session"
	"github.com/glowtouch/booking-gateway/internal/spaapi"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking gateway",
		"env", cfg.Env,
		"port", cfg.Port,
		"spa_api", cfg.SpaAPIBaseURL,
	)

	if cfg.SpaAPIBaseURL == "" {
		logger.Error("SPA_API_BASE_URL is required")
		os.Exit(1)
	}

	// Upstream session: set once at startup from the service credential,
	// cleared on shutdown.
	sess := session.New()
	if cfg.SpaAPIToken != "" {
		sess.Begin("gateway", cfg.SpaAPIToken)
	}
	defer sess.End()

	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	apiClient := spaapi.NewClient(cfg.SpaAPIBaseURL, sess, logger,
		spaapi.WithTimeout(cfg.SpaAPITimeout),
		spaapi.WithMetrics(bookingMetrics),
	)
	bookingSvc := booking.NewService(apiClient, logger,
		booking.WithWindowDays(cfg.BookingWindowDays),
		booking.WithMetrics(bookingMetrics),
	)

	routerCfg := &router.Config{
		Logger:             logger,
		BookingHandler:     booking.NewHandler(bookingSvc, logger),
		RecommendHandler:   recommend.NewHandler(bookingSvc, logger),
		PaymentReturn:      payments.NewReturnHandler(apiClient, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		SessionJWTSecret:   cfg.SessionJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
