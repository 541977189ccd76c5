package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/glowtouch/booking-gateway/internal/booking"
	httpmiddleware "github.com/glowtouch/booking-gateway/internal/http/middleware"
	"github.com/glowtouch/booking-gateway/internal/payments"
	"github.com/glowtouch/booking-gateway/internal/recommend"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	BookingHandler   *booking.Handler
	RecommendHandler *recommend.Handler
	PaymentReturn    *payments.ReturnHandler
	MetricsHandler   http.Handler

	SessionJWTSecret   string
	CORSAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/health", handleHealth)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.BookingHandler != nil {
			public.Get("/booking/services", cfg.BookingHandler.ListServices)
		}
		if cfg.RecommendHandler != nil {
			public.Post("/booking/recommend", cfg.RecommendHandler.Recommend)
		}
		// Payment gateway redirects back here; the user may not carry a
		// bearer token on the return leg.
		if cfg.PaymentReturn != nil {
			public.Get("/payments/return", cfg.PaymentReturn.Handle)
		}
	})

	// Authenticated booking flow.
	if cfg.BookingHandler != nil {
		r.Group(func(authed chi.Router) {
			authed.Use(httpmiddleware.SessionJWT(cfg.SessionJWTSecret))
			authed.Get("/booking/therapists", cfg.BookingHandler.ListTherapists)
			authed.Get("/booking/dates", cfg.BookingHandler.ListDates)
			authed.Get("/booking/slots", cfg.BookingHandler.ListSlots)
			authed.Post("/bookings", cfg.BookingHandler.Submit)
		})
	}

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
