package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/qsphere/internal/interfaces/http/handlers"
	"github.com/turtacn/qsphere/internal/interfaces/http/middleware"
)

// DefaultMetricsPath is used when RouterConfig.MetricsPath is empty.
const DefaultMetricsPath = "/metrics"

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the HTTP route tree.
type RouterConfig struct {
	// Handlers
	QSphereHandler *handlers.QSphereHandler
	HealthHandler  *handlers.HealthHandler

	// Infrastructure
	Logger           logging.Logger
	LoggingConfig    *middleware.LoggingConfig
	MetricsCollector prometheus.MetricsCollector
	Metrics          *prometheus.AppMetrics
	MetricsPath      string

	// CORS grants browser origins access to the API.
	CORS middleware.CORSConfig
	// RateLimiter throttles the render endpoints; nil disables it.
	RateLimiter middleware.RateLimiter
}

// NewRouter constructs the HTTP route tree from the given configuration.
// Nil handlers leave their routes unmounted.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.CORS(cfg.CORS))

	if cfg.Logger != nil {
		lc := middleware.DefaultLoggingConfig()
		if cfg.LoggingConfig != nil {
			lc = *cfg.LoggingConfig
		}
		r.Use(middleware.RequestLogging(cfg.Logger, lc))
	}

	// --- Health endpoints ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/healthz/detail", cfg.HealthHandler.Detailed)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		registerQSphereRoutes(api, cfg.QSphereHandler, cfg.RateLimiter)
	})

	return r
}

// registerQSphereRoutes mounts render endpoints under /qsphere.
func registerQSphereRoutes(r chi.Router, h *handlers.QSphereHandler, limiter middleware.RateLimiter) {
	if h == nil {
		return
	}
	r.Route("/qsphere", func(qr chi.Router) {
		qr.Use(middleware.RateLimit(limiter))

		qr.Post("/", h.Render)
		qr.Post("/scene", h.Scene)

		qr.Get("/presets", h.ListPresets)
		qr.Route("/presets/{name}", func(item chi.Router) {
			item.Get("/", h.RenderPreset)
			item.Get("/scene", h.PresetScene)
		})
	})
}

//Personal.AI order the ending
