package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/LoadoutBot_Go/internal/catalog"
	"github.com/osse101/LoadoutBot_Go/internal/handler"
	"github.com/osse101/LoadoutBot_Go/internal/loadout"
	"github.com/osse101/LoadoutBot_Go/internal/logger"
	"github.com/osse101/LoadoutBot_Go/internal/metrics"
)

type Server struct {
	httpServer     *http.Server
	loadoutService loadout.Service
	cat            *catalog.Catalog
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, cat *catalog.Catalog, loadoutService loadout.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(cat))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Catalog routes (read-only)
		catalogHandler := handler.NewCatalogHandler(cat)
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/kinds", catalogHandler.HandleGetKinds)
			r.Get("/kind", catalogHandler.HandleGetKind)
		})

		// Weapon lifecycle routes
		weaponHandler := handler.NewWeaponHandler(loadoutService)
		r.Route("/weapon", func(r chi.Router) {
			r.Post("/issue", weaponHandler.HandleIssue)
			r.Post("/drop", weaponHandler.HandleDrop)
			r.Post("/handover", weaponHandler.HandleHandover)
			r.Post("/end-session", weaponHandler.HandleEndSession)
		})

		// Loadout routes
		loadoutHandler := handler.NewLoadoutHandler(loadoutService)
		r.Route("/loadout", func(r chi.Router) {
			r.Get("/", loadoutHandler.HandleGetLoadout)
			r.Post("/attach", loadoutHandler.HandleAttach)
			r.Post("/detach", loadoutHandler.HandleDetach)
			r.Post("/detach-slot", loadoutHandler.HandleDetachSlot)
			r.Post("/clear", loadoutHandler.HandleClear)
		})

		// Preference routes
		preferenceHandler := handler.NewPreferenceHandler(loadoutService)
		r.Route("/preference", func(r chi.Router) {
			r.Get("/", preferenceHandler.HandleGet)
			r.Post("/save", preferenceHandler.HandleSave)
			r.Post("/clear", preferenceHandler.HandleClear)
			r.Post("/clear-all", preferenceHandler.HandleClearAll)
			r.Post("/bulk/set", preferenceHandler.HandleBulkSet)
			r.Post("/bulk/clear", preferenceHandler.HandleBulkClear)
		})

		// Admin routes
		adminCacheHandler := handler.NewAdminCacheHandler(loadoutService)
		r.Route("/admin", func(r chi.Router) {
			r.Route("/cache", func(r chi.Router) {
				r.Get("/stats", adminCacheHandler.HandleGetCacheStats)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		loadoutService: loadoutService,
		cat:            cat,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
