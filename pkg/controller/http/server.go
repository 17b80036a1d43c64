package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/demografi/frontend"
	"github.com/secmon-lab/demografi/pkg/domain/interfaces"
)

// Config holds the HTTP server settings
type Config struct {
	Addr        string
	CORSOrigins []string
	// Frontend overrides the embedded single page app
	Frontend http.FileSystem
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router  chi.Router
	handler *Handler
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, cfg *Config, dashboard interfaces.Dashboard) (*Server, error) {
	router := chi.NewRouter()
	handler := NewHandler(dashboard)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(MetricsMiddleware)
	router.Use(middleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		router.Use(CORSMiddleware(cfg.CORSOrigins))
	}

	// Health check
	router.Get("/health", handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Get("/overview", handler.HandleOverview)
		r.Route("/views/{breakdown}", func(r chi.Router) {
			r.Get("/", handler.HandleView)
			r.Get("/export.xlsx", handler.HandleExport)
		})
		r.Get("/categories/{breakdown}", handler.HandleCategories)
		r.Get("/filters/{breakdown}", handler.HandleFilterOptions)
		r.NotFound(handleAPINotFound)
	})

	// Frontend routes (serve embedded or filesystem)
	fs := cfg.Frontend
	if fs == nil {
		embedded, err := frontend.GetHTTPFS()
		if err != nil {
			ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
				"error", err,
			)
		}
		fs = embedded
	}

	if fs != nil {
		spa, err := NewSPAHandler(fs)
		if err != nil {
			return nil, err
		}
		ctxlog.From(ctx).Info("Serving dashboard frontend")
		router.Handle("/*", spa)
	} else {
		router.Get("/*", handleFallbackHome)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:  router,
		handler: handler,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "demografi",
	})
}

func handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, "not found", http.StatusNotFound)
}

// handleFallbackHome handles the root path when frontend is not available
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Demografi</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            max-width: 40rem;
            margin: 4rem auto;
            color: #222;
        }
        code {
            background: #f2f2f2;
            padding: 0 0.25rem;
        }
    </style>
</head>
<body>
    <h1>Demografi</h1>
    <p>The dashboard frontend is not available in this build.</p>
    <p>The API is served at <code>/api/overview</code> and <code>/api/views/{breakdown}</code>.</p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, r *http.Request, message string, status int) {
	writeJSON(w, r, status, map[string]string{
		"error": message,
	})
}
