package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"lechatnoir.dev/internal/config"
	"lechatnoir.dev/internal/middleware"
	"lechatnoir.dev/internal/models"
	"lechatnoir.dev/internal/services"
)

// Dependencies are the services the routes are served from
type Dependencies struct {
	Site   *services.SiteService
	Awards *services.AwardService
	Logger *zap.Logger
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	static := http.FileServer(http.Dir(cfg.ContentDir))

	// Initialize handlers
	awardHandler := NewAwardHandler(deps.Awards)
	pageHandler := NewPageHandler(deps.Site, static, logger)
	componentHandler := NewComponentHandler(deps.Site)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(corsOptions(cfg.Server)))

		r.Get("/awards", awardHandler.ListAwards)
		r.Get("/awards/summary", awardHandler.GetSummary)
		r.Get("/awards/{id}", awardHandler.GetAward)

		r.Get("/nav", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, models.GroupLinks(cfg.Nav))
		})

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Shared chrome fragments
	r.Get("/components/{name}", componentHandler.GetFragment)

	// Pages
	r.Get("/", pageHandler.Home)
	r.Get("/index.html", pageHandler.Home)
	r.Get("/{slug}/", pageHandler.GetPage)
	r.Get("/{slug}/index.html", pageHandler.GetPage)
	r.Get("/{slug}", pageHandler.Redirect)

	// Everything else comes straight from the content directory
	r.Handle("/*", static)

	return r
}

func corsOptions(cfg config.ServerConfig) cors.Options {
	opts := cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if cfg.AllowAll {
		opts.AllowedOrigins = []string{"*"}
	}
	return opts
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
