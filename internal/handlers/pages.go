package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lechatnoir.dev/internal/pages"
	"lechatnoir.dev/internal/services"
)

// PageHandler serves assembled site pages
type PageHandler struct {
	siteService *services.SiteService
	static      http.Handler
	logger      *zap.Logger
}

// NewPageHandler creates a new PageHandler. Requests that are not
// registered pages go to static.
func NewPageHandler(ss *services.SiteService, static http.Handler, logger *zap.Logger) *PageHandler {
	return &PageHandler{siteService: ss, static: static, logger: logger}
}

// Home handles GET / and GET /index.html
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "")
}

// GetPage handles GET /{slug}/ and GET /{slug}/index.html
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, chi.URLParam(r, "slug"))
}

// Redirect handles GET /{slug} - pages live under /{slug}/
func (h *PageHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, err := h.siteService.Page(slug); err != nil {
		h.static.ServeHTTP(w, r)
		return
	}
	target := "/" + slug + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func (h *PageHandler) serve(w http.ResponseWriter, r *http.Request, slug string) {
	out, err := h.siteService.Render(r.Context(), slug, r.URL.Query().Get("category"))
	switch {
	case errors.Is(err, services.ErrPageNotFound), errors.Is(err, pages.ErrNoSource):
		h.static.ServeHTTP(w, r)
		return
	case err != nil:
		h.logger.Error("rendering page failed", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
