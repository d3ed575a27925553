package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lechatnoir.dev/internal/chrome"
	"lechatnoir.dev/internal/services"
)

// ComponentHandler serves the shared chrome fragments
type ComponentHandler struct {
	siteService *services.SiteService
}

// NewComponentHandler creates a new ComponentHandler
func NewComponentHandler(ss *services.SiteService) *ComponentHandler {
	return &ComponentHandler{siteService: ss}
}

// GetFragment handles GET /components/{name}, e.g. navbar.css. The inline
// fallback is served when the fragment files cannot be loaded.
func (h *ComponentHandler) GetFragment(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var kind chrome.Kind
	switch {
	case strings.HasPrefix(name, string(chrome.KindNavbar)+"."):
		kind = chrome.KindNavbar
	case strings.HasPrefix(name, string(chrome.KindFooter)+"."):
		kind = chrome.KindFooter
	default:
		respondError(w, http.StatusNotFound, "Component not found")
		return
	}

	frag := h.siteService.Chrome(r.Context(), kind)
	content, contentType, ok := frag.File(name)
	if !ok {
		respondError(w, http.StatusNotFound, "Component not found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	if frag.Fallback {
		w.Header().Set("X-Chrome-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}
