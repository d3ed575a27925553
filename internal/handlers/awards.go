package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lechatnoir.dev/internal/services"
)

// AwardHandler handles award-related endpoints
type AwardHandler struct {
	awardService *services.AwardService
}

// NewAwardHandler creates a new AwardHandler
func NewAwardHandler(as *services.AwardService) *AwardHandler {
	return &AwardHandler{awardService: as}
}

// ListAwards handles GET /api/awards - the awards view, filtered by ?category=
func (h *AwardHandler) ListAwards(w http.ResponseWriter, r *http.Request) {
	view := h.awardService.View(r.Context(), r.URL.Query().Get("category"))
	respondJSON(w, http.StatusOK, view)
}

// GetSummary handles GET /api/awards/summary
func (h *AwardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.awardService.Summary(r.Context()))
}

// GetAward handles GET /api/awards/{id}
func (h *AwardHandler) GetAward(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid award id")
		return
	}

	award, err := h.awardService.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrAwardNotFound) {
		respondError(w, http.StatusNotFound, "Award not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, award)
}
