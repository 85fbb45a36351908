package handlers

import (
	"net/http"

	"vocamaster/internal/service"
	"vocamaster/internal/store"
)

// ResultsHandler handles score history and review requests
type ResultsHandler struct {
	reviewService *service.ReviewService
	store         store.Store
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(reviewService *service.ReviewService, st store.Store) *ResultsHandler {
	return &ResultsHandler{
		reviewService: reviewService,
		store:         st,
	}
}

// Mine returns the logged-in student's results oldest first
func (h *ResultsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	role := RoleFromContext(r.Context())
	results, err := h.store.ResultsByStudent(role.StudentName)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list results", err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// All returns every student's results, for the admin dashboard
func (h *ResultsHandler) All(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.Results()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list results", err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// Review returns the student's deduplicated missed words
func (h *ResultsHandler) Review(w http.ResponseWriter, r *http.Request) {
	role := RoleFromContext(r.Context())
	words, err := h.reviewService.MissedWords(role.StudentName)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to build review list", err)
		return
	}
	respondJSON(w, http.StatusOK, words)
}
