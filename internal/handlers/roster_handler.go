package handlers

import (
	"errors"
	"net/http"

	"vocamaster/internal/service"
)

// RosterHandler handles admin roster management requests
type RosterHandler struct {
	rosterService *service.RosterService
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// List returns the roster in registration order
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.rosterService.Students()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list students", err)
		return
	}
	respondJSON(w, http.StatusOK, students)
}

// Add registers a student name
func (h *RosterHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	if err := h.rosterService.AddStudent(req.Name); err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			respondWithError(w, http.StatusBadRequest, "Name is required", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to add student", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// Remove deletes a roster entry
func (h *RosterHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.rosterService.RemoveStudent(r.PathValue("id"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
