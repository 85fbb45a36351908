package handlers

import (
	"errors"
	"net/http"

	"vocamaster/internal/models"
	"vocamaster/internal/security"
	"vocamaster/internal/service"
	"vocamaster/internal/store"
)

// WordbookHandler handles wordbook browsing and publishing requests
type WordbookHandler struct {
	wordbookService *service.WordbookService
	store           store.Store
}

// NewWordbookHandler creates a new wordbook handler
func NewWordbookHandler(wordbookService *service.WordbookService, st store.Store) *WordbookHandler {
	return &WordbookHandler{
		wordbookService: wordbookService,
		store:           st,
	}
}

// List returns all wordbooks in publication order
func (h *WordbookHandler) List(w http.ResponseWriter, r *http.Request) {
	wordbooks, err := h.store.Wordbooks()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list wordbooks", err)
		return
	}
	respondJSON(w, http.StatusOK, wordbooks)
}

// Get returns one wordbook by id
func (h *WordbookHandler) Get(w http.ResponseWriter, r *http.Request) {
	wb, err := h.store.Wordbook(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load wordbook", err)
		return
	}
	if wb == nil {
		respondWithError(w, http.StatusNotFound, "Wordbook not found", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, wb)
}

// Create publishes a wordbook from a pasted word block. Students and
// admins both publish; the author is taken from the session role, never
// from the request body.
func (h *WordbookHandler) Create(w http.ResponseWriter, r *http.Request) {
	role := RoleFromContext(r.Context())
	if role == nil {
		respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
		return
	}

	author := models.AuthorAdmin
	if role.Role == security.RoleStudent {
		author = role.StudentName
	}

	var req struct {
		Title string `json:"title"`
		Words string `json:"words"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	if err := h.wordbookService.Create(req.Title, req.Words, author); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTitle):
			respondWithError(w, http.StatusBadRequest, "Title is required", "", nil)
		case errors.Is(err, service.ErrNoValidWords):
			respondWithError(w, http.StatusBadRequest, "No valid word lines found", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to create wordbook", err)
		}
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// Delete removes a wordbook
func (h *WordbookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.wordbookService.Delete(r.PathValue("id"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
