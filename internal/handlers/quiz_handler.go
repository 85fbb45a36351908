package handlers

import (
	"errors"
	"net/http"

	"vocamaster/internal/models"
	"vocamaster/internal/service"
)

// QuizHandler handles quiz session requests
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Start begins a quiz for the logged-in student
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WordbookID string `json:"wordbookId"`
		Direction  string `json:"direction"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	role := RoleFromContext(r.Context())
	prompt, err := h.quizService.Start(role.StudentName, req.WordbookID, models.Direction(req.Direction))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadDirection):
			respondWithError(w, http.StatusBadRequest, "Unknown quiz direction", "", nil)
		case errors.Is(err, service.ErrWordbookNotFound):
			respondWithError(w, http.StatusNotFound, "Wordbook not found", "", nil)
		case errors.Is(err, service.ErrEmptyWordbook):
			respondWithError(w, http.StatusConflict, "Wordbook has no words", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to start quiz", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, prompt)
}

// Submit grades one answer for the student's active quiz
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	role := RoleFromContext(r.Context())
	outcome, err := h.quizService.Submit(role.StudentName, req.Answer)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveQuiz) {
			respondWithError(w, http.StatusConflict, "No quiz in progress", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to grade answer", err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

// Reset discards the student's quiz session
func (h *QuizHandler) Reset(w http.ResponseWriter, r *http.Request) {
	role := RoleFromContext(r.Context())
	h.quizService.Reset(role.StudentName)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
