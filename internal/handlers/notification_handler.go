package handlers

import (
	"errors"
	"net/http"

	"vocamaster/internal/service"
)

// NotificationHandler handles announcement requests
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns announcements oldest first
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.Notifications()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list notifications", err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// Broadcast publishes an announcement to all students
func (h *NotificationHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	if err := h.notificationService.Broadcast(r.Context(), req.Message); err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			respondWithError(w, http.StatusBadRequest, "Message is required", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to broadcast", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}
