package handlers

import (
	"errors"
	"net/http"
	"time"

	"vocamaster/internal/security"
	"vocamaster/internal/service"
)

// AuthHandler handles session bootstrap and login requests
type AuthHandler struct {
	authService     *service.AuthService
	sessionDuration time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, sessionDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		sessionDuration: sessionDuration,
	}
}

// Bootstrap establishes an anonymous identity session. Clients call it
// once on startup; reusing a still-valid identity cookie is fine.
func (h *AuthHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	token, err := h.authService.Bootstrap()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to bootstrap session", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, IdentityCookieName, token, time.Now().Add(h.sessionDuration)))
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Session reports the current role, if any. Used by clients to restore
// state after a reload.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	role := RoleFromContext(r.Context())
	if role == nil {
		respondJSON(w, http.StatusOK, map[string]string{"role": ""})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"role":        role.Role,
		"studentName": role.StudentName,
	})
}

// StudentLogin exchanges a roster name for a student role cookie
func (h *AuthHandler) StudentLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	identity := IdentityFromContext(r.Context())
	token, err := h.authService.AuthenticateStudent(identity.Subject, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyName):
			respondWithError(w, http.StatusBadRequest, "Name is required", "", nil)
		case errors.Is(err, service.ErrNotRegistered):
			respondWithError(w, http.StatusUnauthorized, "Name is not on the roster", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Student login failed", err)
		}
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, RoleCookieName, token, time.Now().Add(h.sessionDuration)))
	respondJSON(w, http.StatusOK, map[string]string{
		"role":        security.RoleStudent,
		"studentName": req.Name,
	})
}

// AdminLogin exchanges the admin password for an admin role cookie
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	identity := IdentityFromContext(r.Context())
	token, err := h.authService.AuthenticateAdmin(identity.Subject, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			respondWithError(w, http.StatusUnauthorized, "Wrong password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Admin login failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, RoleCookieName, token, time.Now().Add(h.sessionDuration)))
	respondJSON(w, http.StatusOK, map[string]string{"role": security.RoleAdmin})
}

// Logout drops the role cookie. The identity cookie stays, so the
// client keeps its data session and can log in again without a new
// bootstrap.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, RoleCookieName))
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
