package service

import (
	"errors"
	"fmt"
	"strings"

	"vocamaster/internal/security"
	"vocamaster/internal/store"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrNotRegistered = errors.New("student is not registered")
	ErrWrongPassword = errors.New("wrong admin password")
)

// AuthService is the session/role controller. Every client first
// bootstraps an anonymous identity; a role is only attached after a
// successful student or admin login, and logout drops the role while
// the identity session persists.
type AuthService struct {
	store             store.Store
	tokens            *security.TokenIssuer
	adminPassword     string
	adminPasswordHash string
}

// NewAuthService creates a new auth service
func NewAuthService(st store.Store, tokens *security.TokenIssuer, adminPassword, adminPasswordHash string) *AuthService {
	return &AuthService{
		store:             st,
		tokens:            tokens,
		adminPassword:     adminPassword,
		adminPasswordHash: adminPasswordHash,
	}
}

// Bootstrap issues an anonymous identity token. Required before any
// data access or login attempt.
func (s *AuthService) Bootstrap() (string, error) {
	token, err := s.tokens.IssueIdentity()
	if err != nil {
		return "", fmt.Errorf("failed to issue identity: %w", err)
	}
	return token, nil
}

// AuthenticateStudent logs a student in by exact roster-name match.
// The name is trimmed first; nothing else is normalized, so "Alice"
// and "alice" are different students.
func (s *AuthService) AuthenticateStudent(identityID, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyName
	}

	student, err := s.store.StudentByName(trimmed)
	if err != nil {
		return "", fmt.Errorf("failed to check roster: %w", err)
	}
	if student == nil {
		return "", ErrNotRegistered
	}

	token, err := s.tokens.IssueRole(identityID, security.RoleStudent, trimmed)
	if err != nil {
		return "", fmt.Errorf("failed to issue student token: %w", err)
	}
	return token, nil
}

// AuthenticateAdmin logs an admin in against the configured secret. A
// bcrypt hash takes precedence when configured; otherwise the plain
// password is compared in constant time.
func (s *AuthService) AuthenticateAdmin(identityID, password string) (string, error) {
	ok := false
	if s.adminPasswordHash != "" {
		ok = security.CheckPasswordHash(password, s.adminPasswordHash)
	} else {
		ok = security.ConstantTimeEquals(password, s.adminPassword)
	}
	if !ok {
		return "", ErrWrongPassword
	}

	token, err := s.tokens.IssueRole(identityID, security.RoleAdmin, "")
	if err != nil {
		return "", fmt.Errorf("failed to issue admin token: %w", err)
	}
	return token, nil
}
