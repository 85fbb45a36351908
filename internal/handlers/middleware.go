package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"vocamaster/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	IdentityContextKey ContextKey = "identity"
	RoleContextKey     ContextKey = "role"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *security.TokenIssuer
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenIssuer, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		tokens:  tokens,
		limiter: limiter,
	}
}

// RequireIdentity requires a valid identity cookie. Every data route
// sits behind it; without a bootstrapped session nothing is readable.
func (m *Middleware) RequireIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := m.identityClaims(r)
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, claims)
		if role := m.roleClaims(r); role != nil {
			ctx = context.WithValue(ctx, RoleContextKey, role)
		}
		next(w, r.WithContext(ctx))
	}
}

// RequireStudent requires a student role cookie on top of the identity
func (m *Middleware) RequireStudent(next http.HandlerFunc) http.HandlerFunc {
	return m.requireRole(security.RoleStudent, next)
}

// RequireAdmin requires an admin role cookie on top of the identity
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.requireRole(security.RoleAdmin, next)
}

func (m *Middleware) requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := m.identityClaims(r)
		if identity == nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		roleClaims := m.roleClaims(r)
		if roleClaims == nil || roleClaims.Role != role {
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		ctx = context.WithValue(ctx, RoleContextKey, roleClaims)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the configured request rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func (m *Middleware) identityClaims(r *http.Request) *security.SessionClaims {
	cookie, err := r.Cookie(IdentityCookieName)
	if err != nil {
		return nil
	}
	claims, err := m.tokens.Parse(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

func (m *Middleware) roleClaims(r *http.Request) *security.SessionClaims {
	cookie, err := r.Cookie(RoleCookieName)
	if err != nil {
		return nil
	}
	claims, err := m.tokens.Parse(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// IdentityFromContext retrieves the identity claims from the request context
func IdentityFromContext(ctx context.Context) *security.SessionClaims {
	claims, ok := ctx.Value(IdentityContextKey).(*security.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// RoleFromContext retrieves the role claims from the request context
func RoleFromContext(ctx context.Context) *security.SessionClaims {
	claims, ok := ctx.Value(RoleContextKey).(*security.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
