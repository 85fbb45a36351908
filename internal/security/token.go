package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Roles carried by a session token. An identity token has no role yet;
// it only proves the client bootstrapped a session.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims are the JWT claims for identity and role tokens
type SessionClaims struct {
	Role        string `json:"role,omitempty"`
	StudentName string `json:"studentName,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens
type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenIssuer creates a token issuer with the given HMAC secret
func NewTokenIssuer(secret string, lifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), lifetime: lifetime}
}

// IssueIdentity creates an anonymous identity token. It must be
// presented before any data access; the subject is a fresh session id.
func (t *TokenIssuer) IssueIdentity() (string, error) {
	return t.sign(SessionClaims{
		RegisteredClaims: t.registered(uuid.New().String()),
	})
}

// IssueRole upgrades an identity to a role token. identityID keeps the
// underlying identity session stable across login and logout.
func (t *TokenIssuer) IssueRole(identityID, role, studentName string) (string, error) {
	return t.sign(SessionClaims{
		Role:             role,
		StudentName:      studentName,
		RegisteredClaims: t.registered(identityID),
	})
}

// Parse verifies a token and returns its claims
func (t *TokenIssuer) Parse(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t *TokenIssuer) registered(subject string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
	}
}

func (t *TokenIssuer) sign(claims SessionClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}
