package security

import (
	"testing"
	"time"
)

func TestIdentityTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.IssueIdentity()
	if err != nil {
		t.Fatalf("IssueIdentity() error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if claims.Role != "" {
		t.Errorf("identity role = %q, want empty", claims.Role)
	}
	if claims.Subject == "" {
		t.Error("identity subject should be a session id")
	}
}

func TestRoleTokenCarriesIdentity(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.IssueRole("session-123", RoleStudent, "Alice")
	if err != nil {
		t.Fatalf("IssueRole() error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if claims.Subject != "session-123" {
		t.Errorf("subject = %q, want session-123", claims.Subject)
	}
	if claims.Role != RoleStudent || claims.StudentName != "Alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", mustToken(t, other)},
		{"expired", mustToken(t, NewTokenIssuer("secret", -time.Minute))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Parse(tt.token); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func mustToken(t *testing.T, issuer *TokenIssuer) string {
	t.Helper()
	token, err := issuer.IssueIdentity()
	if err != nil {
		t.Fatalf("IssueIdentity() error: %v", err)
	}
	return token
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("0504")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if !CheckPasswordHash("0504", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("1234", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestConstantTimeEquals(t *testing.T) {
	if !ConstantTimeEquals("0504", "0504") {
		t.Error("equal strings should match")
	}
	if ConstantTimeEquals("0504", "0505") {
		t.Error("different strings should not match")
	}
	if ConstantTimeEquals("0504", "05040") {
		t.Error("different lengths should not match")
	}
}
