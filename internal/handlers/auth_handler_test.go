package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vocamaster/internal/models"
	"vocamaster/internal/security"
	"vocamaster/internal/service"
	"vocamaster/internal/store"
)

type fixture struct {
	mux   *http.ServeMux
	store *store.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemoryStore()
	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	authService := service.NewAuthService(st, tokens, "0504", "")
	wordbookService := service.NewWordbookService(st, nil)

	limiter := security.NewRateLimiter(1000, time.Minute)
	middleware := NewMiddleware(tokens, limiter)
	authHandler := NewAuthHandler(authService, time.Hour)
	wordbookHandler := NewWordbookHandler(wordbookService, st)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/session", authHandler.Bootstrap)
	mux.HandleFunc("GET /api/session", middleware.RequireIdentity(authHandler.Session))
	mux.HandleFunc("POST /api/login/student", middleware.RequireIdentity(authHandler.StudentLogin))
	mux.HandleFunc("POST /api/login/admin", middleware.RequireIdentity(authHandler.AdminLogin))
	mux.HandleFunc("POST /api/logout", middleware.RequireIdentity(authHandler.Logout))
	mux.HandleFunc("GET /api/wordbooks", middleware.RequireIdentity(wordbookHandler.List))
	mux.HandleFunc("POST /api/wordbooks", middleware.RequireIdentity(wordbookHandler.Create))

	return &fixture{mux: mux, store: st}
}

// do runs a request carrying the given cookies and returns the recorder
func (f *fixture) do(method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) bootstrap(t *testing.T) *http.Cookie {
	t.Helper()
	rec := f.do("POST", "/api/session", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("bootstrap status = %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == IdentityCookieName {
			return c
		}
	}
	t.Fatal("bootstrap did not set an identity cookie")
	return nil
}

func TestDataRoutesRequireIdentity(t *testing.T) {
	f := newFixture(t)

	rec := f.do("GET", "/api/wordbooks", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	identity := f.bootstrap(t)
	rec = f.do("GET", "/api/wordbooks", "", []*http.Cookie{identity})
	if rec.Code != http.StatusOK {
		t.Errorf("status with identity = %d, want 200", rec.Code)
	}
}

func TestStudentLoginFlow(t *testing.T) {
	f := newFixture(t)
	f.store.Append(store.KindStudents, models.Student{Name: "Alice"})
	identity := f.bootstrap(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"registered name", `{"name":"Alice"}`, http.StatusOK},
		{"not on roster", `{"name":"Bob"}`, http.StatusUnauthorized},
		{"empty name", `{"name":""}`, http.StatusBadRequest},
		{"bad body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do("POST", "/api/login/student", tt.body, []*http.Cookie{identity})
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAdminLoginFlow(t *testing.T) {
	f := newFixture(t)
	identity := f.bootstrap(t)

	rec := f.do("POST", "/api/login/admin", `{"password":"1234"}`, []*http.Cookie{identity})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	rec = f.do("POST", "/api/login/admin", `{"password":"0504"}`, []*http.Cookie{identity})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var roleCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == RoleCookieName {
			roleCookie = c
		}
	}
	if roleCookie == nil {
		t.Fatal("admin login did not set a role cookie")
	}

	rec = f.do("GET", "/api/session", "", []*http.Cookie{identity, roleCookie})
	var session map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session["role"] != security.RoleAdmin {
		t.Errorf("session role = %q, want admin", session["role"])
	}
}

func TestLogoutDropsOnlyRoleCookie(t *testing.T) {
	f := newFixture(t)
	f.store.Append(store.KindStudents, models.Student{Name: "Alice"})
	identity := f.bootstrap(t)

	rec := f.do("POST", "/api/login/student", `{"name":"Alice"}`, []*http.Cookie{identity})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}

	rec = f.do("POST", "/api/logout", "", []*http.Cookie{identity})
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == RoleCookieName && c.MaxAge != -1 {
			t.Error("logout should delete the role cookie")
		}
		if c.Name == IdentityCookieName {
			t.Error("logout must not touch the identity cookie")
		}
	}

	// The identity session still works for data reads
	rec = f.do("GET", "/api/wordbooks", "", []*http.Cookie{identity})
	if rec.Code != http.StatusOK {
		t.Errorf("data read after logout = %d, want 200", rec.Code)
	}
}

func TestWordbookCreateAuthorFollowsRole(t *testing.T) {
	f := newFixture(t)
	f.store.Append(store.KindStudents, models.Student{Name: "Alice"})
	identity := f.bootstrap(t)

	// No role at all: forbidden
	rec := f.do("POST", "/api/wordbooks", `{"title":"Set1","words":"cat,고양이"}`, []*http.Cookie{identity})
	if rec.Code != http.StatusForbidden {
		t.Errorf("create without role = %d, want 403", rec.Code)
	}

	rec = f.do("POST", "/api/login/student", `{"name":"Alice"}`, []*http.Cookie{identity})
	var role *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == RoleCookieName {
			role = c
		}
	}
	if role == nil {
		t.Fatal("login did not set a role cookie")
	}

	rec = f.do("POST", "/api/wordbooks", `{"title":"Set1","words":"cat,고양이"}`, []*http.Cookie{identity, role})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}

	wordbooks, _ := f.store.Wordbooks()
	if len(wordbooks) != 1 {
		t.Fatalf("got %d wordbooks, want 1", len(wordbooks))
	}
	if wordbooks[0].Author != "Alice" {
		t.Errorf("author = %q, want Alice (taken from the session, not the body)", wordbooks[0].Author)
	}
}
