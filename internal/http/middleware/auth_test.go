package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/user"
	"estagio/internal/security"
)

func authedRequest(t *testing.T, provider *security.JWTProvider, role string) (*http.Request, common.UUID) {
	t.Helper()
	userID := common.NewUUID()
	token, _, err := provider.Generate(userID, role)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/usuarios/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req, userID
}

func TestAuthenticate_PopulatesContext(t *testing.T) {
	provider := security.NewJWTProvider("secret", time.Hour)
	mw := NewAuthMiddleware(provider)

	var gotID common.UUID
	var gotRole user.Role
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req, userID := authedRequest(t, provider, "ALUNO")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if gotID != userID {
		t.Fatalf("expected user id %s, got %s", userID, gotID)
	}
	if gotRole != user.RoleStudent {
		t.Fatalf("expected role %s, got %s", user.RoleStudent, gotRole)
	}
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	provider := security.NewJWTProvider("secret", time.Hour)
	mw := NewAuthMiddleware(provider)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abcdef"},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/usuarios/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, recorder.Code)
		}
	}
}

func TestAuthenticate_RejectsExpiredToken(t *testing.T) {
	expired := security.NewJWTProvider("secret", -time.Minute)
	mw := NewAuthMiddleware(security.NewJWTProvider("secret", time.Hour))
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req, _ := authedRequest(t, expired, "ALUNO")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestRequireRole(t *testing.T) {
	provider := security.NewJWTProvider("secret", time.Hour)
	mw := NewAuthMiddleware(provider)

	protected := mw.Authenticate(RequireRole(user.RoleTechnician)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req, _ := authedRequest(t, provider, "TECNICO")
	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 for technician, got %d", recorder.Code)
	}

	req, _ = authedRequest(t, provider, "ALUNO")
	recorder = httptest.NewRecorder()
	protected.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", recorder.Code)
	}

	// A role outside the closed set is rejected, not mapped to anything.
	req, _ = authedRequest(t, provider, "ADMIN")
	recorder = httptest.NewRecorder()
	protected.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown role, got %d", recorder.Code)
	}
}

func TestRateLimiter_Window(t *testing.T) {
	limiter := NewRateLimiter()
	for i := 0; i < 3; i++ {
		if !limiter.Allow("key", 3, time.Minute) {
			t.Fatalf("expected request %d to pass", i+1)
		}
	}
	if limiter.Allow("key", 3, time.Minute) {
		t.Fatal("expected fourth request to be limited")
	}
	if !limiter.Allow("other", 3, time.Minute) {
		t.Fatal("expected distinct key to pass")
	}
}
