package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	s := NewSessions("test-secret", nil)

	rec := httptest.NewRecorder()
	s.Create(rec, 42)
	c := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	uid, ok := s.Parse(req)
	if !ok {
		t.Fatal("valid cookie rejected")
	}
	if uid != 42 {
		t.Fatalf("uid = %d, want 42", uid)
	}
}

func TestSessionRejectsTampering(t *testing.T) {
	s := NewSessions("test-secret", nil)

	rec := httptest.NewRecorder()
	s.Create(rec, 42)
	c := sessionCookie(t, rec)

	cases := map[string]string{
		"forged uid":     strings.Replace(c.Value, "42.", "1.", 1),
		"no signature":   "42",
		"empty":          "",
		"garbage sig":    "42.AAAA",
		"zero uid":       "0." + strings.SplitN(c.Value, ".", 2)[1],
		"extra segments": c.Value + ".more",
	}
	for name, value := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: value})
		if _, ok := s.Parse(req); ok {
			t.Errorf("%s: tampered cookie accepted", name)
		}
	}
}

func TestSessionRejectsOtherSecret(t *testing.T) {
	a := NewSessions("secret-a", nil)
	b := NewSessions("secret-b", nil)

	rec := httptest.NewRecorder()
	a.Create(rec, 7)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, rec))

	if _, ok := b.Parse(req); ok {
		t.Fatal("cookie signed with another secret accepted")
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	s := NewSessions("test-secret", nil)
	h := s.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without session")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clientes", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect to %q, want /login", loc)
	}
}

func TestRequireAuthClearsStaleSession(t *testing.T) {
	s := NewSessions("test-secret", func(ctx context.Context, uid uint) bool { return false })
	h := s.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with stale session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/clientes", nil)
	req = req.WithContext(WithUserID(req.Context(), 42))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	c := sessionCookie(t, rec)
	if c.Value != "" || c.MaxAge >= 0 {
		t.Fatal("stale session cookie was not cleared")
	}
}

func TestMiddlewarePopulatesContext(t *testing.T) {
	s := NewSessions("test-secret", nil)

	rec := httptest.NewRecorder()
	s.Create(rec, 9)

	var got uint
	h := s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, rec))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != 9 {
		t.Fatalf("context uid = %d, want 9", got)
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	s := NewSessions("test-secret", nil)
	h := s.RedirectIfAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req = req.WithContext(WithUserID(req.Context(), 3))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("authenticated user not bounced to /dashboard (status %d)", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous user blocked from /login (status %d)", rec.Code)
	}
}
