package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func cookieFrom(t *testing.T, a *AuthService, sid string, expires time.Time) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := a.SetSessionCookie(rec, sid, expires); err != nil {
		t.Fatalf("set cookie: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestSessionCookieRoundTrip(t *testing.T) {
	a := NewAuthService("secret", true)
	c := cookieFrom(t, a, "sid-1", time.Now().Add(time.Hour))
	if !c.HttpOnly || !c.Secure || c.Name != CookieName {
		t.Fatalf("unexpected cookie flags: %+v", c)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	if got := a.SessionID(r); got != "sid-1" {
		t.Fatalf("session id = %q", got)
	}
}

func TestSessionCookieRejectsForgery(t *testing.T) {
	a := NewAuthService("secret", false)
	other := NewAuthService("other-secret", false)

	forged := cookieFrom(t, other, "sid-1", time.Now().Add(time.Hour))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(forged)
	if got := a.SessionID(r); got != "" {
		t.Fatalf("cookie signed with another key accepted: %q", got)
	}

	expired := cookieFrom(t, a, "sid-1", time.Now().Add(-time.Minute))
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(expired)
	if got := a.SessionID(r); got != "" {
		t.Fatalf("expired token accepted: %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	if got := a.SessionID(r); got != "" {
		t.Fatalf("garbage accepted: %q", got)
	}
}

func TestAttachIdentityAndRequireTeacher(t *testing.T) {
	a := NewAuthService("secret", false)
	resolve := func(_ context.Context, sid string) (*Identity, error) {
		switch sid {
		case "good":
			return &Identity{SessionID: sid, TeacherID: 1, Email: "t1@x.com", Role: "teacher"}, nil
		case "broken":
			return nil, errors.New("store down")
		}
		return nil, nil
	}
	protected := AttachIdentity(a, resolve)(RequireTeacher("/console", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(IdentityFromContext(r.Context()).Email))
	})))

	cases := []struct {
		sid        string
		wantStatus int
	}{
		{"", http.StatusFound},
		{"unknown", http.StatusFound},
		{"broken", http.StatusInternalServerError},
		{"good", http.StatusOK},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/console/dashboard", nil)
		if tc.sid != "" {
			r.AddCookie(cookieFrom(t, a, tc.sid, time.Now().Add(time.Hour)))
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, r)
		if rec.Code != tc.wantStatus {
			t.Fatalf("sid %q: status %d, want %d", tc.sid, rec.Code, tc.wantStatus)
		}
		if tc.wantStatus == http.StatusFound && rec.Header().Get("Location") != "/console" {
			t.Fatalf("sid %q: redirected to %q", tc.sid, rec.Header().Get("Location"))
		}
		if tc.wantStatus == http.StatusOK && rec.Body.String() != "t1@x.com" {
			t.Fatalf("identity not attached: %q", rec.Body.String())
		}
	}

	public := AttachIdentity(a, resolve)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()) != nil || LookupErrorFromContext(r.Context()) == nil {
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookieFrom(t, a, "broken", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	public.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("public route after failed lookup: status %d", rec.Code)
	}
}
