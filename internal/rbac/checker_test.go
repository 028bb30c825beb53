package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
)

func TestCheckerDefaults(t *testing.T) {
	c := NewChecker(nil)
	if !c.Has("teacher", PermQuizCreate) {
		t.Fatalf("teacher should create quizzes")
	}
	if c.Has("teacher", PermTeachersManage) || c.Has("teacher", PermQuizManageAny) {
		t.Fatalf("teacher must not manage accounts or foreign quizzes")
	}
	if !c.Has("admin", PermTeachersManage) || !c.Has("admin", PermQuizManageAny) {
		t.Fatalf("admin wildcard should grant everything")
	}
	if c.Has("student", PermQuizCreate) || c.Has("", PermQuizCreate) {
		t.Fatalf("unknown roles get nothing")
	}
	if !c.Any("teacher", PermTeachersManage, PermQuizViewOwn) {
		t.Fatalf("Any should match one granted permission")
	}
}

func TestWildcardPattern(t *testing.T) {
	c := NewChecker(map[string][]string{"auditor": {"quiz:*"}})
	if !c.Has("auditor", PermQuizManageAny) {
		t.Fatalf("prefix wildcard should match")
	}
	if c.Has("auditor", PermTeachersManage) {
		t.Fatalf("prefix wildcard matched another namespace")
	}
}

func TestCanManage(t *testing.T) {
	c := NewChecker(nil)
	cases := []struct {
		role, email, owner string
		want               bool
	}{
		{"teacher", "t1@x.com", "t1@x.com", true},
		{"teacher", "t1@x.com", "t2@x.com", false},
		{"admin", "admin@x.com", "t2@x.com", true},
		{"teacher", "", "", false},
	}
	for _, tc := range cases {
		if got := c.CanManage(tc.role, tc.email, tc.owner); got != tc.want {
			t.Fatalf("CanManage(%q,%q,%q) = %v", tc.role, tc.email, tc.owner, got)
		}
	}
}

func TestRequireRedirects(t *testing.T) {
	h := Require(PermTeachersManage, "/console/dashboard")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	for role, want := range map[string]int{"admin": http.StatusTeapot, "teacher": http.StatusFound, "": http.StatusFound} {
		r := httptest.NewRequest(http.MethodGet, "/console/teachers", nil)
		if role != "" {
			r = r.WithContext(auth.WithIdentity(r.Context(), &auth.Identity{Email: role + "@x.com", Role: role}))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		if rec.Code != want {
			t.Fatalf("role %q: status %d want %d", role, rec.Code, want)
		}
		if want == http.StatusFound && rec.Header().Get("Location") != "/console/dashboard" {
			t.Fatalf("role %q: location %q", role, rec.Header().Get("Location"))
		}
	}
}
