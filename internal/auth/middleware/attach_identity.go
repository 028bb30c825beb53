package auth

import (
	"context"
	"log"
	"net/http"
)

// Resolver maps a session id to the logged-in teacher. It returns nil for
// unknown or expired sessions.
type Resolver func(ctx context.Context, sessionID string) (*Identity, error)

// AttachIdentity resolves the session cookie on every request. A lookup
// failure is logged and recorded on the request, which then continues
// without an identity: public pages keep working and RequireTeacher turns
// the failure into an error page.
func AttachIdentity(a *AuthService, resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := a.SessionID(r)
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := resolve(r.Context(), sid)
			if err != nil {
				log.Printf("session lookup failed: %v", err)
				next.ServeHTTP(w, r.WithContext(WithLookupError(r.Context(), err)))
				return
			}
			if id == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireTeacher redirects anonymous callers to the login page. A request
// whose session lookup failed is handed to fail instead; a nil fail
// answers with a plain 500.
func RequireTeacher(loginPath string, fail func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	if fail == nil {
		fail = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := LookupErrorFromContext(r.Context()); err != nil {
				fail(w, r, err)
				return
			}
			if IdentityFromContext(r.Context()) == nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
