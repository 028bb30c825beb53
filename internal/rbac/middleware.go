package rbac

import (
	"net/http"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
)

var defaultChecker = NewChecker(nil)

// Require lets callers holding perm through and redirects everyone else,
// logged in or not, to redirectTo.
func Require(perm, redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.IdentityFromContext(r.Context())
			if id == nil || !defaultChecker.Has(id.Role, perm) {
				http.Redirect(w, r, redirectTo, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
