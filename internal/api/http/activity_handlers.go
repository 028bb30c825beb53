package http

import (
	"errors"
	"net/http"
	"strconv"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/console"
	"github.com/mind-engage/ifat/internal/view"
)

// ActivityHandler pages through the audit log with ?after=<seq>.
func ActivityHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var after int64
		if v := r.URL.Query().Get("after"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				message(w, views, http.StatusBadRequest, "Bad request", "The page cursor is not valid.", "/console/activity", "Back to Activity")
				return
			}
			after = n
		}
		events, err := svc.Activity(r.Context(), auth.IdentityFromContext(r.Context()), after)
		switch {
		case errors.Is(err, console.ErrForbidden):
			message(w, views, http.StatusForbidden, "Access Denied",
				"You are not allowed to view activity.", dashboardPath, "Back to Dashboard")
			return
		case err != nil:
			serverError(w, r, views, err)
			return
		}
		page := view.ActivityPage{Events: events}
		if len(events) == console.ActivityPageSize {
			page.Next = events[len(events)-1].Seq
		}
		render(w, views, http.StatusOK, view.Activity, page)
	}
}
