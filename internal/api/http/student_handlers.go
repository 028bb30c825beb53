package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mind-engage/ifat/internal/console"
	"github.com/mind-engage/ifat/internal/view"
)

// StudentHomeHandler serves the landing page, or the answer sheet directly
// when a ?code= link was followed.
func StudentHomeHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			render(w, views, http.StatusOK, view.StudentHome, view.StudentHomePage{})
			return
		}
		renderJoin(w, r, svc, views, code)
	}
}

func JoinHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderJoin(w, r, svc, views, r.PostFormValue("code"))
	}
}

// renderJoin is the single path from a submitted code to the answer sheet.
func renderJoin(w http.ResponseWriter, r *http.Request, svc Console, views view.Renderer, code string) {
	v, err := svc.ResolveCode(r.Context(), code)
	if errors.Is(err, console.ErrInvalidCode) {
		render(w, views, http.StatusNotFound, view.StudentHome, view.StudentHomePage{
			Code:  strings.TrimSpace(code),
			Error: "Invalid code!",
		})
		return
	}
	if err != nil {
		serverError(w, r, views, err)
		return
	}
	render(w, views, http.StatusOK, view.StudentQuiz, view.StudentQuizPage{Quiz: v})
}
