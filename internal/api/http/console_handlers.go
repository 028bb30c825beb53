package http

import (
	"errors"
	"log"
	"net/http"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/auth/session"
	"github.com/mind-engage/ifat/internal/console"
	"github.com/mind-engage/ifat/internal/view"
)

const (
	msgInvalidLogin = "Invalid email or password. Please try again."
	msgEmailTaken   = "This email is already registered. Try logging in."
	msgBadSignup    = "Enter a valid email and a password of at most 72 characters."
)

func LoginPageHandler(views view.Renderer, signup bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.IdentityFromContext(r.Context()) != nil {
			http.Redirect(w, r, dashboardPath, http.StatusFound)
			return
		}
		render(w, views, http.StatusOK, view.Login, view.LoginPage{SignupEnabled: signup})
	}
}

func LoginHandler(svc Console, a *auth.AuthService, views view.Renderer, signup bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, password := r.PostFormValue("email"), r.PostFormValue("password")
		sess, err := svc.Login(r.Context(), email, password)
		if errors.Is(err, console.ErrInvalidCredentials) {
			render(w, views, http.StatusOK, view.Login, view.LoginPage{Error: msgInvalidLogin, Email: email, SignupEnabled: signup})
			return
		}
		if err != nil {
			serverError(w, r, views, err)
			return
		}
		startSession(w, r, a, views, sess)
	}
}

func SignupPageHandler(views view.Renderer, enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !enabled {
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}
		if auth.IdentityFromContext(r.Context()) != nil {
			http.Redirect(w, r, dashboardPath, http.StatusFound)
			return
		}
		render(w, views, http.StatusOK, view.Signup, view.LoginPage{})
	}
}

func SignupHandler(svc Console, a *auth.AuthService, views view.Renderer, enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !enabled {
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}
		email, password := r.PostFormValue("email"), r.PostFormValue("password")
		sess, err := svc.Signup(r.Context(), email, password)
		switch {
		case errors.Is(err, console.ErrEmailTaken):
			render(w, views, http.StatusConflict, view.Signup, view.LoginPage{Error: msgEmailTaken, Email: email})
			return
		case errors.Is(err, console.ErrInvalidInput):
			render(w, views, http.StatusBadRequest, view.Signup, view.LoginPage{Error: msgBadSignup, Email: email})
			return
		case err != nil:
			serverError(w, r, views, err)
			return
		}
		startSession(w, r, a, views, sess)
	}
}

func startSession(w http.ResponseWriter, r *http.Request, a *auth.AuthService, views view.Renderer, sess session.Session) {
	if err := a.SetSessionCookie(w, sess.ID, sess.ExpiresAt); err != nil {
		serverError(w, r, views, err)
		return
	}
	http.Redirect(w, r, dashboardPath, http.StatusFound)
}

// LogoutHandler always clears the cookie, even if the session is already gone.
func LogoutHandler(svc Console, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sid := a.SessionID(r); sid != "" {
			if err := svc.Logout(r.Context(), sid); err != nil {
				log.Printf("logout: %v", err)
			}
		}
		a.ClearSessionCookie(w)
		http.Redirect(w, r, loginPath, http.StatusFound)
	}
}

func DashboardHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.IdentityFromContext(r.Context())
		quizzes, err := svc.ListQuizzes(r.Context(), id)
		if err != nil {
			serverError(w, r, views, err)
			return
		}
		render(w, views, http.StatusOK, view.Dashboard, view.DashboardPage{
			Email:   id.Email,
			IsAdmin: svc.IsAdmin(id),
			Quizzes: quizzes,
		})
	}
}
