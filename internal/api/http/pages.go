package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/ifat/internal/view"
)

func render(w http.ResponseWriter, views view.Renderer, status int, name string, data any) {
	if err := views.Render(w, status, name, data); err != nil {
		log.Printf("%v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func message(w http.ResponseWriter, views view.Renderer, status int, title, body, link, linkText string) {
	render(w, views, status, view.Message, view.MessagePage{Title: title, Body: body, Link: link, LinkText: linkText})
}

func accessDenied(w http.ResponseWriter, views view.Renderer, action string) {
	message(w, views, http.StatusForbidden, "Access Denied",
		"You are not allowed to "+action+" this quiz.", dashboardPath, "Back to Dashboard")
}

func quizNotFound(w http.ResponseWriter, views view.Renderer) {
	message(w, views, http.StatusNotFound, "Quiz not found!", "", dashboardPath, "Back to Dashboard")
}

// serverError logs err and shows a generic failure page.
func serverError(w http.ResponseWriter, r *http.Request, views view.Renderer, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	message(w, views, http.StatusInternalServerError, "Something went wrong",
		"The request could not be completed. Please try again.", "/", "Home")
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
