package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/console"
	"github.com/mind-engage/ifat/internal/quiz"
	"github.com/mind-engage/ifat/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func NewQuizPageHandler(views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, views, http.StatusOK, view.NewQuiz, view.NewQuizPage{OptionCount: "4"})
	}
}

func CreateQuizHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := view.NewQuizPage{
			Title:         r.PostFormValue("quizTitle"),
			QuestionCount: strings.TrimSpace(r.PostFormValue("questionCount")),
			OptionCount:   strings.TrimSpace(r.PostFormValue("optionCount")),
			Answers:       r.PostFormValue("correctAnswers"),
		}
		questions, err1 := strconv.Atoi(form.QuestionCount)
		options, err2 := strconv.Atoi(form.OptionCount)
		if err1 != nil || err2 != nil {
			form.Error = "Question and option counts must be whole numbers."
			render(w, views, http.StatusBadRequest, view.NewQuiz, form)
			return
		}

		_, err := svc.CreateQuiz(r.Context(), auth.IdentityFromContext(r.Context()), console.NewQuiz{
			Title:          form.Title,
			QuestionCount:  questions,
			OptionCount:    options,
			CorrectAnswers: quiz.ParseAnswers(form.Answers),
		})
		switch {
		case errors.Is(err, console.ErrInvalidQuiz):
			form.Error = err.Error()
			render(w, views, http.StatusBadRequest, view.NewQuiz, form)
			return
		case errors.Is(err, console.ErrCodeExhausted):
			form.Error = "Could not allocate a join code. Please try again."
			render(w, views, http.StatusServiceUnavailable, view.NewQuiz, form)
			return
		case errors.Is(err, console.ErrForbidden):
			accessDenied(w, views, "create")
			return
		case err != nil:
			serverError(w, r, views, err)
			return
		}
		http.Redirect(w, r, dashboardPath, http.StatusFound)
	}
}

func DeleteQuizHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := idParam(r)
		if err != nil {
			quizNotFound(w, views)
			return
		}
		err = svc.DeleteQuiz(r.Context(), auth.IdentityFromContext(r.Context()), quizID)
		switch {
		case errors.Is(err, console.ErrNotFound):
			quizNotFound(w, views)
			return
		case errors.Is(err, console.ErrForbidden):
			accessDenied(w, views, "delete")
			return
		case err != nil:
			serverError(w, r, views, err)
			return
		}
		http.Redirect(w, r, dashboardPath, http.StatusFound)
	}
}

// ShowQRHandler shows the join code, the join link and the answer key.
func ShowQRHandler(svc Console, views view.Renderer, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := idParam(r)
		if err != nil {
			quizNotFound(w, views)
			return
		}
		q, err := svc.ManagedQuiz(r.Context(), auth.IdentityFromContext(r.Context()), quizID)
		switch {
		case errors.Is(err, console.ErrNotFound):
			quizNotFound(w, views)
			return
		case errors.Is(err, console.ErrForbidden):
			accessDenied(w, views, "see")
			return
		case err != nil:
			serverError(w, r, views, err)
			return
		}
		render(w, views, http.StatusOK, view.ShowQR, view.QRPage{
			Quiz:    q,
			JoinURL: publicURL + "/?code=" + url.QueryEscape(q.Code),
		})
	}
}

func ExportQuizzesHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		err := svc.ExportQuizzes(r.Context(), auth.IdentityFromContext(r.Context()), &buf)
		if errors.Is(err, console.ErrForbidden) {
			accessDenied(w, views, "export")
			return
		}
		if err != nil {
			serverError(w, r, views, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="quizzes.xlsx"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = buf.WriteTo(w)
	}
}
