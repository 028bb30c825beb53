package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/console"
	"github.com/mind-engage/ifat/internal/view"
)

// maxImportBytes caps the uploaded workbook size.
const maxImportBytes = 10 << 20

func ListTeachersHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teachersPage(w, r, svc, views, http.StatusOK, "", "")
	}
}

func CreateTeacherHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.IdentityFromContext(r.Context())
		_, err := svc.CreateTeacher(r.Context(), id, r.PostFormValue("email"), r.PostFormValue("password"))
		switch {
		case errors.Is(err, console.ErrEmailTaken):
			teachersPage(w, r, svc, views, http.StatusConflict, "This email is already registered.", "")
			return
		case errors.Is(err, console.ErrInvalidInput):
			teachersPage(w, r, svc, views, http.StatusBadRequest, msgBadSignup, "")
			return
		case err != nil:
			serverError(w, r, views, err)
			return
		}
		http.Redirect(w, r, teachersPath, http.StatusFound)
	}
}

func DeleteTeacherHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teacherID, err := idParam(r)
		if err != nil {
			teachersPage(w, r, svc, views, http.StatusNotFound, "Teacher not found.", "")
			return
		}
		err = svc.DeleteTeacher(r.Context(), auth.IdentityFromContext(r.Context()), teacherID)
		switch {
		case errors.Is(err, console.ErrNotFound):
			teachersPage(w, r, svc, views, http.StatusNotFound, "Teacher not found.", "")
			return
		case errors.Is(err, console.ErrForbidden):
			teachersPage(w, r, svc, views, http.StatusForbidden, "You cannot delete your own account or the last admin.", "")
			return
		case err != nil:
			serverError(w, r, views, err)
			return
		}
		http.Redirect(w, r, teachersPath, http.StatusFound)
	}
}

// ImportTeachersHandler accepts a multipart upload in the "file" field.
func ImportTeachersHandler(svc Console, views view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
		f, _, err := r.FormFile("file")
		if err != nil {
			teachersPage(w, r, svc, views, http.StatusBadRequest, "Choose an .xlsx file to import.", "")
			return
		}
		defer f.Close()

		res, err := svc.ImportTeachers(r.Context(), auth.IdentityFromContext(r.Context()), f)
		if errors.Is(err, console.ErrInvalidInput) {
			teachersPage(w, r, svc, views, http.StatusBadRequest, "The file is not a readable .xlsx workbook.", "")
			return
		}
		if err != nil {
			serverError(w, r, views, err)
			return
		}
		teachersPage(w, r, svc, views, http.StatusOK, "", importNotice(res))
	}
}

func importNotice(res console.ImportResult) string {
	msg := fmt.Sprintf("Imported %d account(s); %d already registered.", res.Created, res.Skipped)
	if len(res.Invalid) > 0 {
		rows := make([]string, len(res.Invalid))
		for i, n := range res.Invalid {
			rows[i] = fmt.Sprint(n)
		}
		msg += " Rejected rows: " + strings.Join(rows, ", ") + "."
	}
	return msg
}

func teachersPage(w http.ResponseWriter, r *http.Request, svc Console, views view.Renderer, status int, errMsg, notice string) {
	id := auth.IdentityFromContext(r.Context())
	list, err := svc.ListTeachers(r.Context(), id)
	if err != nil {
		serverError(w, r, views, err)
		return
	}
	render(w, views, status, view.Teachers, view.TeachersPage{
		Self:     id.TeacherID,
		Teachers: list,
		Error:    errMsg,
		Notice:   notice,
	})
}
