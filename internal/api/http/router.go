package http

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/auth/session"
	"github.com/mind-engage/ifat/internal/console"
	"github.com/mind-engage/ifat/internal/quiz"
	"github.com/mind-engage/ifat/internal/rbac"
	syncx "github.com/mind-engage/ifat/internal/sync"
	"github.com/mind-engage/ifat/internal/teacher"
	"github.com/mind-engage/ifat/internal/view"
)

// Console is the quiz service as seen by the handlers. *console.Service
// implements it.
type Console interface {
	Signup(ctx context.Context, email, password string) (session.Session, error)
	Login(ctx context.Context, email, password string) (session.Session, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentTeacher(ctx context.Context, sessionID string) (*auth.Identity, error)
	IsAdmin(id *auth.Identity) bool

	ListQuizzes(ctx context.Context, id *auth.Identity) ([]quiz.Quiz, error)
	CreateQuiz(ctx context.Context, id *auth.Identity, in console.NewQuiz) (quiz.Quiz, error)
	ManagedQuiz(ctx context.Context, id *auth.Identity, quizID int64) (quiz.Quiz, error)
	DeleteQuiz(ctx context.Context, id *auth.Identity, quizID int64) error
	ResolveCode(ctx context.Context, code string) (quiz.View, error)
	ExportQuizzes(ctx context.Context, id *auth.Identity, w io.Writer) error

	ListTeachers(ctx context.Context, id *auth.Identity) ([]teacher.Teacher, error)
	CreateTeacher(ctx context.Context, id *auth.Identity, email, password string) (teacher.Teacher, error)
	DeleteTeacher(ctx context.Context, id *auth.Identity, teacherID int64) error
	ImportTeachers(ctx context.Context, id *auth.Identity, r io.Reader) (console.ImportResult, error)

	Activity(ctx context.Context, id *auth.Identity, afterSeq int64) ([]syncx.Event, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Console      Console
	Auth         *auth.AuthService
	Views        view.Renderer
	DB           Pinger
	PublicURL    string
	EnableSignup bool
}

const (
	loginPath     = "/console"
	dashboardPath = "/console/dashboard"
	teachersPath  = "/console/teachers"
)

// Mount registers every console and student route on r.
func Mount(r chi.Router, d Deps) {
	r.Use(auth.AttachIdentity(d.Auth, d.Console.CurrentTeacher))

	// Student pages (public)
	r.Get("/", StudentHomeHandler(d.Console, d.Views))
	r.Post("/join", JoinHandler(d.Console, d.Views))

	// Console login/signup (public)
	r.Get("/console", LoginPageHandler(d.Views, d.EnableSignup))
	r.Post("/console", LoginHandler(d.Console, d.Auth, d.Views, d.EnableSignup))
	r.Get("/console/signup", SignupPageHandler(d.Views, d.EnableSignup))
	r.Post("/console/signup", SignupHandler(d.Console, d.Auth, d.Views, d.EnableSignup))
	r.Get("/console/logout", LogoutHandler(d.Console, d.Auth))

	// Teacher console (login → identity in context)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireTeacher(loginPath, func(w http.ResponseWriter, r *http.Request, err error) {
			serverError(w, r, d.Views, err)
		}))

		pr.Get("/console/dashboard", DashboardHandler(d.Console, d.Views))
		pr.Get("/console/new", NewQuizPageHandler(d.Views))
		pr.Post("/console/new", CreateQuizHandler(d.Console, d.Views))
		pr.Get("/console/delete/{id}", DeleteQuizHandler(d.Console, d.Views))
		pr.Get("/console/qr/{id}", ShowQRHandler(d.Console, d.Views, d.PublicURL))
		pr.Get("/console/export", ExportQuizzesHandler(d.Console, d.Views))

		// Admin only; everyone else goes back to the dashboard
		pr.Group(func(ar chi.Router) {
			ar.Use(rbac.Require(rbac.PermTeachersManage, dashboardPath))

			ar.Get("/console/teachers", ListTeachersHandler(d.Console, d.Views))
			ar.Post("/console/teachers", CreateTeacherHandler(d.Console, d.Views))
			ar.Post("/console/teachers/import", ImportTeachersHandler(d.Console, d.Views))
			ar.Get("/console/deleteTeacher/{id}", DeleteTeacherHandler(d.Console, d.Views))
		})

		pr.With(rbac.Require(rbac.PermActivityView, dashboardPath)).
			Get("/console/activity", ActivityHandler(d.Console, d.Views))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", ReadyHandler(d.DB))
}

// ReadyHandler reports 503 while the database is unreachable.
func ReadyHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
