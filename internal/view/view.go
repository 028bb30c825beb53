// Package view renders the console and student pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/mind-engage/ifat/internal/quiz"
	syncx "github.com/mind-engage/ifat/internal/sync"
	"github.com/mind-engage/ifat/internal/teacher"
)

// Page template names.
const (
	Login       = "login.html"
	Signup      = "signup.html"
	Dashboard   = "dashboard.html"
	Teachers    = "teachers.html"
	NewQuiz     = "new_quiz.html"
	ShowQR      = "show_qr.html"
	StudentHome = "student_home.html"
	StudentQuiz = "student_quiz.html"
	Message     = "message.html"
	Activity    = "activity.html"
)

type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

//go:embed templates/*.html
var templateFS embed.FS

type Templates struct {
	set *template.Template
}

func NewTemplates() (*Templates, error) {
	set, err := template.New("").Funcs(template.FuncMap{
		"options": optionLetters,
		"inc":     func(i int) int { return i + 1 },
		"unix": func(sec int64) string {
			return time.Unix(sec, 0).UTC().Format("2006-01-02 15:04:05")
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (t *Templates) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := t.set.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// optionLetters returns "A", "B", ... for n options.
func optionLetters(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n && i < 26; i++ {
		out = append(out, string(rune('A'+i)))
	}
	return out
}

type LoginPage struct {
	Error         string
	Email         string
	SignupEnabled bool
}

type DashboardPage struct {
	Email   string
	IsAdmin bool
	Quizzes []quiz.Quiz
}

type TeachersPage struct {
	Self     int64
	Teachers []teacher.Teacher
	Error    string
	Notice   string
}

type NewQuizPage struct {
	Error         string
	Title         string
	QuestionCount string
	OptionCount   string
	Answers       string
}

type QRPage struct {
	Quiz    quiz.Quiz
	JoinURL string
}

// StudentHomePage is the join form. Code and Error are set after a rejected
// join so the student can correct what they typed.
type StudentHomePage struct {
	Code  string
	Error string
}

type StudentQuizPage struct {
	Quiz quiz.View
}

type MessagePage struct {
	Title    string
	Body     string
	Link     string
	LinkText string
}

// ActivityPage lists audit events. Next is the seq to page from, or 0 on
// the last page.
type ActivityPage struct {
	Events []syncx.Event
	Next   int64
}
