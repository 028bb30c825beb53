package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/export"
	"github.com/mind-engage/ifat/internal/quiz"
	"github.com/mind-engage/ifat/internal/rbac"
	syncx "github.com/mind-engage/ifat/internal/sync"
)

const (
	MaxTitle     = 200
	MaxQuestions = 200
	MaxOptions   = 26
)

// NewQuiz is the teacher's input when creating a quiz.
type NewQuiz struct {
	Title          string   `validate:"required,max=200"`
	QuestionCount  int      `validate:"min=1,max=200"`
	OptionCount    int      `validate:"min=1,max=26"`
	CorrectAnswers []string `validate:"dive,required,excludesall=0x2C"`
}

// validate trims and upper-cases the input, then checks it. Every answer
// must be one of the first OptionCount letters.
func (n NewQuiz) validate() (NewQuiz, error) {
	n.Title = strings.TrimSpace(n.Title)
	answers := make([]string, len(n.CorrectAnswers))
	for i, a := range n.CorrectAnswers {
		answers[i] = strings.ToUpper(strings.TrimSpace(a))
	}
	n.CorrectAnswers = answers
	if err := validate.Struct(n); err != nil {
		return n, invalidQuiz("%s", fieldProblem(err))
	}
	if len(n.CorrectAnswers) != n.QuestionCount {
		return n, invalidQuiz("expected %d answers, got %d", n.QuestionCount, len(n.CorrectAnswers))
	}
	last := rune('A' + n.OptionCount - 1)
	for i, a := range n.CorrectAnswers {
		if len(a) != 1 || rune(a[0]) < 'A' || rune(a[0]) > last {
			return n, invalidQuiz("answer %d must be a letter from A to %c", i+1, last)
		}
	}
	return n, nil
}

// ListQuizzes returns every quiz for callers allowed to manage any quiz and
// the caller's own quizzes otherwise, newest first.
func (s *Service) ListQuizzes(ctx context.Context, id *auth.Identity) ([]quiz.Quiz, error) {
	if id == nil {
		return nil, ErrForbidden
	}
	var (
		out []quiz.Quiz
		err error
	)
	if s.checker.Has(id.Role, rbac.PermQuizManageAny) {
		out, err = s.quizzes.ListAll(ctx)
	} else {
		out, err = s.quizzes.ListByCreator(ctx, id.Email)
	}
	if err != nil {
		return nil, storeErr("list quizzes", err)
	}
	return out, nil
}

// CreateQuiz stores a new quiz under a fresh join code. A code collision
// draws another code, up to the configured number of attempts.
func (s *Service) CreateQuiz(ctx context.Context, id *auth.Identity, in NewQuiz) (quiz.Quiz, error) {
	if id == nil || !s.checker.Has(id.Role, rbac.PermQuizCreate) {
		return quiz.Quiz{}, ErrForbidden
	}
	in, err := in.validate()
	if err != nil {
		return quiz.Quiz{}, err
	}

	for attempt := 1; attempt <= s.codeAttempts; attempt++ {
		q := quiz.Quiz{
			Code:           s.newCode(),
			QuestionCount:  in.QuestionCount,
			OptionCount:    in.OptionCount,
			CorrectAnswers: in.CorrectAnswers,
			CreatedBy:      id.Email,
			QuizTitle:      in.Title,
			CreatedAt:      s.now().Unix(),
		}
		err := s.quizzes.Create(ctx, &q)
		if err == nil {
			s.record(ctx, syncx.NewEvent(syncx.QuizCreated, q.Code, map[string]any{
				"id": q.ID, "title": q.QuizTitle, "created_by": q.CreatedBy,
			}))
			return q, nil
		}
		if !errors.Is(err, quiz.ErrCodeTaken) {
			return quiz.Quiz{}, storeErr("create quiz", err)
		}
		log.Printf("quiz code %s already in use (attempt %d/%d)", q.Code, attempt, s.codeAttempts)
	}
	return quiz.Quiz{}, ErrCodeExhausted
}

// ManagedQuiz loads a quiz for its owner or an admin.
func (s *Service) ManagedQuiz(ctx context.Context, id *auth.Identity, quizID int64) (quiz.Quiz, error) {
	return s.managedQuiz(ctx, id, quizID, rbac.PermQuizViewOwn)
}

// managedQuiz requires perm (or manage-any) for the caller's role, then
// ownership of the quiz itself.
func (s *Service) managedQuiz(ctx context.Context, id *auth.Identity, quizID int64, perm string) (quiz.Quiz, error) {
	if id == nil || !s.checker.Any(id.Role, perm, rbac.PermQuizManageAny) {
		return quiz.Quiz{}, ErrForbidden
	}
	q, err := s.quizzes.GetByID(ctx, quizID)
	if errors.Is(err, quiz.ErrNotFound) {
		return quiz.Quiz{}, ErrNotFound
	}
	if err != nil {
		return quiz.Quiz{}, storeErr("load quiz", err)
	}
	if !s.CanManage(id, q) {
		return quiz.Quiz{}, ErrForbidden
	}
	return q, nil
}

func (s *Service) DeleteQuiz(ctx context.Context, id *auth.Identity, quizID int64) error {
	q, err := s.managedQuiz(ctx, id, quizID, rbac.PermQuizDeleteOwn)
	if err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, q.ID); err != nil {
		if errors.Is(err, quiz.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr("delete quiz", err)
	}
	s.record(ctx, syncx.NewEvent(syncx.QuizDeleted, q.Code, map[string]any{
		"id": q.ID, "created_by": q.CreatedBy, "deleted_by": id.Email,
	}))
	return nil
}

// ResolveCode maps a join code to the student view. It needs no identity
// and has no side effects.
func (s *Service) ResolveCode(ctx context.Context, code string) (quiz.View, error) {
	code = quiz.NormalizeCode(code)
	if code == "" {
		return quiz.View{}, ErrInvalidCode
	}
	q, err := s.quizzes.GetByCode(ctx, code)
	if errors.Is(err, quiz.ErrNotFound) {
		return quiz.View{}, ErrInvalidCode
	}
	if err != nil {
		return quiz.View{}, storeErr("resolve code", err)
	}
	return q.View(), nil
}

// ExportQuizzes writes the caller's quiz list as an xlsx workbook.
func (s *Service) ExportQuizzes(ctx context.Context, id *auth.Identity, w io.Writer) error {
	if id == nil || !s.checker.Any(id.Role, rbac.PermQuizExportOwn, rbac.PermQuizManageAny) {
		return ErrForbidden
	}
	list, err := s.ListQuizzes(ctx, id)
	if err != nil {
		return err
	}
	if err := export.WriteQuizzes(w, list); err != nil {
		return fmt.Errorf("export quizzes: %w", err)
	}
	return nil
}
