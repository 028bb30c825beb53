package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/export"
	syncx "github.com/mind-engage/ifat/internal/sync"
	"github.com/mind-engage/ifat/internal/teacher"
)

// ImportResult summarises a bulk account import.
type ImportResult struct {
	Created int
	Skipped int   // email already registered
	Invalid []int // workbook rows rejected by validation
}

func (s *Service) ListTeachers(ctx context.Context, id *auth.Identity) ([]teacher.Teacher, error) {
	if !s.IsAdmin(id) {
		return nil, ErrForbidden
	}
	list, err := s.teachers.List(ctx)
	if err != nil {
		return nil, storeErr("list teachers", err)
	}
	return list, nil
}

func (s *Service) CreateTeacher(ctx context.Context, id *auth.Identity, email, password string) (teacher.Teacher, error) {
	if !s.IsAdmin(id) {
		return teacher.Teacher{}, ErrForbidden
	}
	return s.createTeacher(ctx, strings.TrimSpace(email), password, teacher.RoleTeacher, id.Email)
}

// DeleteTeacher removes an account. Admins cannot remove their own account
// or the last remaining admin. The account's quizzes are kept.
func (s *Service) DeleteTeacher(ctx context.Context, id *auth.Identity, teacherID int64) error {
	if !s.IsAdmin(id) {
		return ErrForbidden
	}
	if teacherID == id.TeacherID {
		return ErrForbidden
	}
	t, err := s.teachers.GetByID(ctx, teacherID)
	if errors.Is(err, teacher.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storeErr("load teacher", err)
	}
	if t.Role == teacher.RoleAdmin {
		n, err := s.teachers.CountByRole(ctx, teacher.RoleAdmin)
		if err != nil {
			return storeErr("count admins", err)
		}
		if n <= 1 {
			return ErrForbidden
		}
	}
	if err := s.teachers.Delete(ctx, teacherID); err != nil {
		if errors.Is(err, teacher.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr("delete teacher", err)
	}
	s.record(ctx, syncx.NewEvent(syncx.TeacherDeleted, t.Email, map[string]any{
		"id": t.ID, "deleted_by": id.Email,
	}))
	return nil
}

// ImportTeachers creates accounts from an xlsx workbook whose first two
// columns are email and password. Existing emails are skipped.
func (s *Service) ImportTeachers(ctx context.Context, id *auth.Identity, r io.Reader) (ImportResult, error) {
	var res ImportResult
	if !s.IsAdmin(id) {
		return res, ErrForbidden
	}
	rows, err := export.ReadTeachers(r)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, row := range rows {
		_, err := s.createTeacher(ctx, row.Email, row.Password, teacher.RoleTeacher, id.Email)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, ErrEmailTaken):
			res.Skipped++
		case errors.Is(err, ErrInvalidInput):
			res.Invalid = append(res.Invalid, row.Line)
		default:
			return res, err
		}
	}
	return res, nil
}

func (s *Service) createTeacher(ctx context.Context, email, password, role, by string) (teacher.Teacher, error) {
	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return teacher.Teacher{}, fmt.Errorf("%w: %s", ErrInvalidInput, fieldProblem(err))
	}
	// bcrypt reads at most 72 bytes; max=72 above counts runes
	if len(password) > maxPasswordBytes {
		return teacher.Teacher{}, fmt.Errorf("%w: password must be %s", ErrInvalidInput, bounds["Password"])
	}
	if _, err := s.teachers.GetByEmail(ctx, email); err == nil {
		return teacher.Teacher{}, ErrEmailTaken
	} else if !errors.Is(err, teacher.ErrNotFound) {
		return teacher.Teacher{}, storeErr("load teacher", err)
	}

	hash, err := teacher.HashPassword(password, s.bcryptCost)
	if err != nil {
		return teacher.Teacher{}, fmt.Errorf("hash password: %w", err)
	}
	t := teacher.Teacher{Email: email, PasswordHash: hash, Role: role, CreatedAt: s.now().Unix()}
	if err := s.teachers.Create(ctx, &t); err != nil {
		// a concurrent signup may win between the lookup and the insert
		if errors.Is(err, teacher.ErrEmailTaken) {
			return teacher.Teacher{}, ErrEmailTaken
		}
		return teacher.Teacher{}, storeErr("create teacher", err)
	}
	s.record(ctx, syncx.NewEvent(syncx.TeacherCreated, t.Email, map[string]any{
		"id": t.ID, "role": t.Role, "created_by": by,
	}))
	return t, nil
}
