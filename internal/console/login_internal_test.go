package console

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/ifat/internal/auth/session"
	"github.com/mind-engage/ifat/internal/db/dbtest"
	"github.com/mind-engage/ifat/internal/quiz"
	"github.com/mind-engage/ifat/internal/teacher"
)

func TestUnknownEmailStillRunsBcrypt(t *testing.T) {
	dbh := dbtest.Open(t)
	s := New(Deps{
		Teachers: teacher.NewSQLStore(dbh),
		Quizzes:  quiz.NewSQLStore(dbh),
		Sessions: session.NewMemoryStore(),
	}, Options{BcryptCost: bcrypt.MinCost})

	if s.dummy != "" {
		t.Fatalf("dummy hash computed before first use")
	}
	if _, err := s.Login(context.Background(), "nobody@x.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	cost, err := bcrypt.Cost([]byte(s.dummy))
	if err != nil {
		t.Fatalf("dummy hash not computed: %v", err)
	}
	if cost != bcrypt.MinCost {
		t.Fatalf("dummy hash cost = %d, want %d", cost, bcrypt.MinCost)
	}
	if teacher.VerifyPassword(s.dummyHash(), "pw") {
		t.Fatalf("dummy hash must not match a submitted password")
	}
}
