// Package console implements the teacher console: accounts and sessions,
// the quiz ownership policy, quiz lifecycle and the student join lookup.
package console

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/auth/session"
	"github.com/mind-engage/ifat/internal/quiz"
	"github.com/mind-engage/ifat/internal/rbac"
	syncx "github.com/mind-engage/ifat/internal/sync"
	"github.com/mind-engage/ifat/internal/teacher"
)

// bcrypt ignores input past 72 bytes; longer passwords are rejected instead.
const maxPasswordBytes = 72

// EventSink receives audit events for quiz and account mutations.
type EventSink interface {
	Append(ctx context.Context, e syncx.Event) error
}

// EventLister pages through recorded events. *syncx.EventRepo implements
// both EventSink and EventLister.
type EventLister interface {
	List(ctx context.Context, afterSeq int64, limit int) ([]syncx.Event, error)
}

type Deps struct {
	Teachers teacher.Store
	Quizzes  quiz.Store
	Sessions session.Store
	Events   EventSink // optional
	Checker  *rbac.Checker
}

type Options struct {
	SessionTTL   time.Duration
	CodeAttempts int
	BcryptCost   int
	Now          func() time.Time
	NewCode      func() string
}

type Service struct {
	teachers     teacher.Store
	quizzes      quiz.Store
	sessions     session.Store
	events       EventSink
	checker      *rbac.Checker
	ttl          time.Duration
	codeAttempts int
	bcryptCost   int
	now          func() time.Time
	newCode      func() string

	dummyOnce sync.Once
	dummy     string
}

func New(d Deps, o Options) *Service {
	s := &Service{
		teachers:     d.Teachers,
		quizzes:      d.Quizzes,
		sessions:     d.Sessions,
		events:       d.Events,
		checker:      d.Checker,
		ttl:          o.SessionTTL,
		codeAttempts: o.CodeAttempts,
		bcryptCost:   o.BcryptCost,
		now:          o.Now,
		newCode:      o.NewCode,
	}
	if s.checker == nil {
		s.checker = rbac.NewChecker(nil)
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}
	if s.codeAttempts <= 0 {
		s.codeAttempts = 5
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newCode == nil {
		s.newCode = quiz.NewCode
	}
	return s
}

// Signup creates a teacher account and logs it in.
func (s *Service) Signup(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	t, err := s.createTeacher(ctx, email, password, teacher.RoleTeacher, "signup")
	if err != nil {
		return session.Session{}, err
	}
	return s.startSession(ctx, t)
}

// Login starts a session when email and password match a stored account.
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Session{}, ErrInvalidCredentials
	}
	t, err := s.teachers.GetByEmail(ctx, email)
	if errors.Is(err, teacher.ErrNotFound) {
		// same bcrypt work as a wrong password, so timing does not reveal
		// whether the account exists
		teacher.VerifyPassword(s.dummyHash(), password)
		return session.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return session.Session{}, storeErr("load teacher", err)
	}
	if !teacher.VerifyPassword(t.PasswordHash, password) {
		return session.Session{}, ErrInvalidCredentials
	}

	if err := s.sessions.DeleteExpired(ctx, s.now()); err != nil {
		log.Printf("purge expired sessions: %v", err)
	}
	return s.startSession(ctx, t)
}

// dummyHash is hashed at the configured cost on first use.
func (s *Service) dummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := teacher.HashPassword(uuid.NewString(), s.bcryptCost)
		if err != nil {
			log.Printf("dummy password hash: %v", err)
		}
		s.dummy = h
	})
	return s.dummy
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return storeErr("delete session", err)
	}
	return nil
}

// CurrentTeacher returns the identity behind a session, or nil when the
// session is unknown, expired, or belongs to a deleted account. The role is
// read from the account row so role changes apply to live sessions.
func (s *Service) CurrentTeacher(ctx context.Context, sessionID string) (*auth.Identity, error) {
	if sessionID == "" {
		return nil, nil
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("load session", err)
	}
	if sess.Expired(s.now()) {
		s.dropSession(ctx, sessionID)
		return nil, nil
	}

	t, err := s.teachers.GetByID(ctx, sess.TeacherID)
	if errors.Is(err, teacher.ErrNotFound) {
		s.dropSession(ctx, sessionID)
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("load teacher", err)
	}
	return &auth.Identity{SessionID: sess.ID, TeacherID: t.ID, Email: t.Email, Role: t.Role}, nil
}

// IsAdmin reports whether id may manage teacher accounts.
func (s *Service) IsAdmin(id *auth.Identity) bool {
	return id != nil && s.checker.Has(id.Role, rbac.PermTeachersManage)
}

// CanManage reports whether id may view the answer key of, or delete, q.
func (s *Service) CanManage(id *auth.Identity, q quiz.Quiz) bool {
	return id != nil && s.checker.CanManage(id.Role, id.Email, q.CreatedBy)
}

func (s *Service) startSession(ctx context.Context, t teacher.Teacher) (session.Session, error) {
	now := s.now()
	sess := session.Session{
		ID:           session.NewID(),
		TeacherID:    t.ID,
		TeacherEmail: t.Email,
		Role:         t.Role,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, &sess); err != nil {
		return session.Session{}, storeErr("create session", err)
	}
	return sess, nil
}

func (s *Service) dropSession(ctx context.Context, id string) {
	if err := s.sessions.Delete(ctx, id); err != nil {
		log.Printf("drop session: %v", err)
	}
}

func (s *Service) record(ctx context.Context, e syncx.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, e); err != nil {
		log.Printf("audit %s %s: %v", e.Type, e.Key, err)
	}
}
