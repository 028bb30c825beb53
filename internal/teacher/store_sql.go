package teacher

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mind-engage/ifat/internal/db"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore {
	return &SQLStore{db: dbh}
}

func (s *SQLStore) Create(ctx context.Context, t *Teacher) error {
	if t.Role == "" {
		t.Role = RoleTeacher
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO teachers (email, password_hash, role, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		t.Email, t.PasswordHash, t.Role, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert teacher: %w", err)
	}
	return nil
}

func (s *SQLStore) GetByID(ctx context.Context, id int64) (Teacher, error) {
	return s.getOne(ctx, `SELECT id,email,password_hash,role,created_at FROM teachers WHERE id=$1`, id)
}

func (s *SQLStore) GetByEmail(ctx context.Context, email string) (Teacher, error) {
	return s.getOne(ctx, `SELECT id,email,password_hash,role,created_at FROM teachers WHERE email=$1`, email)
}

func (s *SQLStore) getOne(ctx context.Context, query string, arg any) (Teacher, error) {
	var t Teacher
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Email, &t.PasswordHash, &t.Role, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Teacher{}, ErrNotFound
		}
		return Teacher{}, fmt.Errorf("get teacher: %w", err)
	}
	return t, nil
}

// List returns all accounts without password hashes, ordered by id.
func (s *SQLStore) List(ctx context.Context) ([]Teacher, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,email,role,created_at FROM teachers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	out := []Teacher{}
	for rows.Next() {
		var t Teacher
		if err := rows.Scan(&t.ID, &t.Email, &t.Role, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teachers WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return n, nil
}

func (s *SQLStore) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teachers WHERE role=$1`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return n, nil
}

// SeedAdmin creates the single admin account when the table is empty.
// It reports whether an account was created.
func SeedAdmin(ctx context.Context, s Store, email, password string, cost int) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	hash, err := HashPassword(password, cost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	if err := s.Create(ctx, &Teacher{Email: email, PasswordHash: hash, Role: RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}
