package quiz

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

const selectForm = `SELECT id,code,question_count,option_count,correct_answers,created_by,quiz_title,created_at FROM forms`

func (s *SQLStore) Create(ctx context.Context, q *Quiz) error {
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO forms (code,question_count,option_count,correct_answers,created_by,quiz_title,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		q.Code, q.QuestionCount, q.OptionCount, EncodeAnswers(q.CorrectAnswers), q.CreatedBy, q.QuizTitle, q.CreatedAt,
	).Scan(&q.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}

func (s *SQLStore) GetByID(ctx context.Context, id int64) (Quiz, error) {
	return s.getOne(ctx, selectForm+` WHERE id=$1`, id)
}

func (s *SQLStore) GetByCode(ctx context.Context, code string) (Quiz, error) {
	return s.getOne(ctx, selectForm+` WHERE code=$1`, code)
}

func (s *SQLStore) ListAll(ctx context.Context) ([]Quiz, error) {
	return s.list(ctx, selectForm+` ORDER BY id DESC`)
}

func (s *SQLStore) ListByCreator(ctx context.Context, email string) ([]Quiz, error) {
	return s.list(ctx, selectForm+` WHERE created_by=$1 ORDER BY id DESC`, email)
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM forms WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row scanner) (Quiz, error) {
	var q Quiz
	var answers string
	if err := row.Scan(&q.ID, &q.Code, &q.QuestionCount, &q.OptionCount, &answers, &q.CreatedBy, &q.QuizTitle, &q.CreatedAt); err != nil {
		return Quiz{}, err
	}
	q.CorrectAnswers = DecodeAnswers(answers)
	return q, nil
}

func (s *SQLStore) getOne(ctx context.Context, query string, arg any) (Quiz, error) {
	q, err := scanQuiz(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, fmt.Errorf("get form: %w", err)
	}
	return q, nil
}

func (s *SQLStore) list(ctx context.Context, query string, args ...any) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
