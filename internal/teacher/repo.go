package teacher

import "context"

type Store interface {
	// Create inserts t and sets its ID. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, t *Teacher) error
	GetByID(ctx context.Context, id int64) (Teacher, error)
	GetByEmail(ctx context.Context, email string) (Teacher, error)
	List(ctx context.Context) ([]Teacher, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role string) (int, error)
}
