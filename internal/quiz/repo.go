package quiz

import "context"

type Store interface {
	// Create inserts q and sets its ID. Returns ErrCodeTaken when the code collides.
	Create(ctx context.Context, q *Quiz) error
	GetByID(ctx context.Context, id int64) (Quiz, error)
	GetByCode(ctx context.Context, code string) (Quiz, error)
	ListAll(ctx context.Context) ([]Quiz, error)
	ListByCreator(ctx context.Context, email string) ([]Quiz, error)
	Delete(ctx context.Context, id int64) error
}
