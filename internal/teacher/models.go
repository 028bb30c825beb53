package teacher

import "errors"

const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

var (
	ErrNotFound   = errors.New("teacher not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Teacher struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    int64  `json:"created_at,omitempty"`
}
