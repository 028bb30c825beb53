// Package session keeps server-side login sessions keyed by an opaque id.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID           string    `json:"id"`
	TeacherID    int64     `json:"teacher_id"`
	TeacherEmail string    `json:"teacher_email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (Session, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

// NewID returns a random session identifier.
func NewID() string { return uuid.NewString() }
