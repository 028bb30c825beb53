package session_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/mind-engage/ifat/internal/auth/session"
	"github.com/mind-engage/ifat/internal/db/dbtest"
)

func exerciseStore(t *testing.T, st session.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	live := &session.Session{
		ID: session.NewID(), TeacherID: 7, TeacherEmail: "t1@x.com", Role: "teacher",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	if err := st.Create(ctx, live); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := st.Get(ctx, live.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TeacherID != 7 || got.TeacherEmail != "t1@x.com" || got.Role != "teacher" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if !got.ExpiresAt.Equal(live.ExpiresAt) {
		t.Fatalf("expiry mismatch: %v vs %v", got.ExpiresAt, live.ExpiresAt)
	}

	if _, err := st.Get(ctx, "nope"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := st.Delete(ctx, live.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, live.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("deleted session still present: %v", err)
	}
	if err := st.Delete(ctx, live.ID); err != nil {
		t.Fatalf("deleting twice should not fail: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, session.NewMemoryStore())
}

func TestSQLStore(t *testing.T) {
	exerciseStore(t, session.NewSQLStore(dbtest.Open(t)))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb, err := session.NewRedisClient(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	defer rdb.Close()
	exerciseStore(t, session.NewRedisStore(rdb))
}

func TestDeleteExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	for name, st := range map[string]session.Store{
		"memory": session.NewMemoryStore(),
		"sql":    session.NewSQLStore(dbtest.Open(t)),
	} {
		old := &session.Session{ID: "old", TeacherID: 1, TeacherEmail: "a@x.com", Role: "teacher", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
		fresh := &session.Session{ID: "fresh", TeacherID: 1, TeacherEmail: "a@x.com", Role: "teacher", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		for _, s := range []*session.Session{old, fresh} {
			if err := st.Create(ctx, s); err != nil {
				t.Fatalf("%s create: %v", name, err)
			}
		}
		if err := st.DeleteExpired(ctx, now); err != nil {
			t.Fatalf("%s purge: %v", name, err)
		}
		if _, err := st.Get(ctx, "old"); !errors.Is(err, session.ErrNotFound) {
			t.Fatalf("%s: expired session survived purge", name)
		}
		if _, err := st.Get(ctx, "fresh"); err != nil {
			t.Fatalf("%s: live session purged: %v", name, err)
		}
	}
}
