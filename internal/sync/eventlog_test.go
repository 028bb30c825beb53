package syncx_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mind-engage/ifat/internal/db/dbtest"
	syncx "github.com/mind-engage/ifat/internal/sync"
)

func TestEventRepoAppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := syncx.NewEventRepo(dbtest.Open(t), "")

	if err := repo.Append(ctx, syncx.NewEvent(syncx.QuizCreated, "abcd1234", map[string]any{"by": "t1@x.com"})); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, syncx.NewEvent(syncx.QuizDeleted, "abcd1234", nil)); err != nil {
		t.Fatalf("append: %v", err)
	}

	evs, err := repo.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(evs) != 2 || evs[0].Type != syncx.QuizCreated || evs[1].Type != syncx.QuizDeleted {
		t.Fatalf("unexpected events: %+v", evs)
	}
	if evs[0].SiteID != "local" || evs[0].Seq >= evs[1].Seq {
		t.Fatalf("site id / ordering wrong: %+v", evs)
	}
	var data map[string]string
	if err := json.Unmarshal([]byte(evs[0].DataJSON), &data); err != nil || data["by"] != "t1@x.com" {
		t.Fatalf("data = %q (%v)", evs[0].DataJSON, err)
	}

	rest, err := repo.List(ctx, evs[0].Seq, 10)
	if err != nil || len(rest) != 1 {
		t.Fatalf("list after first: %v %v", rest, err)
	}
}
