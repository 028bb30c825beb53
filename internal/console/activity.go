package console

import (
	"context"

	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/rbac"
	syncx "github.com/mind-engage/ifat/internal/sync"
)

// ActivityPageSize is the number of events returned per Activity call.
const ActivityPageSize = 50

// Activity returns up to ActivityPageSize audit events recorded after
// afterSeq, oldest first. It is empty when no event log is configured.
func (s *Service) Activity(ctx context.Context, id *auth.Identity, afterSeq int64) ([]syncx.Event, error) {
	if id == nil || !s.checker.Has(id.Role, rbac.PermActivityView) {
		return nil, ErrForbidden
	}
	lister, ok := s.events.(EventLister)
	if !ok {
		return nil, nil
	}
	if afterSeq < 0 {
		afterSeq = 0
	}
	out, err := lister.List(ctx, afterSeq, ActivityPageSize)
	if err != nil {
		return nil, storeErr("list activity", err)
	}
	return out, nil
}
