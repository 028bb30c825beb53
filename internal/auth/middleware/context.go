package auth

import "context"

// Identity is the logged-in teacher attached to a request.
type Identity struct {
	SessionID string
	TeacherID int64
	Email     string
	Role      string
}

type ctxKey string

const (
	ctxKeyIdentity    ctxKey = "identity"
	ctxKeyLookupError ctxKey = "lookup_error"
)

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	if v := ctx.Value(ctxKeyIdentity); v != nil {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}

// WithLookupError marks a request whose session could not be resolved.
func WithLookupError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, ctxKeyLookupError, err)
}

func LookupErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(ctxKeyLookupError).(error)
	return err
}
