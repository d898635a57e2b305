package requestid

import (
	"context"

	"github.com/google/uuid"

	"github.com/trustcentric/requestlog/common/logger"
)

// Key is the attribute name under which the request id appears in log fields.
const Key = "request_id"

// requestIDKey is a private type for context keys to avoid collisions
type requestIDKey struct{}

// ContextWithRequestID stores the request id and mirrors it into the context
// logger's fields. Empty ids are ignored.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return logger.ContextWithFields(ctx, []logger.Field{logger.String(Key, id)})
}

// FromContext returns the request id, or an empty string if none was set.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Ensure returns a context that carries a request id, generating a new UUID
// when none is present, along with the id in effect.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return ContextWithRequestID(ctx, id), id
}
