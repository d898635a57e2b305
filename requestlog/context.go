package requestlog

import (
	"context"
)

type requestKey struct{}

// ContextWithRequest stores the request view so outbound clients further down
// the call chain can propagate identity derived from it.
func ContextWithRequest(ctx context.Context, req *Request) context.Context {
	if req == nil {
		return ctx
	}
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFromContext returns the stored request, or nil if none was set.
func RequestFromContext(ctx context.Context) *Request {
	if ctx == nil {
		return nil
	}
	if req, ok := ctx.Value(requestKey{}).(*Request); ok {
		return req
	}
	return nil
}
