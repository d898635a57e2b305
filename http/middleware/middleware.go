package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/trustcentric/requestlog/common/config"
	"github.com/trustcentric/requestlog/common/headers"
	"github.com/trustcentric/requestlog/common/logger"
	"github.com/trustcentric/requestlog/common/requestid"
	"github.com/trustcentric/requestlog/requestlog"
)

// UserResolver maps an inbound request to the identity the application's auth
// layer established for it. Return nil when there is no identity.
type UserResolver func(*http.Request) *requestlog.User

type enrichCfg struct {
	resolveUser UserResolver
}

// Option customizes the enrichment middleware.
type Option func(*enrichCfg)

// WithUserResolver wires the application's auth layer into enrichment so the
// username and org attributes can be derived. Without it both stay at the
// placeholder value.
func WithUserResolver(resolve UserResolver) Option {
	return func(cfg *enrichCfg) {
		cfg.resolveUser = resolve
	}
}

// Enrich returns middleware that derives the request context attributes and
// appends them to the context logger, so every log line emitted downstream
// carries them. Requests are never rejected here; attributes that cannot be
// derived fall back to the placeholder.
func Enrich(opts ...Option) func(http.Handler) http.Handler {
	cfg := &enrichCfg{}
	for _, opt := range opts {
		opt(cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var reqOpts []requestlog.RequestOption
			if cfg.resolveUser != nil {
				reqOpts = append(reqOpts, requestlog.WithUser(cfg.resolveUser(r)))
			}
			req := requestlog.FromHTTP(r, reqOpts...)
			enricher := requestlog.NewEnricher(req)

			ctx := requestlog.ContextWithRequest(r.Context(), req)
			ctx = logger.ContextWithFields(ctx, enricher.Fields())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID returns middleware that takes the request id from the
// x-request-id header, or generates a new one if none found, and echoes it on
// the response so clients can reference the request when reporting problems.
// The id travels through the context only; the inbound request is left as the
// client sent it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get(headers.HeaderXRequestID); id != "" {
			ctx = requestid.ContextWithRequestID(ctx, id)
		} else {
			ctx, _ = requestid.Ensure(ctx)
		}
		w.Header().Set(headers.HeaderXRequestID, requestid.FromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Chain wraps next with the default middleware stack in the right order:
// proxy-header resolution (if trusted) runs before enrichment so REMOTE_ADDR
// reflects the real client, and the request id is assigned first so it is
// present on all log lines.
func Chain(cfg config.Config, next http.Handler, opts ...Option) http.Handler {
	h := Enrich(opts...)(next)
	h = RequestID(h)
	if cfg.TrustProxy {
		h = handlers.ProxyHeaders(h)
	}
	return h
}
