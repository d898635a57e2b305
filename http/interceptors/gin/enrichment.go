package gin

import (
	"github.com/gin-gonic/gin"

	"github.com/trustcentric/requestlog/common/headers"
	"github.com/trustcentric/requestlog/common/logger"
	"github.com/trustcentric/requestlog/common/requestid"
	"github.com/trustcentric/requestlog/requestlog"
)

// UserResolver maps a gin request to the identity the application's auth
// layer established for it. Return nil when there is no identity.
type UserResolver func(*gin.Context) *requestlog.User

// EnrichmentMiddleware derives the request context attributes and appends
// them to the context logger, so every log line emitted while handling this
// request carries them. resolveUser may be nil.
func EnrichmentMiddleware(resolveUser UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var opts []requestlog.RequestOption
		if resolveUser != nil {
			opts = append(opts, requestlog.WithUser(resolveUser(c)))
		}
		req := requestlog.FromHTTP(c.Request, opts...)
		enricher := requestlog.NewEnricher(req)

		ctx := requestlog.ContextWithRequest(c.Request.Context(), req)
		ctx = logger.ContextWithFields(ctx, enricher.Fields())
		c.Request = c.Request.WithContext(ctx)
	}
}

// RequestIDMiddleware takes the request id from http headers, or creates a
// new one if none found, and propagates it through the Go context and the
// response headers.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	if id := c.GetHeader(headers.HeaderXRequestID); id != "" {
		ctx = requestid.ContextWithRequestID(ctx, id)
	} else {
		ctx, _ = requestid.Ensure(ctx)
	}
	c.Header(headers.HeaderXRequestID, requestid.FromContext(ctx))
	c.Request = c.Request.WithContext(ctx)
}
