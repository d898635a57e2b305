package interceptors

import (
	"context"
	"net"
	"net/http"

	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	"github.com/trustcentric/requestlog/common/headers"
	"github.com/trustcentric/requestlog/common/logger"
	"github.com/trustcentric/requestlog/common/requestid"
	"github.com/trustcentric/requestlog/requestlog"
)

// UserResolver maps incoming gRPC metadata to the identity the application's
// auth layer established. Return nil when there is no identity.
type UserResolver func(ctx context.Context, md metadata.MD) *requestlog.User

// UnaryEnrichmentServerInterceptor creates a gRPC interceptor that derives the
// request context attributes from metadata and peer info and appends them to
// the context logger, so every handler log line carries them. resolveUser may
// be nil.
func UnaryEnrichmentServerInterceptor(resolveUser UserResolver) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)

		// Request id: keep the client's if present, generate otherwise
		if values := md.Get(headers.HeaderXRequestID); len(values) > 0 && values[0] != "" {
			ctx = requestid.ContextWithRequestID(ctx, values[0])
		} else {
			ctx, _ = requestid.Ensure(ctx)
		}

		r := requestFromMetadata(ctx, md, info.FullMethod)
		if resolveUser != nil {
			r.User = resolveUser(ctx, md)
		}

		ctx = requestlog.ContextWithRequest(ctx, r)
		fields := requestlog.NewEnricher(r).Fields()
		if span, ok := tracer.SpanFromContext(ctx); ok {
			fields = append(fields, logger.WithTrace(span.Context())...)
		}
		ctx = logger.ContextWithFields(ctx, fields)

		return handler(ctx, req)
	}
}

// requestFromMetadata builds the enricher's request view from what gRPC
// exposes. gRPC calls ride on HTTP/2 POST requests, with the full method name
// as the path.
func requestFromMetadata(ctx context.Context, md metadata.MD, fullMethod string) *requestlog.Request {
	meta := make(requestlog.Metadata, 4)
	meta.Set(headers.MetaServerProtocol, "HTTP/2.0")

	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		meta.Set(headers.MetaRemoteAddr, stripPort(p.Addr.String()))
	}
	if vals := md.Get("x-forwarded-for"); len(vals) > 0 {
		meta.Set(headers.MetaForwardedFor, vals...)
	}
	if vals := md.Get("user-agent"); len(vals) > 0 {
		meta.Set(headers.MetaUserAgent, vals...)
	}

	return &requestlog.Request{
		Method:  http.MethodPost,
		Path:    fullMethod,
		Cookies: cookiesFromMetadata(md),
		Meta:    meta,
	}
}

// stripPort removes the port from a host:port address. Addresses without a
// port pass through unchanged.
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// cookiesFromMetadata parses any cookie metadata values with the stdlib
// cookie parser.
func cookiesFromMetadata(md metadata.MD) map[string]string {
	vals := md.Get("cookie")
	if len(vals) == 0 {
		return nil
	}
	header := http.Header{}
	for _, v := range vals {
		header.Add("Cookie", v)
	}
	parsed := (&http.Request{Header: header}).Cookies()
	cookies := make(map[string]string, len(parsed))
	for _, c := range parsed {
		cookies[c.Name] = c.Value
	}
	return cookies
}
