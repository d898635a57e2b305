package interceptors

import (
	grpctrace "github.com/DataDog/dd-trace-go/contrib/google.golang.org/grpc/v2"
	"google.golang.org/grpc"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

type interceptorCfg struct {
	TracingEnabled    bool
	EnrichmentEnabled bool
	ResolveUser       UserResolver
}

type InterceptorOpt func(cfg *interceptorCfg)

// WithEnrichmentEnabled enables/disables request context enrichment. Default is enabled.
func WithEnrichmentEnabled(enabled bool) InterceptorOpt {
	return func(cfg *interceptorCfg) {
		cfg.EnrichmentEnabled = enabled
	}
}

// WithUserResolver wires the application's auth layer into enrichment so the
// username and org attributes can be derived.
func WithUserResolver(resolve UserResolver) InterceptorOpt {
	return func(cfg *interceptorCfg) {
		cfg.ResolveUser = resolve
	}
}

// WithTracingEnabled enables/disables tracing. Default is enabled.
func WithTracingEnabled(enabled bool) InterceptorOpt {
	return func(cfg *interceptorCfg) {
		cfg.TracingEnabled = enabled
	}
}

// DefaultUnaryServerInterceptors returns our default server interceptors in
// order, ready to be passed to grpc.ChainUnaryInterceptor. Tracing runs before
// enrichment so the enrichment interceptor can stamp trace ids onto the
// context logger.
func DefaultUnaryServerInterceptors(serviceName string, opts ...InterceptorOpt) []grpc.UnaryServerInterceptor {
	cfg := &interceptorCfg{
		TracingEnabled:    true,
		EnrichmentEnabled: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	var chain []grpc.UnaryServerInterceptor
	if cfg.TracingEnabled {
		chain = append(chain, grpctrace.UnaryServerInterceptor(
			grpctrace.WithService(serviceName),
			grpctrace.WithAnalytics(true),
			grpctrace.WithMetadataTags(),
			grpctrace.WithUntracedMethods(healthCheckMethod),
		))
	}
	if cfg.EnrichmentEnabled {
		chain = append(chain, UnaryEnrichmentServerInterceptor(cfg.ResolveUser))
	}
	return chain
}
