package gin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trustcentric/requestlog/common/config"
)

const (
	httpHandlerOp = "http.handler"
	componentName = "gin"
)

type interceptorCfg struct {
	TracingEnabled    bool
	EnrichmentEnabled bool
	HTTPDebug         bool
	HTTPTrace         bool
	Timeout           time.Duration
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

// WithTimeout sets the http handler timeout. Default is 1 minute.
func WithTimeout(timeout time.Duration) InterceptorOpt {
	return func(cfg *interceptorCfg) {
		cfg.Timeout = timeout
	}
}

// WithTracingEnabled enables/disables tracing. Default is enabled.
func WithTracingEnabled(enabled bool) InterceptorOpt {
	return func(cfg *interceptorCfg) {
		cfg.TracingEnabled = enabled
	}
}

// WithHTTPDebug enables printing log line with request info and duration for every request
func WithHTTPDebug() InterceptorOpt {
	return func(cfg *interceptorCfg) {
		cfg.HTTPDebug = true
	}
}

// WithHTTPTrace enables deeper http debugging by also printing the whole request and response body
func WithHTTPTrace() InterceptorOpt {
	return func(cfg *interceptorCfg) {
		cfg.HTTPDebug = true
		cfg.HTTPTrace = true
	}
}

// WithConfig applies a loaded middleware Config. Explicit WithXXX options
// passed after it still win.
func WithConfig(conf config.Config) InterceptorOpt {
	return func(cfg *interceptorCfg) {
		cfg.HTTPDebug = conf.HTTPDebug || conf.HTTPTrace
		cfg.HTTPTrace = conf.HTTPTrace
		if conf.Timeout > 0 {
			cfg.Timeout = conf.Timeout
		}
	}
}

// DefaultInterceptors returns all our default interceptors for Gin servers.
// Defaults can be changed by passing any of the WithXXX options.
func DefaultInterceptors(opts ...InterceptorOpt) []gin.HandlerFunc {
	cfg := &interceptorCfg{
		TracingEnabled:    true,
		EnrichmentEnabled: true,
		Timeout:           time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	middlewares := []gin.HandlerFunc{
		RequestLogging(loggingCfg{
			debug: cfg.HTTPDebug,
			trace: cfg.HTTPTrace,
		}),
		PanicRecoveryMiddleware,
		ErrorHandlingMiddleware,
		RequestIDMiddleware,
	}
	if cfg.TracingEnabled {
		middlewares = append(middlewares, TracingMiddleware)
	}
	if cfg.EnrichmentEnabled {
		middlewares = append(middlewares, EnrichmentMiddleware(cfg.ResolveUser))
	}
	middlewares = append(middlewares, TimeoutMiddleware(cfg.Timeout))

	return middlewares
}
