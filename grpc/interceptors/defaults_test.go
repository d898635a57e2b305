package interceptors_test

import (
	"context"
	"testing"

	"github.com/DataDog/dd-trace-go/v2/ddtrace/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/trustcentric/requestlog/common/logger"
	"github.com/trustcentric/requestlog/grpc/interceptors"
	"github.com/trustcentric/requestlog/requestlog"
)

// chainHandler nests the interceptors around handler the way
// grpc.ChainUnaryInterceptor does on a real server.
func chainHandler(chain []grpc.UnaryServerInterceptor, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) grpc.UnaryHandler {
	h := handler
	for i := len(chain) - 1; i >= 0; i-- {
		next, interceptor := h, chain[i]
		h = func(ctx context.Context, req any) (any, error) {
			return interceptor(ctx, req, info, next)
		}
	}
	return h
}

func TestDefaultUnaryServerInterceptorsComposition(t *testing.T) {
	assert.Len(t, interceptors.DefaultUnaryServerInterceptors("account-service"), 2)
	assert.Len(t, interceptors.DefaultUnaryServerInterceptors("account-service",
		interceptors.WithTracingEnabled(false)), 1)
	assert.Empty(t, interceptors.DefaultUnaryServerInterceptors("account-service",
		interceptors.WithTracingEnabled(false),
		interceptors.WithEnrichmentEnabled(false)))
}

func TestDefaultUnaryServerInterceptorsEndToEnd(t *testing.T) {
	mt := mocktracer.Start()
	defer mt.Stop()

	resolve := func(_ context.Context, md metadata.MD) *requestlog.User {
		if vals := md.Get("x-test-user"); len(vals) > 0 {
			return requestlog.Authenticated(vals[0], nil)
		}
		return nil
	}
	chain := interceptors.DefaultUnaryServerInterceptors("account-service",
		interceptors.WithUserResolver(resolve))

	core, logs := observer.New(zap.DebugLevel)
	md := metadata.New(map[string]string{"x-test-user": "alice"})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	ctx = logger.ContextWithLogger(ctx, logger.NewLogger(zap.New(core)))

	handler := func(ctx context.Context, _ any) (any, error) {
		logger.FromContext(ctx).Info("handled")
		return "ok", nil
	}

	resp, err := chainHandler(chain, serverInfo, handler)(ctx, "req")
	require.NoError(t, err)
	require.Equal(t, "ok", resp)

	entries := logs.All()
	require.Len(t, entries, 1)
	got := map[string]string{}
	for _, f := range entries[0].Context {
		got[f.Key] = f.String
	}
	assert.Equal(t, "alice", got[requestlog.KeyUsername])
	assert.Equal(t, "/account.v1.AccountService/GetAccount", got[requestlog.KeyPathInfo])
	// The trace interceptor ran first, so the log line is joinable with the trace.
	assert.Contains(t, got, "dd.trace_id")
	assert.Contains(t, got, "dd.span_id")
}
