package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/creaturemap/internal/metrics"
)

// loggingInterceptor logs and measures every RPC.
type loggingInterceptor struct{}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, request ID, user ID, duration, and any error
// codes/messages, and records the RPC metrics.
func LoggingInterceptor() connect.Interceptor {
	return loggingInterceptor{}
}

func (loggingInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		resp, err := next(ctx, req)
		logCall(ctx, req.Spec().Procedure, requestID(req.Header().Get("X-Request-Id")), start, err)
		return resp, err
	}
}

func (loggingInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (loggingInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		procedure := conn.Spec().Procedure
		id := requestID(conn.RequestHeader().Get("X-Request-Id"))
		slog.Debug("RPC stream opened", "procedure", procedure, "request_id", id)

		err := next(ctx, conn)
		logCall(ctx, procedure, id, start, err)
		return err
	}
}

func requestID(header string) string {
	if header != "" {
		return header
	}
	return uuid.NewString()
}

func logCall(ctx context.Context, procedure, requestID string, start time.Time, err error) {
	elapsed := time.Since(start)
	duration := elapsed.Milliseconds()
	userID := GetUserID(ctx) // empty if pre-auth

	metrics.RPCDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())

	if err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) {
			metrics.RPCRequests.WithLabelValues(procedure, connectErr.Code().String()).Inc()
			slog.Warn("RPC error",
				"procedure", procedure,
				"request_id", requestID,
				"code", connectErr.Code(),
				"error", connectErr.Message(),
				"user_id", userID,
				"duration_ms", duration,
			)
		} else {
			metrics.RPCRequests.WithLabelValues(procedure, connect.CodeUnknown.String()).Inc()
			slog.Error("RPC error",
				"procedure", procedure,
				"request_id", requestID,
				"error", err,
				"user_id", userID,
				"duration_ms", duration,
			)
		}
		return
	}

	metrics.RPCRequests.WithLabelValues(procedure, "ok").Inc()
	slog.Info("RPC ok",
		"procedure", procedure,
		"request_id", requestID,
		"user_id", userID,
		"duration_ms", duration,
	)
}
