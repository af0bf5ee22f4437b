package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/minute-policy-service/pkg/common"
)

// limiterKey picks the id a request is throttled on: the child when the
// request names one, otherwise the app.
func limiterKey(req any) (string, bool) {
	in, ok := req.(*structpb.Struct)
	if !ok {
		return "", false
	}
	for _, field := range []string{"child_id", "app_id"} {
		if v, ok := in.GetFields()[field]; ok && v.GetStringValue() != "" {
			return v.GetStringValue(), true
		}
	}
	return "", false
}

func (s *PolicyServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targets := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[FullMethod(method)] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if targets[info.FullMethod] {
			if key, ok := limiterKey(req); ok && !s.CheckChildLimiter(key) {
				return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
			}
		}

		return handler(ctx, req)
	}
}

func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			fields = append(fields, zap.String(common.LoggerFieldRemoteAddress, p.Addr.String()))
		}

		logger := common.GetLoggerWith(common.LoggerNameGrpcServer)
		switch status.Code(err) {
		case codes.OK:
			logger.Info("call", fields...)
		case codes.Internal, codes.Unknown:
			logger.Error("call failed", append(fields, zap.Error(err))...)
		default:
			logger.Warn("call rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// NewServer builds a gRPC server with logging and rate limiting on every
// command method, and registers s on it.
func NewServer(s *PolicyServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		LoggingInterceptor(),
		s.CreateRateLimitInterceptor(LimitedMethods),
	))
	server := grpc.NewServer(opts...)
	RegisterPolicyServiceServer(server, s)
	return server
}

// LimitedMethods are throttled per child or app. SetLimiter is left out so a
// throttled child can always be reconfigured.
var LimitedMethods = []string{
	MethodGetChild,
	MethodSetLock,
	MethodSetPaused,
	MethodApproveAccess,
	MethodRecordUsage,
	MethodSetTrustScore,
	MethodSetAppAllowed,
	MethodSetAppPaused,
	MethodSetAppTimeLimit,
	MethodAddWebRule,
	MethodListAlerts,
}
