package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
	"github.com/dmitrijs2005/transkeeper/internal/server/auth"
	"github.com/dmitrijs2005/transkeeper/internal/server/metrics"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	usernameKey  ctxKey = "username"
	requestIDKey ctxKey = "requestID"
)

// publicMethods may be called without an access token.
var publicMethods = map[string]bool{
	pb.MethodPing:          true,
	pb.MethodCreateAccount: true,
	pb.MethodLogin:         true,
	pb.MethodRefreshToken:  true,
}

func metadataValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// UsernameFromContext returns the account an authenticated call runs as.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok && name != ""
}

// RequestIDFromContext returns the id assigned by requestInterceptor.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestInterceptor tags the call with a request id, turns panics into
// codes.Internal and records logs and metrics for every call.
func (s *GRPCServer) requestInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	id := metadataValue(ctx, common.RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
	}
	ctx = context.WithValue(ctx, requestIDKey, id)
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, id))

	log := s.logger.With("request_id", id, "method", info.FullMethod)

	metrics.ActiveRequests.Inc()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "panic in handler", "panic", r)
			resp, err = nil, status.Error(codes.Internal, "internal error")
		}

		code := status.Code(err)
		elapsed := time.Since(start)

		metrics.ActiveRequests.Dec()
		metrics.RequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
		metrics.RequestDurationSeconds.WithLabelValues(info.FullMethod).Observe(elapsed.Seconds())

		switch code {
		case codes.OK:
			log.Info(ctx, "request completed", "duration", elapsed)
		case codes.Internal, codes.Unavailable:
			log.Error(ctx, "request failed", "code", code.String(), "error", err, "duration", elapsed)
		default:
			log.Warn(ctx, "request rejected", "code", code.String(), "error", err, "duration", elapsed)
		}
	}()

	return handler(ctx, req)
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := metadataValue(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	username, err := auth.GetUsernameFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(context.WithValue(ctx, usernameKey, username), req)
}

// rateLimitInterceptor throttles signup and login attempts per username.
func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var username string
	switch r := req.(type) {
	case *pb.CreateAccountRequest:
		username = r.Username
	case *pb.LoginRequest:
		username = r.Username
	default:
		return handler(ctx, req)
	}

	if norm, err := s.accounts.Normalize(username); err == nil {
		username = norm
	}
	if !s.limiter.Allow(username) {
		metrics.RateLimitDroppedTotal.Inc()
		return nil, status.Error(codes.ResourceExhausted, "too many attempts, try again later")
	}
	return handler(ctx, req)
}
