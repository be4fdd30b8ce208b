package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/common"
	pb "github.com/dmitrijs2005/musicvideos/internal/proto"
	"github.com/dmitrijs2005/musicvideos/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const sessionKey ctxKey = "session"

// session is what accessTokenInterceptor attaches to the context of
// authorized calls.
type session struct {
	token  string
	claims *auth.Claims
}

func sessionFromContext(ctx context.Context) (*session, bool) {
	s, ok := ctx.Value(sessionKey).(*session)
	return s, ok && s != nil
}

// publicMethods can be called without an access token.
var publicMethods = map[string]struct{}{
	pb.MethodRegister: {},
	pb.MethodLogin:    {},
	pb.MethodPing:     {},
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	claims, err := s.users.Authorize(ctx, accessToken)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	ctx = context.WithValue(ctx, sessionKey, &session{token: accessToken, claims: claims})

	return handler(ctx, req)
}

// loggingInterceptor times every call and logs its outcome under a request
// id. The id is taken from the caller when present and echoed back in the
// response header.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	requestID := firstMetadata(ctx, common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)
	duration := time.Since(start)

	code := status.Code(err)
	args := []any{
		"request_id", requestID,
		"method", info.FullMethod,
		"duration_ms", float64(duration.Microseconds()) / 1000,
		"code", code.String(),
	}

	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "request failed", args...)
	} else {
		s.logger.Info(ctx, "request completed", args...)
	}

	return resp, err
}
