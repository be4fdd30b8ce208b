package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/musicvideos/internal/common"
	pb "github.com/dmitrijs2005/musicvideos/internal/proto"
	"github.com/dmitrijs2005/musicvideos/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func incoming(kv ...string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(kv...))
}

func TestAccessTokenInterceptor_PublicMethods(t *testing.T) {
	s, _, _ := newTestServer()

	for _, m := range []string{pb.MethodRegister, pb.MethodLogin, pb.MethodPing} {
		called := false
		_, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: m},
			func(ctx context.Context, req any) (any, error) {
				called = true
				_, ok := sessionFromContext(ctx)
				assert.False(t, ok)
				return nil, nil
			})
		require.NoError(t, err, m)
		assert.True(t, called, m)
	}
}

func TestAccessTokenInterceptor_Rejects(t *testing.T) {
	s, _, _ := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: pb.MethodListVideos}
	handler := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler must not run")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "unauthorized", status.Convert(err).Message())

	_, err = s.accessTokenInterceptor(incoming(common.AccessTokenHeaderName, "forged"), nil, info, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "unauthorized", status.Convert(err).Message())
}

func TestAccessTokenInterceptor_AttachesSession(t *testing.T) {
	s, users, _ := newTestServer()
	users.tokens["good"] = &auth.Claims{UserID: 9, Username: "zoe"}

	var got *session
	_, err := s.accessTokenInterceptor(incoming(common.AccessTokenHeaderName, "good"), nil,
		&grpc.UnaryServerInfo{FullMethod: pb.MethodLogout},
		func(ctx context.Context, req any) (any, error) {
			got, _ = sessionFromContext(ctx)
			return "ok", nil
		})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "good", got.token)
	assert.Equal(t, int64(9), got.claims.UserID)
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(l), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestLoggingInterceptor(t *testing.T) {
	log, buf := bufferLogger()
	s := NewGRPCServer("", log, newFakeUsers(), newFakeVideos())

	_, err := s.loggingInterceptor(incoming(common.RequestIDHeaderName, "req-42"), nil,
		&grpc.UnaryServerInfo{FullMethod: pb.MethodGetVideo},
		func(ctx context.Context, req any) (any, error) {
			return nil, status.Error(codes.NotFound, "not found")
		})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.loggingInterceptor(context.Background(), nil,
		&grpc.UnaryServerInfo{FullMethod: pb.MethodAddVideo},
		func(ctx context.Context, req any) (any, error) {
			return nil, errors.New("boom")
		})
	require.Error(t, err)

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 2)

	assert.Equal(t, "req-42", lines[0]["request_id"])
	assert.Equal(t, pb.MethodGetVideo, lines[0]["method"])
	assert.Equal(t, "NotFound", lines[0]["code"])
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Contains(t, lines[0], "duration_ms")

	assert.NotEmpty(t, lines[1]["request_id"])
	assert.Equal(t, "Unknown", lines[1]["code"])
	assert.Equal(t, "ERROR", lines[1]["level"])
}
