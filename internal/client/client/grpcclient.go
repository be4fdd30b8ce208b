package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/musicvideos/internal/client/models"
	"github.com/dmitrijs2005/musicvideos/internal/common"
	pb "github.com/dmitrijs2005/musicvideos/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.MusicVideoServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withAccessToken(ctx, s.AccessToken())
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewMusicVideosClient dials endpointURL lazily; the first call opens the
// connection.
func NewMusicVideosClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(extra ...grpc.DialOption) error {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewMusicVideoServiceClient(conn)
	return nil
}

func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) Register(ctx context.Context, username, email string, password []byte) (int64, error) {
	req := &pb.RegisterRequest{Username: username, Email: email, Password: string(password)}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.UserID, nil
}

// Login stores the returned token so later calls are authenticated.
func (s *GRPCClient) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	req := &pb.LoginRequest{Username: username, Password: string(password)}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		err = s.mapError(err)
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	s.SetAccessToken(resp.AccessToken)

	return &models.Session{
		Token:     resp.AccessToken,
		UserID:    resp.UserID,
		Username:  resp.Username,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// Logout revokes the current token on the server and forgets it locally,
// even when the server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, err := s.client.Logout(ctx, &emptypb.Empty{})
	s.SetAccessToken("")
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*models.Profile, error) {
	resp, err := s.client.Profile(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Profile{
		UserID:    resp.UserID,
		Username:  resp.Username,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}, nil
}

func (s *GRPCClient) AddVideo(ctx context.Context, title, artist, url string) (*models.Video, error) {
	resp, err := s.client.AddVideo(ctx, &pb.AddVideoRequest{Title: title, Artist: artist, URL: url})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromProtoVideo(resp), nil
}

func (s *GRPCClient) ListVideos(ctx context.Context) ([]*models.Video, error) {
	resp, err := s.client.ListVideos(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromProtoVideos(resp), nil
}

// SearchVideos finds the user's videos whose field ("title" or "artist")
// contains term, ignoring case.
func (s *GRPCClient) SearchVideos(ctx context.Context, field, term string) ([]*models.Video, error) {
	resp, err := s.client.SearchVideos(ctx, &pb.SearchVideosRequest{Field: field, Term: term})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromProtoVideos(resp), nil
}

func (s *GRPCClient) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	resp, err := s.client.GetVideo(ctx, &pb.GetVideoRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromProtoVideo(resp), nil
}

func (s *GRPCClient) UpdateVideo(ctx context.Context, v *models.Video) (*models.Video, error) {
	req := &pb.UpdateVideoRequest{ID: v.ID, Title: v.Title, Artist: v.Artist, URL: v.URL}

	resp, err := s.client.UpdateVideo(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromProtoVideo(resp), nil
}

func (s *GRPCClient) DeleteVideo(ctx context.Context, id int64) error {
	_, err := s.client.DeleteVideo(ctx, &pb.DeleteVideoRequest{ID: id})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func fromProtoVideo(v *pb.Video) *models.Video {
	return &models.Video{
		ID:        v.ID,
		Title:     v.Title,
		Artist:    v.Artist,
		URL:       v.URL,
		CreatedAt: v.CreatedAt,
	}
}

func fromProtoVideos(resp *pb.ListVideosResponse) []*models.Video {
	result := make([]*models.Video, 0, len(resp.Videos))
	for _, v := range resp.Videos {
		result = append(result, fromProtoVideo(v))
	}
	return result
}

// mapError converts gRPC status codes into the package sentinels. Validation
// messages from the server are kept so the user sees what was wrong.
func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrValidation, st.Message())
	case codes.AlreadyExists:
		if st.Message() == pb.MsgEmailTaken {
			return ErrEmailTaken
		}
		return ErrAlreadyExists
	case codes.NotFound:
		return ErrNotFound
	default:
		return err
	}
}
