package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/musicvideos/internal/proto"
	"github.com/dmitrijs2005/musicvideos/internal/server/models"
	"github.com/dmitrijs2005/musicvideos/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func toVideo(v *models.MusicVideo) *pb.Video {
	return &pb.Video{ID: v.ID, Title: v.Title, Artist: v.Artist, URL: v.URL, CreatedAt: v.CreatedAt}
}

func toVideoList(list []*models.MusicVideo) *pb.ListVideosResponse {
	resp := &pb.ListVideosResponse{Videos: make([]*pb.Video, 0, len(list))}
	for _, v := range list {
		resp.Videos = append(resp.Videos, toVideo(v))
	}
	return resp
}

// mustSession returns the session set by accessTokenInterceptor.
func mustSession(ctx context.Context) (*session, error) {
	sess, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return sess, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {

	user, err := s.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &pb.RegisterResponse{UserID: user.ID, Username: user.UserName}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	sess, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.LoginResponse{
		AccessToken: sess.Token,
		UserID:      sess.Claims.UserID,
		Username:    sess.Claims.Username,
		ExpiresAt:   sess.Claims.ExpiresAt,
	}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	sess, err := mustSession(ctx)
	if err != nil {
		return nil, err
	}

	s.users.Logout(ctx, sess.token)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

// Profile returns the caller's account. The password digest is never sent.
func (s *GRPCServer) Profile(ctx context.Context, _ *emptypb.Empty) (*pb.ProfileResponse, error) {
	sess, err := mustSession(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Profile(ctx, sess.claims.UserID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.ProfileResponse{
		UserID:    user.ID,
		Username:  user.UserName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *GRPCServer) AddVideo(ctx context.Context, req *pb.AddVideoRequest) (*pb.Video, error) {
	sess, err := mustSession(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.videos.AddVideo(ctx, sess.claims.UserID, services.VideoInput{Title: req.Title, Artist: req.Artist, URL: req.URL})
	if err != nil {
		return nil, toStatus(err)
	}
	return toVideo(v), nil
}

func (s *GRPCServer) ListVideos(ctx context.Context, _ *emptypb.Empty) (*pb.ListVideosResponse, error) {
	sess, err := mustSession(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.videos.ListVideos(ctx, sess.claims.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toVideoList(list), nil
}

func (s *GRPCServer) SearchVideos(ctx context.Context, req *pb.SearchVideosRequest) (*pb.ListVideosResponse, error) {
	sess, err := mustSession(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.videos.SearchVideos(ctx, sess.claims.UserID, req.Field, req.Term)
	if err != nil {
		return nil, toStatus(err)
	}
	return toVideoList(list), nil
}

func (s *GRPCServer) GetVideo(ctx context.Context, req *pb.GetVideoRequest) (*pb.Video, error) {
	sess, err := mustSession(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.videos.GetVideo(ctx, sess.claims.UserID, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toVideo(v), nil
}

func (s *GRPCServer) UpdateVideo(ctx context.Context, req *pb.UpdateVideoRequest) (*pb.Video, error) {
	sess, err := mustSession(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.videos.UpdateVideo(ctx, sess.claims.UserID, req.ID, services.VideoInput{Title: req.Title, Artist: req.Artist, URL: req.URL})
	if err != nil {
		return nil, toStatus(err)
	}
	return toVideo(v), nil
}

func (s *GRPCServer) DeleteVideo(ctx context.Context, req *pb.DeleteVideoRequest) (*emptypb.Empty, error) {
	sess, err := mustSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.videos.DeleteVideo(ctx, sess.claims.UserID, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}
