// Package grpc exposes the user and video services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/musicvideos/internal/logging"
	pb "github.com/dmitrijs2005/musicvideos/internal/proto"
	"github.com/dmitrijs2005/musicvideos/internal/server/auth"
	"github.com/dmitrijs2005/musicvideos/internal/server/models"
	"github.com/dmitrijs2005/musicvideos/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Logout(ctx context.Context, token string)
	Authorize(ctx context.Context, token string) (*auth.Claims, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

type videoSvc interface {
	AddVideo(ctx context.Context, userID int64, in services.VideoInput) (*models.MusicVideo, error)
	ListVideos(ctx context.Context, userID int64) ([]*models.MusicVideo, error)
	SearchVideos(ctx context.Context, userID int64, field, term string) ([]*models.MusicVideo, error)
	GetVideo(ctx context.Context, userID, id int64) (*models.MusicVideo, error)
	UpdateVideo(ctx context.Context, userID, id int64, in services.VideoInput) (*models.MusicVideo, error)
	DeleteVideo(ctx context.Context, userID, id int64) error
}

type GRPCServer struct {
	address string
	users   userSvc
	videos  videoSvc
	logger  logging.Logger
}

var _ pb.MusicVideoServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us userSvc, vs videoSvc) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		videos:  vs,
	}
}

// newServer builds the grpc.Server with interceptors and the service
// registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterMusicVideoServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
