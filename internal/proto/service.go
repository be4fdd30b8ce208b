package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "musicvideos.MusicVideoService"

// Full method names, as seen by interceptors.
const (
	MethodRegister    = "/" + ServiceName + "/Register"
	MethodLogin       = "/" + ServiceName + "/Login"
	MethodLogout      = "/" + ServiceName + "/Logout"
	MethodPing        = "/" + ServiceName + "/Ping"
	MethodProfile     = "/" + ServiceName + "/Profile"
	MethodAddVideo    = "/" + ServiceName + "/AddVideo"
	MethodListVideos  = "/" + ServiceName + "/ListVideos"
	MethodGetVideo    = "/" + ServiceName + "/GetVideo"
	MethodUpdateVideo = "/" + ServiceName + "/UpdateVideo"
	MethodDeleteVideo = "/" + ServiceName + "/DeleteVideo"

	MethodSearchVideos = "/" + ServiceName + "/SearchVideos"
)

// MusicVideoServiceServer is the server API for MusicVideoService.
type MusicVideoServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Ping(context.Context, *emptypb.Empty) (*PingResponse, error)
	Profile(context.Context, *emptypb.Empty) (*ProfileResponse, error)
	AddVideo(context.Context, *AddVideoRequest) (*Video, error)
	ListVideos(context.Context, *emptypb.Empty) (*ListVideosResponse, error)
	SearchVideos(context.Context, *SearchVideosRequest) (*ListVideosResponse, error)
	GetVideo(context.Context, *GetVideoRequest) (*Video, error)
	UpdateVideo(context.Context, *UpdateVideoRequest) (*Video, error)
	DeleteVideo(context.Context, *DeleteVideoRequest) (*emptypb.Empty, error)
}

func RegisterMusicVideoServiceServer(s grpc.ServiceRegistrar, srv MusicVideoServiceServer) {
	s.RegisterService(&MusicVideoService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodDesc.Handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(MusicVideoServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MusicVideoServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MusicVideoServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var MusicVideoService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MusicVideoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(MethodRegister, MusicVideoServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, MusicVideoServiceServer.Login)},
		{MethodName: "Logout", Handler: unaryHandler(MethodLogout, MusicVideoServiceServer.Logout)},
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, MusicVideoServiceServer.Ping)},
		{MethodName: "Profile", Handler: unaryHandler(MethodProfile, MusicVideoServiceServer.Profile)},
		{MethodName: "AddVideo", Handler: unaryHandler(MethodAddVideo, MusicVideoServiceServer.AddVideo)},
		{MethodName: "ListVideos", Handler: unaryHandler(MethodListVideos, MusicVideoServiceServer.ListVideos)},
		{MethodName: "SearchVideos", Handler: unaryHandler(MethodSearchVideos, MusicVideoServiceServer.SearchVideos)},
		{MethodName: "GetVideo", Handler: unaryHandler(MethodGetVideo, MusicVideoServiceServer.GetVideo)},
		{MethodName: "UpdateVideo", Handler: unaryHandler(MethodUpdateVideo, MusicVideoServiceServer.UpdateVideo)},
		{MethodName: "DeleteVideo", Handler: unaryHandler(MethodDeleteVideo, MusicVideoServiceServer.DeleteVideo)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "musicvideos.proto",
}

// MusicVideoServiceClient is the client API for MusicVideoService.
type MusicVideoServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Logout(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error)
	Profile(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ProfileResponse, error)
	AddVideo(ctx context.Context, in *AddVideoRequest, opts ...grpc.CallOption) (*Video, error)
	ListVideos(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListVideosResponse, error)
	SearchVideos(ctx context.Context, in *SearchVideosRequest, opts ...grpc.CallOption) (*ListVideosResponse, error)
	GetVideo(ctx context.Context, in *GetVideoRequest, opts ...grpc.CallOption) (*Video, error)
	UpdateVideo(ctx context.Context, in *UpdateVideoRequest, opts ...grpc.CallOption) (*Video, error)
	DeleteVideo(ctx context.Context, in *DeleteVideoRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type musicVideoServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMusicVideoServiceClient returns a client that sends every call with the
// JSON content subtype.
func NewMusicVideoServiceClient(cc grpc.ClientConnInterface) MusicVideoServiceClient {
	return &musicVideoServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *musicVideoServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *musicVideoServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *musicVideoServiceClient) Logout(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *musicVideoServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *musicVideoServiceClient) Profile(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodProfile, in, opts)
}

func (c *musicVideoServiceClient) AddVideo(ctx context.Context, in *AddVideoRequest, opts ...grpc.CallOption) (*Video, error) {
	return invoke[Video](ctx, c.cc, MethodAddVideo, in, opts)
}

func (c *musicVideoServiceClient) ListVideos(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListVideosResponse, error) {
	return invoke[ListVideosResponse](ctx, c.cc, MethodListVideos, in, opts)
}

func (c *musicVideoServiceClient) SearchVideos(ctx context.Context, in *SearchVideosRequest, opts ...grpc.CallOption) (*ListVideosResponse, error) {
	return invoke[ListVideosResponse](ctx, c.cc, MethodSearchVideos, in, opts)
}

func (c *musicVideoServiceClient) GetVideo(ctx context.Context, in *GetVideoRequest, opts ...grpc.CallOption) (*Video, error) {
	return invoke[Video](ctx, c.cc, MethodGetVideo, in, opts)
}

func (c *musicVideoServiceClient) UpdateVideo(ctx context.Context, in *UpdateVideoRequest, opts ...grpc.CallOption) (*Video, error) {
	return invoke[Video](ctx, c.cc, MethodUpdateVideo, in, opts)
}

func (c *musicVideoServiceClient) DeleteVideo(ctx context.Context, in *DeleteVideoRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteVideo, in, opts)
}
