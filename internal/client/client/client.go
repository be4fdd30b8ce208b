package client

import (
	"context"

	"github.com/dmitrijs2005/musicvideos/internal/client/models"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username, email string, password []byte) (int64, error)
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Profile(ctx context.Context) (*models.Profile, error)

	AddVideo(ctx context.Context, title, artist, url string) (*models.Video, error)
	ListVideos(ctx context.Context) ([]*models.Video, error)
	SearchVideos(ctx context.Context, field, term string) ([]*models.Video, error)
	GetVideo(ctx context.Context, id int64) (*models.Video, error)
	UpdateVideo(ctx context.Context, v *models.Video) (*models.Video, error)
	DeleteVideo(ctx context.Context, id int64) error

	SetAccessToken(token string)
	AccessToken() string
}
