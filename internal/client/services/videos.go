package services

import (
	"context"

	"github.com/dmitrijs2005/musicvideos/internal/client/client"
	"github.com/dmitrijs2005/musicvideos/internal/client/models"
)

type VideoService interface {
	Add(ctx context.Context, title, artist, url string) (*models.Video, error)
	List(ctx context.Context) ([]*models.Video, error)
	Search(ctx context.Context, field, term string) ([]*models.Video, error)
	Get(ctx context.Context, id int64) (*models.Video, error)
	Update(ctx context.Context, v *models.Video) (*models.Video, error)
	Delete(ctx context.Context, id int64) error
}

type videoService struct {
	client client.Client
}

func NewVideoService(c client.Client) VideoService {
	return &videoService{client: c}
}

func (s *videoService) Add(ctx context.Context, title, artist, url string) (*models.Video, error) {
	return s.client.AddVideo(ctx, title, artist, url)
}

func (s *videoService) List(ctx context.Context) ([]*models.Video, error) {
	return s.client.ListVideos(ctx)
}

func (s *videoService) Search(ctx context.Context, field, term string) ([]*models.Video, error) {
	return s.client.SearchVideos(ctx, field, term)
}

func (s *videoService) Get(ctx context.Context, id int64) (*models.Video, error) {
	return s.client.GetVideo(ctx, id)
}

func (s *videoService) Update(ctx context.Context, v *models.Video) (*models.Video, error) {
	return s.client.UpdateVideo(ctx, v)
}

func (s *videoService) Delete(ctx context.Context, id int64) error {
	return s.client.DeleteVideo(ctx, id)
}
