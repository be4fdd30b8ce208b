package videos

import (
	"context"

	"github.com/dmitrijs2005/musicvideos/internal/server/models"
)

// SearchField names the column Search matches against.
type SearchField string

const (
	SearchTitle  SearchField = "title"
	SearchArtist SearchField = "artist"
)

// Repository stores music videos. Every read and write is scoped by the
// owning user's ID.
type Repository interface {
	Create(ctx context.Context, video *models.MusicVideo) (*models.MusicVideo, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.MusicVideo, error)
	Search(ctx context.Context, userID int64, field SearchField, term string) ([]*models.MusicVideo, error)
	Get(ctx context.Context, userID, id int64) (*models.MusicVideo, error)
	Update(ctx context.Context, video *models.MusicVideo) error
	Delete(ctx context.Context, userID, id int64) error
}
