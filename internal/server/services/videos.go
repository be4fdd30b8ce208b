package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/musicvideos/internal/common"
	"github.com/dmitrijs2005/musicvideos/internal/dbx"
	"github.com/dmitrijs2005/musicvideos/internal/logging"
	"github.com/dmitrijs2005/musicvideos/internal/server/models"
	"github.com/dmitrijs2005/musicvideos/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/musicvideos/internal/server/repositories/videos"
)

const (
	maxTitleLen  = 200
	maxArtistLen = 200
	maxURLLen    = 500
)

// VideoInput carries the user-editable fields of a music video.
type VideoInput struct {
	Title  string
	Artist string
	URL    string
}

// normalize trims input and checks it against the column limits. URL must be
// an absolute http or https URL.
func (in VideoInput) normalize() (VideoInput, error) {
	out := VideoInput{
		Title:  strings.TrimSpace(in.Title),
		Artist: strings.TrimSpace(in.Artist),
		URL:    strings.TrimSpace(in.URL),
	}

	switch {
	case out.Title == "":
		return out, fmt.Errorf("%w: title is required", common.ErrorValidation)
	case out.Artist == "":
		return out, fmt.Errorf("%w: artist is required", common.ErrorValidation)
	case out.URL == "":
		return out, fmt.Errorf("%w: url is required", common.ErrorValidation)
	case len(out.Title) > maxTitleLen:
		return out, fmt.Errorf("%w: title is longer than %d", common.ErrorValidation, maxTitleLen)
	case len(out.Artist) > maxArtistLen:
		return out, fmt.Errorf("%w: artist is longer than %d", common.ErrorValidation, maxArtistLen)
	case len(out.URL) > maxURLLen:
		return out, fmt.Errorf("%w: url is longer than %d", common.ErrorValidation, maxURLLen)
	}

	u, err := url.Parse(out.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return out, fmt.Errorf("%w: url must be an absolute http(s) URL", common.ErrorValidation)
	}

	return out, nil
}

type VideoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewVideoService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *VideoService {
	return &VideoService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "videos"),
	}
}

func (s *VideoService) AddVideo(ctx context.Context, userID int64, in VideoInput) (*models.MusicVideo, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	video, err := s.repomanager.Videos(s.db).Create(ctx, &models.MusicVideo{
		UserID: userID,
		Title:  in.Title,
		Artist: in.Artist,
		URL:    in.URL,
	})
	if err != nil {
		s.logger.Error(ctx, "error adding video", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "video added", "user_id", userID, "video_id", video.ID)
	return video, nil
}

// ListVideos returns the user's videos, newest first.
func (s *VideoService) ListVideos(ctx context.Context, userID int64) ([]*models.MusicVideo, error) {
	list, err := s.repomanager.Videos(s.db).ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "error listing videos", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

// SearchVideos returns the user's videos whose title or artist contains
// term, ignoring case. field is "title" or "artist".
func (s *VideoService) SearchVideos(ctx context.Context, userID int64, field, term string) ([]*models.MusicVideo, error) {
	var sf videos.SearchField
	switch strings.ToLower(strings.TrimSpace(field)) {
	case string(videos.SearchTitle):
		sf = videos.SearchTitle
	case string(videos.SearchArtist):
		sf = videos.SearchArtist
	default:
		return nil, fmt.Errorf("%w: search field must be title or artist", common.ErrorValidation)
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", common.ErrorValidation)
	}
	if len(term) > maxTitleLen {
		return nil, fmt.Errorf("%w: search term is longer than %d", common.ErrorValidation, maxTitleLen)
	}

	list, err := s.repomanager.Videos(s.db).Search(ctx, userID, sf, term)
	if err != nil {
		s.logger.Error(ctx, "error searching videos", "user_id", userID, "field", sf, "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *VideoService) GetVideo(ctx context.Context, userID, id int64) (*models.MusicVideo, error) {
	video, err := s.repomanager.Videos(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, s.mapRepoError(ctx, "get", userID, id, err)
	}
	return video, nil
}

// UpdateVideo replaces the editable fields and returns the stored video.
func (s *VideoService) UpdateVideo(ctx context.Context, userID, id int64, in VideoInput) (*models.MusicVideo, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var video *models.MusicVideo
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Videos(tx)

		err := repo.Update(ctx, &models.MusicVideo{ID: id, UserID: userID, Title: in.Title, Artist: in.Artist, URL: in.URL})
		if err != nil {
			return err
		}

		video, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, s.mapRepoError(ctx, "update", userID, id, err)
	}

	s.logger.Info(ctx, "video updated", "user_id", userID, "video_id", id)
	return video, nil
}

func (s *VideoService) DeleteVideo(ctx context.Context, userID, id int64) error {
	if err := s.repomanager.Videos(s.db).Delete(ctx, userID, id); err != nil {
		return s.mapRepoError(ctx, "delete", userID, id, err)
	}

	s.logger.Info(ctx, "video deleted", "user_id", userID, "video_id", id)
	return nil
}

func (s *VideoService) mapRepoError(ctx context.Context, op string, userID, id int64, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, "video "+op+" failed", "user_id", userID, "video_id", id, "error", err)
	return common.ErrorInternal
}
