// Package videos provides PostgreSQL-backed storage for users' music videos.
package videos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/musicvideos/internal/common"
	"github.com/dmitrijs2005/musicvideos/internal/dbx"
	"github.com/dmitrijs2005/musicvideos/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, video *models.MusicVideo) (*models.MusicVideo, error) {
	query :=
		`INSERT INTO music_videos (title, artist, url, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, video.Title, video.Artist, video.URL, video.UserID).
		Scan(&video.ID, &video.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return video, nil
}

// ListByUser returns userID's videos, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.MusicVideo, error) {
	query :=
		`SELECT id, user_id, title, artist, url, created_at FROM music_videos
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select videos: %w", err)
	}
	return scanVideos(rows)
}

// searchQueries holds one statement per searchable column so the column name
// never comes from input.
var searchQueries = map[SearchField]string{
	SearchTitle: `SELECT id, user_id, title, artist, url, created_at FROM music_videos
		 WHERE user_id = $1 AND title ILIKE $2 ESCAPE '\'
		 ORDER BY created_at DESC, id DESC
		 `,
	SearchArtist: `SELECT id, user_id, title, artist, url, created_at FROM music_videos
		 WHERE user_id = $1 AND artist ILIKE $2 ESCAPE '\'
		 ORDER BY created_at DESC, id DESC
		 `,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns term into an ILIKE pattern matching it anywhere, with
// LIKE wildcards in term taken literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Search returns userID's videos whose field contains term, ignoring case,
// newest first.
func (r *PostgresRepository) Search(ctx context.Context, userID int64, field SearchField, term string) ([]*models.MusicVideo, error) {
	query, ok := searchQueries[field]
	if !ok {
		return nil, fmt.Errorf("unknown search field %q", field)
	}

	rows, err := r.db.QueryContext(ctx, query, userID, containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	return scanVideos(rows)
}

func scanVideos(rows *sql.Rows) ([]*models.MusicVideo, error) {
	defer rows.Close()

	result := make([]*models.MusicVideo, 0)
	for rows.Next() {
		var item models.MusicVideo
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Artist, &item.URL, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a single video. Videos of other users are reported as
// common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.MusicVideo, error) {
	query :=
		`SELECT id, user_id, title, artist, url, created_at FROM music_videos
		 WHERE id = $1 AND user_id = $2
		 `

	item := &models.MusicVideo{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&item.ID, &item.UserID, &item.Title, &item.Artist, &item.URL, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Update overwrites title, artist and url of a video owned by video.UserID.
func (r *PostgresRepository) Update(ctx context.Context, video *models.MusicVideo) error {
	query :=
		`UPDATE music_videos SET title = $1, artist = $2, url = $3
		 WHERE id = $4 AND user_id = $5
		 `

	res, err := r.db.ExecContext(ctx, query, video.Title, video.Artist, video.URL, video.ID, video.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM music_videos WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
