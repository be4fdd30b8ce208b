package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/musicvideos/internal/client/client"
	"github.com/dmitrijs2005/musicvideos/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	token string

	loginSession *models.Session
	loginErr     error
	logoutErr    error
	registerID   int64
	registerErr  error
	pingErr      error
	profile      *models.Profile
	profileErr   error

	logoutCalls int
	closed      bool

	videos    []*models.Video
	video     *models.Video
	videoErr  error
	deletedID int64
	updated   *models.Video

	searchField, searchTerm string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error { f.closed = true; return nil }
func (f *fakeClient) Register(ctx context.Context, username, email string, password []byte) (int64, error) {
	return f.registerID, f.registerErr
}
func (f *fakeClient) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.token = f.loginSession.Token
	return f.loginSession, nil
}
func (f *fakeClient) Logout(ctx context.Context) error {
	f.logoutCalls++
	f.token = ""
	return f.logoutErr
}
func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeClient) Profile(ctx context.Context) (*models.Profile, error) {
	return f.profile, f.profileErr
}
func (f *fakeClient) SearchVideos(ctx context.Context, field, term string) ([]*models.Video, error) {
	f.searchField, f.searchTerm = field, term
	return f.videos, f.videoErr
}
func (f *fakeClient) AddVideo(ctx context.Context, title, artist, url string) (*models.Video, error) {
	return f.video, f.videoErr
}
func (f *fakeClient) ListVideos(ctx context.Context) ([]*models.Video, error) {
	return f.videos, f.videoErr
}
func (f *fakeClient) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	return f.video, f.videoErr
}
func (f *fakeClient) UpdateVideo(ctx context.Context, v *models.Video) (*models.Video, error) {
	f.updated = v
	return v, f.videoErr
}
func (f *fakeClient) DeleteVideo(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.videoErr
}
func (f *fakeClient) SetAccessToken(token string) { f.token = token }
func (f *fakeClient) AccessToken() string         { return f.token }

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
