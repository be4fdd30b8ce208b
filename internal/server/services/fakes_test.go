package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/musicvideos/internal/common"
	"github.com/dmitrijs2005/musicvideos/internal/dbx"
	"github.com/dmitrijs2005/musicvideos/internal/logging"
	"github.com/dmitrijs2005/musicvideos/internal/server/auth"
	"github.com/dmitrijs2005/musicvideos/internal/server/models"
	usersrepo "github.com/dmitrijs2005/musicvideos/internal/server/repositories/users"
	videosrepo "github.com/dmitrijs2005/musicvideos/internal/server/repositories/videos"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	h, err := auth.NewHasher(auth.HasherConfig{Algorithm: auth.AlgorithmPBKDF2SHA256, PBKDF2Rounds: 1000})
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}
	return auth.NewService(h, auth.NewIssuer(auth.NewSecretKey("services-test-secret")), auth.NewRegistry(), logging.Discard())
}

// --- fake users repository ---

type fakeUsersRepo struct {
	byName map[string]*models.User
	nextID int64

	existsErr      error
	emailExistsErr error
	createErr      error
	getErr         error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) ExistsByUsername(ctx context.Context, login string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byName[login]
	return ok, nil
}

func (f *fakeUsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.emailExistsErr != nil {
		return false, f.emailExistsErr
	}
	for _, u := range f.byName {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// --- fake videos repository ---

type fakeVideosRepo struct {
	items  map[int64]*models.MusicVideo
	nextID int64
	clock  time.Time

	err error
}

func newFakeVideosRepo() *fakeVideosRepo {
	return &fakeVideosRepo{items: map[int64]*models.MusicVideo{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeVideosRepo) Create(ctx context.Context, v *models.MusicVideo) (*models.MusicVideo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	v.ID = f.nextID
	v.CreatedAt = f.clock
	cp := *v
	f.items[v.ID] = &cp
	return v, nil
}

func (f *fakeVideosRepo) ListByUser(ctx context.Context, userID int64) ([]*models.MusicVideo, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.MusicVideo, 0)
	for _, v := range f.items {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeVideosRepo) Search(ctx context.Context, userID int64, field videosrepo.SearchField, term string) ([]*models.MusicVideo, error) {
	all, err := f.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*models.MusicVideo, 0)
	for _, v := range all {
		value := v.Title
		if field == videosrepo.SearchArtist {
			value = v.Artist
		}
		if strings.Contains(strings.ToLower(value), strings.ToLower(term)) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideosRepo) Get(ctx context.Context, userID, id int64) (*models.MusicVideo, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.items[id]
	if !ok || v.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideosRepo) Update(ctx context.Context, v *models.MusicVideo) error {
	if f.err != nil {
		return f.err
	}
	cur, ok := f.items[v.ID]
	if !ok || cur.UserID != v.UserID {
		return common.ErrorNotFound
	}
	cur.Title, cur.Artist, cur.URL = v.Title, v.Artist, v.URL
	return nil
}

func (f *fakeVideosRepo) Delete(ctx context.Context, userID, id int64) error {
	if f.err != nil {
		return f.err
	}
	v, ok := f.items[id]
	if !ok || v.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	v *fakeVideosRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Videos(db dbx.DBTX) videosrepo.Repository     { return m.v }
