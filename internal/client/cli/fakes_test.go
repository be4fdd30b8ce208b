package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/client/client"
	"github.com/dmitrijs2005/musicvideos/internal/client/config"
	"github.com/dmitrijs2005/musicvideos/internal/client/models"
)

var errNotFoundForTest = client.ErrNotFound

type fakeSessions struct {
	current *models.Session

	registerUser, registerEmail string
	registerPass                []byte
	registerErr                 error

	loginSession *models.Session
	loginErr     error

	restoreSession *models.Session
	restoreErr     error

	logoutCalls int
	logoutErr   error
	pingErr     error
	closed      bool

	profile    *models.Profile
	profileErr error
}

func (f *fakeSessions) Register(_ context.Context, username, email string, password []byte) (int64, error) {
	f.registerUser, f.registerEmail = username, email
	f.registerPass = append([]byte(nil), password...)
	return 7, f.registerErr
}
func (f *fakeSessions) Login(_ context.Context, username string, password []byte) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.current = f.loginSession
	return f.loginSession, nil
}
func (f *fakeSessions) Restore(context.Context) (*models.Session, error) {
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	f.current = f.restoreSession
	return f.restoreSession, nil
}
func (f *fakeSessions) Logout(context.Context) error {
	f.logoutCalls++
	f.current = nil
	return f.logoutErr
}
func (f *fakeSessions) Current() *models.Session   { return f.current }
func (f *fakeSessions) Ping(context.Context) error { return f.pingErr }
func (f *fakeSessions) Close() error               { f.closed = true; return nil }
func (f *fakeSessions) Profile(context.Context) (*models.Profile, error) {
	return f.profile, f.profileErr
}

type fakeVideos struct {
	store map[int64]*models.Video
	err   error

	added   *models.Video
	updated *models.Video
	deleted int64

	searchField, searchTerm string
}

func (f *fakeVideos) Add(_ context.Context, title, artist, url string) (*models.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.added = &models.Video{ID: 100, Title: title, Artist: artist, URL: url}
	return f.added, nil
}
func (f *fakeVideos) List(context.Context) ([]*models.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Video, 0, len(f.store))
	for _, v := range f.store {
		out = append(out, v)
	}
	return out, nil
}
func (f *fakeVideos) Search(ctx context.Context, field, term string) ([]*models.Video, error) {
	f.searchField, f.searchTerm = field, term
	all, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Video, 0)
	for _, v := range all {
		value := v.Title
		if field == "artist" {
			value = v.Artist
		}
		if strings.Contains(strings.ToLower(value), strings.ToLower(term)) {
			out = append(out, v)
		}
	}
	return out, nil
}
func (f *fakeVideos) Get(_ context.Context, id int64) (*models.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.store[id]
	if !ok {
		return nil, errNotFoundForTest
	}
	cp := *v
	return &cp, nil
}
func (f *fakeVideos) Update(_ context.Context, v *models.Video) (*models.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = v
	return v, nil
}
func (f *fakeVideos) Delete(_ context.Context, id int64) error {
	f.deleted = id
	return f.err
}

func testSession() *models.Session {
	return &models.Session{Token: "jwt", UserID: 1, Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
}

func newTestApp(t *testing.T, input string) (*App, *fakeSessions, *fakeVideos, *bytes.Buffer) {
	t.Helper()
	fs := &fakeSessions{}
	fv := &fakeVideos{store: map[int64]*models.Video{}}
	out := &bytes.Buffer{}

	cfg := &config.Config{}
	cfg.LoadDefaults()

	a := &App{
		config:   cfg,
		sessions: fs,
		videos:   fv,
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      out,
	}
	return a, fs, fv, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer, _ string) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}
