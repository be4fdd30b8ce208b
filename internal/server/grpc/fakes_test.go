package grpc

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/common"
	"github.com/dmitrijs2005/musicvideos/internal/logging"
	pb "github.com/dmitrijs2005/musicvideos/internal/proto"
	"github.com/dmitrijs2005/musicvideos/internal/server/auth"
	"github.com/dmitrijs2005/musicvideos/internal/server/models"
	"github.com/dmitrijs2005/musicvideos/internal/server/services"
)

// ---- fakes ----

type fakeUsers struct {
	mu       sync.Mutex
	users    map[string]*models.User
	password map[string]string
	tokens   map[string]*auth.Claims

	regErr   error
	loginErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users:    map[string]*models.User{},
		password: map[string]string{},
		tokens:   map[string]*auth.Claims{},
	}
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.regErr != nil {
		return nil, f.regErr
	}
	if _, ok := f.users[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, common.ErrorEmailTaken
		}
	}
	u := &models.User{ID: int64(len(f.users) + 1), UserName: username, Email: email,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	f.users[username] = u
	f.password[username] = password
	return u, nil
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u, ok := f.users[username]
	if !ok || f.password[username] != password {
		return nil, common.ErrorInvalidCredentials
	}
	claims := auth.Claims{UserID: u.ID, Username: u.UserName, ExpiresAt: time.Now().Add(time.Hour)}
	token := "tok-" + username + "-" + time.Now().Format(time.RFC3339Nano)
	f.tokens[token] = &claims
	return &services.Session{Token: token, Claims: claims}, nil
}

func (f *fakeUsers) Logout(ctx context.Context, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

func (f *fakeUsers) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return c, nil
}

func (f *fakeUsers) Profile(ctx context.Context, userID int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeVideos struct {
	mu     sync.Mutex
	items  map[int64]*models.MusicVideo
	nextID int64
	err    error
}

func newFakeVideos() *fakeVideos {
	return &fakeVideos{items: map[int64]*models.MusicVideo{}}
}

func (f *fakeVideos) AddVideo(ctx context.Context, userID int64, in services.VideoInput) (*models.MusicVideo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if in.Title == "" {
		return nil, common.ErrorValidation
	}
	f.nextID++
	v := &models.MusicVideo{ID: f.nextID, UserID: userID, Title: in.Title, Artist: in.Artist, URL: in.URL,
		CreatedAt: time.Date(2026, 1, 1, 0, int(f.nextID), 0, 0, time.UTC)}
	f.items[v.ID] = v
	return v, nil
}

func (f *fakeVideos) ListVideos(ctx context.Context, userID int64) ([]*models.MusicVideo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.MusicVideo
	for _, v := range f.items {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeVideos) SearchVideos(ctx context.Context, userID int64, field, term string) ([]*models.MusicVideo, error) {
	if field != pb.SearchByTitle && field != pb.SearchByArtist {
		return nil, common.ErrorValidation
	}
	all, err := f.ListVideos(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*models.MusicVideo, 0)
	for _, v := range all {
		value := v.Title
		if field == pb.SearchByArtist {
			value = v.Artist
		}
		if strings.Contains(strings.ToLower(value), strings.ToLower(term)) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideos) GetVideo(ctx context.Context, userID, id int64) (*models.MusicVideo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.items[id]
	if !ok || v.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return v, nil
}

func (f *fakeVideos) UpdateVideo(ctx context.Context, userID, id int64, in services.VideoInput) (*models.MusicVideo, error) {
	v, err := f.GetVideo(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v.Title, v.Artist, v.URL = in.Title, in.Artist, in.URL
	return v, nil
}

func (f *fakeVideos) DeleteVideo(ctx context.Context, userID, id int64) error {
	if _, err := f.GetVideo(ctx, userID, id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

// ---- helpers ----

func newTestServer() (*GRPCServer, *fakeUsers, *fakeVideos) {
	u, v := newFakeUsers(), newFakeVideos()
	return NewGRPCServer("127.0.0.1:0", logging.Discard(), u, v), u, v
}

func bufferLogger() (logging.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logging.NewJSONLogger(buf, "debug"), buf
}

func withSession(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, sessionKey, &session{token: "t", claims: &auth.Claims{UserID: userID, Username: "u"}})
}
