package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/client/client"
	"github.com/dmitrijs2005/musicvideos/internal/client/models"
	"github.com/dmitrijs2005/musicvideos/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/musicvideos/internal/dbx"
)

const (
	keyToken     = "session.token"
	keyUserID    = "session.user_id"
	keyUsername  = "session.username"
	keyExpiresAt = "session.expires_at"
)

var sessionKeys = []string{keyToken, keyUserID, keyUsername, keyExpiresAt}

// SessionService defines the account operations of the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session.
//   - Restore: load a persisted session that has not expired yet.
//   - Logout: revoke the token on the server and wipe the local session.
type SessionService interface {
	Register(ctx context.Context, username, email string, password []byte) (int64, error)
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	Current() *models.Session
	Ping(ctx context.Context) error
	Profile(ctx context.Context) (*models.Profile, error)
	Close() error
}

type sessionService struct {
	client  client.Client
	db      *sql.DB
	now     func() time.Time
	current *models.Session
}

func NewSessionService(c client.Client, db *sql.DB) SessionService {
	return &sessionService{client: c, db: db, now: time.Now}
}

func (s *sessionService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *sessionService) Register(ctx context.Context, username, email string, password []byte) (int64, error) {
	return s.client.Register(ctx, username, email, password)
}

func (s *sessionService) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	session, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	s.current = session
	return session, nil
}

func (s *sessionService) saveSession(ctx context.Context, session *models.Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.getMetadataRepo(tx).SetMany(ctx, map[string][]byte{
			keyToken:     []byte(session.Token),
			keyUserID:    []byte(strconv.FormatInt(session.UserID, 10)),
			keyUsername:  []byte(session.Username),
			keyExpiresAt: []byte(session.ExpiresAt.UTC().Format(time.RFC3339)),
		})
	})
}

// Restore returns (nil, nil) when nothing usable is stored. An expired
// session is wiped.
func (s *sessionService) Restore(ctx context.Context) (*models.Session, error) {
	values, err := s.getMetadataRepo(s.db).GetMany(ctx, sessionKeys...)
	if err != nil {
		return nil, err
	}

	token := string(values[keyToken])
	if token == "" {
		return nil, nil
	}

	session := &models.Session{Token: token, Username: string(values[keyUsername])}

	session.UserID, err = strconv.ParseInt(string(values[keyUserID]), 10, 64)
	if err != nil {
		return nil, s.dropCorrupt(ctx, err)
	}
	session.ExpiresAt, err = time.Parse(time.RFC3339, string(values[keyExpiresAt]))
	if err != nil {
		return nil, s.dropCorrupt(ctx, err)
	}

	if session.Expired(s.now()) {
		return nil, s.clear(ctx)
	}

	s.client.SetAccessToken(session.Token)
	s.current = session
	return session, nil
}

func (s *sessionService) dropCorrupt(ctx context.Context, cause error) error {
	if err := s.clear(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return nil
}

func (s *sessionService) clear(ctx context.Context) error {
	return s.getMetadataRepo(s.db).Delete(ctx, sessionKeys...)
}

// Logout always forgets the local session. A server that already rejects
// the token is not an error.
func (s *sessionService) Logout(ctx context.Context) error {
	serverErr := s.client.Logout(ctx)
	s.current = nil

	if err := s.clear(ctx); err != nil {
		return err
	}

	if serverErr != nil && !errors.Is(serverErr, client.ErrUnauthorized) {
		return serverErr
	}
	return nil
}

func (s *sessionService) Current() *models.Session {
	return s.current
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Profile fetches the logged-in user's account from the server.
func (s *sessionService) Profile(ctx context.Context) (*models.Profile, error) {
	return s.client.Profile(ctx)
}

func (s *sessionService) Close() error {
	return s.client.Close()
}
