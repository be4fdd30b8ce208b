// Package services holds the server's business logic: account management on
// top of the auth core, and the music video catalogue.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/musicvideos/internal/common"
	"github.com/dmitrijs2005/musicvideos/internal/dbx"
	"github.com/dmitrijs2005/musicvideos/internal/logging"
	"github.com/dmitrijs2005/musicvideos/internal/server/auth"
	"github.com/dmitrijs2005/musicvideos/internal/server/models"
	"github.com/dmitrijs2005/musicvideos/internal/server/repositories/repomanager"
)

const maxUsernameLen = 100

// unknownUserDigest is verified against when the username does not exist, so
// that a failed lookup costs about as much as a wrong password.
const unknownUserDigest = "$pbkdf2-sha256$29000$AAECAwQFBgcICQoLDA0ODw$KEyk8PQeJEt/exohwfI6o3Key9xtZZKp.U64YOTAep4"

// Session is the result of a successful login.
type Session struct {
	Token  string
	Claims auth.Claims
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	auth        *auth.Service
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, a *auth.Service, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		auth:        a,
		logger:      l.With("module", "users"),
	}
}

// Register creates an account. The uniqueness checks and the insert run in
// one transaction. A taken username yields common.ErrorAlreadyExists, a taken
// email common.ErrorEmailTaken.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLen {
		return nil, fmt.Errorf("%w: username must be 1-%d characters", common.ErrorValidation, maxUsernameLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}

	cred, err := s.auth.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
		}
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		exists, err = repo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorEmailTaken
		}

		user, err = repo.Create(ctx, &models.User{
			UserName:     cred.Username,
			PasswordHash: cred.PasswordHash,
			Email:        email,
		})
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.logger.Error(ctx, "error creating user", "username", username, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the password and opens a session. Unknown users and wrong
// passwords both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.auth.Authenticate(ctx, password, unknownUserDigest)
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.auth.Authenticate(ctx, password, user.PasswordHash) {
		s.logger.Info(ctx, "login failed", "user_id", user.ID)
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.auth.Login(ctx, auth.Claims{UserID: user.ID, Username: user.UserName})
	if err != nil {
		return nil, common.ErrorInternal
	}

	claims, ok := s.auth.Authorize(ctx, token)
	if !ok {
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &Session{Token: token, Claims: *claims}, nil
}

// Logout revokes token. It never fails.
func (s *UserService) Logout(ctx context.Context, token string) {
	s.auth.Logout(ctx, token)
}

// Authorize returns the claims of a valid session token or
// common.ErrorUnauthorized.
func (s *UserService) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	claims, ok := s.auth.Authorize(ctx, token)
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return claims, nil
}

// Profile returns the stored user for an authorized session.
func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}
