// Package services contains server-side business logic. This file
// implements UserService, which handles registration, login with
// server-stored sessions, and session validation for the auth gate.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/server/auth"
	"github.com/dmitrijs2005/boilerparts/internal/server/config"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// UserService provides authentication-related operations:
// - Register: create users, answering conflicts for taken username/email
// - Login: verify credentials, open a session, mint the cookie token
// - Authenticate: resolve a cookie token back to a user
// - Logout: close the session
type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	secretKey               []byte
	sessionValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                      db,
		repomanager:             m,
		secretKey:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
	}
}

// Register creates a new user with a bcrypt-hashed password. A taken
// username yields common.ErrorUsernameTaken, a taken email
// common.ErrorEmailTaken; both columns are checked in one query so the
// two lookups cannot race each other, and the unique constraints on the
// table back the check under concurrent registrations.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	existing, err := repo.GetByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}
	if existing != nil {
		if existing.Username == username {
			return nil, common.ErrorUsernameTaken
		}
		return nil, common.ErrorEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, Password: string(hash), Email: email}
	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login verifies the password against the stored bcrypt hash and, on
// success, opens a session and returns the signed cookie token.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", common.ErrorUnauthorized
	}

	session, err := s.repomanager.Sessions(s.db).Create(ctx, user.ID, s.sessionValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(session.ID, s.secretKey, s.sessionValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Authenticate resolves a cookie token to the session user. An invalid
// signature, an unknown session id, or a session past its expiry all
// yield common.ErrorUnauthorized. Expired rows are deleted on sight.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, string, error) {

	sessionID, err := auth.GetSessionIDFromToken(token, s.secretKey)
	if err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	sessionRepo := s.repomanager.Sessions(s.db)
	session, err := sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, "", common.ErrorUnauthorized
	}
	if session.ExpiresAt.Before(time.Now()) {
		_ = sessionRepo.Delete(ctx, session.ID)
		return nil, "", common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	return user, session.ID, nil
}

// Logout deletes the server-side session; the cookie becomes useless
// even before it expires.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	if err := s.repomanager.Sessions(s.db).Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
