// Package services contains the server-side business logic: the
// authentication flow, the authorization policy, and the group/expense/user
// operations built on top of them.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/groupspend/groupspend/internal/common"
	"github.com/groupspend/groupspend/internal/dbx"
	"github.com/groupspend/groupspend/internal/logging"
	"github.com/groupspend/groupspend/internal/server/auth"
	"github.com/groupspend/groupspend/internal/server/config"
	"github.com/groupspend/groupspend/internal/server/models"
	"github.com/groupspend/groupspend/internal/server/repositories/repomanager"
)

// AuthService turns credentials into session tokens and tokens back into
// authenticated users.
//
// Login and AuthenticateToken deliberately collapse every credential problem
// into common.ErrInvalidCredentials so a caller cannot probe which part of
// the credential was wrong. Server-side data problems (valid token whose user
// vanished, unparseable stored hash) are common.ErrInternalInconsistency
// instead: those are our fault, not the caller's.
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	secretKey                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		logger:                      l.With("module", "auth_service"),
		secretKey:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
	}
}

// Login verifies the username/password pair and, on success, issues a signed
// session token with the username as subject.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Identities(s.db)

	identity, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Same error as a wrong password.
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	ok, err := auth.VerifyPassword(password, identity.PasswordHash)
	if err != nil {
		if errors.Is(err, common.ErrCorruptCredential) {
			s.logger.Error(ctx, "stored password hash is corrupt", "username", username)
			return "", common.ErrInternalInconsistency
		}
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(identity.Username, s.secretKey, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// AuthenticateToken validates a bearer token and resolves the full profile of
// its subject.
func (s *AuthService) AuthenticateToken(ctx context.Context, tokenString string) (*models.User, error) {
	subject, err := auth.GetSubjectFromToken(tokenString, s.secretKey)
	if err != nil {
		// Invalid signature, expiry, and malformed claims are
		// indistinguishable to the caller.
		return nil, common.ErrInvalidCredentials
	}

	identity, err := s.repomanager.Identities(s.db).GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// The token was properly signed by us, so the subject existed at
			// issue time. Its disappearance is a server-side fault.
			s.logger.Error(ctx, "token subject has no identity", "subject", subject)
			return nil, common.ErrInternalInconsistency
		}
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "identity has no profile", "user_id", identity.UserID)
			return nil, common.ErrInternalInconsistency
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Register creates the profile row and the identity row in one transaction,
// so a username collision leaves no orphaned profile behind. Returns the new
// user id or common.ErrUsernameExists.
func (s *AuthService) Register(ctx context.Context, username, password, firstName, lastName, email string) (int64, error) {
	passwordHash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	var userID int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user := &models.User{
			Username:  username,
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
		}

		user, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}

		identity := &models.Identity{
			UserID:       user.ID,
			Username:     username,
			PasswordHash: passwordHash,
		}
		if err := s.repomanager.Identities(tx).Create(ctx, identity); err != nil {
			return err
		}

		userID = user.ID
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrUsernameExists) {
			return 0, common.ErrUsernameExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return userID, nil
}
