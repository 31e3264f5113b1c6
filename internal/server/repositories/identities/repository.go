// Package identities stores credential records: username, password hash and
// the id of the profile they belong to.
package identities

import (
	"context"

	"github.com/groupspend/groupspend/internal/server/models"
)

type Repository interface {
	// GetByUsername returns the identity for a username or common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.Identity, error)
	// GetByUserID returns the identity for a user id or common.ErrorNotFound.
	GetByUserID(ctx context.Context, userID int64) (*models.Identity, error)
	// Create inserts an identity row. A duplicate username is
	// common.ErrUsernameExists.
	Create(ctx context.Context, identity *models.Identity) error
}
