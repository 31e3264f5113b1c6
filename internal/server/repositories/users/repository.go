// Package users stores profile rows, separate from the credential records in
// the identities package.
package users

import (
	"context"

	"github.com/groupspend/groupspend/internal/server/models"
)

type Repository interface {
	// Create inserts a profile row and returns its generated id. A duplicate
	// username is common.ErrUsernameExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByID returns the profile for an id or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Exists reports whether a profile with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
	// GetAll returns all profiles.
	GetAll(ctx context.Context) ([]*models.User, error)
	// GetGroupMembers returns the profiles of all members of a group.
	GetGroupMembers(ctx context.Context, groupID int64) ([]*models.User, error)
}
