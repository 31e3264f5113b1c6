// Package groups stores expense groups and their membership relation.
package groups

import (
	"context"

	"github.com/groupspend/groupspend/internal/server/models"
)

type Repository interface {
	// Create inserts a group row and returns its generated id.
	Create(ctx context.Context, group *models.Group) (*models.Group, error)
	// AddMember inserts a (group, user) membership row. The table's primary
	// key makes the insert race-safe: a concurrent duplicate surfaces as
	// common.ErrConflict, a missing group or user as common.ErrorNotFound.
	AddMember(ctx context.Context, groupID, userID int64) error
	// IsMember reports current membership.
	IsMember(ctx context.Context, userID, groupID int64) (bool, error)
	// GetGroupsByUser returns all groups the user is a member of.
	GetGroupsByUser(ctx context.Context, userID int64) ([]*models.Group, error)
}
