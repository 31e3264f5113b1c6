package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/groupspend/groupspend/internal/common"
	"github.com/groupspend/groupspend/internal/dbx"
	"github.com/groupspend/groupspend/internal/logging"
	"github.com/groupspend/groupspend/internal/server/models"
	"github.com/groupspend/groupspend/internal/server/repositories/repomanager"
)

// GroupService implements group and membership operations, gated by Policy.
type GroupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      *Policy
	logger      logging.Logger
}

// NewGroupService constructs a GroupService.
func NewGroupService(db *sql.DB, m repomanager.RepositoryManager, p *Policy, l logging.Logger) *GroupService {
	return &GroupService{
		db:          db,
		repomanager: m,
		policy:      p,
		logger:      l.With("module", "group_service"),
	}
}

// GetGroups returns all groups the actor is a member of.
func (s *GroupService) GetGroups(ctx context.Context, actorID int64) ([]*models.Group, error) {
	return s.repomanager.Groups(s.db).GetGroupsByUser(ctx, actorID)
}

// GetGroupMembers returns the member profiles of a group. Non-members get
// common.ErrUnauthorized, never a membership list.
func (s *GroupService) GetGroupMembers(ctx context.Context, actorID, groupID int64) ([]*models.User, error) {
	allowed, err := s.policy.CanReadGroup(ctx, actorID, groupID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, common.ErrUnauthorized
	}

	return s.repomanager.Users(s.db).GetGroupMembers(ctx, groupID)
}

// AddMember adds target to the group on behalf of the actor. The policy
// check and the insert can race with a concurrent add of the same target;
// the membership table's uniqueness guarantee decides the winner and the
// loser gets common.ErrAlreadyMember. Two rows are never created.
func (s *GroupService) AddMember(ctx context.Context, actorID, groupID, targetID int64) error {
	if err := s.policy.CanAddMember(ctx, actorID, groupID, targetID); err != nil {
		return err
	}

	err := s.repomanager.Groups(s.db).AddMember(ctx, groupID, targetID)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return common.ErrAlreadyMember
		}
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrDoesNotExist
		}
		return fmt.Errorf("error adding group member: %w", err)
	}

	return nil
}

// CreateGroup creates a group and its initial membership in one transaction.
// The author always becomes a member, plus any extra member ids supplied.
// A member id with no profile row fails the whole operation with
// common.ErrDoesNotExist.
func (s *GroupService) CreateGroup(ctx context.Context, authorID int64, name string, memberIDs []int64) (int64, error) {
	var groupID int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Groups(tx)

		group, err := repo.Create(ctx, &models.Group{Name: name, AuthorID: authorID})
		if err != nil {
			return err
		}

		// The author is always a member; ids are deduplicated so a repeated
		// id does not abort the transaction.
		seen := make(map[int64]struct{}, len(memberIDs)+1)
		for _, id := range append([]int64{authorID}, memberIDs...) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			if err := repo.AddMember(ctx, group.ID, id); err != nil {
				return err
			}
		}

		groupID = group.ID
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrDoesNotExist
		}
		return 0, fmt.Errorf("error creating group: %w", err)
	}

	return groupID, nil
}
