package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/groupspend/groupspend/internal/common"
	"github.com/groupspend/groupspend/internal/server/repositories/repomanager"
)

// Policy is the stateless authorization decision layer. Every decision
// re-fetches the facts it needs (membership, authorship) from the store, so
// a membership change between two requests is always observed. Nothing is
// cached and no lock is held across a store call.
//
// The only decision with a real race is adding a member: two concurrent
// CanAddMember calls can both see "not yet a member". The membership table's
// composite primary key resolves that race at insert time, and the loser
// observes common.ErrAlreadyMember.
type Policy struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPolicy constructs a Policy over the given store.
func NewPolicy(db *sql.DB, m repomanager.RepositoryManager) *Policy {
	return &Policy{db: db, repomanager: m}
}

// CanReadGroup reports whether the actor is a current member of the group.
func (p *Policy) CanReadGroup(ctx context.Context, actorID, groupID int64) (bool, error) {
	return p.repomanager.Groups(p.db).IsMember(ctx, actorID, groupID)
}

// CanModifyGroupMembership reports whether the actor may change the group's
// member list. Any current member may.
func (p *Policy) CanModifyGroupMembership(ctx context.Context, actorID, groupID int64) (bool, error) {
	return p.repomanager.Groups(p.db).IsMember(ctx, actorID, groupID)
}

// CanAddMember checks the preconditions for adding target to the group:
//   - common.ErrDoesNotExist if the target user does not exist
//   - common.ErrUnauthorized if the actor is not a current member
//   - common.ErrAlreadyMember if the target is already a member
//
// A nil result permits the insert; the insert itself must still rely on the
// store's uniqueness guarantee, since this check can race with another add.
func (p *Policy) CanAddMember(ctx context.Context, actorID, groupID, targetID int64) error {
	exists, err := p.repomanager.Users(p.db).Exists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrDoesNotExist
	}

	allowed, err := p.CanModifyGroupMembership(ctx, actorID, groupID)
	if err != nil {
		return err
	}
	if !allowed {
		return common.ErrUnauthorized
	}

	isMember, err := p.repomanager.Groups(p.db).IsMember(ctx, targetID, groupID)
	if err != nil {
		return err
	}
	if isMember {
		return common.ErrAlreadyMember
	}

	return nil
}

// CanCreateExpense reports whether the actor may create an expense in the
// group. Only current members may.
func (p *Policy) CanCreateExpense(ctx context.Context, actorID, groupID int64) (bool, error) {
	return p.repomanager.Groups(p.db).IsMember(ctx, actorID, groupID)
}

// CanModifyExpense reports whether the actor may mutate or delete the
// expense. Only authorship counts: an author removed from the group keeps
// control over their own expenses. A missing expense is
// common.ErrDoesNotExist.
func (p *Policy) CanModifyExpense(ctx context.Context, actorID, expenseID int64) (bool, error) {
	authorID, err := p.repomanager.Expenses(p.db).GetAuthorID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, common.ErrDoesNotExist
		}
		return false, err
	}
	return authorID == actorID, nil
}

// CanReadGroupExpenses reports whether the actor may list the group's
// expenses. Same rule as reading the group itself.
func (p *Policy) CanReadGroupExpenses(ctx context.Context, actorID, groupID int64) (bool, error) {
	return p.CanReadGroup(ctx, actorID, groupID)
}
