package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/groupspend/groupspend/internal/common"
	"github.com/groupspend/groupspend/internal/logging"
	"github.com/groupspend/groupspend/internal/server/models"
	"github.com/groupspend/groupspend/internal/server/repositories/repomanager"
)

// ExpenseService implements expense operations. Creation and listing are
// gated by group membership, mutation and deletion by authorship only.
type ExpenseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      *Policy
	logger      logging.Logger
}

// NewExpenseService constructs an ExpenseService.
func NewExpenseService(db *sql.DB, m repomanager.RepositoryManager, p *Policy, l logging.Logger) *ExpenseService {
	return &ExpenseService{
		db:          db,
		repomanager: m,
		policy:      p,
		logger:      l.With("module", "expense_service"),
	}
}

// GetExpensesByGroup returns the group's expenses, optionally bounded by
// creation-time filters, ordered by creation time. Non-members get
// common.ErrUnauthorized.
func (s *ExpenseService) GetExpensesByGroup(ctx context.Context, actorID, groupID int64, createdBefore, createdAfter *time.Time) ([]*models.Expense, error) {
	allowed, err := s.policy.CanReadGroupExpenses(ctx, actorID, groupID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, common.ErrUnauthorized
	}

	return s.repomanager.Expenses(s.db).GetByGroup(ctx, groupID, createdBefore, createdAfter)
}

// CreateExpense creates an expense authored by the actor in the group.
// Only current members may create.
func (s *ExpenseService) CreateExpense(ctx context.Context, actorID, groupID int64, title string, price float64, description *string) (int64, error) {
	allowed, err := s.policy.CanCreateExpense(ctx, actorID, groupID)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, common.ErrUnauthorized
	}

	expense := &models.Expense{
		Title:       title,
		Description: description,
		Price:       price,
		AuthorID:    actorID,
		GroupID:     groupID,
	}

	expense, err = s.repomanager.Expenses(s.db).Create(ctx, expense)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrDoesNotExist
		}
		return 0, fmt.Errorf("error creating expense: %w", err)
	}

	return expense.ID, nil
}

// UpdateExpense applies a partial update. Only the author may update,
// regardless of current group membership.
func (s *ExpenseService) UpdateExpense(ctx context.Context, actorID, expenseID int64, upd *models.ExpenseUpdate) error {
	allowed, err := s.policy.CanModifyExpense(ctx, actorID, expenseID)
	if err != nil {
		return err
	}
	if !allowed {
		return common.ErrUnauthorized
	}

	if err := s.repomanager.Expenses(s.db).Update(ctx, expenseID, upd); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrDoesNotExist
		}
		return fmt.Errorf("error updating expense: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense. Only the author may delete.
func (s *ExpenseService) DeleteExpense(ctx context.Context, actorID, expenseID int64) error {
	allowed, err := s.policy.CanModifyExpense(ctx, actorID, expenseID)
	if err != nil {
		return err
	}
	if !allowed {
		return common.ErrUnauthorized
	}

	if err := s.repomanager.Expenses(s.db).Delete(ctx, expenseID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrDoesNotExist
		}
		return fmt.Errorf("error deleting expense: %w", err)
	}

	return nil
}
