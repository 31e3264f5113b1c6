// Package expenses stores expense rows tied to groups.
package expenses

import (
	"context"
	"time"

	"github.com/groupspend/groupspend/internal/server/models"
)

type Repository interface {
	// Create inserts an expense row and returns it with the generated id and
	// creation time. A missing author or group is common.ErrorNotFound.
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	// GetByGroup returns the group's expenses ordered by creation time,
	// optionally bounded by the createdBefore/createdAfter filters.
	GetByGroup(ctx context.Context, groupID int64, createdBefore, createdAfter *time.Time) ([]*models.Expense, error)
	// GetAuthorID returns the author of an expense or common.ErrorNotFound.
	GetAuthorID(ctx context.Context, expenseID int64) (int64, error)
	// Update applies the non-nil fields of upd. Returns common.ErrorNotFound
	// when no row matched.
	Update(ctx context.Context, expenseID int64, upd *models.ExpenseUpdate) error
	// Delete removes an expense. Returns common.ErrorNotFound when no row
	// matched.
	Delete(ctx context.Context, expenseID int64) error
}
