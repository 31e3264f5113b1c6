package expenses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/groupspend/groupspend/internal/common"
	"github.com/groupspend/groupspend/internal/dbx"
	"github.com/groupspend/groupspend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	query :=
		`INSERT INTO expenses (title, description, price, created_at, author_id, group_id)
		 VALUES ($1, $2, $3, now(), $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		expense.Title, expense.Description, expense.Price, expense.AuthorID, expense.GroupID).
		Scan(&expense.ID, &expense.CreatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return expense, nil
}

func (r *PostgresRepository) GetByGroup(ctx context.Context, groupID int64, createdBefore, createdAfter *time.Time) ([]*models.Expense, error) {
	query :=
		`SELECT id, title, description, price, created_at, author_id, group_id
		 FROM expenses
		 WHERE group_id = $1
		   AND ($2::timestamptz IS NULL OR created_at < $2)
		   AND ($3::timestamptz IS NULL OR created_at > $3)
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, groupID, createdBefore, createdAfter)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	expenses := make([]*models.Expense, 0)
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.Title, &expense.Description,
			&expense.Price, &expense.CreatedAt, &expense.AuthorID, &expense.GroupID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return expenses, nil
}

func (r *PostgresRepository) GetAuthorID(ctx context.Context, expenseID int64) (int64, error) {
	query :=
		`SELECT author_id FROM expenses
		 WHERE id = $1
		 `

	var authorID int64
	err := r.db.QueryRowContext(ctx, query, expenseID).Scan(&authorID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return authorID, nil
}

func (r *PostgresRepository) Update(ctx context.Context, expenseID int64, upd *models.ExpenseUpdate) error {
	query :=
		`UPDATE expenses SET
		   title       = COALESCE($2, title),
		   description = COALESCE($3, description),
		   price       = COALESCE($4, price)
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, expenseID, upd.Title, upd.Description, upd.Price)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, expenseID int64) error {
	query :=
		`DELETE FROM expenses
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, expenseID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
