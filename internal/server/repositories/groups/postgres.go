package groups

import (
	"context"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, group *models.Group) (*models.Group, error) {
	query :=
		`INSERT INTO expense_groups (name, author_id, created_at)
		 VALUES ($1, $2, now())
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, group.Name, group.AuthorID).Scan(&group.ID, &group.CreatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return group, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	query :=
		`INSERT INTO expense_group_members (group_id, user_id)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, groupID, userID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrConflict
		}
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) IsMember(ctx context.Context, userID, groupID int64) (bool, error) {
	query :=
		`SELECT EXISTS(
		    SELECT 1 FROM expense_group_members
		    WHERE user_id = $1 AND group_id = $2
		 )`

	var isMember bool
	if err := r.db.QueryRowContext(ctx, query, userID, groupID).Scan(&isMember); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return isMember, nil
}

func (r *PostgresRepository) GetGroupsByUser(ctx context.Context, userID int64) ([]*models.Group, error) {
	query :=
		`SELECT g.id, g.name, g.author_id, g.created_at
		 FROM expense_groups g
		 JOIN expense_group_members m ON m.group_id = g.id
		 WHERE m.user_id = $1
		 ORDER BY g.id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.AuthorID, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return groups, nil
}
