package identities

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Identity, error) {
	query :=
		`SELECT user_id, username, password_hash FROM identities
		 WHERE username = $1
		 `

	identity := &models.Identity{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&identity.UserID, &identity.Username, &identity.PasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.Identity, error) {
	query :=
		`SELECT user_id, username, password_hash FROM identities
		 WHERE user_id = $1
		 `

	identity := &models.Identity{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&identity.UserID, &identity.Username, &identity.PasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

func (r *PostgresRepository) Create(ctx context.Context, identity *models.Identity) error {
	query :=
		`INSERT INTO identities (user_id, username, password_hash)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, identity.UserID, identity.Username, identity.PasswordHash)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrUsernameExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
