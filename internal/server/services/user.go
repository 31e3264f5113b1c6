package services

import (
	"context"
	"database/sql"

	"github.com/groupspend/groupspend/internal/server/models"
	"github.com/groupspend/groupspend/internal/server/repositories/repomanager"
)

// UserService exposes profile queries. Registration lives on AuthService
// because it writes credential records.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// GetUsers returns all registered profiles.
func (s *UserService) GetUsers(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).GetAll(ctx)
}
