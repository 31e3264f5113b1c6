package repomanager

import (
	"context"
	"database/sql"

	"github.com/groupspend/groupspend/internal/dbx"
	"github.com/groupspend/groupspend/internal/server/repositories/expenses"
	"github.com/groupspend/groupspend/internal/server/repositories/groups"
	"github.com/groupspend/groupspend/internal/server/repositories/identities"
	"github.com/groupspend/groupspend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same repository code inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
	Users(db dbx.DBTX) users.Repository
	Groups(db dbx.DBTX) groups.Repository
	Expenses(db dbx.DBTX) expenses.Repository
}
