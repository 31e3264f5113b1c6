package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/groupspend/groupspend/internal/common"
	"github.com/groupspend/groupspend/internal/dbx"
	"github.com/groupspend/groupspend/internal/logging"
	"github.com/groupspend/groupspend/internal/server/models"
	expensesrepo "github.com/groupspend/groupspend/internal/server/repositories/expenses"
	groupsrepo "github.com/groupspend/groupspend/internal/server/repositories/groups"
	identitiesrepo "github.com/groupspend/groupspend/internal/server/repositories/identities"
	usersrepo "github.com/groupspend/groupspend/internal/server/repositories/users"
)

// --- shared test helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- fake repositories ---

type fakeIdentitiesRepo struct {
	byUsername map[string]*models.Identity
	byUserID   map[int64]*models.Identity
	createErr  error
	created    []*models.Identity
	getErr     error
}

func (f *fakeIdentitiesRepo) GetByUsername(ctx context.Context, username string) (*models.Identity, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	identity, ok := f.byUsername[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return identity, nil
}

func (f *fakeIdentitiesRepo) GetByUserID(ctx context.Context, userID int64) (*models.Identity, error) {
	identity, ok := f.byUserID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return identity, nil
}

func (f *fakeIdentitiesRepo) Create(ctx context.Context, identity *models.Identity) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, identity)
	return nil
}

type fakeUsersRepo struct {
	byID      map[int64]*models.User
	createOut *models.User
	createErr error
	members   []*models.User
	existsErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

func (f *fakeUsersRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeUsersRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsersRepo) GetGroupMembers(ctx context.Context, groupID int64) ([]*models.User, error) {
	return f.members, nil
}

type membership struct {
	groupID int64
	userID  int64
}

type fakeGroupsRepo struct {
	memberships map[membership]bool
	addErr      error
	addCalls    []membership
	createOut   *models.Group
	createErr   error
	groups      []*models.Group
}

func (f *fakeGroupsRepo) Create(ctx context.Context, group *models.Group) (*models.Group, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeGroupsRepo) AddMember(ctx context.Context, groupID, userID int64) error {
	f.addCalls = append(f.addCalls, membership{groupID, userID})
	if f.addErr != nil {
		return f.addErr
	}
	if f.memberships == nil {
		f.memberships = make(map[membership]bool)
	}
	if f.memberships[membership{groupID, userID}] {
		return common.ErrConflict
	}
	f.memberships[membership{groupID, userID}] = true
	return nil
}

func (f *fakeGroupsRepo) IsMember(ctx context.Context, userID, groupID int64) (bool, error) {
	return f.memberships[membership{groupID, userID}], nil
}

func (f *fakeGroupsRepo) GetGroupsByUser(ctx context.Context, userID int64) ([]*models.Group, error) {
	return f.groups, nil
}

type fakeExpensesRepo struct {
	authors   map[int64]int64 // expenseID -> authorID
	createOut *models.Expense
	createErr error
	byGroup   []*models.Expense
	updateErr error
	deleteErr error
	updated   []int64
	deleted   []int64
}

func (f *fakeExpensesRepo) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeExpensesRepo) GetByGroup(ctx context.Context, groupID int64, createdBefore, createdAfter *time.Time) ([]*models.Expense, error) {
	return f.byGroup, nil
}

func (f *fakeExpensesRepo) GetAuthorID(ctx context.Context, expenseID int64) (int64, error) {
	authorID, ok := f.authors[expenseID]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return authorID, nil
}

func (f *fakeExpensesRepo) Update(ctx context.Context, expenseID int64, upd *models.ExpenseUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, expenseID)
	return nil
}

func (f *fakeExpensesRepo) Delete(ctx context.Context, expenseID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, expenseID)
	return nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	i *fakeIdentitiesRepo
	u *fakeUsersRepo
	g *fakeGroupsRepo
	e *fakeExpensesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Identities(db dbx.DBTX) identitiesrepo.Repository { return m.i }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository           { return m.u }
func (m *fakeRepoManager) Groups(db dbx.DBTX) groupsrepo.Repository         { return m.g }
func (m *fakeRepoManager) Expenses(db dbx.DBTX) expensesrepo.Repository     { return m.e }
