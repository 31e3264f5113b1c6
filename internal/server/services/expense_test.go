package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/groupspend/groupspend/internal/common"
	"github.com/groupspend/groupspend/internal/server/models"
)

func newExpenseService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *ExpenseService {
	t.Helper()
	return NewExpenseService(db, rm, NewPolicy(db, rm), testLogger())
}

func TestGetExpensesByGroup_NonMemberRejected(t *testing.T) {
	db, _ := newSQLMockDB(t)

	rm := &fakeRepoManager{
		g: &fakeGroupsRepo{memberships: map[membership]bool{{groupID: 10, userID: 1}: true}},
		e: &fakeExpensesRepo{byGroup: []*models.Expense{{ID: 100, GroupID: 10}}},
	}
	s := newExpenseService(t, db, rm)

	_, err := s.GetExpensesByGroup(context.Background(), 3, 10, nil, nil)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}

	got, err := s.GetExpensesByGroup(context.Background(), 1, 10, nil, nil)
	if err != nil {
		t.Fatalf("GetExpensesByGroup error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 100 {
		t.Fatalf("unexpected expenses: %+v", got)
	}
}

func TestCreateExpense_NonMemberRejected(t *testing.T) {
	db, _ := newSQLMockDB(t)

	rm := &fakeRepoManager{
		g: &fakeGroupsRepo{memberships: map[membership]bool{{groupID: 10, userID: 1}: true}},
		e: &fakeExpensesRepo{createOut: &models.Expense{ID: 100}},
	}
	s := newExpenseService(t, db, rm)

	_, err := s.CreateExpense(context.Background(), 3, 10, "dinner", 42.50, nil)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}

	expenseID, err := s.CreateExpense(context.Background(), 1, 10, "dinner", 42.50, nil)
	if err != nil {
		t.Fatalf("CreateExpense error: %v", err)
	}
	if expenseID != 100 {
		t.Fatalf("want expense id 100, got %d", expenseID)
	}
}

func TestUpdateExpense_AuthorOnly_IgnoresMembership(t *testing.T) {
	db, _ := newSQLMockDB(t)

	// Author 1 is no longer a member of any group; user 2 is a member but not
	// the author. Only authorship counts.
	rm := &fakeRepoManager{
		g: &fakeGroupsRepo{memberships: map[membership]bool{{groupID: 10, userID: 2}: true}},
		e: &fakeExpensesRepo{authors: map[int64]int64{100: 1}},
	}
	s := newExpenseService(t, db, rm)

	title := "updated"
	upd := &models.ExpenseUpdate{Title: &title}

	if err := s.UpdateExpense(context.Background(), 1, 100, upd); err != nil {
		t.Fatalf("author update error: %v", err)
	}

	err := s.UpdateExpense(context.Background(), 2, 100, upd)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("non-author update: want ErrUnauthorized, got %v", err)
	}
}

func TestDeleteExpense_AuthorOnly(t *testing.T) {
	db, _ := newSQLMockDB(t)

	rm := &fakeRepoManager{
		g: &fakeGroupsRepo{},
		e: &fakeExpensesRepo{authors: map[int64]int64{100: 1}},
	}
	s := newExpenseService(t, db, rm)

	err := s.DeleteExpense(context.Background(), 2, 100)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}

	if err := s.DeleteExpense(context.Background(), 1, 100); err != nil {
		t.Fatalf("author delete error: %v", err)
	}
	if len(rm.e.deleted) != 1 || rm.e.deleted[0] != 100 {
		t.Fatalf("expected delete of expense 100, got %v", rm.e.deleted)
	}
}

func TestDeleteExpense_MissingExpense(t *testing.T) {
	db, _ := newSQLMockDB(t)

	rm := &fakeRepoManager{g: &fakeGroupsRepo{}, e: &fakeExpensesRepo{}}
	s := newExpenseService(t, db, rm)

	err := s.DeleteExpense(context.Background(), 1, 404)
	if !errors.Is(err, common.ErrDoesNotExist) {
		t.Fatalf("want ErrDoesNotExist, got %v", err)
	}
}
