package services

import (
	"context"
	"testing"

	"github.com/groupspend/groupspend/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsers(t *testing.T) {
	db, _ := newSQLMockDB(t)

	m := &fakeRepoManager{u: &fakeUsersRepo{byID: map[int64]*models.User{
		1: {ID: 1, Username: "alice"},
		2: {ID: 2, Username: "bob"},
	}}}

	svc := NewUserService(db, m)

	users, err := svc.GetUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
