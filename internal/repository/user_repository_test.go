package repository

import (
	"testing"

	"asset-track-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryFindByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&model.User{Username: "alice", Password: "hashed", Role: model.RoleAdmin, Theme: model.ThemeLight}))

	user, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)

	_, err = repo.FindByUsername("nobody")
	assert.Error(t, err)
}

func TestUserRepositoryPaginationAndSearch(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, repo.Create(&model.User{Username: name, Password: "hashed", Role: model.RoleReadonly, Theme: model.ThemeLight}))
	}

	users, total, err := repo.FindWithPagination(0, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)

	users, total, err = repo.FindWithPagination(0, 10, "bo")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)
}

func TestUserRepositoryCountByRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&model.User{Username: "alice", Password: "hashed", Role: model.RoleAdmin, Theme: model.ThemeLight}))
	require.NoError(t, repo.Create(&model.User{Username: "bob", Password: "hashed", Role: model.RoleReadonly, Theme: model.ThemeLight}))

	admins, err := repo.CountByRole(model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)

	readers, err := repo.CountByRole(model.RoleReadonly)
	require.NoError(t, err)
	assert.Equal(t, int64(1), readers)
}
