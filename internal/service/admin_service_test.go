package service

import (
	"testing"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/hash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminServiceForTest(t *testing.T) (AdminService, repository.UserRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewAdminService(userRepo, newActivityService(db))
	return svc, userRepo, db
}

func TestAdminServiceCreateUser(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest(t)

	user, err := svc.CreateUser("alice", "secret123", model.RoleReadonly, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleReadonly, user.Role)
	assert.Equal(t, model.ThemeLight, user.Theme)

	// 密码以 bcrypt 哈希存储
	stored, err := userRepo.FindByUsername("alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, hash.CheckPasswordHash("secret123", stored.Password))
}

func TestAdminServiceCreateUserInvalidRole(t *testing.T) {
	svc, _, _ := newAdminServiceForTest(t)

	_, err := svc.CreateUser("alice", "secret123", "superuser", "admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAdminServiceCreateUserDuplicate(t *testing.T) {
	svc, _, _ := newAdminServiceForTest(t)

	_, err := svc.CreateUser("alice", "secret123", model.RoleReadonly, "admin")
	require.NoError(t, err)

	_, err = svc.CreateUser("alice", "other-pass", model.RoleAdmin, "admin")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAdminServiceUpdateUserRoleAndPassword(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest(t)

	user, err := svc.CreateUser("alice", "secret123", model.RoleReadonly, "admin")
	require.NoError(t, err)

	newRole := model.RoleAdmin
	newPassword := "rotated456"
	updated, err := svc.UpdateUser(user.ID, UserUpdate{Role: &newRole, Password: &newPassword}, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, hash.CheckPasswordHash("rotated456", stored.Password))
	assert.False(t, hash.CheckPasswordHash("secret123", stored.Password))
}

func TestAdminServiceUpdateUserRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newAdminServiceForTest(t)

	user, err := svc.CreateUser("alice", "secret123", model.RoleReadonly, "admin")
	require.NoError(t, err)

	bad := "root"
	_, err = svc.UpdateUser(user.ID, UserUpdate{Role: &bad}, "admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAdminServiceDeleteUser(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest(t)

	admin, err := svc.CreateUser("admin2", "secret123", model.RoleAdmin, "admin")
	require.NoError(t, err)
	target, err := svc.CreateUser("alice", "secret123", model.RoleReadonly, "admin")
	require.NoError(t, err)

	// 管理员不能删除自己
	err = svc.DeleteUser(admin.ID, admin.ID, admin.Username)
	assert.ErrorIs(t, err, ErrSelfDelete)

	require.NoError(t, svc.DeleteUser(target.ID, admin.ID, admin.Username))
	_, err = userRepo.FindByID(target.ID)
	assert.Error(t, err)

	err = svc.DeleteUser(target.ID, admin.ID, admin.Username)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminServiceEnsureAdminIsIdempotent(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest(t)

	require.NoError(t, svc.EnsureAdmin("admin", "admin123"))
	require.NoError(t, svc.EnsureAdmin("admin", "admin123"))

	count, err := userRepo.CountByRole(model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	admin, err := userRepo.FindByUsername("admin")
	require.NoError(t, err)
	assert.True(t, hash.CheckPasswordHash("admin123", admin.Password))
}

func TestAdminServiceEnsureAdminSkipsWhenAdminExists(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest(t)

	_, err := svc.CreateUser("boss", "secret123", model.RoleAdmin, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.EnsureAdmin("admin", "admin123"))
	_, err = userRepo.FindByUsername("admin")
	assert.Error(t, err)
}
