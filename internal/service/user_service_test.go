package service

import (
	"testing"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/hash"
	"asset-track-go/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest(t *testing.T) (UserService, *token.JWTManager) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)

	hashed, err := hash.HashPassword("secret123")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&model.User{
		Username: "alice",
		Password: hashed,
		Role:     model.RoleAdmin,
		Theme:    model.ThemeLight,
	}))

	jwtManager := token.NewJWTManager("test-secret", 2, 7)
	return NewUserService(userRepo, jwtManager), jwtManager
}

func TestUserServiceLogin(t *testing.T) {
	svc, jwtManager := newUserServiceForTest(t)

	accessToken, refreshToken, err := svc.Login("alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	claims, err := jwtManager.VerifyToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestUserServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	_, _, err := svc.Login("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceLoginUnknownUser(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	// 用户不存在与密码错误返回同一错误，不暴露账号是否存在
	_, _, err := svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceRefreshToken(t *testing.T) {
	svc, jwtManager := newUserServiceForTest(t)

	_, refreshToken, err := svc.Login("alice", "secret123")
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshToken(refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)

	claims, err := jwtManager.VerifyToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestUserServiceRefreshTokenInvalid(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	_, _, err := svc.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	// access token 签名有效，但类型不对，不能换发新 token 对
	accessToken, _, err := svc.Login("alice", "secret123")
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceGetProfile(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	user, err := svc.GetProfile("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetProfile("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserServiceSetTheme(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	user, err := svc.SetTheme("alice", model.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, user.Theme)

	_, err = svc.SetTheme("alice", "solarized")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestUserServiceTokenRevocationWithoutRedis(t *testing.T) {
	svc, jwtManager := newUserServiceForTest(t)

	tokenString, err := jwtManager.GenerateToken(1, "alice", model.RoleAdmin)
	require.NoError(t, err)

	// 未配置 Redis 时登出不报错，token 视为未吊销
	require.NoError(t, svc.Logout(tokenString))
	assert.False(t, svc.IsTokenRevoked(tokenString))
}
