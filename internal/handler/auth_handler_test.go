package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/internal/service"
	"asset-track-go/pkg/hash"
	"asset-track-go/pkg/log"
	"asset-track-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.Init("error", "json", "")
	os.Exit(m.Run())
}

func newAuthHandlerForTest(t *testing.T) (*AuthHandler, *model.User, string) {
	t.Helper()

	dsn := fmt.Sprintf("file:h_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	userRepo := repository.NewUserRepository(db)
	hashed, err := hash.HashPassword("secret123")
	require.NoError(t, err)
	user := &model.User{Username: "alice", Password: hashed, Role: model.RoleAdmin, Theme: model.ThemeLight}
	require.NoError(t, userRepo.Create(user))

	jwtManager := token.NewJWTManager("test-secret", 2, 7)
	userService := service.NewUserService(userRepo, jwtManager)

	tokenString, err := jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)

	return NewAuthHandler(userService), user, tokenString
}

func TestLogoutSucceedsWithContextUser(t *testing.T) {
	h, user, tokenString := newAuthHandlerForTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	c.Request.Header.Set("Authorization", "Bearer "+tokenString)
	c.Set("user", user)

	h.Logout(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutWithoutContextUserDoesNotRevoke(t *testing.T) {
	h, _, tokenString := newAuthHandlerForTest(t)

	// 上下文中没有用户时直接失败，不走吊销逻辑
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	c.Request.Header.Set("Authorization", "Bearer "+tokenString)

	h.Logout(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "无法获取用户信息"))
}
