package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
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

func newAuthTestRouter(t *testing.T, role string) (*gin.Engine, string) {
	t.Helper()

	dsn := fmt.Sprintf("file:mw_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	userRepo := repository.NewUserRepository(db)
	hashed, err := hash.HashPassword("secret123")
	require.NoError(t, err)
	user := &model.User{Username: "alice", Password: hashed, Role: role, Theme: model.ThemeLight}
	require.NoError(t, userRepo.Create(user))

	jwtManager := token.NewJWTManager("test-secret", 2, 7)
	userService := service.NewUserService(userRepo, jwtManager)

	tokenString, err := jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(jwtManager, userService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin-only", AuthMiddleware(jwtManager, userService), AdminAuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokenString
}

func doRequest(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRequiresHeader(t *testing.T) {
	r, _ := newAuthTestRouter(t, model.RoleReadonly)

	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	r, _ := newAuthTestRouter(t, model.RoleReadonly)

	w := doRequest(r, "/protected", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r, tokenString := newAuthTestRouter(t, model.RoleReadonly)

	w := doRequest(r, "/protected", tokenString)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	r, _ := newAuthTestRouter(t, model.RoleReadonly)

	// token 有效但对应用户不存在
	other := token.NewJWTManager("test-secret", 2, 7)
	orphanToken, err := other.GenerateToken(999, "ghost", model.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(r, "/protected", orphanToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthMiddlewareForbidsReadonly(t *testing.T) {
	r, tokenString := newAuthTestRouter(t, model.RoleReadonly)

	w := doRequest(r, "/admin-only", tokenString)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminAuthMiddlewareAllowsAdmin(t *testing.T) {
	r, tokenString := newAuthTestRouter(t, model.RoleAdmin)

	w := doRequest(r, "/admin-only", tokenString)
	assert.Equal(t, http.StatusOK, w.Code)
}
