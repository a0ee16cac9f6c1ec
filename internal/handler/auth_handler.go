package handler

import (
	"net/http"
	"strings"

	"asset-track-go/internal/service"
	"asset-track-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责处理认证相关的 API 请求。
type AuthHandler struct {
	userService service.UserService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// LoginRequest 定义了登录 API 的请求体结构。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载：用户名和密码不能为空")
		return
	}

	accessToken, refreshToken, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		log.Warnf("Login: User authentication failed for '%s', error: %v", req.Username, err)
		writeServiceError(c, err, "登录")
		return
	}

	log.Infof("User '%s' logged in successfully", req.Username)
	ok(c, gin.H{
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

// RefreshTokenRequest 定义了刷新 token API 的请求体结构。
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken 用有效的 refresh token 换取新的 token 对。
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载：refreshToken 不能为空")
		return
	}

	accessToken, refreshToken, err := h.userService.RefreshToken(req.RefreshToken)
	if err != nil {
		writeServiceError(c, err, "刷新 token")
		return
	}

	ok(c, gin.H{
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout 处理用户登出逻辑，将当前 access token 加入黑名单。
// 必须先解析出上下文中的用户，再执行吊销。
func (h *AuthHandler) Logout(c *gin.Context) {
	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.userService.Logout(tokenString); err != nil {
		log.Error("Logout: Failed to logout", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "登出失败", "data": nil})
		return
	}

	log.Infof("User '%s' logged out successfully", user.Username)
	ok(c, nil)
}
