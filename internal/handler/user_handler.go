package handler

import (
	"asset-track-go/internal/service"
	"asset-track-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UserHandler 负责处理当前登录用户相关的 API 请求。
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile 获取当前登录用户的个人信息。
// 用户信息已经由 AuthMiddleware 注入到上下文中。
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, okUser := currentUser(c)
	if !okUser {
		return
	}
	ok(c, user)
}

// SetThemeRequest 定义了设置界面主题 API 的请求体结构。
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// SetTheme 更新当前用户的界面主题偏好。
func (h *UserHandler) SetTheme(c *gin.Context) {
	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载：theme 不能为空")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	updated, err := h.userService.SetTheme(user.Username, req.Theme)
	if err != nil {
		writeServiceError(c, err, "更新主题")
		return
	}

	log.Infof("User '%s' set theme to '%s'", user.Username, req.Theme)
	ok(c, updated)
}
