package handler

import (
	"asset-track-go/internal/service"
	"asset-track-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责处理用户账号管理与审计查询相关的 API 请求。
// 对应的路由全部挂在 AdminAuthMiddleware 之后。
type AdminHandler struct {
	adminService    service.AdminService
	activityService service.ActivityService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(adminService service.AdminService, activityService service.ActivityService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		activityService: activityService,
	}
}

// ListUsers 分页获取用户账号列表。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, size, search := pageParams(c)

	result, err := h.adminService.ListUsers(page, size, search)
	if err != nil {
		writeServiceError(c, err, "获取用户列表")
		return
	}
	ok(c, result)
}

// CreateUserRequest 定义了创建用户 API 的请求体结构。
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser 创建一个新的用户账号。
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateUser: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载：username、password、role 均不能为空")
		return
	}

	actor, okUser := currentUser(c)
	if !okUser {
		return
	}

	user, err := h.adminService.CreateUser(req.Username, req.Password, req.Role, actor.Username)
	if err != nil {
		writeServiceError(c, err, "创建用户")
		return
	}
	ok(c, user)
}

// UpdateUser 更新一个用户账号的角色或重置其密码。
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req service.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}

	actor, okUser := currentUser(c)
	if !okUser {
		return
	}

	user, err := h.adminService.UpdateUser(id, req, actor.Username)
	if err != nil {
		writeServiceError(c, err, "更新用户")
		return
	}
	ok(c, user)
}

// DeleteUser 删除一个用户账号，管理员不能删除自己。
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	actor, okUser := currentUser(c)
	if !okUser {
		return
	}

	if err := h.adminService.DeleteUser(id, actor.ID, actor.Username); err != nil {
		writeServiceError(c, err, "删除用户")
		return
	}
	ok(c, nil)
}

// ListActivityLogs 分页获取审计记录，支持按操作人过滤与关键字搜索。
func (h *AdminHandler) ListActivityLogs(c *gin.Context) {
	page, size, search := pageParams(c)
	username := c.Query("username")

	result, err := h.activityService.List(page, size, search, username)
	if err != nil {
		writeServiceError(c, err, "获取审计记录")
		return
	}
	ok(c, result)
}
