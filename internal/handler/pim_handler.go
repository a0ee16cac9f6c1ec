package handler

import (
	"asset-track-go/internal/model"
	"asset-track-go/internal/service"
	"asset-track-go/pkg/excel"
	"asset-track-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// PimHandler 负责处理特权访问（PIM）服务器与用户清单相关的 API 请求。
type PimHandler struct {
	pimService service.PimService
}

// NewPimHandler 创建一个新的 PimHandler 实例。
func NewPimHandler(pimService service.PimService) *PimHandler {
	return &PimHandler{pimService: pimService}
}

// ListServers 分页获取 PIM 服务器列表。
func (h *PimHandler) ListServers(c *gin.Context) {
	page, size, search := pageParams(c)

	result, err := h.pimService.ListServers(page, size, search)
	if err != nil {
		writeServiceError(c, err, "获取 PIM 服务器列表")
		return
	}
	ok(c, result)
}

// GetServer 获取一条 PIM 服务器记录。
func (h *PimHandler) GetServer(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	server, err := h.pimService.GetServer(id)
	if err != nil {
		writeServiceError(c, err, "获取 PIM 服务器")
		return
	}
	ok(c, server)
}

// CreatePimServerRequest 定义了创建 PIM 服务器 API 的请求体结构。
type CreatePimServerRequest struct {
	ServerName     string `json:"serverName" binding:"required"`
	IPAddress      string `json:"ipAddress"`
	Platform       string `json:"platform"`
	AccessLevel    string `json:"accessLevel"`
	LastReviewedBy string `json:"lastReviewedBy"`
	Status         string `json:"status"`
	Remarks        string `json:"remarks"`
}

// CreateServer 新增一条 PIM 服务器记录。
func (h *PimHandler) CreateServer(c *gin.Context) {
	var req CreatePimServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreatePimServer: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载：serverName 不能为空")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	server := &model.PimServer{
		ServerName:     req.ServerName,
		IPAddress:      req.IPAddress,
		Platform:       req.Platform,
		AccessLevel:    req.AccessLevel,
		LastReviewedBy: req.LastReviewedBy,
		Status:         req.Status,
		Remarks:        req.Remarks,
	}
	created, err := h.pimService.CreateServer(server, user.Username)
	if err != nil {
		writeServiceError(c, err, "创建 PIM 服务器")
		return
	}
	ok(c, created)
}

// UpdateServer 部分更新一条 PIM 服务器记录。
func (h *PimHandler) UpdateServer(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req service.PimServerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	updated, err := h.pimService.UpdateServer(id, req, user.Username)
	if err != nil {
		writeServiceError(c, err, "更新 PIM 服务器")
		return
	}
	ok(c, updated)
}

// DeleteServer 删除一条 PIM 服务器记录。
func (h *PimHandler) DeleteServer(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	if err := h.pimService.DeleteServer(id, user.Username); err != nil {
		writeServiceError(c, err, "删除 PIM 服务器")
		return
	}
	ok(c, nil)
}

// ImportServers 从上传的 xlsx 导入 PIM 服务器记录。
func (h *PimHandler) ImportServers(c *gin.Context) {
	fileName, content, okFile := readImportFile(c)
	if !okFile {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	summary, err := h.pimService.ImportServers(c.Request.Context(), fileName, content, user.Username)
	if err != nil {
		badRequest(c, "无法解析上传的表格文件: "+err.Error())
		return
	}
	ok(c, summary)
}

// ExportServers 导出全部 PIM 服务器记录为 xlsx。
func (h *PimHandler) ExportServers(c *gin.Context) {
	data, fileName, err := h.pimService.ExportServers()
	if err != nil {
		writeServiceError(c, err, "导出 PIM 服务器清单")
		return
	}
	writeWorkbook(c, data, fileName, excel.ContentType)
}

// ServerTemplate 下载 PIM 服务器导入模板。
func (h *PimHandler) ServerTemplate(c *gin.Context) {
	data, err := h.pimService.ServerTemplate()
	if err != nil {
		writeServiceError(c, err, "生成导入模板")
		return
	}
	writeWorkbook(c, data, "pim-servers-template.xlsx", excel.ContentType)
}

// ListUsers 分页获取 PIM 用户列表。
func (h *PimHandler) ListUsers(c *gin.Context) {
	page, size, search := pageParams(c)

	result, err := h.pimService.ListUsers(page, size, search)
	if err != nil {
		writeServiceError(c, err, "获取 PIM 用户列表")
		return
	}
	ok(c, result)
}

// GetUser 获取一条 PIM 用户记录。
func (h *PimHandler) GetUser(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	user, err := h.pimService.GetUser(id)
	if err != nil {
		writeServiceError(c, err, "获取 PIM 用户")
		return
	}
	ok(c, user)
}

// CreatePimUserRequest 定义了创建 PIM 用户 API 的请求体结构。
type CreatePimUserRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	AccessLevel string `json:"accessLevel"`
	Status      string `json:"status"`
	Remarks     string `json:"remarks"`
}

// CreateUser 新增一条 PIM 用户记录。
func (h *PimHandler) CreateUser(c *gin.Context) {
	var req CreatePimUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreatePimUser: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载：username 不能为空")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	pimUser := &model.PimUser{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Department:  req.Department,
		AccessLevel: req.AccessLevel,
		Status:      req.Status,
		Remarks:     req.Remarks,
	}
	created, err := h.pimService.CreateUser(pimUser, user.Username)
	if err != nil {
		writeServiceError(c, err, "创建 PIM 用户")
		return
	}
	ok(c, created)
}

// UpdateUser 部分更新一条 PIM 用户记录。
func (h *PimHandler) UpdateUser(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req service.PimUserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	updated, err := h.pimService.UpdateUser(id, req, user.Username)
	if err != nil {
		writeServiceError(c, err, "更新 PIM 用户")
		return
	}
	ok(c, updated)
}

// DeleteUser 删除一条 PIM 用户记录。
func (h *PimHandler) DeleteUser(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	if err := h.pimService.DeleteUser(id, user.Username); err != nil {
		writeServiceError(c, err, "删除 PIM 用户")
		return
	}
	ok(c, nil)
}

// ImportUsers 从上传的 xlsx 导入 PIM 用户记录。
func (h *PimHandler) ImportUsers(c *gin.Context) {
	fileName, content, okFile := readImportFile(c)
	if !okFile {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	summary, err := h.pimService.ImportUsers(c.Request.Context(), fileName, content, user.Username)
	if err != nil {
		badRequest(c, "无法解析上传的表格文件: "+err.Error())
		return
	}
	ok(c, summary)
}

// ExportUsers 导出全部 PIM 用户记录为 xlsx。
func (h *PimHandler) ExportUsers(c *gin.Context) {
	data, fileName, err := h.pimService.ExportUsers()
	if err != nil {
		writeServiceError(c, err, "导出 PIM 用户清单")
		return
	}
	writeWorkbook(c, data, fileName, excel.ContentType)
}

// UserTemplate 下载 PIM 用户导入模板。
func (h *PimHandler) UserTemplate(c *gin.Context) {
	data, err := h.pimService.UserTemplate()
	if err != nil {
		writeServiceError(c, err, "生成导入模板")
		return
	}
	writeWorkbook(c, data, "pim-users-template.xlsx", excel.ContentType)
}
