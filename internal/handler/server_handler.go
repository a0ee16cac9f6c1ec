package handler

import (
	"asset-track-go/internal/model"
	"asset-track-go/internal/service"
	"asset-track-go/pkg/excel"
	"asset-track-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ServerHandler 负责处理服务器资产清单相关的 API 请求。
type ServerHandler struct {
	serverService service.ServerService
}

// NewServerHandler 创建一个新的 ServerHandler 实例。
func NewServerHandler(serverService service.ServerService) *ServerHandler {
	return &ServerHandler{serverService: serverService}
}

// List 分页获取服务器列表，支持搜索。
func (h *ServerHandler) List(c *gin.Context) {
	page, size, search := pageParams(c)

	result, err := h.serverService.List(page, size, search)
	if err != nil {
		writeServiceError(c, err, "获取服务器列表")
		return
	}
	ok(c, result)
}

// Get 获取一条服务器记录。
func (h *ServerHandler) Get(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	server, err := h.serverService.Get(id)
	if err != nil {
		writeServiceError(c, err, "获取服务器")
		return
	}
	ok(c, server)
}

// CreateServerRequest 定义了创建服务器 API 的请求体结构。
type CreateServerRequest struct {
	Hostname    string `json:"hostname" binding:"required"`
	IPAddress   string `json:"ipAddress"`
	OS          string `json:"os"`
	Environment string `json:"environment"`
	Location    string `json:"location"`
	Owner       string `json:"owner"`
	Status      string `json:"status"`
	Remarks     string `json:"remarks"`
}

// Create 新增一条服务器记录。
func (h *ServerHandler) Create(c *gin.Context) {
	var req CreateServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateServer: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载：hostname 不能为空")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	server := &model.Server{
		Hostname:    req.Hostname,
		IPAddress:   req.IPAddress,
		OS:          req.OS,
		Environment: req.Environment,
		Location:    req.Location,
		Owner:       req.Owner,
		Status:      req.Status,
		Remarks:     req.Remarks,
	}
	created, err := h.serverService.Create(server, user.Username)
	if err != nil {
		writeServiceError(c, err, "创建服务器")
		return
	}
	ok(c, created)
}

// Update 部分更新一条服务器记录。
func (h *ServerHandler) Update(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req service.ServerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	updated, err := h.serverService.Update(id, req, user.Username)
	if err != nil {
		writeServiceError(c, err, "更新服务器")
		return
	}
	ok(c, updated)
}

// Delete 删除一条服务器记录。
func (h *ServerHandler) Delete(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	if err := h.serverService.Delete(id, user.Username); err != nil {
		writeServiceError(c, err, "删除服务器")
		return
	}
	ok(c, nil)
}

// Import 从上传的 xlsx 导入服务器记录。
func (h *ServerHandler) Import(c *gin.Context) {
	fileName, content, okFile := readImportFile(c)
	if !okFile {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	summary, err := h.serverService.Import(c.Request.Context(), fileName, content, user.Username)
	if err != nil {
		badRequest(c, "无法解析上传的表格文件: "+err.Error())
		return
	}
	ok(c, summary)
}

// Export 导出全部服务器记录为 xlsx。
func (h *ServerHandler) Export(c *gin.Context) {
	data, fileName, err := h.serverService.Export()
	if err != nil {
		writeServiceError(c, err, "导出服务器清单")
		return
	}
	writeWorkbook(c, data, fileName, excel.ContentType)
}

// Template 下载服务器导入模板。
func (h *ServerHandler) Template(c *gin.Context) {
	data, err := h.serverService.Template()
	if err != nil {
		writeServiceError(c, err, "生成导入模板")
		return
	}
	writeWorkbook(c, data, "servers-template.xlsx", excel.ContentType)
}
