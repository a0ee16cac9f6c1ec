package handler

import (
	"asset-track-go/internal/model"
	"asset-track-go/internal/service"
	"asset-track-go/pkg/excel"
	"asset-track-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// TrackerHandler 负责处理 tracker 层级、列定义与行数据相关的 API 请求。
type TrackerHandler struct {
	trackerService service.TrackerService
}

// NewTrackerHandler 创建一个新的 TrackerHandler 实例。
func NewTrackerHandler(trackerService service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// List 分页获取根 tracker（分类）列表，子条目随根一并返回。
func (h *TrackerHandler) List(c *gin.Context) {
	page, size, search := pageParams(c)

	result, err := h.trackerService.List(page, size, search)
	if err != nil {
		writeServiceError(c, err, "获取 tracker 列表")
		return
	}
	ok(c, result)
}

// Get 获取一个 tracker（根或条目）。
func (h *TrackerHandler) Get(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	tracker, err := h.trackerService.Get(id)
	if err != nil {
		writeServiceError(c, err, "获取 tracker")
		return
	}
	ok(c, tracker)
}

// ListChildren 获取指定根节点下的所有条目。
func (h *TrackerHandler) ListChildren(c *gin.Context) {
	parentID, okID := parseIDParam(c, "parentId")
	if !okID {
		return
	}

	items, err := h.trackerService.ListChildren(parentID)
	if err != nil {
		writeServiceError(c, err, "获取 tracker 条目列表")
		return
	}
	ok(c, items)
}

// Create 创建一个 tracker，parentId 省略时为根节点。
func (h *TrackerHandler) Create(c *gin.Context) {
	var req service.TrackerCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateTracker: Invalid request payload, error: %v", err)
		badRequest(c, "无效的请求负载：name 不能为空")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	tracker, err := h.trackerService.Create(req, user.Username)
	if err != nil {
		writeServiceError(c, err, "创建 tracker")
		return
	}
	ok(c, tracker)
}

// Update 部分更新一个 tracker。
func (h *TrackerHandler) Update(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req service.TrackerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	tracker, err := h.trackerService.Update(id, req, user.Username)
	if err != nil {
		writeServiceError(c, err, "更新 tracker")
		return
	}
	ok(c, tracker)
}

// Delete 删除一个 tracker，根节点级联删除其子条目与全部列定义、行数据。
func (h *TrackerHandler) Delete(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	if err := h.trackerService.Delete(id, user.Username); err != nil {
		writeServiceError(c, err, "删除 tracker")
		return
	}
	ok(c, nil)
}

// ListHeaders 获取指定 tracker 的全部列定义（含禁用的）。
func (h *TrackerHandler) ListHeaders(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	headers, err := h.trackerService.ListHeaders(id)
	if err != nil {
		writeServiceError(c, err, "获取列定义")
		return
	}
	ok(c, headers)
}

// UpsertHeadersRequest 定义了整组替换列定义 API 的请求体结构。
type UpsertHeadersRequest struct {
	Headers []service.HeaderInput `json:"headers" binding:"required"`
}

// UpsertHeaders 在一次调用中整组替换 tracker 的列定义。
func (h *TrackerHandler) UpsertHeaders(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req UpsertHeadersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载：每个列定义必须包含 key 和 label")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	headers, err := h.trackerService.UpsertHeaders(id, req.Headers, user.Username)
	if err != nil {
		writeServiceError(c, err, "更新列定义")
		return
	}
	ok(c, headers)
}

// ListRows 分页获取指定 tracker 的行数据。
func (h *TrackerHandler) ListRows(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}
	page, size, search := pageParams(c)

	result, err := h.trackerService.ListRows(id, page, size, search)
	if err != nil {
		writeServiceError(c, err, "获取行数据")
		return
	}
	ok(c, result)
}

// CreateRowRequest 定义了新增行 API 的请求体结构。
type CreateRowRequest struct {
	Data model.JSONMap `json:"data"`
}

// CreateRow 新增一条行记录，data 原样存储。
func (h *TrackerHandler) CreateRow(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req CreateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载：data 必须是合法的 JSON 对象")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	row, err := h.trackerService.CreateRow(id, req.Data, user.Username)
	if err != nil {
		writeServiceError(c, err, "新增行")
		return
	}
	ok(c, row)
}

// UpdateRow 用给定的 data 替换一条行记录。
func (h *TrackerHandler) UpdateRow(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}
	rowID, okRow := parseIDParam(c, "rowId")
	if !okRow {
		return
	}

	var req CreateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载：data 必须是合法的 JSON 对象")
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	row, err := h.trackerService.UpdateRow(id, rowID, req.Data, user.Username)
	if err != nil {
		writeServiceError(c, err, "更新行")
		return
	}
	ok(c, row)
}

// DeleteRow 删除一条行记录。
func (h *TrackerHandler) DeleteRow(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}
	rowID, okRow := parseIDParam(c, "rowId")
	if !okRow {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	if err := h.trackerService.DeleteRow(id, rowID, user.Username); err != nil {
		writeServiceError(c, err, "删除行")
		return
	}
	ok(c, nil)
}

// Import 从上传的 xlsx 导入行数据。
func (h *TrackerHandler) Import(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	fileName, content, okFile := readImportFile(c)
	if !okFile {
		return
	}

	user, okUser := currentUser(c)
	if !okUser {
		return
	}

	summary, err := h.trackerService.ImportRows(c.Request.Context(), id, fileName, content, user.Username)
	if err != nil {
		writeServiceError(c, err, "导入行数据")
		return
	}
	ok(c, summary)
}

// Export 导出 tracker 的行数据为 xlsx。
func (h *TrackerHandler) Export(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	data, fileName, err := h.trackerService.ExportRows(id)
	if err != nil {
		writeServiceError(c, err, "导出行数据")
		return
	}
	writeWorkbook(c, data, fileName, excel.ContentType)
}

// Template 下载行数据导入模板。
func (h *TrackerHandler) Template(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	data, err := h.trackerService.Template(id)
	if err != nil {
		writeServiceError(c, err, "生成导入模板")
		return
	}
	writeWorkbook(c, data, "tracker-rows-template.xlsx", excel.ContentType)
}
