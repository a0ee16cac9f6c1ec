// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"asset-track-go/internal/model"
	"asset-track-go/internal/service"
	"asset-track-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ok 以统一的响应结构返回成功结果。
func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": data})
}

// badRequest 返回带可读信息的参数错误。
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": message, "data": nil})
}

// writeServiceError 将业务错误映射为 HTTP 状态码。
// 校验类、未找到类错误原样透出给调用方；
// 其余视为内部错误，记录详情后只返回笼统信息。
func writeServiceError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": err.Error(), "data": nil})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": err.Error(), "data": nil})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"code": http.StatusConflict, "message": err.Error(), "data": nil})
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidTheme),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrHeaderNotFound),
		errors.Is(err, service.ErrSelfDelete):
		badRequest(c, err.Error())
	default:
		log.Errorf("%s 失败: %v", operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": operation + "失败", "data": nil})
	}
}

// currentUser 取出 AuthMiddleware 注入的当前用户。
func currentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "无法获取用户信息", "data": nil})
		return nil, false
	}
	user, okType := value.(*model.User)
	if !okType {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "用户数据类型错误", "data": nil})
		return nil, false
	}
	return user, true
}

// parseIDParam 解析路径中的数字 ID 参数。
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		badRequest(c, "无效的 "+name+" 参数")
		return 0, false
	}
	return uint(id), true
}

// pageParams 解析分页与搜索查询参数。
func pageParams(c *gin.Context) (page, size int, search string) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))
	search = c.Query("search")
	return page, size, search
}

// readImportFile 读取 multipart 表单中名为 file 的上传文件内容。
func readImportFile(c *gin.Context) (fileName string, content []byte, okRead bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "缺少上传文件（表单字段 file）")
		return "", nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "无法打开上传文件")
		return "", nil, false
	}
	defer f.Close()

	content, err = io.ReadAll(f)
	if err != nil {
		badRequest(c, "读取上传文件失败")
		return "", nil, false
	}
	return fileHeader.Filename, content, true
}

// writeWorkbook 以 xlsx 附件的形式写出导出结果。
func writeWorkbook(c *gin.Context, data []byte, fileName, contentType string) {
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, contentType, data)
}
