// Package service 包含了应用的业务逻辑层。
package service

// PageResult 是所有分页列表接口的统一响应结构。
type PageResult struct {
	Content       interface{} `json:"content"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
	Size          int         `json:"size"`
	Number        int         `json:"number"`
}

// NewPageResult 根据总数和页参数组装分页响应。
func NewPageResult(content interface{}, total int64, page, size int) *PageResult {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &PageResult{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}
}

// NormalizePage 纠正非法的分页参数并返回偏移量。页码从 1 开始。
func NormalizePage(page, size int) (normPage, normSize, offset int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return page, size, (page - 1) * size
}
