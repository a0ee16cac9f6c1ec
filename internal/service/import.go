package service

import (
	"context"
	"fmt"
	"time"

	"asset-track-go/pkg/excel"
	"asset-track-go/pkg/storage"
)

// ImportSummary 汇总一次表格导入的结果。
// 单行失败不会使整个请求失败，失败原因逐行收集在 Errors 中。
type ImportSummary struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

func (s *ImportSummary) addError(rowIndex int, reason string) {
	s.Failed++
	// rowIndex 从 0 开始计数据行，+2 换算为表格中的行号（含表头行）
	s.Errors = append(s.Errors, fmt.Sprintf("第 %d 行: %s", rowIndex+2, reason))
}

// retainImportFile 将导入的原始文件留存到对象存储（若已启用），
// 供事后审计追溯。留存失败不影响导入结果。
func retainImportFile(ctx context.Context, resource, fileName string, content []byte) {
	if !storage.Enabled() {
		return
	}
	objectName := fmt.Sprintf("imports/%s/%s-%s", resource, time.Now().Format("20060102T150405"), fileName)
	_ = storage.PutObject(ctx, objectName, content, excel.ContentType)
}
