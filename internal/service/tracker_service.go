package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/excel"

	"gorm.io/gorm"
)

// TrackerCreate 描述创建一个 tracker（根或条目）所需的字段。
type TrackerCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parentId"`
	TrackerLink string `json:"trackerLink"`
	Ownership   string `json:"ownership"`
	Reviewer    string `json:"reviewer"`
	Frequency   string `json:"frequency"`
	Status      string `json:"status"`
	Remarks     string `json:"remarks"`
	Timelines   string `json:"timelines"`
}

// TrackerUpdate 描述对一个 tracker 的部分更新，nil 字段保持不变。
// ParentID 的重新指向是 schema 允许的，提供时同样生效。
type TrackerUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parentId"`
	TrackerLink *string `json:"trackerLink"`
	Ownership   *string `json:"ownership"`
	Reviewer    *string `json:"reviewer"`
	Frequency   *string `json:"frequency"`
	Status      *string `json:"status"`
	Remarks     *string `json:"remarks"`
	Timelines   *string `json:"timelines"`
}

// HeaderInput 是整组替换列定义时的单条输入。
// 带 ID 表示更新已有列，不带 ID 表示新增。
type HeaderInput struct {
	ID      uint   `json:"id"`
	Key     string `json:"key" binding:"required"`
	Label   string `json:"label" binding:"required"`
	Enabled *bool  `json:"enabled"`
	Order   *int   `json:"order"`
}

// TrackerService 接口定义了 tracker 层级、列定义与行数据的业务操作。
type TrackerService interface {
	List(page, size int, search string) (*PageResult, error)
	Get(id uint) (*model.Tracker, error)
	ListChildren(parentID uint) ([]model.Tracker, error)
	Create(req TrackerCreate, actor string) (*model.Tracker, error)
	Update(id uint, req TrackerUpdate, actor string) (*model.Tracker, error)
	Delete(id uint, actor string) error

	ListHeaders(trackerID uint) ([]model.TrackerHeader, error)
	UpsertHeaders(trackerID uint, inputs []HeaderInput, actor string) ([]model.TrackerHeader, error)

	ListRows(trackerID uint, page, size int, search string) (*PageResult, error)
	CreateRow(trackerID uint, data model.JSONMap, actor string) (*model.TrackerRow, error)
	UpdateRow(trackerID, rowID uint, data model.JSONMap, actor string) (*model.TrackerRow, error)
	DeleteRow(trackerID, rowID uint, actor string) error

	ImportRows(ctx context.Context, trackerID uint, fileName string, content []byte, actor string) (*ImportSummary, error)
	ExportRows(trackerID uint) (data []byte, fileName string, err error)
	Template(trackerID uint) ([]byte, error)
}

type trackerService struct {
	trackerRepo repository.TrackerRepository
	headerRepo  repository.TrackerHeaderRepository
	rowRepo     repository.TrackerRowRepository
	activity    ActivityService
}

// NewTrackerService 创建一个新的 TrackerService 实例。
func NewTrackerService(
	trackerRepo repository.TrackerRepository,
	headerRepo repository.TrackerHeaderRepository,
	rowRepo repository.TrackerRowRepository,
	activity ActivityService,
) TrackerService {
	return &trackerService{
		trackerRepo: trackerRepo,
		headerRepo:  headerRepo,
		rowRepo:     rowRepo,
		activity:    activity,
	}
}

// List 分页检索根 tracker（分类），子条目随根一并返回。
func (s *trackerService) List(page, size int, search string) (*PageResult, error) {
	page, size, offset := NormalizePage(page, size)

	trackers, total, err := s.trackerRepo.FindRootsWithPagination(offset, size, search)
	if err != nil {
		return nil, err
	}
	return NewPageResult(trackers, total, page, size), nil
}

// Get 根据 ID 获取一个 tracker（根或条目），根节点带子条目。
func (s *trackerService) Get(id uint) (*model.Tracker, error) {
	tracker, err := s.trackerRepo.FindByIDWithItems(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tracker, nil
}

// ListChildren 检索指定根节点下的所有条目。
func (s *trackerService) ListChildren(parentID uint) ([]model.Tracker, error) {
	if _, err := s.trackerRepo.FindByID(parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.trackerRepo.FindChildren(parentID)
}

// Create 创建一个 tracker。parentId 省略时为根节点，提供时必须指向
// 已存在的 tracker；层级深度不在模型层限制。
func (s *trackerService) Create(req TrackerCreate, actor string) (*model.Tracker, error) {
	if req.ParentID != nil {
		if _, err := s.trackerRepo.FindByID(*req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	tracker := &model.Tracker{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		TrackerLink: req.TrackerLink,
		Ownership:   req.Ownership,
		Reviewer:    req.Reviewer,
		Frequency:   req.Frequency,
		Status:      req.Status,
		Remarks:     req.Remarks,
		Timelines:   req.Timelines,
	}
	if err := s.trackerRepo.Create(tracker); err != nil {
		return nil, err
	}

	kind := "tracker 分类"
	if tracker.ParentID != nil {
		kind = "tracker 条目"
	}
	s.activity.Record(actor, "TRACKER_CREATE", fmt.Sprintf("创建%s '%s'", kind, tracker.Name))
	return tracker, nil
}

// Update 部分更新一个 tracker 的描述性字段。
func (s *trackerService) Update(id uint, req TrackerUpdate, actor string) (*model.Tracker, error) {
	tracker, err := s.trackerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.trackerRepo.FindByID(*req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		tracker.ParentID = req.ParentID
	}
	if req.Name != nil {
		tracker.Name = *req.Name
	}
	if req.Description != nil {
		tracker.Description = *req.Description
	}
	if req.TrackerLink != nil {
		tracker.TrackerLink = *req.TrackerLink
	}
	if req.Ownership != nil {
		tracker.Ownership = *req.Ownership
	}
	if req.Reviewer != nil {
		tracker.Reviewer = *req.Reviewer
	}
	if req.Frequency != nil {
		tracker.Frequency = *req.Frequency
	}
	if req.Status != nil {
		tracker.Status = *req.Status
	}
	if req.Remarks != nil {
		tracker.Remarks = *req.Remarks
	}
	if req.Timelines != nil {
		tracker.Timelines = *req.Timelines
	}

	if err := s.trackerRepo.Update(tracker); err != nil {
		return nil, err
	}

	s.activity.Record(actor, "TRACKER_UPDATE", fmt.Sprintf("更新 tracker '%s'", tracker.Name))
	return tracker, nil
}

// Delete 删除一个 tracker。根节点的删除会级联删除其全部子条目
// 以及整棵子树的列定义与行数据。
func (s *trackerService) Delete(id uint, actor string) error {
	tracker, err := s.trackerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.trackerRepo.Delete(id); err != nil {
		return err
	}

	s.activity.Record(actor, "TRACKER_DELETE", fmt.Sprintf("删除 tracker '%s'", tracker.Name))
	return nil
}

// ListHeaders 检索指定 tracker 的全部列定义（含禁用的）。
func (s *trackerService) ListHeaders(trackerID uint) ([]model.TrackerHeader, error) {
	if _, err := s.trackerRepo.FindByID(trackerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.headerRepo.FindByTrackerID(trackerID)
}

// UpsertHeaders 在一次调用中整组替换 tracker 的列定义。
// key 不做唯一性约束，重复的 key 会分别独立控制同一行字段的展示。
func (s *trackerService) UpsertHeaders(trackerID uint, inputs []HeaderInput, actor string) ([]model.TrackerHeader, error) {
	tracker, err := s.trackerRepo.FindByID(trackerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	headers := make([]model.TrackerHeader, 0, len(inputs))
	for _, in := range inputs {
		h := model.TrackerHeader{
			ID:      in.ID,
			Key:     in.Key,
			Label:   in.Label,
			Enabled: true,
			Order:   1,
		}
		if in.Enabled != nil {
			h.Enabled = *in.Enabled
		}
		if in.Order != nil {
			h.Order = *in.Order
		}
		headers = append(headers, h)
	}

	saved, err := s.headerRepo.ReplaceForTracker(trackerID, headers)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHeaderNotFound
		}
		return nil, err
	}

	s.activity.Record(actor, "TRACKER_HEADERS_UPDATE",
		fmt.Sprintf("更新 tracker '%s' 的列定义（共 %d 列）", tracker.Name, len(saved)))
	return saved, nil
}

// ListRows 分页检索指定 tracker 的行数据。
func (s *trackerService) ListRows(trackerID uint, page, size int, search string) (*PageResult, error) {
	if _, err := s.trackerRepo.FindByID(trackerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	page, size, offset := NormalizePage(page, size)
	rows, total, err := s.rowRepo.FindWithPagination(trackerID, offset, size, search)
	if err != nil {
		return nil, err
	}
	return NewPageResult(rows, total, page, size), nil
}

// CreateRow 插入一条行记录，data 原样存储，不按列定义做校验。
func (s *trackerService) CreateRow(trackerID uint, data model.JSONMap, actor string) (*model.TrackerRow, error) {
	tracker, err := s.trackerRepo.FindByID(trackerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if data == nil {
		data = model.JSONMap{}
	}
	row := &model.TrackerRow{
		TrackerID: trackerID,
		Data:      data,
	}
	if err := s.rowRepo.Create(row); err != nil {
		return nil, err
	}

	s.activity.Record(actor, "TRACKER_ROW_CREATE", fmt.Sprintf("在 tracker '%s' 中新增一行", tracker.Name))
	return row, nil
}

// UpdateRow 用给定的 data 替换一条行记录的内容。
// 并发编辑采用“后写覆盖”，不做冲突检测。
func (s *trackerService) UpdateRow(trackerID, rowID uint, data model.JSONMap, actor string) (*model.TrackerRow, error) {
	row, err := s.rowRepo.FindByID(trackerID, rowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if data == nil {
		data = model.JSONMap{}
	}
	row.Data = data
	if err := s.rowRepo.Update(row); err != nil {
		return nil, err
	}

	s.activity.Record(actor, "TRACKER_ROW_UPDATE", fmt.Sprintf("更新 tracker %d 的行 %d", trackerID, rowID))
	return row, nil
}

// DeleteRow 删除一条行记录。
func (s *trackerService) DeleteRow(trackerID, rowID uint, actor string) error {
	if _, err := s.rowRepo.FindByID(trackerID, rowID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.rowRepo.Delete(trackerID, rowID); err != nil {
		return err
	}

	s.activity.Record(actor, "TRACKER_ROW_DELETE", fmt.Sprintf("删除 tracker %d 的行 %d", trackerID, rowID))
	return nil
}

// ImportRows 同步解析上传的 xlsx，将每个数据行转换为以列 key 为键的
// JSON 对象后插入。表格列先按启用列的 Label 映射回 key，
// 未匹配任何列定义的表头按其文本原样作为键。
func (s *trackerService) ImportRows(ctx context.Context, trackerID uint, fileName string, content []byte, actor string) (*ImportSummary, error) {
	tracker, err := s.trackerRepo.FindByID(trackerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	enabled, err := s.headerRepo.FindEnabledByTrackerID(trackerID)
	if err != nil {
		return nil, err
	}
	labelToKey := make(map[string]string, len(enabled))
	for _, h := range enabled {
		labelToKey[h.Label] = h.Key
	}

	columns, rows, err := excel.ParseWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	// 列文本 -> 行数据键
	keys := make([]string, len(columns))
	for i, c := range columns {
		if key, ok := labelToKey[c]; ok {
			keys[i] = key
		} else {
			keys[i] = c
		}
	}

	summary := &ImportSummary{}
	for i, raw := range rows {
		data := model.JSONMap{}
		for c, key := range keys {
			if key == "" || c >= len(raw) || raw[c] == "" {
				continue
			}
			data[key] = raw[c]
		}

		row := &model.TrackerRow{TrackerID: trackerID, Data: data}
		if err := s.rowRepo.Create(row); err != nil {
			summary.addError(i, err.Error())
			continue
		}
		summary.Imported++
	}

	retainImportFile(ctx, fmt.Sprintf("trackers/%d", trackerID), fileName, content)
	s.activity.Record(actor, "TRACKER_ROW_IMPORT",
		fmt.Sprintf("导入 tracker '%s' 的行数据 '%s'：成功 %d 条，失败 %d 条", tracker.Name, fileName, summary.Imported, summary.Failed))
	return summary, nil
}

// ExportRows 将 tracker 的行数据导出为 xlsx。
// 列集合为启用的列定义，按 order 排序，列头使用 Label；
// 行中缺失的键导出为空单元格，禁用列与未定义的键不导出。
func (s *trackerService) ExportRows(trackerID uint) ([]byte, string, error) {
	tracker, err := s.trackerRepo.FindByID(trackerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	headers, err := s.headerRepo.FindEnabledByTrackerID(trackerID)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.rowRepo.FindAllByTrackerID(trackerID)
	if err != nil {
		return nil, "", err
	}

	labels := make([]string, 0, len(headers))
	for _, h := range headers {
		labels = append(labels, h.Label)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(headers))
		for i, h := range headers {
			line[i] = formatCellValue(row.Data[h.Key])
		}
		cells = append(cells, line)
	}

	data, err := excel.BuildWorkbook(labels, cells)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("tracker-%d-rows.xlsx", tracker.ID), nil
}

// Template 生成只含表头行的行数据导入模板。
func (s *trackerService) Template(trackerID uint) ([]byte, error) {
	if _, err := s.trackerRepo.FindByID(trackerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	headers, err := s.headerRepo.FindEnabledByTrackerID(trackerID)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(headers))
	for _, h := range headers {
		labels = append(labels, h.Label)
	}
	return excel.BuildWorkbook(labels, nil)
}

// formatCellValue 将行数据中的标量值转换为单元格文本。
// 缺失或 null 的键渲染为空串。
func formatCellValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		// JSON 反序列化的数字统一为 float64，整数值不带小数位输出
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
