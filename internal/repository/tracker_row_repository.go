package repository

import (
	"asset-track-go/internal/model"

	"gorm.io/gorm"
)

// TrackerRowRepository 接口定义了 tracker 动态行数据的操作方法。
type TrackerRowRepository interface {
	Create(row *model.TrackerRow) error
	FindByID(trackerID, rowID uint) (*model.TrackerRow, error)
	FindAllByTrackerID(trackerID uint) ([]model.TrackerRow, error)
	Update(row *model.TrackerRow) error
	Delete(trackerID, rowID uint) error
	FindWithPagination(trackerID uint, offset, limit int, search string) ([]model.TrackerRow, int64, error)
}

type trackerRowRepository struct {
	db *gorm.DB
}

// NewTrackerRowRepository 创建一个新的 TrackerRowRepository 实例。
func NewTrackerRowRepository(db *gorm.DB) TrackerRowRepository {
	return &trackerRowRepository{db: db}
}

// Create 在数据库中插入一条新的行记录。
func (r *trackerRowRepository) Create(row *model.TrackerRow) error {
	return r.db.Create(row).Error
}

// FindByID 在指定 tracker 范围内根据行 ID 查找一条记录。
func (r *trackerRowRepository) FindByID(trackerID, rowID uint) (*model.TrackerRow, error) {
	var row model.TrackerRow
	err := r.db.Where("tracker_id = ?", trackerID).First(&row, rowID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindAllByTrackerID 检索指定 tracker 的全部行记录，用于导出。
func (r *trackerRowRepository) FindAllByTrackerID(trackerID uint) ([]model.TrackerRow, error) {
	var rows []model.TrackerRow
	err := r.db.Where("tracker_id = ?", trackerID).Order("id").Find(&rows).Error
	return rows, err
}

// Update 更新一条已存在的行记录。
func (r *trackerRowRepository) Update(row *model.TrackerRow) error {
	return r.db.Save(row).Error
}

// Delete 在指定 tracker 范围内删除一条行记录。
func (r *trackerRowRepository) Delete(trackerID, rowID uint) error {
	return r.db.Where("tracker_id = ?", trackerID).Delete(&model.TrackerRow{}, rowID).Error
}

// FindWithPagination 分页检索指定 tracker 的行记录。
// 搜索按 data 的 JSON 文本做子串匹配，与其余列表接口的搜索语义一致。
func (r *trackerRowRepository) FindWithPagination(trackerID uint, offset, limit int, search string) ([]model.TrackerRow, int64, error) {
	var rows []model.TrackerRow
	var total int64

	db := r.db.Model(&model.TrackerRow{}).Where("tracker_id = ?", trackerID)
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("LOWER(CAST(data AS CHAR)) LIKE LOWER(?)", pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("id").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
