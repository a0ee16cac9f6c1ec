package repository

import (
	"asset-track-go/internal/model"

	"gorm.io/gorm"
)

// ActivityLogRepository 接口定义了操作审计记录的数据操作方法。
type ActivityLogRepository interface {
	Create(entry *model.ActivityLog) error
	FindWithPagination(offset, limit int, search, username string) ([]model.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository 创建一个新的 ActivityLogRepository 实例。
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

// Create 追加一条审计记录。
func (r *activityLogRepository) Create(entry *model.ActivityLog) error {
	return r.db.Create(entry).Error
}

// FindWithPagination 分页检索审计记录，最新的在前。
// search 匹配操作标签与描述，username 精确过滤操作者。
func (r *activityLogRepository) FindWithPagination(offset, limit int, search, username string) ([]model.ActivityLog, int64, error) {
	var entries []model.ActivityLog
	var total int64

	db := r.db.Model(&model.ActivityLog{})
	if username != "" {
		db = db.Where("username = ?", username)
	}
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("LOWER(action) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("id DESC").Offset(offset).Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
