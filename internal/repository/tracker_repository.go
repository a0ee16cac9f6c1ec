package repository

import (
	"asset-track-go/internal/model"

	"gorm.io/gorm"
)

// TrackerRepository 接口定义了 tracker 层级结构的数据操作方法。
type TrackerRepository interface {
	Create(tracker *model.Tracker) error
	FindByID(id uint) (*model.Tracker, error)
	FindByIDWithItems(id uint) (*model.Tracker, error)
	FindChildren(parentID uint) ([]model.Tracker, error)
	Update(tracker *model.Tracker) error
	Delete(id uint) error
	FindRootsWithPagination(offset, limit int, search string) ([]model.Tracker, int64, error)
}

type trackerRepository struct {
	db *gorm.DB
}

// NewTrackerRepository 创建一个新的 TrackerRepository 实例。
func NewTrackerRepository(db *gorm.DB) TrackerRepository {
	return &trackerRepository{db: db}
}

// Create 在数据库中插入一个新的 tracker 记录（根或条目）。
func (r *trackerRepository) Create(tracker *model.Tracker) error {
	return r.db.Create(tracker).Error
}

// FindByID 根据 ID 查找一个 tracker。
func (r *trackerRepository) FindByID(id uint) (*model.Tracker, error) {
	var tracker model.Tracker
	err := r.db.First(&tracker, id).Error
	if err != nil {
		return nil, err
	}
	return &tracker, nil
}

// FindByIDWithItems 根据 ID 查找一个 tracker 并预加载其子条目。
func (r *trackerRepository) FindByIDWithItems(id uint) (*model.Tracker, error) {
	var tracker model.Tracker
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("name")
	}).First(&tracker, id).Error
	if err != nil {
		return nil, err
	}
	return &tracker, nil
}

// FindChildren 检索指定父节点下的所有条目。
func (r *trackerRepository) FindChildren(parentID uint) ([]model.Tracker, error) {
	var items []model.Tracker
	err := r.db.Where("parent_id = ?", parentID).Order("name").Find(&items).Error
	return items, err
}

// Update 更新一个已存在的 tracker 记录。
func (r *trackerRepository) Update(tracker *model.Tracker) error {
	return r.db.Save(tracker).Error
}

// Delete 删除一个 tracker。若为根节点，则在同一事务中一并删除
// 其所有子条目以及整棵子树的 header 与 row 记录。
// 数据库层面同样声明了级联约束，这里的显式删除保证在未启用外键
// 强制的存储上行为一致。
func (r *trackerRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var childIDs []uint
		if err := tx.Model(&model.Tracker{}).Where("parent_id = ?", id).Pluck("id", &childIDs).Error; err != nil {
			return err
		}

		ids := append(childIDs, id)
		if err := tx.Where("tracker_id IN ?", ids).Delete(&model.TrackerRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tracker_id IN ?", ids).Delete(&model.TrackerHeader{}).Error; err != nil {
			return err
		}
		if len(childIDs) > 0 {
			if err := tx.Delete(&model.Tracker{}, childIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Tracker{}, id).Error
	})
}

// FindRootsWithPagination 分页检索根节点（parent_id 为 NULL），
// 可按名称或描述做大小写不敏感的模糊过滤，按名称排序并预加载子条目。
func (r *trackerRepository) FindRootsWithPagination(offset, limit int, search string) ([]model.Tracker, int64, error) {
	var trackers []model.Tracker
	var total int64

	db := r.db.Model(&model.Tracker{}).Where("parent_id IS NULL")
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("name")
	}).Order("name").Offset(offset).Limit(limit).Find(&trackers).Error
	if err != nil {
		return nil, 0, err
	}

	return trackers, total, nil
}
