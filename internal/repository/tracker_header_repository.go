package repository

import (
	"asset-track-go/internal/model"

	"gorm.io/gorm"
)

// TrackerHeaderRepository 接口定义了 tracker 动态列定义的数据操作方法。
type TrackerHeaderRepository interface {
	FindByTrackerID(trackerID uint) ([]model.TrackerHeader, error)
	FindEnabledByTrackerID(trackerID uint) ([]model.TrackerHeader, error)
	ReplaceForTracker(trackerID uint, headers []model.TrackerHeader) ([]model.TrackerHeader, error)
}

type trackerHeaderRepository struct {
	db *gorm.DB
}

// NewTrackerHeaderRepository 创建一个新的 TrackerHeaderRepository 实例。
func NewTrackerHeaderRepository(db *gorm.DB) TrackerHeaderRepository {
	return &trackerHeaderRepository{db: db}
}

// FindByTrackerID 检索指定 tracker 的全部列定义（含禁用的）。
// 契约上不保证顺序，调用方按 order 字段排序。
func (r *trackerHeaderRepository) FindByTrackerID(trackerID uint) ([]model.TrackerHeader, error) {
	var headers []model.TrackerHeader
	err := r.db.Where("tracker_id = ?", trackerID).Find(&headers).Error
	return headers, err
}

// FindEnabledByTrackerID 检索启用的列定义并按 sort_order 排序，用于导出。
func (r *trackerHeaderRepository) FindEnabledByTrackerID(trackerID uint) ([]model.TrackerHeader, error) {
	var headers []model.TrackerHeader
	err := r.db.Where("tracker_id = ? AND enabled = ?", trackerID, true).
		Order("sort_order").Find(&headers).Error
	return headers, err
}

// ReplaceForTracker 在一个事务内整组替换 tracker 的列定义：
// 带 ID 的条目更新，不带 ID 的插入，本次未提交的已有条目删除。
// key 不做唯一性约束，重复的 key 原样保留。
// 带 ID 的条目必须已属于该 tracker，否则一个请求就能把别的
// tracker 的列改挂到自己名下；不属于时返回 gorm.ErrRecordNotFound。
func (r *trackerHeaderRepository) ReplaceForTracker(trackerID uint, headers []model.TrackerHeader) ([]model.TrackerHeader, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existingIDs []uint
		if err := tx.Model(&model.TrackerHeader{}).Where("tracker_id = ?", trackerID).Pluck("id", &existingIDs).Error; err != nil {
			return err
		}
		owned := make(map[uint]bool, len(existingIDs))
		for _, id := range existingIDs {
			owned[id] = true
		}

		keepIDs := make([]uint, 0, len(headers))

		for i := range headers {
			headers[i].TrackerID = trackerID
			if headers[i].ID != 0 {
				if !owned[headers[i].ID] {
					return gorm.ErrRecordNotFound
				}
				if err := tx.Save(&headers[i]).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(&headers[i]).Error; err != nil {
					return err
				}
			}
			keepIDs = append(keepIDs, headers[i].ID)
		}

		del := tx.Where("tracker_id = ?", trackerID)
		if len(keepIDs) > 0 {
			del = del.Where("id NOT IN ?", keepIDs)
		}
		return del.Delete(&model.TrackerHeader{}).Error
	})
	if err != nil {
		return nil, err
	}
	return headers, nil
}
