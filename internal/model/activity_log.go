package model

import "time"

// ActivityLog 对应于数据库中的 'activity_logs' 表，记录用户的操作轨迹。
// 旧版 schema 中的实体类型/实体 ID/IP 字段已随迁移移除。
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Username 是操作者的用户名。
	Username string `gorm:"type:varchar(100);index;not null" json:"username"`
	// Action 是简短的操作标签，如 TRACKER_CREATE。
	Action string `gorm:"type:varchar(100);not null" json:"action"`
	// Description 是该操作的可读描述。
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ActivityLog) TableName() string {
	return "activity_logs"
}
