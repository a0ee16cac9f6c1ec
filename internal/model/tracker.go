// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// Tracker 对应于数据库中的 'trackers' 表。
// 同一张表同时存放两级节点：ParentID 为 NULL 的是根（分类），
// 非 NULL 的是其下的条目。删除根时数据库级联删除所有条目。
type Tracker struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Name 是分类或条目的名称，两级节点均必填。
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	// Description 提供了更详细的描述。
	Description string `gorm:"type:text" json:"description"`
	// ParentID 指向父级的 ID。使用指针以接受 NULL 值，表示根节点。
	ParentID *uint `gorm:"index" json:"parentId"`
	// Parent 仅用于声明外键与级联删除，不参与序列化。
	Parent *Tracker `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	// Items 是该根节点下的条目，按需预加载。
	Items []Tracker `gorm:"foreignKey:ParentID" json:"items,omitempty"`

	// 以下为描述性字段，主要在条目上有意义；TrackerLink 约定只在根上使用。
	TrackerLink string `gorm:"type:varchar(512)" json:"trackerLink"`
	Ownership   string `gorm:"type:varchar(255)" json:"ownership"`
	Reviewer    string `gorm:"type:varchar(255)" json:"reviewer"`
	Frequency   string `gorm:"type:varchar(100)" json:"frequency"`
	Status      string `gorm:"type:varchar(100)" json:"status"`
	Remarks     string `gorm:"type:text" json:"remarks"`
	Timelines   string `gorm:"type:varchar(255)" json:"timelines"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Tracker) TableName() string {
	return "trackers"
}

// TrackerHeader 对应于数据库中的 'tracker_headers' 表，
// 定义某个 tracker 动态表格的一列。key 不做唯一性约束。
type TrackerHeader struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	TrackerID uint     `gorm:"index;not null" json:"trackerId"`
	Tracker   *Tracker `gorm:"foreignKey:TrackerID;constraint:OnDelete:CASCADE" json:"-"`
	// Key 是行数据中的字段名，Label 是展示给用户的列名。
	Key   string `gorm:"type:varchar(255);not null" json:"key"`
	Label string `gorm:"type:varchar(255);not null" json:"label"`
	// Enabled 控制列的可见性，关闭时保留定义但不展示、不导出。
	Enabled bool `gorm:"default:true" json:"enabled"`
	// Order 控制列的展示顺序，相同值的先后顺序不做保证。
	Order     int       `gorm:"column:sort_order;default:1" json:"order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (TrackerHeader) TableName() string {
	return "tracker_headers"
}

// TrackerRow 对应于数据库中的 'tracker_rows' 表，
// 是某个 tracker 动态表格中的一条自由格式记录。
type TrackerRow struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	TrackerID uint     `gorm:"index;not null" json:"trackerId"`
	Tracker   *Tracker `gorm:"foreignKey:TrackerID;constraint:OnDelete:CASCADE" json:"-"`
	// Data 以 JSON 对象存储，键对应 header 的 key；行中多余的键被忽略，
	// 缺失的键在展示层渲染为占位符。
	Data      JSONMap   `gorm:"type:json" json:"data"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (TrackerRow) TableName() string {
	return "tracker_rows"
}
