package model

import "time"

// Server 对应于数据库中的 'servers' 表，是服务器资产清单中的一条记录。
type Server struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Hostname  string    `gorm:"type:varchar(255);not null" json:"hostname"`
	IPAddress string    `gorm:"type:varchar(64)" json:"ipAddress"`
	OS        string    `gorm:"type:varchar(100)" json:"os"`
	// Environment 如 prod / staging / dev。
	Environment string    `gorm:"type:varchar(100)" json:"environment"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	Owner       string    `gorm:"type:varchar(255)" json:"owner"`
	Status      string    `gorm:"type:varchar(100)" json:"status"`
	Remarks     string    `gorm:"type:text" json:"remarks"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Server) TableName() string {
	return "servers"
}
