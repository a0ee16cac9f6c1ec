package model

import "time"

// PimServer 对应于数据库中的 'pim_servers' 表，
// 记录纳入特权访问审计范围的服务器。
type PimServer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ServerName     string    `gorm:"type:varchar(255);not null" json:"serverName"`
	IPAddress      string    `gorm:"type:varchar(64)" json:"ipAddress"`
	Platform       string    `gorm:"type:varchar(100)" json:"platform"`
	AccessLevel    string    `gorm:"type:varchar(100)" json:"accessLevel"`
	LastReviewedBy string    `gorm:"type:varchar(255)" json:"lastReviewedBy"`
	Status         string    `gorm:"type:varchar(100)" json:"status"`
	Remarks        string    `gorm:"type:text" json:"remarks"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (PimServer) TableName() string {
	return "pim_servers"
}

// PimUser 对应于数据库中的 'pim_users' 表，
// 记录持有特权访问权限的用户。
type PimUser struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"type:varchar(100);not null" json:"username"`
	DisplayName string    `gorm:"type:varchar(255)" json:"displayName"`
	Email       string    `gorm:"type:varchar(255)" json:"email"`
	Department  string    `gorm:"type:varchar(255)" json:"department"`
	AccessLevel string    `gorm:"type:varchar(100)" json:"accessLevel"`
	Status      string    `gorm:"type:varchar(100)" json:"status"`
	Remarks     string    `gorm:"type:text" json:"remarks"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (PimUser) TableName() string {
	return "pim_users"
}
