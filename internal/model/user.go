package model

import "time"

// 用户角色常量。admin 可以执行所有变更操作，readonly 仅能读取。
const (
	RoleAdmin    = "admin"
	RoleReadonly = "readonly"
)

// 界面主题常量。
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// User 对应于数据库中的 'users' 表。
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	// Password 存储 bcrypt 哈希，永远不序列化到响应中。
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	// Role 取值为 admin 或 readonly。
	Role string `gorm:"type:varchar(20);not null;default:readonly" json:"role"`
	// Theme 是用户的界面主题偏好。
	Theme     string    `gorm:"type:varchar(20);not null;default:light" json:"theme"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}
