package repository

import (
	"asset-track-go/internal/model"

	"gorm.io/gorm"
)

// ServerRepository 接口定义了服务器资产的数据操作方法。
type ServerRepository interface {
	Create(server *model.Server) error
	FindByID(id uint) (*model.Server, error)
	FindAll() ([]model.Server, error)
	Update(server *model.Server) error
	Delete(id uint) error
	FindWithPagination(offset, limit int, search string) ([]model.Server, int64, error)
}

type serverRepository struct {
	db *gorm.DB
}

// NewServerRepository 创建一个新的 ServerRepository 实例。
func NewServerRepository(db *gorm.DB) ServerRepository {
	return &serverRepository{db: db}
}

// Create 在数据库中插入一条新的服务器记录。
func (r *serverRepository) Create(server *model.Server) error {
	return r.db.Create(server).Error
}

// FindByID 根据 ID 查找一条服务器记录。
func (r *serverRepository) FindByID(id uint) (*model.Server, error) {
	var server model.Server
	err := r.db.First(&server, id).Error
	if err != nil {
		return nil, err
	}
	return &server, nil
}

// FindAll 检索所有服务器记录，按主机名排序，用于导出。
func (r *serverRepository) FindAll() ([]model.Server, error) {
	var servers []model.Server
	err := r.db.Order("hostname").Find(&servers).Error
	return servers, err
}

// Update 更新一条已存在的服务器记录。
func (r *serverRepository) Update(server *model.Server) error {
	return r.db.Save(server).Error
}

// Delete 根据 ID 删除一条服务器记录。
func (r *serverRepository) Delete(id uint) error {
	return r.db.Delete(&model.Server{}, id).Error
}

// FindWithPagination 分页检索服务器记录，可按主机名或 IP 模糊过滤。
func (r *serverRepository) FindWithPagination(offset, limit int, search string) ([]model.Server, int64, error) {
	var servers []model.Server
	var total int64

	db := r.db.Model(&model.Server{})
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("LOWER(hostname) LIKE LOWER(?) OR LOWER(ip_address) LIKE LOWER(?)", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("hostname").Offset(offset).Limit(limit).Find(&servers).Error
	if err != nil {
		return nil, 0, err
	}

	return servers, total, nil
}
