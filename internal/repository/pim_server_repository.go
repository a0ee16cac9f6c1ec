package repository

import (
	"asset-track-go/internal/model"

	"gorm.io/gorm"
)

// PimServerRepository 接口定义了特权访问服务器清单的数据操作方法。
type PimServerRepository interface {
	Create(server *model.PimServer) error
	FindByID(id uint) (*model.PimServer, error)
	FindAll() ([]model.PimServer, error)
	Update(server *model.PimServer) error
	Delete(id uint) error
	FindWithPagination(offset, limit int, search string) ([]model.PimServer, int64, error)
}

type pimServerRepository struct {
	db *gorm.DB
}

// NewPimServerRepository 创建一个新的 PimServerRepository 实例。
func NewPimServerRepository(db *gorm.DB) PimServerRepository {
	return &pimServerRepository{db: db}
}

// Create 插入一条新的 PIM 服务器记录。
func (r *pimServerRepository) Create(server *model.PimServer) error {
	return r.db.Create(server).Error
}

// FindByID 根据 ID 查找一条 PIM 服务器记录。
func (r *pimServerRepository) FindByID(id uint) (*model.PimServer, error) {
	var server model.PimServer
	err := r.db.First(&server, id).Error
	if err != nil {
		return nil, err
	}
	return &server, nil
}

// FindAll 检索所有 PIM 服务器记录，用于导出。
func (r *pimServerRepository) FindAll() ([]model.PimServer, error) {
	var servers []model.PimServer
	err := r.db.Order("server_name").Find(&servers).Error
	return servers, err
}

// Update 更新一条已存在的 PIM 服务器记录。
func (r *pimServerRepository) Update(server *model.PimServer) error {
	return r.db.Save(server).Error
}

// Delete 根据 ID 删除一条 PIM 服务器记录。
func (r *pimServerRepository) Delete(id uint) error {
	return r.db.Delete(&model.PimServer{}, id).Error
}

// FindWithPagination 分页检索 PIM 服务器记录，可按名称或 IP 模糊过滤。
func (r *pimServerRepository) FindWithPagination(offset, limit int, search string) ([]model.PimServer, int64, error) {
	var servers []model.PimServer
	var total int64

	db := r.db.Model(&model.PimServer{})
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("LOWER(server_name) LIKE LOWER(?) OR LOWER(ip_address) LIKE LOWER(?)", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("server_name").Offset(offset).Limit(limit).Find(&servers).Error
	if err != nil {
		return nil, 0, err
	}

	return servers, total, nil
}
