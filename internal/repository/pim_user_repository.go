package repository

import (
	"asset-track-go/internal/model"

	"gorm.io/gorm"
)

// PimUserRepository 接口定义了特权用户清单的数据操作方法。
type PimUserRepository interface {
	Create(user *model.PimUser) error
	FindByID(id uint) (*model.PimUser, error)
	FindAll() ([]model.PimUser, error)
	Update(user *model.PimUser) error
	Delete(id uint) error
	FindWithPagination(offset, limit int, search string) ([]model.PimUser, int64, error)
}

type pimUserRepository struct {
	db *gorm.DB
}

// NewPimUserRepository 创建一个新的 PimUserRepository 实例。
func NewPimUserRepository(db *gorm.DB) PimUserRepository {
	return &pimUserRepository{db: db}
}

// Create 插入一条新的 PIM 用户记录。
func (r *pimUserRepository) Create(user *model.PimUser) error {
	return r.db.Create(user).Error
}

// FindByID 根据 ID 查找一条 PIM 用户记录。
func (r *pimUserRepository) FindByID(id uint) (*model.PimUser, error) {
	var user model.PimUser
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll 检索所有 PIM 用户记录，用于导出。
func (r *pimUserRepository) FindAll() ([]model.PimUser, error) {
	var users []model.PimUser
	err := r.db.Order("username").Find(&users).Error
	return users, err
}

// Update 更新一条已存在的 PIM 用户记录。
func (r *pimUserRepository) Update(user *model.PimUser) error {
	return r.db.Save(user).Error
}

// Delete 根据 ID 删除一条 PIM 用户记录。
func (r *pimUserRepository) Delete(id uint) error {
	return r.db.Delete(&model.PimUser{}, id).Error
}

// FindWithPagination 分页检索 PIM 用户记录，可按用户名或部门模糊过滤。
func (r *pimUserRepository) FindWithPagination(offset, limit int, search string) ([]model.PimUser, int64, error) {
	var users []model.PimUser
	var total int64

	db := r.db.Model(&model.PimUser{})
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(department) LIKE LOWER(?)", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("username").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
