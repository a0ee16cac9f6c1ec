package service

import (
	"errors"
	"fmt"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/hash"

	"gorm.io/gorm"
)

// UserDetailResponse 定义了用户列表项的详细结构。
type UserDetailResponse struct {
	UserID    uint            `json:"userId"`
	Username  string          `json:"username"`
	Role      string          `json:"role"`
	Theme     string          `json:"theme"`
	CreatedAt model.LocalTime `json:"createdAt"`
}

// UserUpdate 描述对一个用户账号的部分更新，nil 字段保持不变。
type UserUpdate struct {
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// AdminService 接口定义了用户账号管理相关的业务操作。
type AdminService interface {
	CreateUser(username, password, role, actor string) (*model.User, error)
	ListUsers(page, size int, search string) (*PageResult, error)
	UpdateUser(id uint, update UserUpdate, actor string) (*model.User, error)
	DeleteUser(id, actorID uint, actor string) error
	EnsureAdmin(username, password string) error
}

// adminService 是 AdminService 接口的实现。
type adminService struct {
	userRepo repository.UserRepository
	activity ActivityService
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(userRepo repository.UserRepository, activity ActivityService) AdminService {
	return &adminService{
		userRepo: userRepo,
		activity: activity,
	}
}

// CreateUser 创建一个新的用户账号。
func (s *adminService) CreateUser(username, password, role, actor string) (*model.User, error) {
	if role != model.RoleAdmin && role != model.RoleReadonly {
		return nil, ErrInvalidRole
	}

	// 检查用户名是否已存在
	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: hashedPassword,
		Role:     role,
		Theme:    model.ThemeLight,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.activity.Record(actor, "USER_CREATE", fmt.Sprintf("创建用户 '%s'（角色 %s）", username, role))
	return user, nil
}

// ListUsers 分页检索用户账号。
func (s *adminService) ListUsers(page, size int, search string) (*PageResult, error) {
	page, size, offset := NormalizePage(page, size)

	users, total, err := s.userRepo.FindWithPagination(offset, size, search)
	if err != nil {
		return nil, err
	}

	content := make([]UserDetailResponse, 0, len(users))
	for _, u := range users {
		content = append(content, UserDetailResponse{
			UserID:    u.ID,
			Username:  u.Username,
			Role:      u.Role,
			Theme:     u.Theme,
			CreatedAt: model.LocalTime(u.CreatedAt),
		})
	}

	return NewPageResult(content, total, page, size), nil
}

// UpdateUser 更新一个用户账号的角色或重置其密码。
func (s *adminService) UpdateUser(id uint, update UserUpdate, actor string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Role != nil {
		if *update.Role != model.RoleAdmin && *update.Role != model.RoleReadonly {
			return nil, ErrInvalidRole
		}
		user.Role = *update.Role
	}
	if update.Password != nil && *update.Password != "" {
		hashedPassword, err := hash.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.activity.Record(actor, "USER_UPDATE", fmt.Sprintf("更新用户 '%s'", user.Username))
	return user, nil
}

// DeleteUser 删除一个用户账号，不允许管理员删除自己。
func (s *adminService) DeleteUser(id, actorID uint, actor string) error {
	if id == actorID {
		return ErrSelfDelete
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		return err
	}

	s.activity.Record(actor, "USER_DELETE", fmt.Sprintf("删除用户 '%s'", user.Username))
	return nil
}

// EnsureAdmin 在系统中不存在管理员时创建种子管理员账号（幂等）。
func (s *adminService) EnsureAdmin(username, password string) error {
	count, err := s.userRepo.CountByRole(model.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username: username,
		Password: hashedPassword,
		Role:     model.RoleAdmin,
		Theme:    model.ThemeLight,
	}
	return s.userRepo.Create(admin)
}
