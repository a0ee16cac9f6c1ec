package service

import (
	"context"
	"errors"
	"time"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/database"
	"asset-track-go/pkg/hash"
	"asset-track-go/pkg/token"

	"gorm.io/gorm"
)

// UserService 接口定义了认证与当前用户相关的业务操作。
type UserService interface {
	Login(username, password string) (accessToken, refreshToken string, err error)
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	Logout(tokenString string) error
	IsTokenRevoked(tokenString string) bool
	GetProfile(username string) (*model.User, error)
	SetTheme(username, theme string) (*model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo   repository.UserRepository
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Login 处理用户登录的业务逻辑。
func (s *userService) Login(username, password string) (accessToken, refreshToken string, err error) {
	// 1. 查找用户
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	// 2. 验证密码
	if !hash.CheckPasswordHash(password, user.Password) {
		return "", "", ErrInvalidCredentials
	}

	// 3. 生成 access token 和 refresh token
	accessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// RefreshToken 验证 refresh token 并签发新的 access token 和 refresh token。
func (s *userService) RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error) {
	// 1. 验证 refresh token 是否有效，access token 不能用来换发新 token 对
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if claims.TokenType != token.TypeRefresh {
		return "", "", ErrInvalidCredentials
	}

	// 2. 检查用户是否仍然存在（可能已被管理员删除）
	user, err := s.userRepo.FindByUsername(claims.Username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	// 3. 签发新的 token，角色以数据库当前值为准
	newAccessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}

// Logout 处理用户登出逻辑，将 token 加入 Redis 黑名单。
// token 的剩余有效期将作为黑名单条目的过期时间。
func (s *userService) Logout(tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return err
	}
	if database.RDB == nil {
		return nil
	}
	expiration := time.Until(claims.ExpiresAt.Time)
	return database.RDB.Set(context.Background(), "blacklist:"+tokenString, "true", expiration).Err()
}

// IsTokenRevoked 检查 token 是否在黑名单中。未配置 Redis 时视为未吊销。
func (s *userService) IsTokenRevoked(tokenString string) bool {
	if database.RDB == nil {
		return false
	}
	n, err := database.RDB.Exists(context.Background(), "blacklist:"+tokenString).Result()
	if err != nil {
		// Redis 异常时放行，认证仍由 JWT 本身的有效期保证
		return false
	}
	return n > 0
}

// GetProfile 根据用户名获取用户详细信息。
func (s *userService) GetProfile(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetTheme 更新当前用户的界面主题偏好。
func (s *userService) SetTheme(username, theme string) (*model.User, error) {
	if theme != model.ThemeLight && theme != model.ThemeDark {
		return nil, ErrInvalidTheme
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.Theme = theme
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
