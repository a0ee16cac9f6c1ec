package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/excel"

	"gorm.io/gorm"
)

// PIM 清单导入导出的固定列。
var (
	pimServerColumns = []string{"Server Name", "IP Address", "Platform", "Access Level", "Last Reviewed By", "Status", "Remarks"}
	pimUserColumns   = []string{"Username", "Display Name", "Email", "Department", "Access Level", "Status", "Remarks"}
)

// PimServerUpdate 描述对一条 PIM 服务器记录的部分更新，nil 字段保持不变。
type PimServerUpdate struct {
	ServerName     *string `json:"serverName"`
	IPAddress      *string `json:"ipAddress"`
	Platform       *string `json:"platform"`
	AccessLevel    *string `json:"accessLevel"`
	LastReviewedBy *string `json:"lastReviewedBy"`
	Status         *string `json:"status"`
	Remarks        *string `json:"remarks"`
}

// PimUserUpdate 描述对一条 PIM 用户记录的部分更新，nil 字段保持不变。
type PimUserUpdate struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	Department  *string `json:"department"`
	AccessLevel *string `json:"accessLevel"`
	Status      *string `json:"status"`
	Remarks     *string `json:"remarks"`
}

// PimService 接口定义了特权访问（PIM）服务器与用户清单的业务操作。
type PimService interface {
	ListServers(page, size int, search string) (*PageResult, error)
	GetServer(id uint) (*model.PimServer, error)
	CreateServer(server *model.PimServer, actor string) (*model.PimServer, error)
	UpdateServer(id uint, update PimServerUpdate, actor string) (*model.PimServer, error)
	DeleteServer(id uint, actor string) error
	ImportServers(ctx context.Context, fileName string, content []byte, actor string) (*ImportSummary, error)
	ExportServers() (data []byte, fileName string, err error)
	ServerTemplate() ([]byte, error)

	ListUsers(page, size int, search string) (*PageResult, error)
	GetUser(id uint) (*model.PimUser, error)
	CreateUser(user *model.PimUser, actor string) (*model.PimUser, error)
	UpdateUser(id uint, update PimUserUpdate, actor string) (*model.PimUser, error)
	DeleteUser(id uint, actor string) error
	ImportUsers(ctx context.Context, fileName string, content []byte, actor string) (*ImportSummary, error)
	ExportUsers() (data []byte, fileName string, err error)
	UserTemplate() ([]byte, error)
}

type pimService struct {
	pimServerRepo repository.PimServerRepository
	pimUserRepo   repository.PimUserRepository
	activity      ActivityService
}

// NewPimService 创建一个新的 PimService 实例。
func NewPimService(pimServerRepo repository.PimServerRepository, pimUserRepo repository.PimUserRepository, activity ActivityService) PimService {
	return &pimService{
		pimServerRepo: pimServerRepo,
		pimUserRepo:   pimUserRepo,
		activity:      activity,
	}
}

// ListServers 分页检索 PIM 服务器记录。
func (s *pimService) ListServers(page, size int, search string) (*PageResult, error) {
	page, size, offset := NormalizePage(page, size)

	servers, total, err := s.pimServerRepo.FindWithPagination(offset, size, search)
	if err != nil {
		return nil, err
	}
	return NewPageResult(servers, total, page, size), nil
}

// GetServer 根据 ID 获取一条 PIM 服务器记录。
func (s *pimService) GetServer(id uint) (*model.PimServer, error) {
	server, err := s.pimServerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return server, nil
}

// CreateServer 创建一条 PIM 服务器记录。
func (s *pimService) CreateServer(server *model.PimServer, actor string) (*model.PimServer, error) {
	if err := s.pimServerRepo.Create(server); err != nil {
		return nil, err
	}
	s.activity.Record(actor, "PIM_SERVER_CREATE", fmt.Sprintf("创建 PIM 服务器 '%s'", server.ServerName))
	return server, nil
}

// UpdateServer 部分更新一条 PIM 服务器记录。
func (s *pimService) UpdateServer(id uint, update PimServerUpdate, actor string) (*model.PimServer, error) {
	server, err := s.pimServerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.ServerName != nil {
		server.ServerName = *update.ServerName
	}
	if update.IPAddress != nil {
		server.IPAddress = *update.IPAddress
	}
	if update.Platform != nil {
		server.Platform = *update.Platform
	}
	if update.AccessLevel != nil {
		server.AccessLevel = *update.AccessLevel
	}
	if update.LastReviewedBy != nil {
		server.LastReviewedBy = *update.LastReviewedBy
	}
	if update.Status != nil {
		server.Status = *update.Status
	}
	if update.Remarks != nil {
		server.Remarks = *update.Remarks
	}

	if err := s.pimServerRepo.Update(server); err != nil {
		return nil, err
	}

	s.activity.Record(actor, "PIM_SERVER_UPDATE", fmt.Sprintf("更新 PIM 服务器 '%s'", server.ServerName))
	return server, nil
}

// DeleteServer 删除一条 PIM 服务器记录。
func (s *pimService) DeleteServer(id uint, actor string) error {
	server, err := s.pimServerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.pimServerRepo.Delete(id); err != nil {
		return err
	}

	s.activity.Record(actor, "PIM_SERVER_DELETE", fmt.Sprintf("删除 PIM 服务器 '%s'", server.ServerName))
	return nil
}

// ImportServers 同步解析上传的 xlsx 并逐行插入 PIM 服务器记录。
func (s *pimService) ImportServers(ctx context.Context, fileName string, content []byte, actor string) (*ImportSummary, error) {
	headers, rows, err := excel.ParseWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i
	}
	cell := func(row []string, column string) string {
		if i, ok := colIndex[column]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	summary := &ImportSummary{}
	for i, row := range rows {
		name := cell(row, "Server Name")
		if name == "" {
			summary.addError(i, "缺少必填的 Server Name")
			continue
		}

		server := &model.PimServer{
			ServerName:     name,
			IPAddress:      cell(row, "IP Address"),
			Platform:       cell(row, "Platform"),
			AccessLevel:    cell(row, "Access Level"),
			LastReviewedBy: cell(row, "Last Reviewed By"),
			Status:         cell(row, "Status"),
			Remarks:        cell(row, "Remarks"),
		}
		if err := s.pimServerRepo.Create(server); err != nil {
			summary.addError(i, err.Error())
			continue
		}
		summary.Imported++
	}

	retainImportFile(ctx, "pim-servers", fileName, content)
	s.activity.Record(actor, "PIM_SERVER_IMPORT",
		fmt.Sprintf("导入 PIM 服务器清单 '%s'：成功 %d 条，失败 %d 条", fileName, summary.Imported, summary.Failed))
	return summary, nil
}

// ExportServers 将全部 PIM 服务器记录导出为 xlsx。
func (s *pimService) ExportServers() ([]byte, string, error) {
	servers, err := s.pimServerRepo.FindAll()
	if err != nil {
		return nil, "", err
	}

	rows := make([][]string, 0, len(servers))
	for _, sv := range servers {
		rows = append(rows, []string{
			sv.ServerName, sv.IPAddress, sv.Platform, sv.AccessLevel,
			sv.LastReviewedBy, sv.Status, sv.Remarks,
		})
	}

	data, err := excel.BuildWorkbook(pimServerColumns, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "pim-servers.xlsx", nil
}

// ServerTemplate 生成只含表头行的 PIM 服务器导入模板。
func (s *pimService) ServerTemplate() ([]byte, error) {
	return excel.BuildWorkbook(pimServerColumns, nil)
}

// ListUsers 分页检索 PIM 用户记录。
func (s *pimService) ListUsers(page, size int, search string) (*PageResult, error) {
	page, size, offset := NormalizePage(page, size)

	users, total, err := s.pimUserRepo.FindWithPagination(offset, size, search)
	if err != nil {
		return nil, err
	}
	return NewPageResult(users, total, page, size), nil
}

// GetUser 根据 ID 获取一条 PIM 用户记录。
func (s *pimService) GetUser(id uint) (*model.PimUser, error) {
	user, err := s.pimUserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUser 创建一条 PIM 用户记录。
func (s *pimService) CreateUser(user *model.PimUser, actor string) (*model.PimUser, error) {
	if err := s.pimUserRepo.Create(user); err != nil {
		return nil, err
	}
	s.activity.Record(actor, "PIM_USER_CREATE", fmt.Sprintf("创建 PIM 用户 '%s'", user.Username))
	return user, nil
}

// UpdateUser 部分更新一条 PIM 用户记录。
func (s *pimService) UpdateUser(id uint, update PimUserUpdate, actor string) (*model.PimUser, error) {
	user, err := s.pimUserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Department != nil {
		user.Department = *update.Department
	}
	if update.AccessLevel != nil {
		user.AccessLevel = *update.AccessLevel
	}
	if update.Status != nil {
		user.Status = *update.Status
	}
	if update.Remarks != nil {
		user.Remarks = *update.Remarks
	}

	if err := s.pimUserRepo.Update(user); err != nil {
		return nil, err
	}

	s.activity.Record(actor, "PIM_USER_UPDATE", fmt.Sprintf("更新 PIM 用户 '%s'", user.Username))
	return user, nil
}

// DeleteUser 删除一条 PIM 用户记录。
func (s *pimService) DeleteUser(id uint, actor string) error {
	user, err := s.pimUserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.pimUserRepo.Delete(id); err != nil {
		return err
	}

	s.activity.Record(actor, "PIM_USER_DELETE", fmt.Sprintf("删除 PIM 用户 '%s'", user.Username))
	return nil
}

// ImportUsers 同步解析上传的 xlsx 并逐行插入 PIM 用户记录。
func (s *pimService) ImportUsers(ctx context.Context, fileName string, content []byte, actor string) (*ImportSummary, error) {
	headers, rows, err := excel.ParseWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i
	}
	cell := func(row []string, column string) string {
		if i, ok := colIndex[column]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	summary := &ImportSummary{}
	for i, row := range rows {
		username := cell(row, "Username")
		if username == "" {
			summary.addError(i, "缺少必填的 Username")
			continue
		}

		user := &model.PimUser{
			Username:    username,
			DisplayName: cell(row, "Display Name"),
			Email:       cell(row, "Email"),
			Department:  cell(row, "Department"),
			AccessLevel: cell(row, "Access Level"),
			Status:      cell(row, "Status"),
			Remarks:     cell(row, "Remarks"),
		}
		if err := s.pimUserRepo.Create(user); err != nil {
			summary.addError(i, err.Error())
			continue
		}
		summary.Imported++
	}

	retainImportFile(ctx, "pim-users", fileName, content)
	s.activity.Record(actor, "PIM_USER_IMPORT",
		fmt.Sprintf("导入 PIM 用户清单 '%s'：成功 %d 条，失败 %d 条", fileName, summary.Imported, summary.Failed))
	return summary, nil
}

// ExportUsers 将全部 PIM 用户记录导出为 xlsx。
func (s *pimService) ExportUsers() ([]byte, string, error) {
	users, err := s.pimUserRepo.FindAll()
	if err != nil {
		return nil, "", err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.Username, u.DisplayName, u.Email, u.Department,
			u.AccessLevel, u.Status, u.Remarks,
		})
	}

	data, err := excel.BuildWorkbook(pimUserColumns, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "pim-users.xlsx", nil
}

// UserTemplate 生成只含表头行的 PIM 用户导入模板。
func (s *pimService) UserTemplate() ([]byte, error) {
	return excel.BuildWorkbook(pimUserColumns, nil)
}
