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

// 服务器清单导入导出的固定列。
var serverColumns = []string{"Hostname", "IP Address", "OS", "Environment", "Location", "Owner", "Status", "Remarks"}

// ServerUpdate 描述对一条服务器记录的部分更新，nil 字段保持不变。
type ServerUpdate struct {
	Hostname    *string `json:"hostname"`
	IPAddress   *string `json:"ipAddress"`
	OS          *string `json:"os"`
	Environment *string `json:"environment"`
	Location    *string `json:"location"`
	Owner       *string `json:"owner"`
	Status      *string `json:"status"`
	Remarks     *string `json:"remarks"`
}

// ServerService 接口定义了服务器资产清单的业务操作。
type ServerService interface {
	List(page, size int, search string) (*PageResult, error)
	Get(id uint) (*model.Server, error)
	Create(server *model.Server, actor string) (*model.Server, error)
	Update(id uint, update ServerUpdate, actor string) (*model.Server, error)
	Delete(id uint, actor string) error
	Import(ctx context.Context, fileName string, content []byte, actor string) (*ImportSummary, error)
	Export() (data []byte, fileName string, err error)
	Template() ([]byte, error)
}

type serverService struct {
	serverRepo repository.ServerRepository
	activity   ActivityService
}

// NewServerService 创建一个新的 ServerService 实例。
func NewServerService(serverRepo repository.ServerRepository, activity ActivityService) ServerService {
	return &serverService{
		serverRepo: serverRepo,
		activity:   activity,
	}
}

// List 分页检索服务器记录。
func (s *serverService) List(page, size int, search string) (*PageResult, error) {
	page, size, offset := NormalizePage(page, size)

	servers, total, err := s.serverRepo.FindWithPagination(offset, size, search)
	if err != nil {
		return nil, err
	}
	return NewPageResult(servers, total, page, size), nil
}

// Get 根据 ID 获取一条服务器记录。
func (s *serverService) Get(id uint) (*model.Server, error) {
	server, err := s.serverRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return server, nil
}

// Create 创建一条服务器记录。
func (s *serverService) Create(server *model.Server, actor string) (*model.Server, error) {
	if err := s.serverRepo.Create(server); err != nil {
		return nil, err
	}
	s.activity.Record(actor, "SERVER_CREATE", fmt.Sprintf("创建服务器 '%s'", server.Hostname))
	return server, nil
}

// Update 部分更新一条服务器记录。
func (s *serverService) Update(id uint, update ServerUpdate, actor string) (*model.Server, error) {
	server, err := s.serverRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Hostname != nil {
		server.Hostname = *update.Hostname
	}
	if update.IPAddress != nil {
		server.IPAddress = *update.IPAddress
	}
	if update.OS != nil {
		server.OS = *update.OS
	}
	if update.Environment != nil {
		server.Environment = *update.Environment
	}
	if update.Location != nil {
		server.Location = *update.Location
	}
	if update.Owner != nil {
		server.Owner = *update.Owner
	}
	if update.Status != nil {
		server.Status = *update.Status
	}
	if update.Remarks != nil {
		server.Remarks = *update.Remarks
	}

	if err := s.serverRepo.Update(server); err != nil {
		return nil, err
	}

	s.activity.Record(actor, "SERVER_UPDATE", fmt.Sprintf("更新服务器 '%s'", server.Hostname))
	return server, nil
}

// Delete 删除一条服务器记录。
func (s *serverService) Delete(id uint, actor string) error {
	server, err := s.serverRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.serverRepo.Delete(id); err != nil {
		return err
	}

	s.activity.Record(actor, "SERVER_DELETE", fmt.Sprintf("删除服务器 '%s'", server.Hostname))
	return nil
}

// Import 同步解析上传的 xlsx 并逐行插入服务器记录。
// 单行失败不终止导入，最终返回成功/失败计数。
func (s *serverService) Import(ctx context.Context, fileName string, content []byte, actor string) (*ImportSummary, error) {
	headers, rows, err := excel.ParseWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	// 按表头文本定位各列，列顺序不做要求
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
		hostname := cell(row, "Hostname")
		if hostname == "" {
			summary.addError(i, "缺少必填的 Hostname")
			continue
		}

		server := &model.Server{
			Hostname:    hostname,
			IPAddress:   cell(row, "IP Address"),
			OS:          cell(row, "OS"),
			Environment: cell(row, "Environment"),
			Location:    cell(row, "Location"),
			Owner:       cell(row, "Owner"),
			Status:      cell(row, "Status"),
			Remarks:     cell(row, "Remarks"),
		}
		if err := s.serverRepo.Create(server); err != nil {
			summary.addError(i, err.Error())
			continue
		}
		summary.Imported++
	}

	retainImportFile(ctx, "servers", fileName, content)
	s.activity.Record(actor, "SERVER_IMPORT",
		fmt.Sprintf("导入服务器清单 '%s'：成功 %d 条，失败 %d 条", fileName, summary.Imported, summary.Failed))
	return summary, nil
}

// Export 将全部服务器记录导出为 xlsx。
func (s *serverService) Export() ([]byte, string, error) {
	servers, err := s.serverRepo.FindAll()
	if err != nil {
		return nil, "", err
	}

	rows := make([][]string, 0, len(servers))
	for _, sv := range servers {
		rows = append(rows, []string{
			sv.Hostname, sv.IPAddress, sv.OS, sv.Environment,
			sv.Location, sv.Owner, sv.Status, sv.Remarks,
		})
	}

	data, err := excel.BuildWorkbook(serverColumns, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "servers.xlsx", nil
}

// Template 生成只含表头行的导入模板。
func (s *serverService) Template() ([]byte, error) {
	return excel.BuildWorkbook(serverColumns, nil)
}
