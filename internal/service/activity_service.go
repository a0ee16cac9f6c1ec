package service

import (
	"time"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/kafka"
	"asset-track-go/pkg/log"
)

// ActivityLogResponse 定义了审计记录列表项的结构。
type ActivityLogResponse struct {
	ID          uint            `json:"id"`
	Username    string          `json:"username"`
	Action      string          `json:"action"`
	Description string          `json:"description"`
	CreatedAt   model.LocalTime `json:"createdAt"`
}

// ActivityService 接口定义了操作审计相关的业务操作。
type ActivityService interface {
	// Record 记录一次成功的变更操作。审计是旁路能力，
	// 写入失败只记日志，不影响业务请求。
	Record(username, action, description string)
	List(page, size int, search, username string) (*PageResult, error)
}

type activityService struct {
	activityRepo repository.ActivityLogRepository
}

// NewActivityService 创建一个新的 ActivityService 实例。
func NewActivityService(activityRepo repository.ActivityLogRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

// Record 落库一条审计记录，并在启用时同步发布到 Kafka 审计主题。
func (s *activityService) Record(username, action, description string) {
	entry := &model.ActivityLog{
		Username:    username,
		Action:      action,
		Description: description,
	}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Errorf("写入审计记录失败: action=%s, user=%s, error=%v", action, username, err)
	}

	if kafka.Enabled() {
		event := kafka.AuditEvent{
			Username:    username,
			Action:      action,
			Description: description,
			OccurredAt:  time.Now(),
		}
		if err := kafka.ProduceAuditEvent(event); err != nil {
			log.Errorf("发布审计事件失败: action=%s, error=%v", action, err)
		}
	}
}

// List 分页检索审计记录。
func (s *activityService) List(page, size int, search, username string) (*PageResult, error) {
	page, size, offset := NormalizePage(page, size)

	entries, total, err := s.activityRepo.FindWithPagination(offset, size, search, username)
	if err != nil {
		return nil, err
	}

	content := make([]ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		content = append(content, ActivityLogResponse{
			ID:          e.ID,
			Username:    e.Username,
			Action:      e.Action,
			Description: e.Description,
			CreatedAt:   model.LocalTime(e.CreatedAt),
		})
	}

	return NewPageResult(content, total, page, size), nil
}
