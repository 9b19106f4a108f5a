package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

// NotificationService nghiệp vụ thông báo.
// Gửi thông báo là best-effort: lỗi chỉ ghi log, không làm hỏng nghiệp vụ chính.
type NotificationService interface {
	Notify(ctx context.Context, receiverID string, senderID *string, notifType, content, link string)
	NotifyMany(ctx context.Context, receiverIDs []string, senderID *string, notifType, content, link string)
	ListMine(ctx context.Context, userID string, page *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService tạo NotificationService
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) Notify(ctx context.Context, receiverID string, senderID *string, notifType, content, link string) {
	s.NotifyMany(ctx, []string{receiverID}, senderID, notifType, content, link)
}

func (s *notificationService) NotifyMany(ctx context.Context, receiverIDs []string, senderID *string, notifType, content, link string) {
	if len(receiverIDs) == 0 {
		return
	}
	notifications := make([]model.Notification, 0, len(receiverIDs))
	for _, rid := range receiverIDs {
		notifications = append(notifications, model.Notification{
			ReceiverID: rid,
			SenderID:   senderID,
			Type:       notifType,
			Content:    content,
			Link:       link,
		})
	}
	if err := s.repo.Notification.BatchCreate(ctx, notifications); err != nil {
		s.logger.Error("gửi thông báo thất bại",
			zap.String("type", notifType),
			zap.Int("receivers", len(receiverIDs)),
			zap.Error(err))
	}
}

func (s *notificationService) ListMine(ctx context.Context, userID string, page *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.ListByReceiver(ctx, userID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("truy vấn thông báo thất bại", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, dto.NotificationResponse{
			NotificationID: n.NotificationID,
			Type:           n.Type,
			Content:        n.Content,
			Link:           n.Link,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return result, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	return s.repo.Notification.MarkRead(ctx, notificationID, userID)
}
