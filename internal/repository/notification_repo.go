package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
)

// NotificationRepository truy cập dữ liệu thông báo
type NotificationRepository interface {
	BatchCreate(ctx context.Context, notifications []model.Notification) error
	ListByReceiver(ctx context.Context, receiverID string, offset, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, notificationID, receiverID string) error
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo tạo NotificationRepository
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) BatchCreate(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notifications).Error
}

func (r *notificationRepo) ListByReceiver(ctx context.Context, receiverID string, offset, limit int) ([]model.Notification, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("receiver_id = ?", receiverID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.Notification
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error
	return notifications, total, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, notificationID, receiverID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ? AND receiver_id = ?", notificationID, receiverID).
		Update("is_read", true).Error
}
