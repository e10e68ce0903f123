package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

// NotificationRepository stores queued notifications.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListDue returns unsent notifications whose send time has passed.
func (r *NotificationRepository) ListDue(ctx context.Context, now time.Time) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.WithContext(ctx).
		Where("sent_at IS NULL AND send_at <= ?", now).
		Order("send_at ASC").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list due notifications: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uint, sentAt time.Time) error {
	if err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("sent_at", sentAt).Error; err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	return nil
}
