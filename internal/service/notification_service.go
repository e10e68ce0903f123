package service

import (
	"context"
	"log"
	"time"

	"taskflow/internal/model"
)

// NotificationStore persists queued notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListDue(ctx context.Context, now time.Time) ([]model.Notification, error)
	MarkSent(ctx context.Context, id uint, sentAt time.Time) error
}

// Sender delivers a message to a user. Delivery is best-effort; a failed send
// leaves the notification queued for the next dispatch run.
type Sender interface {
	Send(ctx context.Context, userID uint, message string) error
}

// NotificationService queues notifications and dispatches the due ones.
type NotificationService struct {
	store  NotificationStore
	sender Sender
	clock  Clock
}

func NewNotificationService(store NotificationStore, sender Sender, clock Clock) *NotificationService {
	return &NotificationService{store: store, sender: sender, clock: clock}
}

// Schedule queues a notification for delivery at its send time.
func (s *NotificationService) Schedule(ctx context.Context, n *model.Notification) error {
	return s.store.Create(ctx, n)
}

// DispatchDue sends every unsent notification whose send time has passed.
// Send failures are logged and the row stays queued.
func (s *NotificationService) DispatchDue(ctx context.Context) error {
	now := s.clock.Now()
	due, err := s.store.ListDue(ctx, now)
	if err != nil {
		return err
	}
	for _, notification := range due {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.sender.Send(ctx, notification.UserID, notification.Message); err != nil {
			log.Printf("[warn] send notification %d to user %d: %v", notification.ID, notification.UserID, err)
			continue
		}
		if err := s.store.MarkSent(ctx, notification.ID, now); err != nil {
			log.Printf("[error] mark notification %d sent: %v", notification.ID, err)
		}
	}
	return nil
}
