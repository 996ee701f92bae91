package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// Notify resolves recipients, persists one row each, then pushes live
	// events to whoever is present. It returns the number of stored rows.
	Notify(ctx context.Context, event FanOut) (int, error)
	Send(ctx context.Context, req SendRequest) (int, error)
	SendBulk(ctx context.Context, req BulkSendRequest) (int, error)

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*ListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}
