package notification

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

// Repository defines the notification repository interface
type Repository interface {
	// CreateBatch inserts all rows in one statement, skipping conflicts, and
	// returns how many were stored.
	CreateBatch(ctx context.Context, notifications []*Notification) (int, error)
	GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, id string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

// RecipientDirectory resolves identities for fan-out.
type RecipientDirectory interface {
	// ResolveEmployees maps employee ids to their owning users. Unknown ids
	// are skipped.
	ResolveEmployees(ctx context.Context, employeeIDs []string) ([]Recipient, error)
	// ListByRole returns users holding role that have an employee record.
	ListByRole(ctx context.Context, role user.Role) ([]Recipient, error)
}

// Pusher delivers a live event to a user if they are connected.
type Pusher interface {
	Push(userID string, event string, payload interface{}) bool
}
