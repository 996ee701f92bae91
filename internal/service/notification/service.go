package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type service struct {
	repo      notification.Repository
	directory notification.RecipientDirectory
	pusher    notification.Pusher
	logger    *slog.Logger
}

// NewNotificationService persists notifications and pushes them live through
// pusher. Delivery is best effort: nothing is retried.
func NewNotificationService(repo notification.Repository, directory notification.RecipientDirectory, pusher notification.Pusher, logger *slog.Logger) notification.Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:      repo,
		directory: directory,
		pusher:    pusher,
		logger:    logger,
	}
}

// Notify implements notification.Service. Recipients are the listed
// employees, the manager and every HR user, each stored once.
func (s *service) Notify(ctx context.Context, event notification.FanOut) (int, error) {
	employeeIDs := append([]string{}, event.EmployeeIDs...)
	if event.ManagerID != nil && *event.ManagerID != "" {
		employeeIDs = append(employeeIDs, *event.ManagerID)
	}

	recipients, err := s.directory.ResolveEmployees(ctx, employeeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve recipients: %w", err)
	}
	hr, err := s.directory.ListByRole(ctx, user.RoleHR)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve hr recipients: %w", err)
	}

	return s.deliver(ctx, append(recipients, hr...), event.Type, event.Message)
}

// Send implements notification.Service.
func (s *service) Send(ctx context.Context, req notification.SendRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return s.sendTo(ctx, []string{req.EmployeeID}, notification.Type(req.Type), req.Message)
}

// SendBulk implements notification.Service.
func (s *service) SendBulk(ctx context.Context, req notification.BulkSendRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return s.sendTo(ctx, req.EmployeeIDs, notification.Type(req.Type), req.Message)
}

func (s *service) sendTo(ctx context.Context, employeeIDs []string, typ notification.Type, message string) (int, error) {
	recipients, err := s.directory.ResolveEmployees(ctx, employeeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve recipients: %w", err)
	}
	return s.deliver(ctx, recipients, typ, message)
}

func (s *service) deliver(ctx context.Context, recipients []notification.Recipient, typ notification.Type, message string) (int, error) {
	seen := make(map[string]struct{}, len(recipients))
	rows := make([]*notification.Notification, 0, len(recipients))
	for _, r := range recipients {
		if r.UserID == "" {
			continue
		}
		if _, dup := seen[r.UserID]; dup {
			continue
		}
		seen[r.UserID] = struct{}{}
		rows = append(rows, &notification.Notification{
			UserID:     r.UserID,
			EmployeeID: r.EmployeeID,
			Type:       typ,
			Message:    message,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	stored, err := s.repo.CreateBatch(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to store notifications: %w", err)
	}

	pushed := 0
	live := notification.LiveEvent{Type: typ, Message: message}
	for _, n := range rows {
		if s.pusher != nil && s.pusher.Push(n.UserID, notification.EventName, live) {
			pushed++
		}
	}

	s.logger.Debug("notifications delivered",
		slog.String("type", string(typ)),
		slog.Int("stored", stored),
		slog.Int("pushed", pushed),
	)
	return stored, nil
}

func (s *service) toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.ToResponse(n)
}

// GetNotifications implements notification.Service.
func (s *service) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	resp := &notification.ListResponse{
		Notifications: make([]notification.NotificationResponse, 0, len(items)),
		TotalCount:    total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, s.toResponse(n))
	}
	return resp, nil
}

// GetUnreadCount implements notification.Service.
func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead implements notification.Service.
func (s *service) MarkAsRead(ctx context.Context, userID string, notificationID string) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

// MarkAllAsRead implements notification.Service.
func (s *service) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}
