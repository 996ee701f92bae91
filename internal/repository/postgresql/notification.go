package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// CreateBatch inserts all rows in a single statement.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*5)

	for i, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}

		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))

		var employeeID interface{}
		if n.EmployeeID != "" {
			employeeID = n.EmployeeID
		}
		valueArgs = append(valueArgs, n.ID, n.UserID, employeeID, string(n.Type), n.Message)
	}

	query := fmt.Sprintf(`
		INSERT INTO notifications (id, user_id, employee_id, type, message)
		VALUES %s
		ON CONFLICT DO NOTHING
	`, strings.Join(valueStrings, ", "))

	tag, err := q.Exec(ctx, query, valueArgs...)
	if err != nil {
		return 0, fmt.Errorf("failed to create notifications batch: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// GetByUserID retrieves notifications for a user with pagination
func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE user_id = $1"
	if unreadOnly {
		whereClause += " AND is_read = FALSE"
	}

	var total int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM notifications "+whereClause, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, COALESCE(employee_id::text, ''), type, message, is_read, created_at
		FROM notifications
		%s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, whereClause)

	rows, err := q.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*notification.Notification, 0)
	for rows.Next() {
		n := &notification.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.EmployeeID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

// GetUnreadCount returns the count of unread notifications for a user
func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get unread count: %w", err)
	}
	return count, nil
}

// MarkAsRead marks a single notification as read. Only the owner may do so.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead marks all notifications as read for a user
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return tag.RowsAffected(), nil
}

type recipientDirectory struct {
	db *database.DB
}

// NewRecipientDirectory resolves notification targets from users and employees.
func NewRecipientDirectory(db *database.DB) notification.RecipientDirectory {
	return &recipientDirectory{db: db}
}

func (r *recipientDirectory) ResolveEmployees(ctx context.Context, employeeIDs []string) ([]notification.Recipient, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT user_id, id FROM employees WHERE id::text = ANY($1)`, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notification.Recipient
	for rows.Next() {
		var rc notification.Recipient
		if err := rows.Scan(&rc.UserID, &rc.EmployeeID); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *recipientDirectory) ListByRole(ctx context.Context, role user.Role) ([]notification.Recipient, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, e.id
		FROM users u
		JOIN employees e ON e.user_id = u.id
		WHERE u.role = $1
		ORDER BY u.created_at
	`
	rows, err := q.Query(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notification.Recipient
	for rows.Next() {
		var rc notification.Recipient
		if err := rows.Scan(&rc.UserID, &rc.EmployeeID); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
