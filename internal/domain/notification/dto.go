package notification

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// SendRequest persists a notification for one employee without fan-out.
type SendRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Message    string `json:"message" validate:"required,max=2000"`
}

func (r *SendRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Type != "" && !Type(r.Type).IsValid() {
		errs.Add("type", ErrInvalidType.Error())
	}
	return errs.Err()
}

// BulkSendRequest persists one notification per listed employee.
type BulkSendRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,required"`
	Type        string   `json:"type" validate:"required"`
	Message     string   `json:"message" validate:"required,max=2000"`
}

func (r *BulkSendRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Type != "" && !Type(r.Type).IsValid() {
		errs.Add("type", ErrInvalidType.Error())
	}
	return errs.Err()
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Type       Type      `json:"type"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		EmployeeID: n.EmployeeID,
		Type:       n.Type,
		Message:    n.Message,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

// ListResponse represents a paginated list of notifications
type ListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalCount    int                    `json:"total_count"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type CountResponse struct {
	Count int `json:"count"`
}
