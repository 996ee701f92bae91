package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)

	Send(w http.ResponseWriter, r *http.Request)
	SendBulk(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
	}
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

// List handles GET /notifications
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	page := getIntQueryParam(r, "page", 1)
	pageSize := getIntQueryParam(r, "page_size", 20)
	unreadOnly := getBoolQueryParam(r, "unread_only", false)

	result, err := h.notifService.GetNotifications(r.Context(), s.UserID, page, pageSize, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UnreadCount handles GET /notifications/unread-count
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	count, err := h.notifService.GetUnreadCount(r.Context(), s.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notification.CountResponse{Count: count})
}

// MarkAsRead handles PATCH /notifications/{id}/read
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	if err := h.notifService.MarkAsRead(r.Context(), s.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// MarkAllAsRead handles PATCH /notifications/read-all
func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	count, err := h.notifService.MarkAllAsRead(r.Context(), s.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All notifications marked as read", map[string]int64{"updated": count})
}

// Send handles POST /notifications/send
func (h *notificationHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req notification.SendRequest
	if !decode(w, r, "SendNotification", &req) {
		return
	}

	sent, err := h.notifService.Send(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Notification sent", map[string]int{"sent": sent})
}

// SendBulk handles POST /notifications/bulk
func (h *notificationHandlerImpl) SendBulk(w http.ResponseWriter, r *http.Request) {
	var req notification.BulkSendRequest
	if !decode(w, r, "SendBulkNotification", &req) {
		return
	}

	sent, err := h.notifService.SendBulk(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Notifications sent", map[string]int{"sent": sent})
}
