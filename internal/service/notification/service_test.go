package notification

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	stored []*notification.Notification
}

func (f *fakeRepo) CreateBatch(ctx context.Context, ns []*notification.Notification) (int, error) {
	f.stored = append(f.stored, ns...)
	return len(ns), nil
}

func (f *fakeRepo) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	var out []*notification.Notification
	for _, n := range f.stored {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, s := range f.stored {
		if s.UserID == userID && !s.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) MarkAsRead(ctx context.Context, id string, userID string) error {
	for _, n := range f.stored {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (f *fakeRepo) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range f.stored {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

type fakeDirectory struct {
	employees map[string]string // employee id -> user id
	hr        []notification.Recipient
}

func (f *fakeDirectory) ResolveEmployees(ctx context.Context, ids []string) ([]notification.Recipient, error) {
	var out []notification.Recipient
	for _, id := range ids {
		if u, ok := f.employees[id]; ok {
			out = append(out, notification.Recipient{UserID: u, EmployeeID: id})
		}
	}
	return out, nil
}

func (f *fakeDirectory) ListByRole(ctx context.Context, role user.Role) ([]notification.Recipient, error) {
	if role != user.RoleHR {
		return nil, nil
	}
	return f.hr, nil
}

type fakePusher struct {
	online map[string]bool
	pushed []string
}

func (f *fakePusher) Push(userID string, event string, payload interface{}) bool {
	if !f.online[userID] {
		return false
	}
	f.pushed = append(f.pushed, userID)
	return true
}

func newFixture() (*fakeRepo, *fakeDirectory, *fakePusher, notification.Service) {
	repo := &fakeRepo{}
	dir := &fakeDirectory{
		employees: map[string]string{"emp": "u-emp", "mgr": "u-mgr", "hr1": "u-hr1"},
		hr: []notification.Recipient{
			{UserID: "u-hr1", EmployeeID: "hr1"},
			{UserID: "u-hr2", EmployeeID: "hr2"},
		},
	}
	pusher := &fakePusher{online: map[string]bool{"u-mgr": true, "u-hr2": true}}
	return repo, dir, pusher, NewNotificationService(repo, dir, pusher, nil)
}

func TestNotify_ManagerAndHRPool(t *testing.T) {
	repo, _, pusher, svc := newFixture()
	mgr := "mgr"

	n, err := svc.Notify(context.Background(), notification.FanOut{
		ManagerID: &mgr,
		Type:      notification.TypeLeave,
		Message:   "New ANNUAL leave request",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, repo.stored, 3)
	assert.ElementsMatch(t, []string{"u-mgr", "u-hr2"}, pusher.pushed)
}

func TestNotify_DeduplicatesRecipients(t *testing.T) {
	repo, _, _, svc := newFixture()
	mgr := "hr1"

	n, err := svc.Notify(context.Background(), notification.FanOut{
		EmployeeIDs: []string{"emp", "emp", "ghost"},
		ManagerID:   &mgr,
		Type:        notification.TypeLeave,
		Message:     "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	users := make([]string, 0, len(repo.stored))
	for _, s := range repo.stored {
		users = append(users, s.UserID)
	}
	assert.ElementsMatch(t, []string{"u-emp", "u-hr1", "u-hr2"}, users)
}

func TestSendBulk_NoExpansion(t *testing.T) {
	repo, _, _, svc := newFixture()

	n, err := svc.SendBulk(context.Background(), notification.BulkSendRequest{
		EmployeeIDs: []string{"emp", "mgr"},
		Type:        "SYSTEM",
		Message:     "Office closed",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, repo.stored, 2)

	_, err = svc.Send(context.Background(), notification.SendRequest{EmployeeID: "emp", Type: "BOGUS", Message: "x"})
	assert.Error(t, err)
}

func TestReadState(t *testing.T) {
	repo, _, _, svc := newFixture()
	ctx := context.Background()

	_, err := svc.Send(ctx, notification.SendRequest{EmployeeID: "emp", Type: "SYSTEM", Message: "a"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, notification.SendRequest{EmployeeID: "emp", Type: "SYSTEM", Message: "b"})
	require.NoError(t, err)
	repo.stored[0].ID = "n1"

	count, err := svc.GetUnreadCount(ctx, "u-emp")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkAsRead(ctx, "u-emp", "n1"))
	assert.ErrorIs(t, svc.MarkAsRead(ctx, "u-other", "n1"), notification.ErrNotificationNotFound)

	list, err := svc.GetNotifications(ctx, "u-emp", 0, 0, true)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
	assert.Equal(t, 1, list.UnreadCount)
	assert.Equal(t, 20, list.PageSize)

	marked, err := svc.MarkAllAsRead(ctx, "u-emp")
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)
}
