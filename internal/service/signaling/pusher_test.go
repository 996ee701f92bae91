package signaling

import (
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPusher_Push(t *testing.T) {
	registry := presence.New()
	conn := &testConn{id: "c1"}
	registry.Register("u1", conn)

	var p notification.Pusher = NewPusher(registry, nil)
	assert.True(t, p.Push("u1", notification.EventName, notification.LiveEvent{Type: notification.TypeLeave, Message: "hi"}))
	assert.False(t, p.Push("u2", notification.EventName, nil))

	evs := conn.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, "notification", evs[0].Event)
	assert.JSONEq(t, `{"type":"LEAVE","message":"hi"}`, string(evs[0].Data))
}
