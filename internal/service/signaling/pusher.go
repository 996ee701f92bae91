package signaling

import (
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/signaling"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/presence"
)

// Pusher writes server-originated events to present users.
type Pusher struct {
	registry *presence.Registry
	logger   *slog.Logger
}

func NewPusher(registry *presence.Registry, logger *slog.Logger) *Pusher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pusher{registry: registry, logger: logger}
}

// Push reports whether userID was present and the write succeeded.
func (p *Pusher) Push(userID string, event string, payload interface{}) bool {
	msg, err := signaling.Encode(event, payload)
	if err != nil {
		p.logger.Error("encode push", "event", event, "error", err)
		return false
	}
	return p.registry.Send(userID, msg)
}
