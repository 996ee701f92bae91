package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/presence"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/signaling"
	"github.com/google/uuid"
	"github.com/olahol/melody"
)

const connIDKey = "conn_id"

// sessionConn adapts a melody session to presence.Conn.
type sessionConn struct {
	id      string
	session *melody.Session
}

func (c *sessionConn) ID() string { return c.id }

func (c *sessionConn) Write(msg []byte) error {
	return c.session.Write(msg)
}

// Handler serves the realtime socket endpoint.
type Handler struct {
	m      *melody.Melody
	relay  *signaling.Relay
	logger *slog.Logger
}

// New builds the melody instance and wires it to a relay over registry.
func New(cfg config.SocketConfig, origins []string, registry *presence.Registry, calls *signaling.CallTracker, logger *slog.Logger) *Handler {
	m := melody.New()
	if cfg.MaxMessageSize > 0 {
		m.Config.MaxMessageSize = cfg.MaxMessageSize
	}
	if cfg.WriteWait > 0 {
		m.Config.WriteWait = cfg.WriteWait
	}
	if cfg.PongWait > 0 {
		m.Config.PongWait = cfg.PongWait
		m.Config.PingPeriod = cfg.PongWait * 9 / 10
	}
	m.Upgrader.CheckOrigin = originChecker(origins)

	h := &Handler{m: m, logger: logger}
	h.relay = signaling.NewRelay(registry, h, calls, logger)

	m.HandleConnect(func(s *melody.Session) {
		conn := &sessionConn{id: uuid.NewString(), session: s}
		s.Set(connIDKey, conn)
		h.relay.HandleConnect(conn)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		if conn, ok := connOf(s); ok {
			h.relay.HandleDisconnect(conn)
		}
	})
	m.HandleMessage(func(s *melody.Session, msg []byte) {
		conn, ok := connOf(s)
		if !ok {
			return
		}
		h.relay.Handle(conn, msg)
	})
	m.HandleError(func(s *melody.Session, err error) {
		logger.Debug("socket error", "error", err)
	})

	return h
}

// ServeHTTP upgrades the request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.m.HandleRequest(w, r); err != nil {
		h.logger.Warn("socket upgrade failed", "error", err, "remote", r.RemoteAddr)
	}
}

// BroadcastOthers implements signaling.Broadcaster.
func (h *Handler) BroadcastOthers(msg []byte, except presence.Conn) (int, error) {
	return h.writeEach(msg, func(conn *sessionConn) bool {
		return conn.ID() != except.ID()
	})
}

// BroadcastAll implements signaling.Broadcaster.
func (h *Handler) BroadcastAll(msg []byte) (int, error) {
	return h.writeEach(msg, func(*sessionConn) bool { return true })
}

func (h *Handler) writeEach(msg []byte, keep func(*sessionConn) bool) (int, error) {
	sessions, err := h.m.Sessions()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range sessions {
		conn, ok := connOf(s)
		if !ok || !keep(conn) {
			continue
		}
		if err := s.Write(msg); err != nil {
			h.logger.Debug("broadcast write failed", "conn_id", conn.ID(), "error", err)
			continue
		}
		n++
	}
	return n, nil
}

// Close disconnects every session.
func (h *Handler) Close() error {
	return h.m.Close()
}

func connOf(s *melody.Session) (*sessionConn, bool) {
	v, ok := s.Get(connIDKey)
	if !ok {
		return nil, false
	}
	conn, ok := v.(*sessionConn)
	return conn, ok
}

func originChecker(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range origins {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}
