package signaling

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/signaling"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/presence"
	"github.com/google/uuid"
)

// Broadcaster reaches every connected session, registered or not.
type Broadcaster interface {
	// BroadcastOthers writes msg to every session except conn and returns
	// how many sessions were targeted.
	BroadcastOthers(msg []byte, conn presence.Conn) (int, error)
	BroadcastAll(msg []byte) (int, error)
}

// Relay routes socket events between connected users. It never persists.
type Relay struct {
	registry *presence.Registry
	out      Broadcaster
	calls    *CallTracker
	logger   *slog.Logger
}

func NewRelay(registry *presence.Registry, out Broadcaster, calls *CallTracker, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		registry: registry,
		out:      out,
		calls:    calls,
		logger:   logger,
	}
}

// HandleConnect is called once a socket is upgraded. Identity arrives later
// with register.
func (r *Relay) HandleConnect(conn presence.Conn) {
	r.logger.Debug("socket connected", "conn_id", conn.ID())
}

// HandleDisconnect clears conn's presence. user-offline is announced only
// when conn was still the user's active connection.
func (r *Relay) HandleDisconnect(conn presence.Conn) {
	userID, ok := r.registry.UserOf(conn)
	if !ok {
		r.logger.Debug("anonymous socket disconnected", "conn_id", conn.ID())
		return
	}
	if !r.registry.Remove(userID, conn) {
		r.logger.Debug("stale socket disconnected", "user_id", userID, "conn_id", conn.ID())
		return
	}

	for _, call := range r.calls.EndAll(userID) {
		r.logger.Info("call ended by disconnect", "call_id", call.ID, "user_id", userID)
	}

	msg, err := signaling.Encode(signaling.OutUserOffline, userID)
	if err != nil {
		r.logger.Error("encode user-offline", "error", err)
		return
	}
	if _, err := r.out.BroadcastOthers(msg, conn); err != nil {
		r.logger.Warn("broadcast user-offline", "user_id", userID, "error", err)
	}
	r.logger.Info("user offline", "user_id", userID)
}

// Handle processes one inbound text frame from conn. When the frame carries
// an ack_id the result is written back to conn.
func (r *Relay) Handle(conn presence.Conn, frame []byte) signaling.Result {
	var env signaling.Envelope
	if err := json.Unmarshal(frame, &env); err != nil || env.Event == "" {
		r.logger.Warn("dropping malformed frame", "conn_id", conn.ID(), "error", err)
		return signaling.Result{Error: signaling.ErrMalformedFrame.Error()}
	}

	res := r.dispatch(conn, env)
	res.Event = env.Event
	if !res.OK() {
		r.logger.Debug("signaling event not delivered", "event", env.Event, "conn_id", conn.ID(), "error", res.Error)
	}

	if env.AckID != "" {
		r.ack(conn, env.AckID, res)
	}
	return res
}

func (r *Relay) dispatch(conn presence.Conn, env signaling.Envelope) signaling.Result {
	route, ok := signaling.RouteOf(env.Event)
	if !ok {
		return failure(signaling.ErrUnknownEvent)
	}

	from, _ := r.registry.UserOf(conn)

	switch route.Kind {
	case signaling.KindControl:
		return r.register(conn, env)
	case signaling.KindBroadcast:
		if env.Event == signaling.EventCallEnded {
			r.endCall(env, from)
		}
		return r.broadcast(conn, route.Outbound, env.Data)
	case signaling.KindDirect:
		return r.direct(env, route.Outbound, from)
	case signaling.KindMulti:
		return r.notify(env)
	}
	return failure(signaling.ErrUnknownEvent)
}

func (r *Relay) register(conn presence.Conn, env signaling.Envelope) signaling.Result {
	var p signaling.RegisterPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return failure(signaling.ErrMalformedPayload)
	}
	if p.UserID == "" {
		return failure(signaling.ErrMissingUserID)
	}

	// Identity is client-asserted; a takeover is logged, not refused.
	if prev, replaced := r.registry.Register(p.UserID, conn); replaced {
		r.logger.Warn("presence taken over", "user_id", p.UserID, "old_conn", prev.ID(), "new_conn", conn.ID())
	}
	r.logger.Info("user online", "user_id", p.UserID, "conn_id", conn.ID())

	msg, err := signaling.Encode(signaling.OutUserOnline, p.UserID)
	if err != nil {
		return failure(err)
	}
	n, err := r.out.BroadcastAll(msg)
	if err != nil {
		return failure(err)
	}
	return signaling.Result{Delivered: n}
}

func (r *Relay) broadcast(conn presence.Conn, event string, data json.RawMessage) signaling.Result {
	msg, err := json.Marshal(signaling.Envelope{Event: event, Data: data})
	if err != nil {
		return failure(err)
	}
	n, err := r.out.BroadcastOthers(msg, conn)
	if err != nil {
		return failure(err)
	}
	return signaling.Result{Delivered: n}
}

func (r *Relay) direct(env signaling.Envelope, event, from string) signaling.Result {
	var p signaling.TargetPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return failure(signaling.ErrMalformedPayload)
	}
	target := p.Addressee()
	if target == "" {
		return failure(signaling.ErrMissingTarget)
	}

	var (
		body     interface{}
		stateErr error
	)
	switch env.Event {
	case signaling.EventSendMessage:
		body = env.Data
	case signaling.EventHuddleOffer:
		body = signaling.OfferBody{From: from, Offer: p.Offer}
	case signaling.EventHuddleAnswer, signaling.EventCallAnswer:
		body = signaling.AnswerBody{From: from, Answer: p.Answer}
		if env.Event == signaling.EventCallAnswer {
			stateErr = r.calls.Answer(p.CallID, target, from)
		}
	case signaling.EventHuddleICECandidate, signaling.EventICECandidate:
		body = signaling.CandidateBody{From: from, Candidate: p.Candidate}
	case signaling.EventCallUser:
		if p.CallID == "" {
			p.CallID = uuid.NewString()
		}
		stateErr = r.calls.Ring(p.CallID, from, target, p.CallType)
		body = signaling.IncomingCallBody{From: from, CallID: p.CallID, CallType: p.CallType, Offer: p.Offer}
	case signaling.EventCallRejected:
		stateErr = r.calls.End(p.CallID, target, from)
		body = signaling.RejectedBody{From: from}
	}

	res := signaling.Result{}
	if stateErr != nil {
		// The payload still goes out; peers own their own call UI.
		res.Error = stateErr.Error()
	}

	msg, err := signaling.Encode(event, body)
	if err != nil {
		return failure(err)
	}
	if !r.registry.Send(target, msg) {
		if env.Event == signaling.EventCallUser && stateErr == nil {
			_ = r.calls.End(p.CallID, from, target)
		}
		if res.Error == "" {
			res.Error = signaling.ErrTargetOffline.Error()
		}
		return res
	}
	res.Delivered = 1
	return res
}

func (r *Relay) notify(env signaling.Envelope) signaling.Result {
	var p signaling.NotificationPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return failure(signaling.ErrMalformedPayload)
	}
	if len(p.EmployeeIDs) == 0 {
		return failure(signaling.ErrMissingTarget)
	}

	msg, err := signaling.Encode(signaling.OutNotification, struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{p.Type, p.Message})
	if err != nil {
		return failure(err)
	}

	res := signaling.Result{}
	for _, id := range p.EmployeeIDs {
		if r.registry.Send(id, msg) {
			res.Delivered++
		}
	}
	return res
}

func (r *Relay) endCall(env signaling.Envelope, from string) {
	var p signaling.TargetPayload
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
	}
	if p.CallID == "" && from == "" {
		return
	}
	if err := r.calls.End(p.CallID, from, p.Addressee()); err != nil && !errors.Is(err, signaling.ErrCallNotFound) {
		r.logger.Warn("end call", "call_id", p.CallID, "error", err)
	}
}

func (r *Relay) ack(conn presence.Conn, ackID string, res signaling.Result) {
	msg, err := signaling.Encode(signaling.OutAck, signaling.AckBody{AckID: ackID, Result: res})
	if err != nil {
		r.logger.Error("encode ack", "error", err)
		return
	}
	if err := conn.Write(msg); err != nil {
		r.logger.Warn("write ack", "conn_id", conn.ID(), "error", err)
	}
}

func failure(err error) signaling.Result {
	return signaling.Result{Error: err.Error()}
}
