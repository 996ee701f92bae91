package signaling

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/signaling"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConn struct {
	id     string
	mu     sync.Mutex
	frames [][]byte
}

func (c *testConn) ID() string { return c.id }

func (c *testConn) Write(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, msg)
	return nil
}

func (c *testConn) events(t *testing.T) []signaling.Envelope {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]signaling.Envelope, 0, len(c.frames))
	for _, f := range c.frames {
		var env signaling.Envelope
		require.NoError(t, json.Unmarshal(f, &env))
		out = append(out, env)
	}
	return out
}

func (c *testConn) reset() {
	c.mu.Lock()
	c.frames = nil
	c.mu.Unlock()
}

// fakeHub plays the transport: every connection it knows, registered or not.
type fakeHub struct {
	conns []*testConn
}

func (h *fakeHub) BroadcastOthers(msg []byte, except presence.Conn) (int, error) {
	n := 0
	for _, c := range h.conns {
		if c.ID() == except.ID() {
			continue
		}
		_ = c.Write(msg)
		n++
	}
	return n, nil
}

func (h *fakeHub) BroadcastAll(msg []byte) (int, error) {
	for _, c := range h.conns {
		_ = c.Write(msg)
	}
	return len(h.conns), nil
}

type fixture struct {
	relay    *Relay
	registry *presence.Registry
	calls    *CallTracker
	hub      *fakeHub
}

func newFixture() *fixture {
	registry := presence.New()
	hub := &fakeHub{}
	calls := NewCallTracker()
	return &fixture{
		relay:    NewRelay(registry, hub, calls, nil),
		registry: registry,
		calls:    calls,
		hub:      hub,
	}
}

func (f *fixture) connect(t *testing.T, id, userID string) *testConn {
	t.Helper()
	c := &testConn{id: id}
	f.hub.conns = append(f.hub.conns, c)
	f.relay.HandleConnect(c)
	if userID != "" {
		res := f.relay.Handle(c, frame(t, signaling.EventRegister, userID, ""))
		require.True(t, res.OK(), res.Error)
	}
	return c
}

func (f *fixture) resetAll() {
	for _, c := range f.hub.conns {
		c.reset()
	}
}

func frame(t *testing.T, event string, data interface{}, ackID string) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	b, err := json.Marshal(signaling.Envelope{Event: event, Data: raw, AckID: ackID})
	require.NoError(t, err)
	return b
}

func TestRelay_RegisterAnnouncesOnline(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "")

	conn, ok := f.registry.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "c1", conn.ID())

	evs := alice.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, signaling.OutUserOnline, evs[0].Event)
	assert.JSONEq(t, `"alice"`, string(evs[0].Data))

	f.relay.Handle(bob, frame(t, signaling.EventRegister, map[string]string{"userId": "bob"}, ""))
	_, ok = f.registry.Lookup("bob")
	assert.True(t, ok)
}

func TestRelay_DirectToAbsentTargetIsDropped(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	f.resetAll()

	res := f.relay.Handle(alice, frame(t, signaling.EventSendMessage, map[string]string{
		"receiverId": "carol",
		"text":       "hi",
	}, ""))

	assert.Equal(t, 0, res.Delivered)
	assert.Equal(t, signaling.ErrTargetOffline.Error(), res.Error)
	assert.Empty(t, alice.events(t))
	assert.Empty(t, bob.events(t))
}

func TestRelay_AckOnRequest(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	f.resetAll()

	f.relay.Handle(alice, frame(t, signaling.EventSendMessage, map[string]string{"receiverId": "carol"}, "42"))

	evs := alice.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, signaling.OutAck, evs[0].Event)

	var ack signaling.AckBody
	require.NoError(t, json.Unmarshal(evs[0].Data, &ack))
	assert.Equal(t, "42", ack.AckID)
	assert.Equal(t, signaling.EventSendMessage, ack.Event)
	assert.Equal(t, 0, ack.Delivered)
	assert.Equal(t, signaling.ErrTargetOffline.Error(), ack.Error)
}

func TestRelay_SendMessageVerbatim(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	f.resetAll()

	payload := map[string]interface{}{"receiverId": "bob", "text": "hello", "chatId": "x1"}
	res := f.relay.Handle(alice, frame(t, signaling.EventSendMessage, payload, ""))
	assert.True(t, res.OK())
	assert.Equal(t, 1, res.Delivered)

	evs := bob.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, signaling.OutReceiveMessage, evs[0].Event)
	assert.JSONEq(t, `{"receiverId":"bob","text":"hello","chatId":"x1"}`, string(evs[0].Data))
	assert.Empty(t, alice.events(t))
}

func TestRelay_BroadcastOthers(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	anon := f.connect(t, "c3", "")
	f.resetAll()

	res := f.relay.Handle(alice, frame(t, signaling.EventTyping, map[string]string{"chatId": "x1"}, ""))
	assert.Equal(t, 2, res.Delivered)

	assert.Empty(t, alice.events(t))
	for _, c := range []*testConn{bob, anon} {
		evs := c.events(t)
		require.Len(t, evs, 1)
		assert.Equal(t, signaling.OutUserTyping, evs[0].Event)
		assert.JSONEq(t, `{"chatId":"x1"}`, string(evs[0].Data))
	}
}

func TestRelay_DirectCarriesSenderIdentity(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	f.resetAll()

	f.relay.Handle(alice, frame(t, signaling.EventHuddleICECandidate, map[string]interface{}{
		"target":    "bob",
		"candidate": map[string]string{"sdpMid": "0"},
	}, ""))

	evs := bob.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, signaling.EventHuddleICECandidate, evs[0].Event)
	assert.JSONEq(t, `{"from":"alice","candidate":{"sdpMid":"0"}}`, string(evs[0].Data))
}

func TestRelay_CallLifecycle(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	f.resetAll()

	res := f.relay.Handle(alice, frame(t, signaling.EventCallUser, map[string]interface{}{
		"target":   "bob",
		"callId":   "call-1",
		"callType": "video",
		"offer":    map[string]string{"sdp": "o"},
	}, ""))
	require.True(t, res.OK(), res.Error)

	evs := bob.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, signaling.OutIncomingCall, evs[0].Event)
	assert.JSONEq(t, `{"from":"alice","callId":"call-1","callType":"video","offer":{"sdp":"o"}}`, string(evs[0].Data))

	call, ok := f.calls.Get("call-1")
	require.True(t, ok)
	assert.Equal(t, signaling.CallRinging, call.State)

	res = f.relay.Handle(bob, frame(t, signaling.EventCallAnswer, map[string]interface{}{
		"target": "alice",
		"answer": map[string]string{"sdp": "a"},
	}, ""))
	require.True(t, res.OK(), res.Error)
	call, _ = f.calls.Get("call-1")
	assert.Equal(t, signaling.CallConnected, call.State)

	aliceEvs := alice.events(t)
	require.Len(t, aliceEvs, 1)
	assert.Equal(t, signaling.OutCallAnswered, aliceEvs[0].Event)

	f.relay.Handle(alice, frame(t, signaling.EventCallEnded, map[string]string{"target": "bob"}, ""))
	assert.Equal(t, 0, f.calls.Active())
}

func TestRelay_InvalidCallTransitionStillRelays(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	f.resetAll()

	res := f.relay.Handle(bob, frame(t, signaling.EventCallAnswer, map[string]interface{}{"target": "alice"}, ""))
	assert.Equal(t, signaling.ErrCallNotFound.Error(), res.Error)
	assert.Equal(t, 1, res.Delivered)
	assert.Len(t, alice.events(t), 1)
}

func TestRelay_CallToAbsentTargetIsNotTracked(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")

	f.relay.Handle(alice, frame(t, signaling.EventCallUser, map[string]string{"target": "bob", "callId": "c9"}, ""))
	assert.Equal(t, 0, f.calls.Active())
}

func TestRelay_Disconnect(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	f.relay.Handle(alice, frame(t, signaling.EventCallUser, map[string]string{"target": "bob", "callId": "c1"}, ""))
	f.resetAll()

	f.relay.HandleDisconnect(alice)

	_, ok := f.registry.Lookup("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, f.calls.Active())

	evs := bob.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, signaling.OutUserOffline, evs[0].Event)
	assert.JSONEq(t, `"alice"`, string(evs[0].Data))
}

func TestRelay_StaleDisconnectKeepsNewConnection(t *testing.T) {
	f := newFixture()
	old := f.connect(t, "c1", "alice")
	observer := f.connect(t, "c2", "bob")
	f.connect(t, "c3", "alice")
	f.resetAll()

	f.relay.HandleDisconnect(old)

	conn, ok := f.registry.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "c3", conn.ID())
	assert.Empty(t, observer.events(t))
}

func TestRelay_SendNotification(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	f.resetAll()

	res := f.relay.Handle(alice, frame(t, signaling.EventSendNotification, map[string]interface{}{
		"employeeIds": []string{"bob", "ghost"},
		"type":        "SYSTEM",
		"message":     "maintenance at 5",
	}, ""))
	assert.Equal(t, 1, res.Delivered)

	evs := bob.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, signaling.OutNotification, evs[0].Event)
	assert.JSONEq(t, `{"type":"SYSTEM","message":"maintenance at 5"}`, string(evs[0].Data))
}

func TestRelay_RejectsUnknownAndMalformed(t *testing.T) {
	f := newFixture()
	alice := f.connect(t, "c1", "alice")
	bob := f.connect(t, "c2", "bob")
	f.resetAll()

	res := f.relay.Handle(alice, frame(t, "dance", map[string]string{"target": "bob"}, ""))
	assert.Equal(t, signaling.ErrUnknownEvent.Error(), res.Error)

	res = f.relay.Handle(alice, []byte(`{"event":`))
	assert.Equal(t, signaling.ErrMalformedFrame.Error(), res.Error)

	assert.Empty(t, bob.events(t))
	assert.Empty(t, alice.events(t))
}
