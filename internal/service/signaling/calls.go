package signaling

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/signaling"
)

// CallTracker follows 1:1 calls from ringing to their end. Ended calls are
// forgotten.
type CallTracker struct {
	mu    sync.Mutex
	calls map[string]*signaling.Call
	now   func() time.Time
}

func NewCallTracker() *CallTracker {
	return &CallTracker{
		calls: make(map[string]*signaling.Call),
		now:   time.Now,
	}
}

// Ring starts a call in RINGING state.
func (t *CallTracker) Ring(callID, callerID, calleeID, callType string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.calls[callID]; exists {
		return signaling.ErrInvalidCallState
	}
	t.calls[callID] = &signaling.Call{
		ID:        callID,
		CallerID:  callerID,
		CalleeID:  calleeID,
		Type:      callType,
		State:     signaling.CallRinging,
		StartedAt: t.now(),
	}
	return nil
}

// Answer moves a ringing call to CONNECTED. Without a call id the call is
// found by its parties.
func (t *CallTracker) Answer(callID, callerID, calleeID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	call := t.find(callID, func(c *signaling.Call) bool {
		return c.CallerID == callerID && c.CalleeID == calleeID
	})
	if call == nil {
		return signaling.ErrCallNotFound
	}
	if !signaling.CanMove(call.State, signaling.CallConnected) {
		return signaling.ErrInvalidCallState
	}
	call.State = signaling.CallConnected
	return nil
}

// End finishes the call between a and b, or the one with callID.
func (t *CallTracker) End(callID, a, b string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	call := t.find(callID, func(c *signaling.Call) bool {
		return c.Involves(a) && (b == "" || c.Involves(b))
	})
	if call == nil {
		return signaling.ErrCallNotFound
	}
	delete(t.calls, call.ID)
	return nil
}

// EndAll finishes every call userID takes part in and returns them.
func (t *CallTracker) EndAll(userID string) []signaling.Call {
	t.mu.Lock()
	defer t.mu.Unlock()

	var ended []signaling.Call
	for id, c := range t.calls {
		if c.Involves(userID) {
			ended = append(ended, *c)
			delete(t.calls, id)
		}
	}
	return ended
}

// Get returns a copy of the tracked call.
func (t *CallTracker) Get(callID string) (signaling.Call, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.calls[callID]
	if !ok {
		return signaling.Call{}, false
	}
	return *c, true
}

func (t *CallTracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

func (t *CallTracker) find(callID string, match func(*signaling.Call) bool) *signaling.Call {
	if callID != "" {
		return t.calls[callID]
	}
	for _, c := range t.calls {
		if match(c) {
			return c
		}
	}
	return nil
}
