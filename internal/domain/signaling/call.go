package signaling

import "time"

// CallState is the lifecycle of a 1:1 call.
type CallState string

const (
	CallIdle      CallState = "IDLE"
	CallRinging   CallState = "RINGING"
	CallConnected CallState = "CONNECTED"
	CallEnded     CallState = "ENDED"
)

// Call is tracked from call-user until it ends. Ringing calls never time out.
type Call struct {
	ID        string
	CallerID  string
	CalleeID  string
	Type      string
	State     CallState
	StartedAt time.Time
}

// Involves reports whether userID is a party to the call.
func (c Call) Involves(userID string) bool {
	return c.CallerID == userID || c.CalleeID == userID
}

// CanMove reports whether the call may go from one state to another.
func CanMove(from, to CallState) bool {
	switch to {
	case CallRinging:
		return from == CallIdle
	case CallConnected:
		return from == CallRinging
	case CallEnded:
		return from == CallRinging || from == CallConnected
	}
	return false
}
