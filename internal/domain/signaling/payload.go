package signaling

import (
	"encoding/json"
	"strings"
)

// RegisterPayload accepts either a bare user id string or {"userId": "..."}.
type RegisterPayload struct {
	UserID string
}

func (p *RegisterPayload) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		p.UserID = strings.TrimSpace(s)
		return nil
	}
	var obj struct {
		UserID string `json:"userId"`
		Alt    string `json:"user_id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	p.UserID = obj.UserID
	if p.UserID == "" {
		p.UserID = obj.Alt
	}
	p.UserID = strings.TrimSpace(p.UserID)
	return nil
}

// TargetPayload carries the addressee of a direct event. Fields are read only
// to route; the payload itself is forwarded as received.
type TargetPayload struct {
	Target     string          `json:"target"`
	ReceiverID string          `json:"receiverId"`
	CallID     string          `json:"callId"`
	CallType   string          `json:"callType"`
	Offer      json.RawMessage `json:"offer,omitempty"`
	Answer     json.RawMessage `json:"answer,omitempty"`
	Candidate  json.RawMessage `json:"candidate,omitempty"`
}

// Addressee returns the routed user id.
func (p TargetPayload) Addressee() string {
	if p.Target != "" {
		return p.Target
	}
	return p.ReceiverID
}

// NotificationPayload is the sendNotification body.
type NotificationPayload struct {
	EmployeeIDs []string `json:"employeeIds"`
	Type        string   `json:"type"`
	Message     string   `json:"message"`
}

// Outbound bodies for direct signaling events. "from" is always the sender's
// registered identity.
type (
	OfferBody struct {
		From  string          `json:"from"`
		Offer json.RawMessage `json:"offer,omitempty"`
	}
	AnswerBody struct {
		From   string          `json:"from"`
		Answer json.RawMessage `json:"answer,omitempty"`
	}
	CandidateBody struct {
		From      string          `json:"from"`
		Candidate json.RawMessage `json:"candidate,omitempty"`
	}
	IncomingCallBody struct {
		From     string          `json:"from"`
		CallID   string          `json:"callId"`
		CallType string          `json:"callType"`
		Offer    json.RawMessage `json:"offer,omitempty"`
	}
	RejectedBody struct {
		From string `json:"from"`
	}
)
