package signaling

// Result reports what the relay did with one inbound event.
type Result struct {
	Event     string `json:"event"`
	Delivered int    `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

func (r Result) OK() bool {
	return r.Error == ""
}

// AckBody is written back to the sender when the inbound frame had an ack_id.
type AckBody struct {
	AckID string `json:"ack_id"`
	Result
}
