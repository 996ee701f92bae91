package signaling

import "encoding/json"

// Inbound events, client to server.
const (
	EventRegister           = "register"
	EventSendMessage        = "sendMessage"
	EventTyping             = "typing"
	EventStopTyping         = "stop-typing"
	EventMessageRead        = "message-read"
	EventHuddleStarted      = "huddle-started"
	EventHuddleJoin         = "huddle-join"
	EventHuddleOffer        = "huddle-offer"
	EventHuddleAnswer       = "huddle-answer"
	EventHuddleICECandidate = "huddle-ice-candidate"
	EventHuddleLeave        = "huddle-leave"
	EventHuddleEnded        = "huddle-ended"
	EventCallUser           = "call-user"
	EventCallAnswer         = "call-answer"
	EventICECandidate       = "ice-candidate"
	EventCallEnded          = "call-ended"
	EventCallRejected       = "call-rejected"
	EventSendNotification   = "sendNotification"
)

// Outbound events, server to client. Events whose name is unchanged reuse
// the inbound constant.
const (
	OutReceiveMessage      = "receiveMessage"
	OutUserTyping          = "user-typing"
	OutUserStopTyping      = "user-stop-typing"
	OutMessageReadUpdate   = "message-read-update"
	OutHuddleStartedNotice = "huddle-started-notification"
	OutHuddleUserJoined    = "huddle-user-joined"
	OutHuddleUserLeft      = "huddle-user-left"
	OutIncomingCall        = "incoming-call"
	OutCallAnswered        = "call-answered"
	OutNotification        = "notification"
	OutUserOnline          = "user-online"
	OutUserOffline         = "user-offline"
	OutAck                 = "ack"
)

// Envelope is one JSON text frame in either direction.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	AckID string          `json:"ack_id,omitempty"`
}

// Encode builds an outbound frame.
func Encode(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// Kind says how an inbound event is routed.
type Kind int

const (
	KindUnknown   Kind = iota
	KindControl        // handled by the relay itself
	KindDirect         // one target looked up in presence
	KindBroadcast      // every other connected session
	KindMulti          // several targets looked up in presence
)

// Route describes where an inbound event goes and under which name.
type Route struct {
	Kind     Kind
	Outbound string
}

var routes = map[string]Route{
	EventRegister:           {KindControl, OutUserOnline},
	EventSendMessage:        {KindDirect, OutReceiveMessage},
	EventTyping:             {KindBroadcast, OutUserTyping},
	EventStopTyping:         {KindBroadcast, OutUserStopTyping},
	EventMessageRead:        {KindBroadcast, OutMessageReadUpdate},
	EventHuddleStarted:      {KindBroadcast, OutHuddleStartedNotice},
	EventHuddleJoin:         {KindBroadcast, OutHuddleUserJoined},
	EventHuddleLeave:        {KindBroadcast, OutHuddleUserLeft},
	EventHuddleEnded:        {KindBroadcast, EventHuddleEnded},
	EventHuddleOffer:        {KindDirect, EventHuddleOffer},
	EventHuddleAnswer:       {KindDirect, EventHuddleAnswer},
	EventHuddleICECandidate: {KindDirect, EventHuddleICECandidate},
	EventCallUser:           {KindDirect, OutIncomingCall},
	EventCallAnswer:         {KindDirect, OutCallAnswered},
	EventICECandidate:       {KindDirect, EventICECandidate},
	EventCallEnded:          {KindBroadcast, EventCallEnded},
	EventCallRejected:       {KindDirect, EventCallRejected},
	EventSendNotification:   {KindMulti, OutNotification},
}

// RouteOf returns the route for an inbound event name.
func RouteOf(event string) (Route, bool) {
	r, ok := routes[event]
	return r, ok
}
