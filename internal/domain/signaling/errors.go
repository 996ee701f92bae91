package signaling

import "errors"

var (
	ErrUnknownEvent     = errors.New("unknown event")
	ErrMalformedFrame   = errors.New("malformed frame")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrMissingTarget    = errors.New("target is required")
	ErrTargetOffline    = errors.New("target offline")
	ErrMissingUserID    = errors.New("user id is required")
	ErrCallNotFound     = errors.New("call not found")
	ErrInvalidCallState = errors.New("invalid call state transition")
)
