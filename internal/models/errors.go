package models

import (
	"errors"
	"fmt"
)

// Connection-level failures abort the operation in progress. Frame-level
// failures (ErrDecode, ErrSubscribeRejected, ErrNotFound) are logged and the
// stream keeps going.
var (
	ErrEndpointUnset     = errors.New("NIRI_SOCKET environment variable not set")
	ErrConnectFailed     = errors.New("connect failed")
	ErrWriteFailed       = errors.New("write failed")
	ErrDisconnected      = errors.New("disconnected")
	ErrDecode            = errors.New("decode error")
	ErrSubscribeRejected = errors.New("event stream request rejected")
	ErrReply             = errors.New("request error")
	ErrNotFound          = errors.New("not found")
)

// DecodeError describes a frame that could not be turned into a Message.
type DecodeError struct {
	Frame  []byte
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrDecode, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrDecode, e.Reason)
}

// Is lets errors.Is(err, ErrDecode) match any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(frame []byte, reason string, err error) *DecodeError {
	return &DecodeError{Frame: frame, Reason: reason, Err: err}
}
