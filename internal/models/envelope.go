package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EventStreamRequest is the subscribe frame that switches a connection into
// continuous event mode.
const EventStreamRequest = `"EventStream"`

// Reply is the acknowledgment for a request: {"Ok": ...} or {"Err": "..."}
type Reply struct {
	Ok  json.RawMessage
	Err string

	failed bool
}

func (*Reply) isMessage() {}

// IsError returns true if the reply reports a failure
func (r *Reply) IsError() bool {
	return r.failed
}

// GetError returns the error message if present
func (r *Reply) GetError() string {
	return r.Err
}

// Decode parses one frame into a Message.
// Frames that are not a JSON object with a single key (or an Ok/Err reply)
// produce a *DecodeError.
func Decode(frame []byte) (Message, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(frame, &obj); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, newDecodeError(frame, fmt.Sprintf("expected object, got %s", typeErr.Value), nil)
		}
		return nil, newDecodeError(frame, "invalid JSON", err)
	}
	if len(obj) == 0 {
		return nil, newDecodeError(frame, "empty envelope", nil)
	}

	if errText, ok := obj["Err"]; ok {
		return &Reply{Err: rawText(errText), failed: true}, nil
	}
	if ok, found := obj["Ok"]; found {
		return &Reply{Ok: ok}, nil
	}

	if len(obj) != 1 {
		return nil, newDecodeError(frame, fmt.Sprintf("expected single-key envelope, got %d keys", len(obj)), nil)
	}

	var kind string
	var payload json.RawMessage
	for k, v := range obj {
		kind, payload = k, v
	}

	ev := newEvent(kind)
	if ev == nil {
		return &UnknownEvent{Kind: kind, Payload: payload}, nil
	}
	if err := json.Unmarshal(payload, ev); err != nil {
		return nil, newDecodeError(frame, fmt.Sprintf("bad %s payload", kind), err)
	}
	return ev, nil
}

// rawText returns a JSON string's contents, or the raw JSON for other values
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
