package event

import (
	"encoding/json"
	"errors"
)

// ErrNilPayload is returned when an event carries no payload at all
var ErrNilPayload = errors.New("event payload is nil")

// DecodePayload converts an event payload into T. In-process events already
// hold T; replayed events (dead letter, outbox) arrive as raw JSON or as
// generic maps and are converted through JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case nil:
		return result, ErrNilPayload
	case T:
		return v, nil
	case json.RawMessage:
		return result, json.Unmarshal(v, &result)
	case []byte:
		return result, json.Unmarshal(v, &result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
