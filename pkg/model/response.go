package model

import (
	"bytes"
	"encoding/json"
)

// Response is the uniform success envelope returned by every SDK operation.
// When Data serializes to a JSON object its fields are lifted to the top
// level next to "success"; any other payload is placed under "data".
type Response[T any] struct {
	Success bool
	Data    T
}

// Success wraps a payload in a successful envelope.
func Success[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

func (r Response[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return json.Marshal(map[string]json.RawMessage{
			"success": successJSON(r.Success),
			"data":    raw,
		})
	}
	return mergeFields(raw, map[string]any{"success": r.Success})
}

func successJSON(ok bool) json.RawMessage {
	if ok {
		return json.RawMessage("true")
	}
	return json.RawMessage("false")
}

// mergeFields decodes a JSON object and adds extra top-level keys. Keys already
// present in obj are overwritten by extra.
func mergeFields(obj []byte, extra map[string]any) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(obj, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = b
	}
	return json.Marshal(fields)
}
