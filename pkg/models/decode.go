package models

import (
	"encoding/json"
	"fmt"

	"github.com/samvad-hq/kernel-memory-client/pkg/types"
)

// object is a decoded JSON object whose known keys are consumed as they are read.
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	return obj, nil
}

// take decodes key into an Optional and removes it from obj. null reads as unset.
func take[T any](obj object, key string) (types.Optional[T], error) {
	raw, ok := obj[key]
	if !ok {
		return types.Unset[T](), nil
	}
	delete(obj, key)
	if string(raw) == "null" {
		return types.Unset[T](), nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return types.Unset[T](), fmt.Errorf("field %q: %w", key, err)
	}
	return types.Set(v), nil
}

// rest decodes whatever keys remain in obj.
func rest(obj object) (map[string]any, error) {
	if len(obj) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(obj))
	for k, raw := range obj {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

func put[T any](m map[string]any, key string, o types.Optional[T]) {
	if v, ok := o.Get(); ok {
		m[key] = v
	}
}

func withAdditional(additional map[string]any) map[string]any {
	out := make(map[string]any, len(additional)+5)
	for k, v := range additional {
		out[k] = v
	}
	return out
}
