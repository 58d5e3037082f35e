// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// Record is an arbitrary structured document stored in a collection.
// Its primary key lives inside the document under the collection's key path.
type Record map[string]any

// Clone returns a shallow copy of r. Nested values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Field returns the value stored under name and whether it was present.
func (r Record) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// UnmarshalJSON decodes a JSON object into r. Integral numbers become int64
// and other numbers float64, at any depth, so a key keeps its type across a
// round trip through the store or the wire.
func (r *Record) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	for k, v := range raw {
		raw[k] = normalizeNumbers(v)
	}

	*r = raw
	return nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, nested := range val {
			val[k] = normalizeNumbers(nested)
		}
		return val
	case []any:
		for i, nested := range val {
			val[i] = normalizeNumbers(nested)
		}
		return val
	default:
		return v
	}
}
