// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/shopfloor-sync/models"
)

// KeyOf extracts the primary key of rec under the collection's key path.
func (c Collection) KeyOf(rec models.Record) (any, bool) {
	v, ok := rec[c.KeyPath]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}

// KeyRecord builds the payload stored for a delete: only the key under the
// collection's key path.
func (c Collection) KeyRecord(key any) models.Record {
	return models.Record{c.KeyPath: key}
}

// EncodeValue returns the canonical JSON text of v used for key equality and
// index lookups. Numbers are normalised so that int 5 and float64 5 encode
// identically.
func EncodeValue(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: value is not JSON encodable: %w", models.ErrValidation, err)
	}

	var normalized any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err = dec.Decode(&normalized); err != nil {
		return "", fmt.Errorf("%w: value is not JSON decodable: %w", models.ErrValidation, err)
	}
	if n, ok := normalized.(json.Number); ok {
		if i, intErr := n.Int64(); intErr == nil {
			return fmt.Sprintf("%d", i), nil
		}
		if f, floatErr := n.Float64(); floatErr == nil {
			out, _ := json.Marshal(f)
			return string(out), nil
		}
	}

	return string(raw), nil
}

// DecodeValue reverses [EncodeValue]. Integral numbers decode to int64.
func DecodeValue(encoded string) (any, error) {
	if !json.Valid([]byte(encoded)) {
		return nil, fmt.Errorf("decode value %q: not a single JSON value", encoded)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(encoded)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode value %q: %w", encoded, err)
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("decode number %q: %w", encoded, err)
		}
		return f, nil
	}
	return v, nil
}
