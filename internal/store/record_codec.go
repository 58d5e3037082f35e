// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/shopfloor-sync/models"
)

func encodeRecord(rec models.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}
	return data, nil
}

// decodeRecord parses a stored document. Integral numbers come back as int64
// and other numbers as float64, so keys keep their type across a round trip.
func decodeRecord(data []byte) (models.Record, error) {
	var rec models.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return rec, nil
}

// numericKey returns the key as float64 for ordering, or nil for non-numbers.
func numericKey(key any) any {
	switch k := key.(type) {
	case int:
		return float64(k)
	case int32:
		return float64(k)
	case int64:
		return float64(k)
	case float32:
		return float64(k)
	case float64:
		return k
	case json.Number:
		f, err := k.Float64()
		if err != nil {
			return nil
		}
		return f
	default:
		return nil
	}
}

// integerKey reports the key as int64 when it is an integral number.
func integerKey(key any) (int64, bool) {
	switch k := key.(type) {
	case int:
		return int64(k), true
	case int32:
		return int64(k), true
	case int64:
		return k, true
	case float64:
		if k == float64(int64(k)) {
			return int64(k), true
		}
	case json.Number:
		if i, err := k.Int64(); err == nil {
			return i, true
		}
	}
	return 0, false
}
