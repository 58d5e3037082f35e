// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalJSON_NormalizesNumbers(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`{"id":7,"ratio":0.5,"nested":{"n":3},"list":[1,2.5,"x"]}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, int64(7), rec["id"])
	assert.Equal(t, 0.5, rec["ratio"])
	assert.Equal(t, map[string]any{"n": int64(3)}, rec["nested"])
	assert.Equal(t, []any{int64(1), 2.5, "x"}, rec["list"])
}

func TestRecord_UnmarshalJSON_InsideStructs(t *testing.T) {
	var resp ChangesResponse
	err := json.Unmarshal([]byte(`{"changes":[{"id":1}],"deleted":[2],"server_time":"9"}`), &resp)
	require.NoError(t, err)

	require.Len(t, resp.Changes, 1)
	assert.Equal(t, int64(1), resp.Changes[0]["id"])
	assert.Equal(t, "9", resp.ServerTime)
}

func TestRecord_UnmarshalJSON_NullAndInvalid(t *testing.T) {
	rec := Record{"x": 1}
	require.NoError(t, json.Unmarshal([]byte(`null`), &rec))
	assert.Nil(t, rec)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &rec))
}

func TestRecord_Clone(t *testing.T) {
	orig := Record{"id": "A1"}
	cp := orig.Clone()
	cp["id"] = "B2"

	assert.Equal(t, "A1", orig["id"])
	assert.Nil(t, Record(nil).Clone())
}

func TestProviderKind(t *testing.T) {
	assert.Equal(t, ProviderLocal, ProviderRemote.Other())
	assert.Equal(t, ProviderRemote, ProviderLocal.Other())
	assert.Equal(t, ProviderRemote, KindFor(true))
	assert.Equal(t, ProviderLocal, KindFor(false))
}

func TestBatchRequest_Len(t *testing.T) {
	assert.Equal(t, 3, BatchRequest{Upserts: []Record{{}, {}}, Deletes: []any{1}}.Len())
	assert.Equal(t, 1, BatchRequest{
		Upserts:    []Record{{}, {}},
		Operations: []BatchOperation{{Op: OpUpsert, Key: 1}},
	}.Len())
}
