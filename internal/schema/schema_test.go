// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/shopfloor-sync/models"
)

func TestDefault_IsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, DefaultName, s.Name)
	assert.Equal(t, DefaultVersion, s.Version)
	assert.Equal(t, []string{Orders, ProductionEntries}, s.SyncCollectionNames())
}

func TestDefault_SyncedCollectionsAvoidDeviceSequences(t *testing.T) {
	for _, c := range Default().SyncCollections() {
		assert.NotEqual(t, KeySequence, c.Key, "collection %q", c.Name)
	}
	pe, err := Default().Collection(ProductionEntries)
	require.NoError(t, err)
	assert.Equal(t, KeyUUID, pe.Key)
}

func TestSchema_Collection(t *testing.T) {
	s := Default()

	c, err := s.Collection(Orders)
	require.NoError(t, err)
	assert.Equal(t, "id", c.KeyPath)
	assert.True(t, c.SyncEnabled)

	_, err = s.Collection("nope")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSchema_Index(t *testing.T) {
	s := Default()

	_, idx, err := s.Index(ProductionEntries, "machine")
	require.NoError(t, err)
	assert.Equal(t, "machine", idx.Field)

	_, _, err = s.Index(ProductionEntries, "nope")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = s.Index("nope", "machine")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
	}{
		{
			name:   "empty name",
			schema: Schema{Version: 1},
		},
		{
			name:   "zero version",
			schema: Schema{Name: "x"},
		},
		{
			name: "reserved collection",
			schema: Schema{Name: "x", Version: 1, Collections: []Collection{
				{Name: "_queue", KeyPath: "id", Since: 1},
			}},
		},
		{
			name: "duplicate collection",
			schema: Schema{Name: "x", Version: 1, Collections: []Collection{
				{Name: "a", KeyPath: "id", Since: 1},
				{Name: "a", KeyPath: "id", Since: 1},
			}},
		},
		{
			name: "empty key path",
			schema: Schema{Name: "x", Version: 1, Collections: []Collection{
				{Name: "a", Since: 1},
			}},
		},
		{
			name: "collection from the future",
			schema: Schema{Name: "x", Version: 1, Collections: []Collection{
				{Name: "a", KeyPath: "id", Since: 2},
			}},
		},
		{
			name: "index older than collection",
			schema: Schema{Name: "x", Version: 3, Collections: []Collection{
				{Name: "a", KeyPath: "id", Since: 2, Indexes: []Index{{Name: "i", Field: "f", Since: 1}}},
			}},
		},
		{
			name: "duplicate index",
			schema: Schema{Name: "x", Version: 1, Collections: []Collection{
				{Name: "a", KeyPath: "id", Since: 1, Indexes: []Index{
					{Name: "i", Field: "f", Since: 1},
					{Name: "i", Field: "g", Since: 1},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.schema.Validate(), models.ErrValidation)
		})
	}
}

func TestCollection_KeyOf(t *testing.T) {
	c := Collection{Name: "a", KeyPath: "id"}

	k, ok := c.KeyOf(models.Record{"id": "A1"})
	assert.True(t, ok)
	assert.Equal(t, "A1", k)

	_, ok = c.KeyOf(models.Record{"name": "x"})
	assert.False(t, ok)

	_, ok = c.KeyOf(models.Record{"id": ""})
	assert.False(t, ok)

	_, ok = c.KeyOf(models.Record{"id": nil})
	assert.False(t, ok)

	assert.Equal(t, models.Record{"id": 7}, c.KeyRecord(7))
}

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "int", in: 5, want: "5"},
		{name: "int64", in: int64(5), want: "5"},
		{name: "float integral", in: float64(5), want: "5"},
		{name: "float", in: 2.5, want: "2.5"},
		{name: "string", in: "5", want: `"5"`},
		{name: "bool", in: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := EncodeValue(make(chan int))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEncodeValue_TypedKeysDiffer(t *testing.T) {
	n, err := EncodeValue(5)
	require.NoError(t, err)
	s, err := EncodeValue("5")
	require.NoError(t, err)
	assert.NotEqual(t, n, s)
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue("5")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, err = DecodeValue("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	v, err = DecodeValue(`"A1"`)
	require.NoError(t, err)
	assert.Equal(t, "A1", v)

	_, err = DecodeValue("{")
	assert.Error(t, err)

	_, err = DecodeValue("9b1deb4d-3b7d")
	assert.Error(t, err, "trailing data after a number")
}
