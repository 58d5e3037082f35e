// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by the client and the server:
// typed context keys, JSON response writing, the HTTP client wrapper and
// device JWT generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// DeviceIDCtxKey is the key under which the auth middleware stores the
// authenticated device id.
//
//	ctx := context.WithValue(ctx, utils.DeviceIDCtxKey, "device-lathe-3")
var DeviceIDCtxKey = contextKey("deviceID")

// GetDeviceIDFromContext returns the authenticated device id, if any.
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok && deviceID != ""
}
