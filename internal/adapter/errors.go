// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrUnauthorized is returned when the remote rejects the device token.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrInvalidAddress is returned for an empty or malformed remote address.
	ErrInvalidAddress = errors.New("invalid adapter http address")
)
