// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed device bearer token together with its parsed form.
type Token struct {
	Token        *jwt.Token `json:"-"`
	SignedString string     `json:"-"`
	DeviceID     string     `json:"-"`
	ExpiresAt    time.Time  `json:"-"`
}
