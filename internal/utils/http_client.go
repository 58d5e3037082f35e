// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every request of the client adapter.
const UserAgent = "shopfloor-sync-client"

// HTTPClient is the resty client used by the remote store adapter.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client that sends and accepts JSON. Each call
// returns an independent client with its own connection pool.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent)

	return &HTTPClient{Client: client}
}
