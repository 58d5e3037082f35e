// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/shopfloor-sync/models"
)

// mapHTTPError turns a non-2xx response into a sentinel error. Anything that
// is not a caller mistake counts as a network failure, so the sync service
// leaves its queue and watermark untouched and retries on the next run.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", models.ErrValidation, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", models.ErrNotFound, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w: %s", models.ErrNetwork, ErrUnauthorized, body)
	default:
		return fmt.Errorf("%w: http %d: %s", models.ErrNetwork, resp.StatusCode(), body)
	}
}

// transportError wraps a failed round trip (refused connection, timeout).
func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s request: %w", models.ErrNetwork, op, err)
}
