// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"fmt"

	"github.com/MKhiriev/shopfloor-sync/models"
)

// ErrNoActiveProvider is returned by data calls made before Resolve succeeded.
var ErrNoActiveProvider = fmt.Errorf("%w: resolve has not succeeded", models.ErrProviderUnavailable)
