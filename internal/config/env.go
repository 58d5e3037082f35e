// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills the `env`-tagged fields of cfg. Unset variables keep the
// zero value so the lower-precedence layers can supply them during merge.
func parseEnv(cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
