// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment following its `env` and
// `envPrefix` tags. Every variable that fails to convert is reported: the
// per-variable errors of env's aggregate are joined so callers can match
// them with errors.As.
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err == nil {
		return nil
	}

	var aggregate env.AggregateError
	if errors.As(err, &aggregate) {
		err = errors.Join(aggregate.Errors...)
	}

	return fmt.Errorf("error getting env configs: %w", err)
}
