// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the configuration for values that would make the
// service misbehave at runtime. Struct tags cover ranges; duration
// fields are checked explicitly since validator has no tag for them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			ve := verrs[0]
			return fmt.Errorf("invalid value for %s: failed %q check", ve.Namespace(), ve.Tag())
		}
		return err
	}

	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	if !c.Security.RateLimitDisabled && c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", c.Security.RateLimitWindow)
	}

	return nil
}
