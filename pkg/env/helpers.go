package env

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

const EnvMode = "ARO_OPS_MODE"

// ValidateVars iterates over all the passed in vars and validates that they
// are not empty. An error is returned listing every unset variable.
func ValidateVars(cfg *viper.Viper, vars ...string) error {
	var errs error

	for _, v := range vars {
		if cfg.GetString(v) == "" {
			errs = multierror.Append(errs, fmt.Errorf("environment variable %q unset", v))
		}
	}

	return errs
}

func IsLocalDevelopmentMode(cfg *viper.Viper) bool {
	return strings.EqualFold(cfg.GetString(EnvMode), "development")
}
