package main

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/finastra-engineering/aro-ops/pkg/env"
	"github.com/finastra-engineering/aro-ops/pkg/infranodes"
)

func moveToInfra(ctx context.Context, log *logrus.Entry) error {
	cfg := viper.New()
	cfg.AutomaticEnv()

	_env, err := env.NewEnv(log, "move-to-infra", cfg)
	if err != nil {
		return err
	}

	restconfig, err := clusterRestConfig(ctx, _env)
	if err != nil {
		return err
	}

	m, err := infranodes.New(_env.Logger(), _env, restconfig)
	if err != nil {
		return err
	}

	return m.Run(ctx)
}
