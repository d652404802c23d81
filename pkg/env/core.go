package env

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Core collects basic configuration information available to every
// subcommand: environment access, required-variable validation and the
// component logger.
type Core interface {
	IsLocalDevelopmentMode() bool
	GetEnv(string) string
	ValidateVars(...string) error
	Logger() *logrus.Entry
}

type core struct {
	cfg *viper.Viper

	isLocalDevelopmentMode bool

	componentLog *logrus.Entry
}

func (c *core) IsLocalDevelopmentMode() bool {
	return c.isLocalDevelopmentMode
}

func (c *core) GetEnv(name string) string {
	return c.cfg.GetString(name)
}

func (c *core) ValidateVars(vars ...string) error {
	return ValidateVars(c.cfg, vars...)
}

func (c *core) Logger() *logrus.Entry {
	return c.componentLog
}

func NewCore(log *logrus.Entry, component string, cfg *viper.Viper) Core {
	isLocalDevelopmentMode := IsLocalDevelopmentMode(cfg)
	if isLocalDevelopmentMode {
		log.Info("running in local development mode")
	}

	return &core{
		cfg:                    cfg,
		isLocalDevelopmentMode: isLocalDevelopmentMode,
		componentLog:           log.WithField("component", strings.ToLower(component)),
	}
}
