package main

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/finastra-engineering/aro-ops/pkg/certs"
	"github.com/finastra-engineering/aro-ops/pkg/env"
	"github.com/finastra-engineering/aro-ops/pkg/util/azureclient/azuresdk/azsecrets"
)

func patchCertificates(ctx context.Context, log *logrus.Entry) error {
	cfg := viper.New()
	cfg.AutomaticEnv()

	_env, err := env.NewEnv(log, "patch-certificates", cfg)
	if err != nil {
		return err
	}

	err = _env.ValidateVars(env.EnvClusterBaseDomain)
	if err != nil {
		return err
	}

	// certificate material comes either from the key vault or from the
	// environment
	var keyvault azsecrets.Client
	if _env.KeyVaultURI() != "" {
		err = _env.ValidateVars(env.EnvKeyVaultSecretName)
		if err != nil {
			return err
		}

		credential, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return err
		}

		client, err := azsecrets.NewClient(_env.KeyVaultURI(), credential, azcore.ClientOptions{})
		if err != nil {
			return err
		}
		keyvault = client
	} else {
		err = _env.ValidateVars(env.EnvTLSCertificate, env.EnvTLSKey)
		if err != nil {
			return err
		}
	}

	restconfig, err := clusterRestConfig(ctx, _env)
	if err != nil {
		return err
	}

	m, err := certs.New(_env.Logger(), _env, restconfig, keyvault)
	if err != nil {
		return err
	}

	return m.Run(ctx)
}
