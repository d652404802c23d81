package main

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"k8s.io/client-go/rest"

	"github.com/finastra-engineering/aro-ops/pkg/env"
	"github.com/finastra-engineering/aro-ops/pkg/util/azureclient/azuresdk/armredhatopenshift"
	"github.com/finastra-engineering/aro-ops/pkg/util/restconfig"
)

// clusterRestConfig resolves cluster credentials once at startup: an
// explicit kubeconfig wins; otherwise the admin kubeconfig is fetched from
// the ARO resource provider.
func clusterRestConfig(ctx context.Context, _env env.Interface) (*rest.Config, error) {
	if kubeconfig := _env.Kubeconfig(); kubeconfig != "" {
		_env.Logger().Printf("using kubeconfig %s", kubeconfig)
		return restconfig.RestConfigFromFile(kubeconfig)
	}

	err := _env.ValidateVars(env.EnvSubscriptionID, env.EnvClusterResourceGroup, env.EnvClusterName)
	if err != nil {
		return nil, err
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}

	clustersClient, err := armredhatopenshift.NewOpenShiftClustersClient(_env.SubscriptionID(), credential, nil)
	if err != nil {
		return nil, err
	}

	_env.Logger().Printf("fetching admin credentials for cluster %s", _env.ClusterName())
	response, err := clustersClient.ListAdminCredentials(ctx, _env.ClusterResourceGroup(), _env.ClusterName(), nil)
	if err != nil {
		return nil, err
	}

	kubeconfig, err := armredhatopenshift.ExtractAdminKubeconfig(response)
	if err != nil {
		return nil, err
	}

	return restconfig.RestConfig(kubeconfig)
}
