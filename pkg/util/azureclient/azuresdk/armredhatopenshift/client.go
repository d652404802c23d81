package armredhatopenshift

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redhatopenshift/armredhatopenshift"
)

type OpenShiftClustersClient interface {
	Get(ctx context.Context, resourceGroupName string, resourceName string, options *armredhatopenshift.OpenShiftClustersClientGetOptions) (armredhatopenshift.OpenShiftClustersClientGetResponse, error)
	ListAdminCredentials(ctx context.Context, resourceGroupName string, resourceName string, options *armredhatopenshift.OpenShiftClustersClientListAdminCredentialsOptions) (armredhatopenshift.OpenShiftClustersClientListAdminCredentialsResponse, error)
}

type ArmClient struct {
	*armredhatopenshift.OpenShiftClustersClient
}

var _ OpenShiftClustersClient = &ArmClient{}

func NewOpenShiftClustersClient(subscriptionID string, credential azcore.TokenCredential, options *arm.ClientOptions) (ArmClient, error) {
	_client, err := armredhatopenshift.NewOpenShiftClustersClient(subscriptionID, credential, options)
	return ArmClient{
		OpenShiftClustersClient: _client,
	}, err
}
