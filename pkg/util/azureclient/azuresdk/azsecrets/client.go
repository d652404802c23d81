package azsecrets

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

type Client interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

type ArmClient struct {
	*azsecrets.Client
}

var _ Client = &ArmClient{}

func NewClient(vaultURL string, credential azcore.TokenCredential, options azcore.ClientOptions) (ArmClient, error) {
	azSecretsOptions := azsecrets.ClientOptions{
		ClientOptions: options,
	}
	_client, err := azsecrets.NewClient(vaultURL, credential, &azSecretsOptions)
	return ArmClient{
		Client: _client,
	}, err
}
