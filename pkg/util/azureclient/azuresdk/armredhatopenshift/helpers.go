package armredhatopenshift

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"encoding/base64"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redhatopenshift/armredhatopenshift"
)

// ExtractAdminKubeconfig decodes the base64-encoded admin kubeconfig from a
// ListAdminCredentials response.
func ExtractAdminKubeconfig(response armredhatopenshift.OpenShiftClustersClientListAdminCredentialsResponse) ([]byte, error) {
	if response.Kubeconfig == nil {
		return nil, errors.New("credentials response has no kubeconfig")
	}

	return base64.StdEncoding.DecodeString(*response.Kubeconfig)
}
