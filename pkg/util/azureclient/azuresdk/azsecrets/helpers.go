package azsecrets

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	utilpem "github.com/finastra-engineering/aro-ops/pkg/util/pem"
)

// ParseSecretAsCertificate parses the value of a KeyVault secret as a set of
// PEM blocks containing a private key and certificate chain.
func ParseSecretAsCertificate(secret azsecrets.GetSecretResponse) (*rsa.PrivateKey, []*x509.Certificate, error) {
	if secret.Value == nil {
		return nil, nil, errors.New("secret response has no value")
	}

	key, certs, err := utilpem.Parse([]byte(*secret.Value))
	if err != nil {
		return nil, nil, err
	}

	if key == nil {
		return nil, nil, fmt.Errorf("no private key found")
	}

	if len(certs) == 0 {
		return nil, nil, fmt.Errorf("no certificate found")
	}

	return key, certs, nil
}
