package certs

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/finastra-engineering/aro-ops/pkg/util/azureclient/azuresdk/azsecrets"
	utilcert "github.com/finastra-engineering/aro-ops/pkg/util/cert"
	utilpem "github.com/finastra-engineering/aro-ops/pkg/util/pem"
)

// ValidationError marks failures which must abort the run before any cluster
// mutation, such as a key/certificate mismatch.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func validationErrorf(format string, a ...interface{}) error {
	return &ValidationError{message: fmt.Sprintf(format, a...)}
}

// IsValidationError reports whether err belongs to the validation class,
// which maps to exit code 2.
func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// Bundle is the certificate material for one run: private key, serving
// certificate and any issuer certificates supplied with it.
type Bundle struct {
	Key     *rsa.PrivateKey
	Certs   []*x509.Certificate
	Issuers []*x509.Certificate
}

func (b *Bundle) Leaf() *x509.Certificate {
	return b.Certs[0]
}

// Chain returns the certificates stored into the serving secrets: the leaf
// followed by the issuer chain.
func (b *Bundle) Chain() []*x509.Certificate {
	return append(b.Certs, b.Issuers...)
}

func (m *manager) loadBundle(ctx context.Context) error {
	var key *rsa.PrivateKey
	var certs []*x509.Certificate
	var err error

	if m.keyvault != nil {
		m.log.Printf("loading certificate from key vault secret %s", m.env.KeyVaultSecretName())

		secret, err := m.keyvault.GetSecret(ctx, m.env.KeyVaultSecretName(), "", nil)
		if err != nil {
			return err
		}

		key, certs, err = azsecrets.ParseSecretAsCertificate(secret)
		if err != nil {
			return err
		}
	} else {
		key, certs, err = parsePEMBundle(m.env.TLSKey(), m.env.TLSCertificate())
		if err != nil {
			return err
		}
	}

	var issuers []*x509.Certificate
	if ca := m.env.TLSCABundle(); ca != "" {
		_, issuers, err = utilpem.Parse([]byte(ca))
		if err != nil {
			return err
		}
	}

	m.bundle = &Bundle{
		Key:     key,
		Certs:   certs,
		Issuers: issuers,
	}
	return nil
}

func parsePEMBundle(keyPEM, certPEM string) (*rsa.PrivateKey, []*x509.Certificate, error) {
	key, _, err := utilpem.Parse([]byte(keyPEM))
	if err != nil {
		return nil, nil, err
	}
	if key == nil {
		return nil, nil, errors.New("no private key found")
	}

	_, certs, err := utilpem.Parse([]byte(certPEM))
	if err != nil {
		return nil, nil, err
	}
	if len(certs) == 0 {
		return nil, nil, errors.New("no certificate found")
	}

	return key, certs, nil
}

// validateBundle checks that the private key and leaf certificate belong
// together (by RSA modulus) before anything is written to the cluster, and
// that the certificate is usable for the cluster's hostnames.
func (m *manager) validateBundle(ctx context.Context) error {
	leaf := m.bundle.Leaf()

	match, err := utilcert.KeyMatchesCertificate(m.bundle.Key, leaf)
	if err != nil {
		return validationErrorf("%s", err)
	}
	if !match {
		return validationErrorf("private key does not match certificate %s", leaf.Subject.CommonName)
	}

	if utilcert.IsCertExpired(leaf) {
		return validationErrorf("certificate %s expired on %s", leaf.Subject.CommonName, leaf.NotAfter)
	}

	for _, host := range []string{m.apiHost(), m.ingressWildcardHost()} {
		if !utilcert.CoversHost(leaf, host) {
			m.log.Warnf("certificate %s does not cover %s", leaf.Subject.CommonName, host)
		}
	}

	m.log.Printf("certificate %s valid for %d more days, thumbprint %s",
		leaf.Subject.CommonName, utilcert.DaysUntilExpiration(leaf), utilcert.Thumbprint(leaf))
	return nil
}

func (m *manager) apiHost() string {
	return "api." + m.env.ClusterBaseDomain()
}

func (m *manager) ingressWildcardHost() string {
	return "*.apps." + m.env.ClusterBaseDomain()
}
