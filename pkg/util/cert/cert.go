package cert

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"time"
)

func IsCertExpired(cert *x509.Certificate) bool {
	return time.Now().After(cert.NotAfter)
}

func DaysUntilExpiration(cert *x509.Certificate) int {
	return int(time.Until(cert.NotAfter) / (24 * time.Hour))
}

// Thumbprint returns the SHA-256 string thumbprint of the certificate in uppercase hex
func Thumbprint(cert *x509.Certificate) string {
	return fmt.Sprintf("%X", sha256.Sum256(cert.Raw))
}

// KeyMatchesCertificate reports whether the RSA modulus of key equals the
// modulus of the certificate's public key, i.e. whether the pair belongs
// together.
func KeyMatchesCertificate(key *rsa.PrivateKey, cert *x509.Certificate) (bool, error) {
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return false, fmt.Errorf("unimplemented public key type %T", cert.PublicKey)
	}

	return pub.N.Cmp(key.N) == 0 && pub.E == key.E, nil
}

// CoversHost reports whether the certificate is valid for the given host.
func CoversHost(cert *x509.Certificate, host string) bool {
	return cert.VerifyHostname(host) == nil
}
