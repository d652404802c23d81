package cert

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"crypto/x509"
	"testing"
	"time"

	utiltls "github.com/finastra-engineering/aro-ops/pkg/util/tls"
)

func TestKeyMatchesCertificate(t *testing.T) {
	key, certs, err := utiltls.GenerateKeyAndCertificate("server.example.com", nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}

	otherKey, _, err := utiltls.GenerateKeyAndCertificate("other.example.com", nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}

	match, err := KeyMatchesCertificate(key, certs[0])
	if err != nil {
		t.Fatal(err)
	}
	if !match {
		t.Error("matching pair reported as mismatch")
	}

	match, err = KeyMatchesCertificate(otherKey, certs[0])
	if err != nil {
		t.Fatal(err)
	}
	if match {
		t.Error("mismatched pair reported as match")
	}
}

func TestIsCertExpired(t *testing.T) {
	_, expired, err := utiltls.GenerateTestKeyAndCertificate("expired.example.com", nil, nil, false, func(template *x509.Certificate) {
		template.NotBefore = time.Now().Add(-2 * time.Hour)
		template.NotAfter = time.Now().Add(-time.Hour)
	})
	if err != nil {
		t.Fatal(err)
	}

	_, valid, err := utiltls.GenerateKeyAndCertificate("valid.example.com", nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}

	if !IsCertExpired(expired[0]) {
		t.Error("expired certificate reported as valid")
	}
	if IsCertExpired(valid[0]) {
		t.Error("valid certificate reported as expired")
	}
	if got := DaysUntilExpiration(valid[0]); got < 364 || got > 365 {
		t.Error(got)
	}
}

func TestCoversHost(t *testing.T) {
	_, certs, err := utiltls.GenerateTestKeyAndCertificate("ingress", nil, nil, false, func(template *x509.Certificate) {
		template.DNSNames = []string{"*.apps.cluster.example.com", "api.cluster.example.com"}
	})
	if err != nil {
		t.Fatal(err)
	}

	for host, want := range map[string]bool{
		"console.apps.cluster.example.com": true,
		"api.cluster.example.com":          true,
		"api.other.example.com":            false,
	} {
		if got := CoversHost(certs[0], host); got != want {
			t.Errorf("%s: %t", host, got)
		}
	}
}

func TestThumbprint(t *testing.T) {
	_, certs, err := utiltls.GenerateKeyAndCertificate("server.example.com", nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}

	tp := Thumbprint(certs[0])
	if len(tp) != 64 {
		t.Error(tp)
	}
	if tp != Thumbprint(certs[0]) {
		t.Error("thumbprint not stable")
	}
}
