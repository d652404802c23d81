package pem

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// Parse decodes all PEM blocks in b, returning the RSA private key and the
// certificates found. Later key blocks overwrite earlier ones; certificates
// keep their order of appearance (leaf first by convention).
func Parse(b []byte) (key *rsa.PrivateKey, certs []*x509.Certificate, err error) {
	for {
		var block *pem.Block
		block, b = pem.Decode(b)
		if block == nil {
			break
		}

		switch block.Type {
		case "RSA PRIVATE KEY":
			key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
			if err != nil {
				return nil, nil, err
			}

		case "PRIVATE KEY":
			k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, nil, err
			}
			var ok bool
			key, ok = k.(*rsa.PrivateKey)
			if !ok {
				return nil, nil, fmt.Errorf("unimplemented private key type %T in PKCS#8 wrapping", k)
			}

		case "CERTIFICATE":
			c, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, nil, err
			}
			certs = append(certs, c)

		default:
			return nil, nil, fmt.Errorf("unimplemented block type %s", block.Type)
		}
	}

	return key, certs, nil
}

type Encodable interface {
	*x509.Certificate | *rsa.PrivateKey
}

// Encode serialises certificates and RSA private keys back to PEM.
func Encode[V Encodable](inputs ...V) (r []byte, err error) {
	for _, i := range inputs {
		var block pem.Block

		switch t := any(i).(type) {
		case *x509.Certificate:
			block = pem.Block{Type: "CERTIFICATE", Bytes: t.Raw}
		case *rsa.PrivateKey:
			block = pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(t)}
		default:
			return nil, fmt.Errorf("unable to identify %v", t)
		}

		r = append(r, pem.EncodeToMemory(&block)...)
	}
	return
}
