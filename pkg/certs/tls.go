package certs

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	configv1 "github.com/openshift/api/config/v1"
	corev1 "k8s.io/api/core/v1"
	kerrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/util/retry"

	utilpem "github.com/finastra-engineering/aro-ops/pkg/util/pem"
)

func (m *manager) apiServerSecretName() string {
	return m.env.CertificateName() + "-apiserver"
}

func (m *manager) ingressSecretName() string {
	return m.env.CertificateName() + "-ingress"
}

func (m *manager) caBundleName() string {
	return m.env.CertificateName() + "-ca-bundle"
}

// ensureTLSSecret creates or updates a kubernetes.io/tls secret holding the
// bundle's key and certificate chain.
func (m *manager) ensureTLSSecret(ctx context.Context, secrets corev1client.SecretInterface, secretName string) error {
	cb, err := utilpem.Encode(m.bundle.Chain()...)
	if err != nil {
		return err
	}

	kb, err := utilpem.Encode(m.bundle.Key)
	if err != nil {
		return err
	}

	data := map[string][]byte{
		corev1.TLSCertKey:       cb,
		corev1.TLSPrivateKeyKey: kb,
	}

	_, err = secrets.Create(ctx, &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name: secretName,
		},
		Data: data,
		Type: corev1.SecretTypeTLS,
	}, metav1.CreateOptions{})
	if kerrors.IsAlreadyExists(err) {
		err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
			s, err := secrets.Get(ctx, secretName, metav1.GetOptions{})
			if err != nil {
				return err
			}

			s.Data = data
			s.Type = corev1.SecretTypeTLS

			_, err = secrets.Update(ctx, s, metav1.UpdateOptions{})
			return err
		})
	}
	return err
}

// ensureTrustBundle publishes the issuer chain as a config map in
// openshift-config and points the cluster proxy's trustedCA at it. Skipped
// when no issuer material was supplied, or when the proxy already references
// the config map (unless forced).
func (m *manager) ensureTrustBundle(ctx context.Context) error {
	if len(m.bundle.Issuers) == 0 {
		m.log.Print("no issuer chain supplied, leaving trust bundle unchanged")
		return nil
	}

	proxy, err := m.configcli.ConfigV1().Proxies().Get(ctx, "cluster", metav1.GetOptions{})
	if err != nil {
		return err
	}

	if proxy.Spec.TrustedCA.Name == m.caBundleName() && !m.env.ForceApply() {
		m.log.Printf("proxy already references trust bundle %s, skipping", m.caBundleName())
		return nil
	}

	cb, err := utilpem.Encode(m.bundle.Issuers...)
	if err != nil {
		return err
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name: m.caBundleName(),
		},
		Data: map[string]string{
			"ca-bundle.crt": string(cb),
		},
	}

	configmaps := m.kubernetescli.CoreV1().ConfigMaps("openshift-config")
	_, err = configmaps.Create(ctx, cm, metav1.CreateOptions{})
	if kerrors.IsAlreadyExists(err) {
		err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
			existing, err := configmaps.Get(ctx, m.caBundleName(), metav1.GetOptions{})
			if err != nil {
				return err
			}

			existing.Data = cm.Data

			_, err = configmaps.Update(ctx, existing, metav1.UpdateOptions{})
			return err
		})
	}
	if err != nil {
		return err
	}

	m.log.Printf("pointing proxy trustedCA at %s", m.caBundleName())
	return retry.RetryOnConflict(retry.DefaultRetry, func() error {
		proxy, err := m.configcli.ConfigV1().Proxies().Get(ctx, "cluster", metav1.GetOptions{})
		if err != nil {
			return err
		}

		proxy.Spec.TrustedCA.Name = m.caBundleName()

		_, err = m.configcli.ConfigV1().Proxies().Update(ctx, proxy, metav1.UpdateOptions{})
		return err
	})
}

// configureAPIServerCertificate points the API server's named serving
// certificate for api.<domain> at the bundle's secret. Skipped when the
// named certificate already references the secret (unless forced).
func (m *manager) configureAPIServerCertificate(ctx context.Context) error {
	apiserver, err := m.configcli.ConfigV1().APIServers().Get(ctx, "cluster", metav1.GetOptions{})
	if err != nil {
		return err
	}

	if apiServerReferencesSecret(apiserver, m.apiHost(), m.apiServerSecretName()) && !m.env.ForceApply() {
		m.log.Printf("apiserver already references secret %s, skipping", m.apiServerSecretName())
		return nil
	}

	err = m.ensureTLSSecret(ctx, m.kubernetescli.CoreV1().Secrets("openshift-config"), m.apiServerSecretName())
	if err != nil {
		return err
	}

	m.log.Printf("patching apiserver named certificate for %s", m.apiHost())
	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		apiserver, err := m.configcli.ConfigV1().APIServers().Get(ctx, "cluster", metav1.GetOptions{})
		if err != nil {
			return err
		}

		apiserver.Spec.ServingCerts.NamedCertificates = []configv1.APIServerNamedServingCert{
			{
				Names: []string{
					m.apiHost(),
				},
				ServingCertificate: configv1.SecretNameReference{
					Name: m.apiServerSecretName(),
				},
			},
		}

		_, err = m.configcli.ConfigV1().APIServers().Update(ctx, apiserver, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return err
	}

	m.apiServerChanged = true
	return nil
}

func apiServerReferencesSecret(apiserver *configv1.APIServer, host, secretName string) bool {
	for _, nc := range apiserver.Spec.ServingCerts.NamedCertificates {
		if nc.ServingCertificate.Name != secretName {
			continue
		}
		for _, name := range nc.Names {
			if name == host {
				return true
			}
		}
	}
	return false
}

func (m *manager) configureIngressCertificate(ctx context.Context) error {
	return m.configureIngressControllerCertificate(ctx, "default", m.ingressSecretName())
}

// configureManagementIngressCertificate replaces the certificate of the
// additional (management) ingress controller named in the environment.
func (m *manager) configureManagementIngressCertificate(ctx context.Context) error {
	controller := m.env.ManagementIngressController()
	return m.configureIngressControllerCertificate(ctx, controller, m.env.CertificateName()+"-"+controller)
}

func (m *manager) configureIngressControllerCertificate(ctx context.Context, controller, secretName string) error {
	ic, err := m.operatorcli.OperatorV1().IngressControllers("openshift-ingress-operator").Get(ctx, controller, metav1.GetOptions{})
	if err != nil {
		return err
	}

	if ic.Spec.DefaultCertificate != nil && ic.Spec.DefaultCertificate.Name == secretName && !m.env.ForceApply() {
		m.log.Printf("ingresscontroller %s already references secret %s, skipping", controller, secretName)
		return nil
	}

	err = m.ensureTLSSecret(ctx, m.kubernetescli.CoreV1().Secrets("openshift-ingress"), secretName)
	if err != nil {
		return err
	}

	m.log.Printf("patching ingresscontroller %s default certificate", controller)
	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		ic, err := m.operatorcli.OperatorV1().IngressControllers("openshift-ingress-operator").Get(ctx, controller, metav1.GetOptions{})
		if err != nil {
			return err
		}

		ic.Spec.DefaultCertificate = &corev1.LocalObjectReference{
			Name: secretName,
		}

		_, err = m.operatorcli.OperatorV1().IngressControllers("openshift-ingress-operator").Update(ctx, ic, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return err
	}

	m.changedIngresses = append(m.changedIngresses, controller)
	return nil
}
