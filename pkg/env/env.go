package env

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	EnvKubeconfig           = "KUBECONFIG"
	EnvSubscriptionID       = "AZURE_SUBSCRIPTION_ID"
	EnvClusterResourceGroup = "CLUSTER_RESOURCE_GROUP"
	EnvClusterName          = "CLUSTER_NAME"
	EnvClusterBaseDomain    = "CLUSTER_BASE_DOMAIN"

	EnvTLSCertificate     = "TLS_CERTIFICATE"
	EnvTLSKey             = "TLS_KEY"
	EnvTLSCABundle        = "TLS_CA_BUNDLE"
	EnvKeyVaultURI        = "KEYVAULT_URI"
	EnvKeyVaultSecretName = "KEYVAULT_SECRET_NAME"

	EnvCertificateName             = "CERTIFICATE_NAME"
	EnvManagementIngressController = "MANAGEMENT_INGRESS_CONTROLLER"
	EnvForceApply                  = "FORCE_APPLY"
	EnvRouterReplicas              = "ROUTER_REPLICAS"
)

const defaultCertificateName = "customer-tls"

// Interface is the run context handed to the subcommand managers: typed
// access to every configuration variable the tool understands.
type Interface interface {
	Core

	Kubeconfig() string
	SubscriptionID() string
	ClusterResourceGroup() string
	ClusterName() string
	ClusterBaseDomain() string

	TLSCertificate() string
	TLSKey() string
	TLSCABundle() string
	KeyVaultURI() string
	KeyVaultSecretName() string

	CertificateName() string
	ManagementIngressController() string
	ForceApply() bool
	RouterReplicas() (int32, error)
}

type env struct {
	Core
}

// NewEnv returns the run context for a subcommand. Which variables are
// required is for the subcommand to decide via ValidateVars; accessors on
// unset variables return zero values.
func NewEnv(log *logrus.Entry, component string, cfg *viper.Viper) (Interface, error) {
	return &env{
		Core: NewCore(log, component, cfg),
	}, nil
}

func (e *env) Kubeconfig() string {
	return e.GetEnv(EnvKubeconfig)
}

func (e *env) SubscriptionID() string {
	return e.GetEnv(EnvSubscriptionID)
}

func (e *env) ClusterResourceGroup() string {
	return e.GetEnv(EnvClusterResourceGroup)
}

func (e *env) ClusterName() string {
	return e.GetEnv(EnvClusterName)
}

func (e *env) ClusterBaseDomain() string {
	return e.GetEnv(EnvClusterBaseDomain)
}

// TLSCertificate returns the certificate PEM blob. Deployment pipelines pass
// PEM material with literal `\n` sequences; these are normalized to real
// newlines.
func (e *env) TLSCertificate() string {
	return normalizePEM(e.GetEnv(EnvTLSCertificate))
}

func (e *env) TLSKey() string {
	return normalizePEM(e.GetEnv(EnvTLSKey))
}

func (e *env) TLSCABundle() string {
	return normalizePEM(e.GetEnv(EnvTLSCABundle))
}

func (e *env) KeyVaultURI() string {
	return e.GetEnv(EnvKeyVaultURI)
}

func (e *env) KeyVaultSecretName() string {
	return e.GetEnv(EnvKeyVaultSecretName)
}

func (e *env) CertificateName() string {
	if name := e.GetEnv(EnvCertificateName); name != "" {
		return name
	}
	return defaultCertificateName
}

func (e *env) ManagementIngressController() string {
	return e.GetEnv(EnvManagementIngressController)
}

func (e *env) ForceApply() bool {
	force, err := strconv.ParseBool(e.GetEnv(EnvForceApply))
	return err == nil && force
}

// RouterReplicas returns the desired router replica count, or 0 when unset.
func (e *env) RouterReplicas() (int32, error) {
	s := e.GetEnv(EnvRouterReplicas)
	if s == "" {
		return 0, nil
	}

	replicas, err := strconv.ParseInt(s, 10, 32)
	if err != nil || replicas < 1 {
		return 0, fmt.Errorf("environment variable %q invalid: %q", EnvRouterReplicas, s)
	}

	return int32(replicas), nil
}

func normalizePEM(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
