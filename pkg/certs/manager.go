package certs

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"time"

	configclient "github.com/openshift/client-go/config/clientset/versioned"
	operatorclient "github.com/openshift/client-go/operator/clientset/versioned"
	"github.com/sirupsen/logrus"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/finastra-engineering/aro-ops/pkg/env"
	"github.com/finastra-engineering/aro-ops/pkg/util/azureclient/azuresdk/azsecrets"
	"github.com/finastra-engineering/aro-ops/pkg/util/steps"
)

type Interface interface {
	Run(ctx context.Context) error
}

// manager contains everything needed to patch the serving certificates of an
// ARO cluster
type manager struct {
	log *logrus.Entry
	env env.Interface

	kubernetescli kubernetes.Interface
	configcli     configclient.Interface
	operatorcli   operatorclient.Interface

	keyvault azsecrets.Client

	bundle   *Bundle
	baseline *snapshot

	// set by the configure* steps so the convergence conditions know which
	// rollouts to wait for
	apiServerChanged bool
	changedIngresses []string
}

// New returns a certificate patcher manager. keyvault may be nil when the
// certificate material comes from the environment.
func New(log *logrus.Entry, _env env.Interface, restconfig *rest.Config, keyvault azsecrets.Client) (Interface, error) {
	kubernetescli, err := kubernetes.NewForConfig(restconfig)
	if err != nil {
		return nil, err
	}

	configcli, err := configclient.NewForConfig(restconfig)
	if err != nil {
		return nil, err
	}

	operatorcli, err := operatorclient.NewForConfig(restconfig)
	if err != nil {
		return nil, err
	}

	return &manager{
		log: log,
		env: _env,

		kubernetescli: kubernetescli,
		configcli:     configcli,
		operatorcli:   operatorcli,

		keyvault: keyvault,
	}, nil
}

// Run executes the patch pipeline: load and validate the certificate
// material, snapshot the current rollout state, apply the idempotent
// patches, then wait (best effort, bounded) for the cluster to settle.
func (m *manager) Run(ctx context.Context) error {
	toRun := []steps.Step{
		steps.Action(m.loadBundle),
		steps.Action(m.validateBundle),
		steps.Action(m.captureBaseline),
		steps.Action(m.ensureTrustBundle),
		steps.Action(m.configureAPIServerCertificate),
		steps.Action(m.configureIngressCertificate),
	}

	if m.env.ManagementIngressController() != "" {
		toRun = append(toRun, steps.Action(m.configureManagementIngressCertificate))
	}

	toRun = append(toRun,
		steps.Condition(m.apiServersStable, 30*time.Minute, false),
		steps.Condition(m.ingressControllersStable, 20*time.Minute, false),
	)

	_, err := steps.Run(ctx, m.log, toRun)
	return err
}
