package infranodes

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"
	"time"

	imageregistryclient "github.com/openshift/client-go/imageregistry/clientset/versioned"
	operatorclient "github.com/openshift/client-go/operator/clientset/versioned"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/finastra-engineering/aro-ops/pkg/env"
	"github.com/finastra-engineering/aro-ops/pkg/util/ready"
	"github.com/finastra-engineering/aro-ops/pkg/util/steps"
)

const infraNodeLabel = "node-role.kubernetes.io/infra"

type Interface interface {
	Run(ctx context.Context) error
}

// manager relocates the default router, the internal image registry and the
// cluster monitoring stack onto infra nodes.
type manager struct {
	log *logrus.Entry
	env env.Interface

	kubernetescli    kubernetes.Interface
	operatorcli      operatorclient.Interface
	imageregistrycli imageregistryclient.Interface

	jsonHandle *codec.JsonHandle
}

func New(log *logrus.Entry, _env env.Interface, restconfig *rest.Config) (Interface, error) {
	kubernetescli, err := kubernetes.NewForConfig(restconfig)
	if err != nil {
		return nil, err
	}

	operatorcli, err := operatorclient.NewForConfig(restconfig)
	if err != nil {
		return nil, err
	}

	imageregistrycli, err := imageregistryclient.NewForConfig(restconfig)
	if err != nil {
		return nil, err
	}

	return &manager{
		log: log,
		env: _env,

		kubernetescli:    kubernetescli,
		operatorcli:      operatorcli,
		imageregistrycli: imageregistrycli,

		jsonHandle: new(codec.JsonHandle),
	}, nil
}

// Run moves each workload in turn, waiting (best effort, bounded) after
// each mutation for the affected pods to come up on infra nodes before
// touching the next workload.
func (m *manager) Run(ctx context.Context) error {
	toRun := []steps.Step{
		steps.Action(m.validateInfraNodes),
		steps.Action(m.moveRouter),
		steps.Condition(m.routerPodsOnInfraNodes, 20*time.Minute, false),
		steps.Action(m.moveImageRegistry),
		steps.Condition(m.registryPodsOnInfraNodes, 10*time.Minute, false),
		steps.Action(m.moveMonitoring),
		steps.Condition(m.monitoringPodsOnInfraNodes, 20*time.Minute, false),
	}

	_, err := steps.Run(ctx, m.log, toRun)
	return err
}

// validateInfraNodes requires at least one ready node carrying the infra
// role before any workload is repointed at it.
func (m *manager) validateInfraNodes(ctx context.Context) error {
	nodes, err := m.kubernetescli.CoreV1().Nodes().List(ctx, metav1.ListOptions{
		LabelSelector: infraNodeLabel,
	})
	if err != nil {
		return err
	}

	readyNodes := 0
	for _, node := range nodes.Items {
		if ready.NodeIsReady(&node) {
			readyNodes++
		}
	}

	if readyNodes == 0 {
		return fmt.Errorf("no ready node labelled %s found", infraNodeLabel)
	}

	m.log.Printf("found %d ready infra node(s)", readyNodes)
	return nil
}

func infraNodeSelector() map[string]string {
	return map[string]string{
		infraNodeLabel: "",
	}
}

func infraTolerations() []corev1.Toleration {
	return []corev1.Toleration{
		{
			Key:      infraNodeLabel,
			Operator: corev1.TolerationOpExists,
			Effect:   corev1.TaintEffectNoSchedule,
		},
	}
}
