package infranodes

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/finastra-engineering/aro-ops/pkg/util/ready"
)

// Condition functions reported to steps.Condition: a workload has converged
// when all of its pods are running with ready containers and every pod is
// scheduled on an infra node.

func (m *manager) routerPodsOnInfraNodes(ctx context.Context) (bool, error) {
	return m.podsOnInfraNodes(ctx, "openshift-ingress", "ingresscontroller.operator.openshift.io/deployment-ingresscontroller=default")
}

func (m *manager) registryPodsOnInfraNodes(ctx context.Context) (bool, error) {
	return m.podsOnInfraNodes(ctx, "openshift-image-registry", "docker-registry=default")
}

func (m *manager) monitoringPodsOnInfraNodes(ctx context.Context) (bool, error) {
	for _, labelSelector := range []string{
		"app=prometheus,prometheus=k8s",
		"app=alertmanager,alertmanager=main",
	} {
		ok, err := m.podsOnInfraNodes(ctx, "openshift-monitoring", labelSelector)
		if !ok || err != nil {
			return ok, err
		}
	}
	return true, nil
}

func (m *manager) podsOnInfraNodes(ctx context.Context, namespace, labelSelector string) (bool, error) {
	infraNodes, err := m.infraNodeNames(ctx)
	if err != nil {
		return false, nil
	}

	pods, err := m.kubernetescli.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return false, nil
	}

	if len(pods.Items) == 0 {
		return false, nil
	}

	for _, pod := range pods.Items {
		if !ready.PodIsRunning(&pod) {
			return false, nil
		}
		if !infraNodes[pod.Spec.NodeName] {
			return false, nil
		}
	}

	return true, nil
}

func (m *manager) infraNodeNames(ctx context.Context) (map[string]bool, error) {
	nodes, err := m.kubernetescli.CoreV1().Nodes().List(ctx, metav1.ListOptions{
		LabelSelector: infraNodeLabel,
	})
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(nodes.Items))
	for _, node := range nodes.Items {
		names[node.Name] = true
	}
	return names, nil
}
