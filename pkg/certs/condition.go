package certs

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	configv1 "github.com/openshift/api/config/v1"
	operatorv1 "github.com/openshift/api/operator/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/finastra-engineering/aro-ops/pkg/util/ready"
)

// Condition functions reported to steps.Condition. They return false rather
// than an error on read failures: the condition is retried until its bounded
// timeout.

// apiServersStable waits for the kube-apiserver operator to have finished a
// rollout newer than the baseline and settled.
func (m *manager) apiServersStable(ctx context.Context) (bool, error) {
	if !m.apiServerChanged {
		return true, nil
	}

	co, err := m.configcli.ConfigV1().ClusterOperators().Get(ctx, "kube-apiserver", metav1.GetOptions{})
	if err != nil {
		return false, nil
	}

	if !clusterOperatorIsStable(co) {
		return false, nil
	}

	return operatorConditionTransition(co, configv1.OperatorProgressing).After(m.baseline.apiServerProgressingSince), nil
}

// ingressControllersStable waits for every patched ingress controller's
// router deployment to have rolled past the baseline generation and become
// ready again.
func (m *manager) ingressControllersStable(ctx context.Context) (bool, error) {
	for _, controller := range m.changedIngresses {
		ic, err := m.operatorcli.OperatorV1().IngressControllers("openshift-ingress-operator").Get(ctx, controller, metav1.GetOptions{})
		if err != nil {
			return false, nil
		}
		if ic.Status.ObservedGeneration != ic.Generation {
			return false, nil
		}
		if !ingressControllerIsAvailable(ic) {
			return false, nil
		}

		d, err := m.kubernetescli.AppsV1().Deployments("openshift-ingress").Get(ctx, "router-"+controller, metav1.GetOptions{})
		if err != nil {
			return false, nil
		}
		if d.Generation <= m.baseline.routerGeneration[controller] {
			return false, nil
		}
		if !ready.DeploymentIsReady(d) {
			return false, nil
		}
	}

	return true, nil
}

func clusterOperatorIsStable(co *configv1.ClusterOperator) bool {
	conditions := make(map[configv1.ClusterStatusConditionType]configv1.ConditionStatus, len(co.Status.Conditions))
	for _, cond := range co.Status.Conditions {
		conditions[cond.Type] = cond.Status
	}

	return conditions[configv1.OperatorAvailable] == configv1.ConditionTrue &&
		conditions[configv1.OperatorProgressing] == configv1.ConditionFalse &&
		conditions[configv1.OperatorDegraded] == configv1.ConditionFalse
}

func ingressControllerIsAvailable(ic *operatorv1.IngressController) bool {
	for _, cond := range ic.Status.Conditions {
		if cond.Type == operatorv1.OperatorStatusTypeAvailable && cond.Status == operatorv1.ConditionTrue {
			return true
		}
	}
	return false
}
