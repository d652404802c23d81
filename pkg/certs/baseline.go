package certs

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"time"

	configv1 "github.com/openshift/api/config/v1"
	kerrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// snapshot captures the rollout counters observed before any patch is
// applied. The convergence conditions compare the cluster against it to
// decide when a patch-induced rollout has completed.
type snapshot struct {
	// lastTransitionTime of the kube-apiserver operator's Progressing
	// condition; a completed rollout moves it forward
	apiServerProgressingSince time.Time

	// generation of each ingress controller's router deployment; a patch
	// bumps it
	routerGeneration map[string]int64
}

func (m *manager) captureBaseline(ctx context.Context) error {
	baseline := &snapshot{
		routerGeneration: map[string]int64{},
	}

	co, err := m.configcli.ConfigV1().ClusterOperators().Get(ctx, "kube-apiserver", metav1.GetOptions{})
	switch {
	case kerrors.IsNotFound(err):
		// leave the zero time: any future transition counts
	case err != nil:
		return err
	default:
		baseline.apiServerProgressingSince = operatorConditionTransition(co, configv1.OperatorProgressing)
	}

	controllers := []string{"default"}
	if mic := m.env.ManagementIngressController(); mic != "" {
		controllers = append(controllers, mic)
	}

	for _, controller := range controllers {
		d, err := m.kubernetescli.AppsV1().Deployments("openshift-ingress").Get(ctx, "router-"+controller, metav1.GetOptions{})
		switch {
		case kerrors.IsNotFound(err):
			baseline.routerGeneration[controller] = 0
		case err != nil:
			return err
		default:
			baseline.routerGeneration[controller] = d.Generation
		}
	}

	m.baseline = baseline
	return nil
}

func operatorConditionTransition(co *configv1.ClusterOperator, t configv1.ClusterStatusConditionType) time.Time {
	for _, cond := range co.Status.Conditions {
		if cond.Type == t {
			return cond.LastTransitionTime.Time
		}
	}
	return time.Time{}
}
