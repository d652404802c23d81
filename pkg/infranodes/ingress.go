package infranodes

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"reflect"

	operatorv1 "github.com/openshift/api/operator/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/util/retry"
	"k8s.io/utils/ptr"
)

// moveRouter pins the default ingress controller's router pods to infra
// nodes and optionally resizes it. Skipped when the placement is already in
// place (unless forced).
func (m *manager) moveRouter(ctx context.Context) error {
	replicas, err := m.env.RouterReplicas()
	if err != nil {
		return err
	}

	placement := &operatorv1.NodePlacement{
		NodeSelector: &metav1.LabelSelector{
			MatchLabels: infraNodeSelector(),
		},
		Tolerations: infraTolerations(),
	}

	ic, err := m.operatorcli.OperatorV1().IngressControllers("openshift-ingress-operator").Get(ctx, "default", metav1.GetOptions{})
	if err != nil {
		return err
	}

	if routerPlacementMatches(ic, placement, replicas) && !m.env.ForceApply() {
		m.log.Print("ingresscontroller default already placed on infra nodes, skipping")
		return nil
	}

	m.log.Print("patching ingresscontroller default node placement")
	return retry.RetryOnConflict(retry.DefaultRetry, func() error {
		ic, err := m.operatorcli.OperatorV1().IngressControllers("openshift-ingress-operator").Get(ctx, "default", metav1.GetOptions{})
		if err != nil {
			return err
		}

		ic.Spec.NodePlacement = placement
		if replicas > 0 {
			ic.Spec.Replicas = ptr.To(replicas)
		}

		_, err = m.operatorcli.OperatorV1().IngressControllers("openshift-ingress-operator").Update(ctx, ic, metav1.UpdateOptions{})
		return err
	})
}

func routerPlacementMatches(ic *operatorv1.IngressController, placement *operatorv1.NodePlacement, replicas int32) bool {
	if !reflect.DeepEqual(ic.Spec.NodePlacement, placement) {
		return false
	}
	if replicas > 0 && (ic.Spec.Replicas == nil || *ic.Spec.Replicas != replicas) {
		return false
	}
	return true
}
