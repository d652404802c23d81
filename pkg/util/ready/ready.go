package ready

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	appsv1client "k8s.io/client-go/kubernetes/typed/apps/v1"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
)

// NodeIsReady returns true if a Node is considered ready
func NodeIsReady(node *corev1.Node) bool {
	for _, c := range node.Status.Conditions {
		if c.Type == corev1.NodeReady && c.Status == corev1.ConditionTrue {
			return true
		}
	}

	return false
}

// PodIsRunning returns true if a Pod is running and all its containers are
// ready
func PodIsRunning(pod *corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning {
		return false
	}

	for _, c := range pod.Status.ContainerStatuses {
		if !c.Ready {
			return false
		}
	}

	return true
}

// DeploymentIsReady returns true if a Deployment is considered ready
func DeploymentIsReady(d *appsv1.Deployment) bool {
	specReplicas := int32(1)
	if d.Spec.Replicas != nil {
		specReplicas = *d.Spec.Replicas
	}

	return specReplicas == d.Status.AvailableReplicas &&
		specReplicas == d.Status.UpdatedReplicas &&
		d.Generation == d.Status.ObservedGeneration
}

// CheckDeploymentIsReady returns a function which polls a Deployment and
// returns its readiness
func CheckDeploymentIsReady(ctx context.Context, cli appsv1client.DeploymentInterface, name string) func() (bool, error) {
	return func() (bool, error) {
		d, err := cli.Get(ctx, name, metav1.GetOptions{})
		switch {
		case err == nil:
			return DeploymentIsReady(d), nil
		default:
			return false, nil
		}
	}
}

// StatefulSetIsReady returns true if a StatefulSet is considered ready
func StatefulSetIsReady(s *appsv1.StatefulSet) bool {
	specReplicas := int32(1)
	if s.Spec.Replicas != nil {
		specReplicas = *s.Spec.Replicas
	}

	return specReplicas == s.Status.ReadyReplicas &&
		specReplicas == s.Status.UpdatedReplicas &&
		s.Generation == s.Status.ObservedGeneration
}

// CheckPodsAreRunning returns a function which polls the Pods matching the
// label selector and returns whether all of them are running with ready
// containers
func CheckPodsAreRunning(ctx context.Context, cli corev1client.PodInterface, labelSelector string) func() (bool, error) {
	return func() (bool, error) {
		pods, err := cli.List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
		if err != nil {
			return false, nil
		}

		if len(pods.Items) == 0 {
			return false, nil
		}

		for _, pod := range pods.Items {
			if !PodIsRunning(&pod) {
				return false, nil
			}
		}

		return true, nil
	}
}
