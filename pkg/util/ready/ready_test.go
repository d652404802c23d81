package ready

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/utils/ptr"
)

func TestNodeIsReady(t *testing.T) {
	for _, tt := range []struct {
		name string
		node *corev1.Node
		want bool
	}{
		{
			name: "ready",
			node: &corev1.Node{
				Status: corev1.NodeStatus{
					Conditions: []corev1.NodeCondition{
						{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
					},
				},
			},
			want: true,
		},
		{
			name: "not ready",
			node: &corev1.Node{
				Status: corev1.NodeStatus{
					Conditions: []corev1.NodeCondition{
						{Type: corev1.NodeReady, Status: corev1.ConditionFalse},
					},
				},
			},
		},
		{
			name: "no conditions",
			node: &corev1.Node{},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeIsReady(tt.node); got != tt.want {
				t.Error(got)
			}
		})
	}
}

func TestDeploymentIsReady(t *testing.T) {
	for _, tt := range []struct {
		name string
		d    *appsv1.Deployment
		want bool
	}{
		{
			name: "all replicas available at current generation",
			d: &appsv1.Deployment{
				ObjectMeta: metav1.ObjectMeta{Generation: 4},
				Spec:       appsv1.DeploymentSpec{Replicas: ptr.To(int32(2))},
				Status: appsv1.DeploymentStatus{
					AvailableReplicas:  2,
					UpdatedReplicas:    2,
					ObservedGeneration: 4,
				},
			},
			want: true,
		},
		{
			name: "stale generation",
			d: &appsv1.Deployment{
				ObjectMeta: metav1.ObjectMeta{Generation: 5},
				Spec:       appsv1.DeploymentSpec{Replicas: ptr.To(int32(2))},
				Status: appsv1.DeploymentStatus{
					AvailableReplicas:  2,
					UpdatedReplicas:    2,
					ObservedGeneration: 4,
				},
			},
		},
		{
			name: "rollout in progress",
			d: &appsv1.Deployment{
				Spec: appsv1.DeploymentSpec{Replicas: ptr.To(int32(2))},
				Status: appsv1.DeploymentStatus{
					AvailableReplicas: 1,
					UpdatedReplicas:   2,
				},
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeploymentIsReady(tt.d); got != tt.want {
				t.Error(got)
			}
		})
	}
}

func TestCheckPodsAreRunning(t *testing.T) {
	ctx := context.Background()

	cli := fake.NewSimpleClientset(
		&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "router-default-1",
				Namespace: "openshift-ingress",
				Labels:    map[string]string{"ingresscontroller.operator.openshift.io/deployment-ingresscontroller": "default"},
			},
			Status: corev1.PodStatus{
				Phase:             corev1.PodRunning,
				ContainerStatuses: []corev1.ContainerStatus{{Ready: true}},
			},
		},
		&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "router-default-2",
				Namespace: "openshift-ingress",
				Labels:    map[string]string{"ingresscontroller.operator.openshift.io/deployment-ingresscontroller": "default"},
			},
			Status: corev1.PodStatus{
				Phase:             corev1.PodPending,
				ContainerStatuses: []corev1.ContainerStatus{{Ready: false}},
			},
		},
	)

	check := CheckPodsAreRunning(ctx, cli.CoreV1().Pods("openshift-ingress"), "ingresscontroller.operator.openshift.io/deployment-ingresscontroller=default")
	running, err := check()
	if err != nil {
		t.Fatal(err)
	}
	if running {
		t.Error("pending pod reported as running")
	}

	check = CheckPodsAreRunning(ctx, cli.CoreV1().Pods("openshift-ingress"), "no=match")
	running, err = check()
	if err != nil {
		t.Fatal(err)
	}
	if running {
		t.Error("empty pod list reported as running")
	}
}
