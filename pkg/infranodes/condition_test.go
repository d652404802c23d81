package infranodes

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
)

func routerPod(name, node string, phase corev1.PodPhase, containersReady bool) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: "openshift-ingress",
			Labels: map[string]string{
				"ingresscontroller.operator.openshift.io/deployment-ingresscontroller": "default",
			},
		},
		Spec: corev1.PodSpec{NodeName: node},
		Status: corev1.PodStatus{
			Phase: phase,
			ContainerStatuses: []corev1.ContainerStatus{
				{Ready: containersReady},
			},
		},
	}
}

func TestRouterPodsOnInfraNodes(t *testing.T) {
	ctx := context.Background()

	for _, tt := range []struct {
		name    string
		objects []runtime.Object
		want    bool
	}{
		{
			name: "no pods yet",
			objects: []runtime.Object{
				infraNode("infra-0", corev1.ConditionTrue),
			},
		},
		{
			name: "pod still on a worker node",
			objects: []runtime.Object{
				infraNode("infra-0", corev1.ConditionTrue),
				routerPod("router-default-1", "worker-0", corev1.PodRunning, true),
			},
		},
		{
			name: "pod on an infra node but not ready",
			objects: []runtime.Object{
				infraNode("infra-0", corev1.ConditionTrue),
				routerPod("router-default-1", "infra-0", corev1.PodRunning, false),
			},
		},
		{
			name: "pod pending on an infra node",
			objects: []runtime.Object{
				infraNode("infra-0", corev1.ConditionTrue),
				routerPod("router-default-1", "infra-0", corev1.PodPending, false),
			},
		},
		{
			name: "all pods running on infra nodes",
			objects: []runtime.Object{
				infraNode("infra-0", corev1.ConditionTrue),
				infraNode("infra-1", corev1.ConditionTrue),
				routerPod("router-default-1", "infra-0", corev1.PodRunning, true),
				routerPod("router-default-2", "infra-1", corev1.PodRunning, true),
			},
			want: true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			m := &manager{
				kubernetescli: fake.NewSimpleClientset(tt.objects...),
			}

			got, err := m.routerPodsOnInfraNodes(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Error(got)
			}
		})
	}
}

func TestMonitoringPodsOnInfraNodes(t *testing.T) {
	ctx := context.Background()

	monitoringPod := func(name string, labels map[string]string, node string) *corev1.Pod {
		return &corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{
				Name:      name,
				Namespace: "openshift-monitoring",
				Labels:    labels,
			},
			Spec: corev1.PodSpec{NodeName: node},
			Status: corev1.PodStatus{
				Phase: corev1.PodRunning,
				ContainerStatuses: []corev1.ContainerStatus{
					{Ready: true},
				},
			},
		}
	}

	prometheusLabels := map[string]string{"app": "prometheus", "prometheus": "k8s"}
	alertmanagerLabels := map[string]string{"app": "alertmanager", "alertmanager": "main"}

	m := &manager{
		kubernetescli: fake.NewSimpleClientset(
			infraNode("infra-0", corev1.ConditionTrue),
			monitoringPod("prometheus-k8s-0", prometheusLabels, "infra-0"),
			monitoringPod("alertmanager-main-0", alertmanagerLabels, "worker-0"),
		),
	}

	// alertmanager still on a worker node
	got, err := m.monitoringPodsOnInfraNodes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Error(got)
	}

	m.kubernetescli = fake.NewSimpleClientset(
		infraNode("infra-0", corev1.ConditionTrue),
		monitoringPod("prometheus-k8s-0", prometheusLabels, "infra-0"),
		monitoringPod("alertmanager-main-0", alertmanagerLabels, "infra-0"),
	)

	got, err = m.monitoringPodsOnInfraNodes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error(got)
	}
}
