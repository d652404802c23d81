package infranodes

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"reflect"

	"github.com/ghodss/yaml"
	"github.com/ugorji/go/codec"
	corev1 "k8s.io/api/core/v1"
	kerrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/finastra-engineering/aro-ops/pkg/api"
)

const (
	monitoringConfigMapName      = "cluster-monitoring-config"
	monitoringConfigMapNamespace = "openshift-monitoring"
)

// componentPlacement is the scheduling subset of a monitoring component's
// configuration. MissingFields preserves whatever else the customer has
// configured on it.
type componentPlacement struct {
	api.MissingFields
	NodeSelector map[string]string   `json:"nodeSelector,omitempty"`
	Tolerations  []corev1.Toleration `json:"tolerations,omitempty"`
}

// monitoringConfig models the config.yaml document of the
// cluster-monitoring-config ConfigMap, placement fields only.
type monitoringConfig struct {
	api.MissingFields
	PrometheusK8s         componentPlacement `json:"prometheusK8s,omitempty"`
	AlertManagerMain      componentPlacement `json:"alertmanagerMain,omitempty"`
	PrometheusOperator    componentPlacement `json:"prometheusOperator,omitempty"`
	Grafana               componentPlacement `json:"grafana,omitempty"`
	K8sPrometheusAdapter  componentPlacement `json:"k8sPrometheusAdapter,omitempty"`
	KubeStateMetrics      componentPlacement `json:"kubeStateMetrics,omitempty"`
	OpenshiftStateMetrics componentPlacement `json:"openshiftStateMetrics,omitempty"`
	TelemeterClient       componentPlacement `json:"telemeterClient,omitempty"`
	ThanosQuerier         componentPlacement `json:"thanosQuerier,omitempty"`
}

func (c *monitoringConfig) components() []*componentPlacement {
	return []*componentPlacement{
		&c.PrometheusK8s,
		&c.AlertManagerMain,
		&c.PrometheusOperator,
		&c.Grafana,
		&c.K8sPrometheusAdapter,
		&c.KubeStateMetrics,
		&c.OpenshiftStateMetrics,
		&c.TelemeterClient,
		&c.ThanosQuerier,
	}
}

// moveMonitoring sets the infra placement on every monitoring component in
// the cluster-monitoring-config ConfigMap, preserving unrelated customer
// settings, and creates the ConfigMap when absent.
func (m *manager) moveMonitoring(ctx context.Context) error {
	cm, isCreate, err := m.monitoringConfigMap(ctx)
	if err != nil {
		return err
	}

	if cm.Data == nil {
		cm.Data = map[string]string{}
	}

	configDataJSON, err := yaml.YAMLToJSON([]byte(cm.Data["config.yaml"]))
	if err != nil {
		return err
	}

	var configData monitoringConfig
	err = codec.NewDecoderBytes(configDataJSON, m.jsonHandle).Decode(&configData)
	if err != nil {
		return err
	}

	changed := false
	for _, component := range configData.components() {
		if !reflect.DeepEqual(component.NodeSelector, infraNodeSelector()) {
			component.NodeSelector = infraNodeSelector()
			changed = true
		}
		if !reflect.DeepEqual(component.Tolerations, infraTolerations()) {
			component.Tolerations = infraTolerations()
			changed = true
		}
	}

	if !isCreate && !changed && !m.env.ForceApply() {
		m.log.Print("monitoring stack already placed on infra nodes, skipping")
		return nil
	}

	var b []byte
	err = codec.NewEncoderBytes(&b, m.jsonHandle).Encode(configData)
	if err != nil {
		return err
	}

	cmYaml, err := yaml.JSONToYAML(b)
	if err != nil {
		return err
	}
	cm.Data["config.yaml"] = string(cmYaml)

	if isCreate {
		m.log.Printf("creating configmap %s", monitoringConfigMapName)
		_, err = m.kubernetescli.CoreV1().ConfigMaps(monitoringConfigMapNamespace).Create(ctx, cm, metav1.CreateOptions{})
	} else {
		m.log.Printf("updating configmap %s", monitoringConfigMapName)
		_, err = m.kubernetescli.CoreV1().ConfigMaps(monitoringConfigMapNamespace).Update(ctx, cm, metav1.UpdateOptions{})
	}
	return err
}

func (m *manager) monitoringConfigMap(ctx context.Context) (*corev1.ConfigMap, bool, error) {
	cm, err := m.kubernetescli.CoreV1().ConfigMaps(monitoringConfigMapNamespace).Get(ctx, monitoringConfigMapName, metav1.GetOptions{})
	if kerrors.IsNotFound(err) {
		return &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      monitoringConfigMapName,
				Namespace: monitoringConfigMapNamespace,
			},
		}, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cm, false, nil
}
