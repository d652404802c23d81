package infranodes

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"reflect"

	imageregistryv1 "github.com/openshift/api/imageregistry/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/util/retry"
)

// moveImageRegistry pins the internal image registry to infra nodes.
// Skipped when the node selector is already in place (unless forced).
func (m *manager) moveImageRegistry(ctx context.Context) error {
	config, err := m.imageregistrycli.ImageregistryV1().Configs().Get(ctx, "cluster", metav1.GetOptions{})
	if err != nil {
		return err
	}

	if registryPlacementMatches(config) && !m.env.ForceApply() {
		m.log.Print("image registry already placed on infra nodes, skipping")
		return nil
	}

	m.log.Print("patching image registry node placement")
	return retry.RetryOnConflict(retry.DefaultRetry, func() error {
		config, err := m.imageregistrycli.ImageregistryV1().Configs().Get(ctx, "cluster", metav1.GetOptions{})
		if err != nil {
			return err
		}

		config.Spec.NodeSelector = infraNodeSelector()
		config.Spec.Tolerations = infraTolerations()

		_, err = m.imageregistrycli.ImageregistryV1().Configs().Update(ctx, config, metav1.UpdateOptions{})
		return err
	})
}

func registryPlacementMatches(config *imageregistryv1.Config) bool {
	return reflect.DeepEqual(config.Spec.NodeSelector, infraNodeSelector()) &&
		reflect.DeepEqual(config.Spec.Tolerations, infraTolerations())
}
