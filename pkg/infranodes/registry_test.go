package infranodes

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"testing"

	imageregistryv1 "github.com/openshift/api/imageregistry/v1"
	imageregistryfake "github.com/openshift/client-go/imageregistry/clientset/versioned/fake"
	"github.com/sirupsen/logrus"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/finastra-engineering/aro-ops/pkg/env"
)

func TestMoveImageRegistry(t *testing.T) {
	ctx := context.Background()

	for _, tt := range []struct {
		name   string
		config *imageregistryv1.Config
		vars   map[string]string
	}{
		{
			name:   "patches an unplaced registry",
			config: &imageregistryv1.Config{ObjectMeta: metav1.ObjectMeta{Name: "cluster"}},
		},
		{
			name: "skips an already placed registry",
			config: &imageregistryv1.Config{
				ObjectMeta: metav1.ObjectMeta{Name: "cluster"},
				Spec: imageregistryv1.ImageRegistrySpec{
					NodeSelector: infraNodeSelector(),
					Tolerations:  infraTolerations(),
				},
			},
		},
		{
			name: "selector set but tolerations missing is patched without force",
			config: &imageregistryv1.Config{
				ObjectMeta: metav1.ObjectMeta{Name: "cluster"},
				Spec: imageregistryv1.ImageRegistrySpec{
					NodeSelector: infraNodeSelector(),
				},
			},
		},
		{
			name: "force re-patches an already placed registry",
			config: &imageregistryv1.Config{
				ObjectMeta: metav1.ObjectMeta{Name: "cluster"},
				Spec: imageregistryv1.ImageRegistrySpec{
					NodeSelector: infraNodeSelector(),
					Tolerations:  infraTolerations(),
				},
			},
			vars: map[string]string{env.EnvForceApply: "true"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			m := &manager{
				log:              logrus.NewEntry(logrus.StandardLogger()),
				env:              testEnv(t, tt.vars),
				imageregistrycli: imageregistryfake.NewSimpleClientset(tt.config),
			}

			err := m.moveImageRegistry(ctx)
			if err != nil {
				t.Fatal(err)
			}

			config, err := m.imageregistrycli.ImageregistryV1().Configs().Get(ctx, "cluster", metav1.GetOptions{})
			if err != nil {
				t.Fatal(err)
			}

			if _, ok := config.Spec.NodeSelector[infraNodeLabel]; !ok {
				t.Error(config.Spec.NodeSelector)
			}
			if len(config.Spec.Tolerations) != 1 || config.Spec.Tolerations[0].Key != infraNodeLabel {
				t.Error(config.Spec.Tolerations)
			}
		})
	}
}
