package steps

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// FriendlyName returns a "friendly" stringified name of the given func.
func FriendlyName(f interface{}) string {
	return runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
}

func shortName(fullName string) string {
	sepCheck := func(c rune) bool {
		return c == '/' || c == '.'
	}

	fields := strings.FieldsFunc(fullName, sepCheck)

	if len(fields) > 0 {
		return fields[len(fields)-1]
	}
	return fullName
}

// Step is the interface for steps that Runner can execute.
type Step interface {
	run(ctx context.Context, log *logrus.Entry) error
	String() string
	metricsName() string
}

// Run executes the provided steps in order until one fails or all steps
// are completed. Errors from failed steps are returned directly. The
// duration of each step run is returned for diagnostics.
func Run(ctx context.Context, log *logrus.Entry, steps []Step) (map[string]time.Duration, error) {
	stepTimeRun := make(map[string]time.Duration)
	for _, step := range steps {
		log.Infof("running step %s", step)

		startTime := time.Now()
		err := step.run(ctx, log)
		if err != nil {
			log.Errorf("step %s encountered error: %s", step, err.Error())
			return nil, err
		}

		stepTimeRun[step.metricsName()] = time.Since(startTime)
	}
	return stepTimeRun, nil
}
