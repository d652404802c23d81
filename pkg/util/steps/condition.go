package steps

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"
)

// conditionFunction is a function that takes a context and returns whether the
// condition has been met and an error.
//
// Suitable for polling external sources for readiness.
type conditionFunction func(context.Context) (bool, error)

// Condition returns a Step suitable for checking whether subsequent Steps can
// be executed.
//
// The Condition will execute f repeatedly (every Runner.pollInterval), timing
// out with a failure when more time than the provided timeout has elapsed
// without f returning true. Errors from `f` are returned directly.
// If fail is set to false, the step will not error the run on timeout and
// execution will continue.
func Condition(f conditionFunction, timeout time.Duration, fail bool) Step {
	return conditionStep{
		f:       f,
		fail:    fail,
		timeout: timeout,
	}
}

type conditionStep struct {
	f            conditionFunction
	fail         bool
	pollInterval time.Duration
	timeout      time.Duration
}

func (s conditionStep) run(ctx context.Context, log *logrus.Entry) error {
	var pollInterval time.Duration
	// If no pollInterval has been set, use a default
	if s.pollInterval == time.Duration(0) {
		pollInterval = 10 * time.Second
	} else {
		pollInterval = s.pollInterval
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Run the condition function immediately, and then every pollInterval,
	// until the condition returns true or timeoutCtx's timeout fires. Errors
	// from `f` are returned directly unless the error is ErrWaitTimeout.
	// Internal ErrWaitTimeout errors are wrapped to avoid confusion with
	// wait.PollImmediateUntil's own behavior of returning ErrWaitTimeout
	// when the condition times out.
	err := wait.PollImmediateUntil(pollInterval, func() (bool, error) {
		// We use the outer context, not the timeout context, as we do not
		// want to time out the condition function itself, only stop retrying
		// once timeoutCtx's timeout has fired.
		cnd, cndErr := s.f(ctx)
		if errors.Is(cndErr, wait.ErrWaitTimeout) {
			return cnd, fmt.Errorf("condition encountered internal timeout: %w", cndErr)
		}

		return cnd, cndErr
	}, timeoutCtx.Done())

	if err != nil && !s.fail {
		log.Warnf("step %s failed but has configured 'fail=%t'. Continuing. Error: %s", s, s.fail, err.Error())
		return nil
	}

	return err
}

func (s conditionStep) String() string {
	return fmt.Sprintf("[Condition %s, timeout %s]", FriendlyName(s.f), s.timeout)
}

func (s conditionStep) metricsName() string {
	return fmt.Sprintf("condition.%s", shortName(FriendlyName(s.f)))
}
