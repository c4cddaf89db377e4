// SPDX-License-Identifier: Apache-2.0

// Package metrics exports use case invocations as Prometheus metrics.
//
// Example:
//
//	obs, err := metrics.NewObserver(prometheus.DefaultRegisterer)
//	if err != nil {
//	    return err
//	}
//	engine := ucase.NewEngine(ucase.WithObserver(obs))
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mfbmina/ucase"
)

// Observer is a [ucase.Observer] recording one counter increment and one
// duration sample per use case invocation.
type Observer struct {
	results  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ucase.Observer = (*Observer)(nil)

// NewObserver creates the collectors and registers them with reg.
//
// If the collectors are already registered, the existing ones are reused, so
// several engines may share one registry.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ucase",
		Name:      "use_case_results_total",
		Help:      "Use case invocations by use case, result kind and result type.",
	}, []string{"use_case", "kind", "type"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ucase",
		Name:      "use_case_duration_seconds",
		Help:      "Time spent in use case invocations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"use_case"})

	var err error
	if results, err = register(reg, results); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &Observer{results: results, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (o *Observer) OnUseCaseStart(context.Context, ucase.UseCaseInfo) {}

func (o *Observer) OnUseCaseFinish(_ context.Context, info ucase.UseCaseInfo, result *ucase.Result, d time.Duration) {
	o.results.WithLabelValues(info.Name, result.Kind().String(), string(result.Type())).Inc()
	o.duration.WithLabelValues(info.Name).Observe(d.Seconds())
}
