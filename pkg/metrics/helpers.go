// Copyright 2025 Philipp Hossner
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics provides registry-scoped Prometheus helpers for hooks.
//
// Hooks are short-lived processes, so nothing is served over HTTP. Each
// invocation gets its own registry, and the gathered families are written
// to a textfile once the hook has finished.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// IMPORTANT: All functions in this file accept a prometheus.Registerer parameter.
// NEVER use global prometheus.DefaultRegisterer or prometheus.DefaultGatherer.
//
// A hook invocation owns its registry. Sharing the default registry would
// leak Go runtime collectors into the textfile and break repeated runs in tests.
//
// Registering a metric whose descriptor is already present on the registry
// returns the collector registered first, so callers that share a registry
// across runs keep accumulating into the same series. Any other registration
// error panics.

// NewCounter creates and registers a counter metric.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	patches := metrics.NewCounter(registry, "hook_patches_total", "Patches issued")
//	patches.Inc()
func NewCounter(registry prometheus.Registerer, name, help string) prometheus.Counter {
	return register(registry, prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}))
}

// NewCounterVec creates and registers a counter vector with labels.
func NewCounterVec(registry prometheus.Registerer, name, help string, labels []string) *prometheus.CounterVec {
	return register(registry, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	))
}

// NewGauge creates and registers a gauge metric.
func NewGauge(registry prometheus.Registerer, name, help string) prometheus.Gauge {
	return register(registry, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}))
}

// NewHistogramWithBuckets creates and registers a histogram with custom buckets.
//
// For durations, DurationBuckets is a reasonable starting point.
func NewHistogramWithBuckets(registry prometheus.Registerer, name, help string, buckets []float64) prometheus.Histogram {
	return register(registry, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: buckets,
	}))
}

func register[C prometheus.Collector](registry prometheus.Registerer, c C) C {
	err := registry.Register(c)
	if err == nil {
		return c
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}

// DurationBuckets returns histogram buckets suitable for hook run durations in seconds.
//
// Buckets: [0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0]
func DurationBuckets() []float64 {
	return []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}
}
