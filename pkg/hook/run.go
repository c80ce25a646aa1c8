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

package hook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"sds-local-volume-hooks/pkg/metrics"
)

// Result labels recorded in hook_runs_total.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RunOptions configures a single invocation.
type RunOptions struct {
	// Client is passed to the hook unchanged. Required.
	Client ClusterClient

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Stdout defaults to os.Stdout.
	Stdout io.Writer

	// MetricsPath, when set, receives the invocation's metrics in the
	// Prometheus text format after the hook returns.
	MetricsPath string

	// DryRun is forwarded to Input.DryRun.
	DryRun bool
}

// runMetrics are recorded by Run for every hook.
type runMetrics struct {
	duration prometheus.Histogram
	runs     *prometheus.CounterVec
}

func newRunMetrics(registry prometheus.Registerer, hookName string) *runMetrics {
	labeled := prometheus.WrapRegistererWith(prometheus.Labels{"hook": hookName}, registry)
	return &runMetrics{
		duration: metrics.NewHistogramWithBuckets(
			labeled,
			"hook_run_duration_seconds",
			"Time spent in a single hook invocation",
			metrics.DurationBuckets(),
		),
		runs: metrics.NewCounterVec(
			labeled,
			"hook_runs_total",
			"Hook invocations by result",
			[]string{"result"},
		),
	}
}

// Run executes h once.
//
// The hook's error is returned wrapped in a *RunError. A failure to write
// the metrics textfile is logged and does not change the result.
func Run(ctx context.Context, h *Hook, opts RunOptions) error {
	if opts.Client == nil {
		return &RunError{Hook: h.Name, Err: fmt.Errorf("no cluster client")}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	logger = logger.With("hook", h.Name, "invocation_id", uuid.NewString())

	registry := prometheus.NewRegistry()
	m := newRunMetrics(registry, h.Name)

	in := &Input{
		Client:  opts.Client,
		Logger:  logger,
		Metrics: registry,
		Stdout:  stdout,
		DryRun:  opts.DryRun,
	}

	logger.Info("hook started", "phases", h.Config.Phases(), "dry_run", opts.DryRun)

	start := time.Now()
	err := h.Func(ctx, in)
	elapsed := time.Since(start)

	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.runs.WithLabelValues(ResultFailure).Inc()
	} else {
		m.runs.WithLabelValues(ResultSuccess).Inc()
	}

	if werr := metrics.WriteTextfile(opts.MetricsPath, registry); werr != nil {
		logger.Warn("failed to export hook metrics", "path", opts.MetricsPath, "error", werr)
	}

	if err != nil {
		logger.Error("hook failed", "duration", elapsed, "error", err)
		return &RunError{Hook: h.Name, Err: err}
	}

	logger.Info("hook completed", "duration", elapsed)
	return nil
}

// RunError wraps a hook failure with the hook name.
type RunError struct {
	Hook string
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("hook %q failed: %v", e.Hook, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
