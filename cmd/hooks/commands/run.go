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


package commands

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"

	"github.com/spf13/cobra"

	"sds-local-volume-hooks/pkg/core/logging"
	"sds-local-volume-hooks/pkg/hook"
	"sds-local-volume-hooks/pkg/k8s/client"
)

// newClient builds the cluster client for run. Tests replace it.
var newClient = func() (hook.ClusterClient, error) {
	return client.New(client.Config{
		UserAgent: fmt.Sprintf("sds-local-volume-hooks/%s", version),
	})
}

// runFlags holds the raw flag values of the run command.
type runFlags struct {
	metricsPath string
	dryRun      bool
}

// RunConfig is the resolved configuration of one run.
type RunConfig struct {
	MetricsPath string
	DryRun      bool
	LogLevel    slog.Level
}

// Run returns the run command.
func Run() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <hook>",
		Short: "Execute a single hook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, ok := registry.Get(args[0])
			if !ok {
				return &UnknownHookError{Name: args[0]}
			}

			cfg, err := resolveRunConfig(cmd, flags, os.Getenv)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(cmd.OutOrStdout(), cfg.LogLevel)
			slog.SetDefault(logger)

			logger.Debug("hooks binary starting",
				"version", version,
				"log_level", cfg.LogLevel.String(),
				"gomaxprocs", runtime.GOMAXPROCS(0),
				"gomemlimit", memoryLimit())

			c, err := newClient()
			if err != nil {
				logger.Error("Failed to create Kubernetes client", "error", err)
				return err
			}

			return hook.Run(cmd.Context(), h, hook.RunOptions{
				Client:      c,
				Logger:      logger,
				Stdout:      cmd.OutOrStdout(),
				MetricsPath: cfg.MetricsPath,
				DryRun:      cfg.DryRun,
			})
		},
	}

	cmd.Flags().StringVar(&flags.metricsPath, "metrics-path", "",
		"Write hook metrics to this file in Prometheus text format (env: METRICS_PATH)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false,
		"Send writes as server-side dry run (env: DRY_RUN)")

	return cmd
}

// resolveRunConfig applies CLI flags > environment variables > defaults.
// LOG_LEVEL, when set, overrides VERBOSE.
func resolveRunConfig(cmd *cobra.Command, flags *runFlags, getenv func(string) string) (*RunConfig, error) {
	cfg := &RunConfig{
		MetricsPath: flags.metricsPath,
		DryRun:      flags.dryRun,
		LogLevel:    logging.Level(getenv("VERBOSE"), getenv("LOG_LEVEL")),
	}

	// Metrics path
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = getenv("METRICS_PATH")
	}

	// Dry run
	if !cmd.Flags().Changed("dry-run") {
		if env := getenv("DRY_RUN"); env != "" {
			dryRun, err := strconv.ParseBool(env)
			if err != nil {
				return nil, fmt.Errorf("invalid DRY_RUN value %q: %w", env, err)
			}
			cfg.DryRun = dryRun
		}
	}

	return cfg, nil
}

func memoryLimit() string {
	if limit := debug.SetMemoryLimit(-1); limit != math.MaxInt64 {
		return fmt.Sprintf("%d bytes (%.2f MiB)", limit, float64(limit)/(1024*1024))
	}
	return "unlimited"
}
