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


// Package main is the entry point for the sds-local-volume module hooks.
//
// The binary carries every hook of the module and is invoked by the module
// orchestrator:
//
//	sds-local-volume-hooks list            # names and bound phases
//	sds-local-volume-hooks config          # descriptors of all hooks
//	sds-local-volume-hooks run <name>      # execute one hook
//
// Configuration priority for run: CLI flags > environment variables > defaults.
//
//   - Metrics textfile: --metrics-path flag, METRICS_PATH env var, or disabled
//   - Server-side dry run: --dry-run flag, DRY_RUN env var, or false
//   - Log level: LOG_LEVEL env var (ERROR, WARN, INFO, DEBUG, TRACE), else
//     VERBOSE env var (0 = warn, 1 = info, 2 = debug)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/KimMachineGun/automemlimit"

	"sds-local-volume-hooks/cmd/hooks/commands"
	_ "sds-local-volume-hooks/pkg/hooks/thinprovisioning"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	err := commands.Root().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
