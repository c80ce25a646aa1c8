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


// Package commands defines the CLI command structure and flag bindings.
//
// Hooks are looked up in hook.DefaultRegistry, which hook packages fill from
// their init. The main package blank-imports every hook package.
package commands

import (
	"github.com/spf13/cobra"

	"sds-local-volume-hooks/pkg/hook"
)

// registry is the hook registry used by all commands. Tests replace it.
var registry = hook.DefaultRegistry

// Root returns the root command for the hooks binary.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sds-local-volume-hooks",
		Short:         "Lifecycle hooks of the sds-local-volume module",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(List())
	cmd.AddCommand(Config())
	cmd.AddCommand(Run())
	cmd.AddCommand(Version())

	return cmd
}
