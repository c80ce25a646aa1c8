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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sds-local-volume-hooks/pkg/hook"
)

// Config returns the config command.
//
// With a hook name it prints that hook's descriptor. Without arguments it
// prints a mapping from hook name to descriptor.
func Config() *cobra.Command {
	return &cobra.Command{
		Use:   "config [hook]",
		Short: "Print hook descriptors as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc interface{}

			if len(args) == 1 {
				h, ok := registry.Get(args[0])
				if !ok {
					return &UnknownHookError{Name: args[0]}
				}
				doc = h.Config
			} else {
				all := make(map[string]*hook.Config)
				for _, h := range registry.Hooks() {
					all[h.Name] = h.Config
				}
				doc = all
			}

			out, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to render hook config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// UnknownHookError is returned for a hook name that is not registered.
type UnknownHookError struct {
	Name string
}

func (e *UnknownHookError) Error() string {
	return fmt.Sprintf("unknown hook %q", e.Name)
}
