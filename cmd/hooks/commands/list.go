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
	"strings"

	"github.com/spf13/cobra"
)

// List returns the list command.
func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered hooks and their lifecycle phases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, h := range registry.Hooks() {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", h.Name, strings.Join(h.Config.Phases(), ",")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
