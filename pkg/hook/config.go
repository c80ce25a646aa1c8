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
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigVersionV1 is the only descriptor format version understood by the
// orchestrator.
const ConfigVersionV1 = "v1"

// OrderedConfig binds a hook to a lifecycle phase. Hooks bound to the same
// phase run in ascending Order.
type OrderedConfig struct {
	Order float64
}

// Config is the static descriptor a hook publishes to the orchestrator.
//
// It is fixed configuration and never computed at runtime.
type Config struct {
	// ConfigVersion is the descriptor format version. Must be ConfigVersionV1.
	ConfigVersion string

	// OnStartup runs the hook once when the module starts.
	OnStartup *OrderedConfig

	// OnBeforeHelm runs the hook before the module's Helm release is applied.
	OnBeforeHelm *OrderedConfig

	// OnAfterHelm runs the hook after the module's Helm release is applied.
	OnAfterHelm *OrderedConfig

	// OnAfterDeleteHelm runs the hook after the module's Helm release is deleted.
	OnAfterDeleteHelm *OrderedConfig
}

// binding pairs a descriptor key with its phase configuration.
type binding struct {
	key string
	cfg *OrderedConfig
}

// bindings lists phases in the order they appear in a rendered descriptor.
func (c *Config) bindings() []binding {
	return []binding{
		{key: "onStartup", cfg: c.OnStartup},
		{key: "beforeHelm", cfg: c.OnBeforeHelm},
		{key: "afterHelm", cfg: c.OnAfterHelm},
		{key: "afterDeleteHelm", cfg: c.OnAfterDeleteHelm},
	}
}

// Validate checks that the descriptor can be understood by the orchestrator.
func (c *Config) Validate() error {
	if c.ConfigVersion != ConfigVersionV1 {
		return &ConfigError{
			Field:  "configVersion",
			Reason: fmt.Sprintf("unsupported version %q (want %q)", c.ConfigVersion, ConfigVersionV1),
		}
	}

	bound := 0
	for _, b := range c.bindings() {
		if b.cfg == nil {
			continue
		}
		bound++
		if b.cfg.Order < 0 {
			return &ConfigError{
				Field:  b.key,
				Reason: fmt.Sprintf("order must not be negative, got %v", b.cfg.Order),
			}
		}
	}

	if bound == 0 {
		return &ConfigError{
			Field:  "bindings",
			Reason: "hook is not bound to any lifecycle phase",
		}
	}

	return nil
}

// Phases returns the descriptor keys of all phases the hook is bound to.
func (c *Config) Phases() []string {
	var phases []string
	for _, b := range c.bindings() {
		if b.cfg != nil {
			phases = append(phases, b.key)
		}
	}
	return phases
}

// MarshalYAML renders the descriptor in the orchestrator's format:
//
//	configVersion: v1
//	afterHelm: 10
func (c *Config) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, scalar("configVersion", "!!str"), scalar(c.ConfigVersion, "!!str"))

	for _, b := range c.bindings() {
		if b.cfg == nil {
			continue
		}
		node.Content = append(node.Content,
			scalar(b.key, "!!str"),
			scalar(strconv.FormatFloat(b.cfg.Order, 'f', -1, 64), orderTag(b.cfg.Order)),
		)
	}

	return node, nil
}

func scalar(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func orderTag(order float64) string {
	if order == float64(int64(order)) {
		return "!!int"
	}
	return "!!float"
}

// ConfigError describes an invalid hook descriptor.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid hook config field %s: %s", e.Field, e.Reason)
}
