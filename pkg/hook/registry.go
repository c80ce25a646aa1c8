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
	"sort"
)

// Registry holds hooks by name.
//
// Registration happens from package initialization, which is sequential,
// so Registry is not safe for concurrent use.
type Registry struct {
	hooks map[string]*Hook
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{hooks: make(map[string]*Hook)}
}

// DefaultRegistry is the registry used by Register and the hooks binary.
var DefaultRegistry = NewRegistry()

// Register adds a hook to DefaultRegistry and panics if it is invalid.
//
// It returns a value so it can be called from a package-level var:
//
//	var _ = hook.Register(name, cfg, fn)
func Register(name string, cfg *Config, fn Func) bool {
	if err := DefaultRegistry.Add(name, cfg, fn); err != nil {
		panic(err)
	}
	return true
}

// Add validates and stores a hook.
func (r *Registry) Add(name string, cfg *Config, fn Func) error {
	if name == "" {
		return fmt.Errorf("hook name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("hook %q has no function", name)
	}
	if cfg == nil {
		return fmt.Errorf("hook %q has no config", name)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("hook %q: %w", name, err)
	}
	if _, exists := r.hooks[name]; exists {
		return fmt.Errorf("hook %q is already registered", name)
	}

	r.hooks[name] = &Hook{Name: name, Config: cfg, Func: fn}
	return nil
}

// Get returns the hook registered under name.
func (r *Registry) Get(name string) (*Hook, bool) {
	h, ok := r.hooks[name]
	return h, ok
}

// Hooks returns all registered hooks sorted by name.
func (r *Registry) Hooks() []*Hook {
	hooks := make([]*Hook, 0, len(r.hooks))
	for _, h := range r.hooks {
		hooks = append(hooks, h)
	}
	sort.Slice(hooks, func(i, j int) bool {
		return hooks[i].Name < hooks[j].Name
	})
	return hooks
}
