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

// Package hook defines how module lifecycle hooks are declared and executed.
//
// # Overview
//
// A hook is a plain function with the signature
//
//	func(ctx context.Context, in *hook.Input) error
//
// that runs to completion once per invocation. The lifecycle orchestrator
// decides when to invoke it based on a static descriptor (Config) that the
// hook publishes alongside the function.
//
// # Registration
//
// Hook packages register themselves from a package-level variable so that
// importing the package is enough to make the hook available:
//
//	var _ = hook.Register("030-enable-thin-provisioning", &hook.Config{
//	    ConfigVersion: hook.ConfigVersionV1,
//	    OnAfterHelm:   &hook.OrderedConfig{Order: 10},
//	}, Reconcile)
//
// The function itself does not depend on registration and can be called
// directly in tests with a hand-built Input.
//
// # Execution
//
// Run wraps a single invocation: it creates a per-invocation Prometheus
// registry, tags the logger with the hook name and an invocation ID, calls
// the function, records duration and result, and optionally writes the
// gathered metrics to a textfile. Run never retries.
package hook
