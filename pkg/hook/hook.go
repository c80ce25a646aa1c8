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
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"sds-local-volume-hooks/pkg/k8s/client"
)

// ClusterClient is the subset of the cluster API a hook may use.
//
// *client.Client implements it; tests pass a client built on a fake
// dynamic client.
type ClusterClient interface {
	ListClusterResources(ctx context.Context, gvr schema.GroupVersionResource) ([]unstructured.Unstructured, error)
	MergePatchClusterResource(ctx context.Context, gvr schema.GroupVersionResource, name string, body []byte, opts client.PatchOptions) (*unstructured.Unstructured, error)
}

var _ ClusterClient = (*client.Client)(nil)

// Input is everything a hook receives for one invocation.
type Input struct {
	// Client talks to the cluster API with the hook's credentials.
	Client ClusterClient

	// Logger is tagged with the hook name and invocation ID.
	Logger *slog.Logger

	// Metrics is the per-invocation registry. Hooks register their own
	// collectors on it.
	Metrics prometheus.Registerer

	// Stdout receives human-readable results such as patched objects.
	Stdout io.Writer

	// DryRun asks the API server not to persist writes.
	DryRun bool
}

// Func is the signature every hook implements.
type Func func(ctx context.Context, in *Input) error

// Hook is a registered hook.
type Hook struct {
	Name   string
	Config *Config
	Func   Func
}
