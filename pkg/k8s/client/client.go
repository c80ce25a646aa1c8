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

// Package client provides a thin wrapper around the Kubernetes dynamic client.
//
// Hooks only need two operations against the cluster API: listing every
// instance of a cluster-scoped custom resource and merge-patching a single
// named object. Both are exposed here with typed errors so callers can tell
// enumeration failures from mutation failures.
package client

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/pager"
)

// DefaultPageSize is the number of items requested per LIST call.
const DefaultPageSize = 500

// Client wraps a dynamic Kubernetes client.
type Client struct {
	dynamicClient dynamic.Interface
	restConfig    *rest.Config
	pageSize      int64
}

// Config contains configuration options for creating a Kubernetes client.
type Config struct {
	// PageSize limits the number of items per LIST request.
	// Zero means DefaultPageSize.
	PageSize int64

	// UserAgent is sent with every request. Empty keeps the client-go default.
	UserAgent string
}

// PatchOptions controls a merge-patch request.
type PatchOptions struct {
	// FieldManager is recorded in managedFields of the patched object.
	FieldManager string

	// DryRun asks the API server to validate and compute the result
	// without persisting it.
	DryRun bool
}

// New creates a new Kubernetes client from the in-cluster service account
// credentials.
//
// There is no kubeconfig fallback: hooks always run inside a pod, so missing
// or malformed credentials are reported as a *CredentialError.
//
// Example:
//
//	c, err := client.New(client.Config{})
//	if err != nil {
//	    // not running in a pod, or the service account token is unreadable
//	}
func New(cfg Config) (*Client, error) {
	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return nil, &CredentialError{
			Operation: "get in-cluster config",
			Err:       err,
		}
	}

	return NewForConfig(restConfig, cfg)
}

// NewForConfig creates a Client from an existing REST configuration.
// Integration tests use it with the kubeconfig of a throwaway cluster.
func NewForConfig(restConfig *rest.Config, cfg Config) (*Client, error) {
	if cfg.UserAgent != "" {
		restConfig = rest.CopyConfig(restConfig)
		restConfig.UserAgent = cfg.UserAgent
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, &CredentialError{
			Operation: "create dynamic client",
			Err:       err,
		}
	}

	c := NewFromDynamic(dynamicClient)
	c.restConfig = restConfig
	if cfg.PageSize > 0 {
		c.pageSize = cfg.PageSize
	}

	return c, nil
}

// NewFromDynamic creates a Client from an existing dynamic client.
// This is useful for testing with fake clients.
func NewFromDynamic(dynamicClient dynamic.Interface) *Client {
	return &Client{
		dynamicClient: dynamicClient,
		pageSize:      DefaultPageSize,
	}
}

// DynamicClient returns the underlying dynamic client.
func (c *Client) DynamicClient() dynamic.Interface {
	return c.dynamicClient
}

// RestConfig returns the underlying REST configuration.
// It is nil for clients created with NewFromDynamic.
func (c *Client) RestConfig() *rest.Config {
	return c.restConfig
}

// ListClusterResources returns every instance of a cluster-scoped resource.
//
// Continuation tokens are followed until the full set has been read, so the
// result is either complete or an error. An empty collection yields an empty
// slice and a nil error.
//
// Parameters:
//   - ctx: Context for cancellation
//   - gvr: GroupVersionResource identifying the resource type
//
// Returns:
//   - All instances, in the order the API server returned them
//   - An *EnumerationError wrapping the API error if any page fails
func (c *Client) ListClusterResources(ctx context.Context, gvr schema.GroupVersionResource) ([]unstructured.Unstructured, error) {
	resource := c.dynamicClient.Resource(gvr)

	items, err := listAll(ctx, c.pageSize, func(ctx context.Context, opts metav1.ListOptions) (runtime.Object, error) {
		return resource.List(ctx, opts)
	})
	if err != nil {
		return nil, &EnumerationError{
			GVR: gvr,
			Err: err,
		}
	}

	return items, nil
}

// listAll drains a paginated list function into a slice.
func listAll(ctx context.Context, pageSize int64, fn pager.ListPageFunc) ([]unstructured.Unstructured, error) {
	p := pager.New(fn)
	p.PageSize = pageSize

	list, _, err := p.List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	items := []unstructured.Unstructured{}
	err = meta.EachListItem(list, func(obj runtime.Object) error {
		u, ok := obj.(*unstructured.Unstructured)
		if !ok {
			return fmt.Errorf("unexpected list item type %T", obj)
		}
		items = append(items, *u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// MergePatchClusterResource applies a JSON merge patch (RFC 7386) to a named
// cluster-scoped object and returns the object as stored after the patch.
//
// Fields absent from body are left untouched on the server, so settings
// written by other processes survive.
//
// Returns a *MutationError carrying the target identity on failure
// (not found, conflict, validation, transport).
func (c *Client) MergePatchClusterResource(ctx context.Context, gvr schema.GroupVersionResource, name string, body []byte, opts PatchOptions) (*unstructured.Unstructured, error) {
	result, err := c.dynamicClient.Resource(gvr).Patch(ctx, name, types.MergePatchType, body, opts.toMeta())
	if err != nil {
		return nil, &MutationError{
			GVR:  gvr,
			Name: name,
			Err:  err,
		}
	}

	return result, nil
}

func (o PatchOptions) toMeta() metav1.PatchOptions {
	patchOpts := metav1.PatchOptions{
		FieldManager: o.FieldManager,
	}
	if o.DryRun {
		patchOpts.DryRun = []string{metav1.DryRunAll}
	}
	return patchOpts
}
