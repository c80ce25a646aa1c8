package client

import (
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// CredentialError represents errors that occur while building an
// authenticated client.
type CredentialError struct {
	Operation string
	Err       error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("k8s client error during %s: %v", e.Operation, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// EnumerationError represents a failed LIST of a resource type.
type EnumerationError struct {
	GVR schema.GroupVersionResource
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", formatGVR(e.GVR), e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// MutationError represents a failed PATCH of a named object.
type MutationError struct {
	GVR  schema.GroupVersionResource
	Name string
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to patch %s/%s: %v", formatGVR(e.GVR), e.Name, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// formatGVR renders a GVR as "resource.group/version", or "resource/version"
// for the core group.
func formatGVR(gvr schema.GroupVersionResource) string {
	if gvr.Group == "" {
		return fmt.Sprintf("%s/%s", gvr.Resource, gvr.Version)
	}
	return fmt.Sprintf("%s.%s/%s", gvr.Resource, gvr.Group, gvr.Version)
}
