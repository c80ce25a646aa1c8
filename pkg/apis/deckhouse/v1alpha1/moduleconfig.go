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

// Package v1alpha1 describes the deckhouse.io/v1alpha1 ModuleConfig resource
// as far as hooks need to write to it.
//
// ModuleConfig objects are created by the platform installer. Hooks only
// send partial documents to them, so this package models the patch body
// rather than the whole object.
package v1alpha1

import (
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// Group is the API group of ModuleConfig.
	Group = "deckhouse.io"

	// Version is the served API version.
	Version = "v1alpha1"

	// ModuleConfigResource is the plural resource name.
	ModuleConfigResource = "moduleconfigs"

	// ModuleConfigKind is the object kind.
	ModuleConfigKind = "ModuleConfig"
)

// ModuleConfigGVR identifies the cluster-scoped ModuleConfig resource.
var ModuleConfigGVR = schema.GroupVersionResource{
	Group:    Group,
	Version:  Version,
	Resource: ModuleConfigResource,
}

// ModuleConfigPatch is a JSON merge patch document for a ModuleConfig.
//
// Only fields that are set end up in the serialized document. Every field is
// a scalar or a map, so applying the same patch twice is a no-op.
type ModuleConfigPatch struct {
	Spec ModuleConfigPatchSpec `json:"spec"`
}

// ModuleConfigPatchSpec is the spec part of a ModuleConfigPatch.
type ModuleConfigPatchSpec struct {
	// Version is the settings schema version the settings are written for.
	Version int `json:"version,omitempty"`

	// Settings holds the feature-flag keys to set. Keys not listed here are
	// left as they are on the server.
	Settings map[string]interface{} `json:"settings,omitempty"`
}

// NewSettingsPatch builds a patch that sets spec.version and the given
// settings keys.
func NewSettingsPatch(version int, settings map[string]interface{}) ModuleConfigPatch {
	return ModuleConfigPatch{
		Spec: ModuleConfigPatchSpec{
			Version:  version,
			Settings: settings,
		},
	}
}

// Marshal serializes the patch as a merge-patch body.
func (p ModuleConfigPatch) Marshal() ([]byte, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ModuleConfig patch: %w", err)
	}
	return body, nil
}
