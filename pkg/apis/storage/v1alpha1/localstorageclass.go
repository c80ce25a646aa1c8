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

// Package v1alpha1 provides read-only views over storage.deckhouse.io/v1alpha1
// objects.
//
// The hooks never own these resources, so no Go structs or clientsets are
// generated for them. Objects are read as unstructured data and inspected
// through accessors that report absent fields instead of failing.
//
// # API Group
//
// Group: storage.deckhouse.io
// Version: v1alpha1
//
// # Resources
//
// LocalStorageClass: cluster-scoped, plural "localstorageclasses"
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// Group is the API group of the storage resources.
	Group = "storage.deckhouse.io"

	// Version is the served API version.
	Version = "v1alpha1"

	// LocalStorageClassResource is the plural resource name.
	LocalStorageClassResource = "localstorageclasses"

	// LocalStorageClassKind is the object kind.
	LocalStorageClassKind = "LocalStorageClass"
)

// LVM volume types accepted in spec.lvm.type.
const (
	LVMTypeThick = "Thick"
	LVMTypeThin  = "Thin"
)

// LocalStorageClassGVR identifies the LocalStorageClass resource.
var LocalStorageClassGVR = schema.GroupVersionResource{
	Group:    Group,
	Version:  Version,
	Resource: LocalStorageClassResource,
}

// LocalStorageClassView is a read-only accessor over an unstructured
// LocalStorageClass.
//
// It never copies or mutates the wrapped object.
type LocalStorageClassView struct {
	obj *unstructured.Unstructured
}

// NewLocalStorageClassView wraps obj. A nil obj is allowed and behaves like
// an object with no fields.
func NewLocalStorageClassView(obj *unstructured.Unstructured) LocalStorageClassView {
	return LocalStorageClassView{obj: obj}
}

// Name returns metadata.name, or "" for a nil object.
func (v LocalStorageClassView) Name() string {
	if v.obj == nil {
		return ""
	}
	return v.obj.GetName()
}

// LVMType returns spec.lvm.type.
//
// The second return value is false when the object is nil, when any of spec,
// lvm or type is missing, or when a level has an unexpected type.
func (v LocalStorageClassView) LVMType() (string, bool) {
	if v.obj == nil {
		return "", false
	}

	val, found, err := unstructured.NestedFieldNoCopy(v.obj.Object, "spec", "lvm", "type")
	if err != nil || !found {
		return "", false
	}

	s, ok := val.(string)
	if !ok {
		return "", false
	}

	return s, true
}

// IsThin reports whether spec.lvm.type is exactly "Thin".
func (v LocalStorageClassView) IsThin() bool {
	lvmType, ok := v.LVMType()
	return ok && lvmType == LVMTypeThin
}
