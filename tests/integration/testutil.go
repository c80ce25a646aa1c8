//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"

	deckhousev1alpha1 "sds-local-volume-hooks/pkg/apis/deckhouse/v1alpha1"
	storagev1alpha1 "sds-local-volume-hooks/pkg/apis/storage/v1alpha1"
	"sds-local-volume-hooks/pkg/consts"
)

// ResetClusterState removes every LocalStorageClass and the module's
// ModuleConfig so a test starts from an empty cluster.
func ResetClusterState(t *testing.T, dyn dynamic.Interface) {
	t.Helper()
	ctx := context.Background()

	err := dyn.Resource(storagev1alpha1.LocalStorageClassGVR).
		DeleteCollection(ctx, metav1.DeleteOptions{}, metav1.ListOptions{})
	require.NoError(t, err, "failed to delete LocalStorageClasses")

	err = dyn.Resource(deckhousev1alpha1.ModuleConfigGVR).
		Delete(ctx, consts.ModulePluralName, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		require.NoError(t, err, "failed to delete ModuleConfig")
	}
}

// CreateLocalStorageClass creates a LocalStorageClass and deletes it when
// the test ends. An empty lvmType omits spec.lvm.type.
func CreateLocalStorageClass(t *testing.T, dyn dynamic.Interface, name, lvmType string) *unstructured.Unstructured {
	t.Helper()

	lvm := map[string]interface{}{
		"lvmVolumeGroups": []interface{}{
			map[string]interface{}{"name": "vg-data"},
		},
	}
	if lvmType != "" {
		lvm["type"] = lvmType
	}

	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": storagev1alpha1.Group + "/" + storagev1alpha1.Version,
		"kind":       storagev1alpha1.LocalStorageClassKind,
		"metadata": map[string]interface{}{
			"name": name,
		},
		"spec": map[string]interface{}{
			"reclaimPolicy":     "Delete",
			"volumeBindingMode": "WaitForFirstConsumer",
			"lvm":               lvm,
		},
	}}

	created, err := dyn.Resource(storagev1alpha1.LocalStorageClassGVR).
		Create(context.Background(), obj, metav1.CreateOptions{})
	require.NoError(t, err, "failed to create LocalStorageClass %s", name)

	t.Cleanup(func() {
		_ = dyn.Resource(storagev1alpha1.LocalStorageClassGVR).
			Delete(context.Background(), name, metav1.DeleteOptions{})
	})

	return created
}

// CreateModuleConfig creates the module's ModuleConfig with the given
// settings and deletes it when the test ends.
func CreateModuleConfig(t *testing.T, dyn dynamic.Interface, settings map[string]interface{}) *unstructured.Unstructured {
	t.Helper()

	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": deckhousev1alpha1.Group + "/" + deckhousev1alpha1.Version,
		"kind":       deckhousev1alpha1.ModuleConfigKind,
		"metadata": map[string]interface{}{
			"name": consts.ModulePluralName,
		},
		"spec": map[string]interface{}{
			"version":  int64(1),
			"enabled":  true,
			"settings": settings,
		},
	}}

	created, err := dyn.Resource(deckhousev1alpha1.ModuleConfigGVR).
		Create(context.Background(), obj, metav1.CreateOptions{})
	require.NoError(t, err, "failed to create ModuleConfig")

	t.Cleanup(func() {
		_ = dyn.Resource(deckhousev1alpha1.ModuleConfigGVR).
			Delete(context.Background(), consts.ModulePluralName, metav1.DeleteOptions{})
	})

	return created
}

// GetModuleConfig returns the module's ModuleConfig as stored.
func GetModuleConfig(t *testing.T, dyn dynamic.Interface) *unstructured.Unstructured {
	t.Helper()

	obj, err := dyn.Resource(deckhousev1alpha1.ModuleConfigGVR).
		Get(context.Background(), consts.ModulePluralName, metav1.GetOptions{})
	require.NoError(t, err, "failed to get ModuleConfig")

	return obj
}
