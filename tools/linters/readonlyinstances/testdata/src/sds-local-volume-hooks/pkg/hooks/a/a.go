package a

import "k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

// Violation: helper writes into a parameter
func markSeen(obj *unstructured.Unstructured) {
	_ = unstructured.SetNestedField(obj.Object, true, "spec", "seen") // want `instance mutation detected`
}

// Violation: removal from a parameter
func dropType(obj *unstructured.Unstructured) {
	unstructured.RemoveNestedField(obj.Object, "spec", "lvm", "type") // want `instance mutation detected`
}

// Violation: element of a slice parameter
func labelAll(items []unstructured.Unstructured) {
	for i := range items {
		_ = unstructured.SetNestedStringMap(items[i].Object, map[string]string{"a": "b"}, "metadata", "labels") // want `instance mutation detected`
	}
}

// Violation: setter method on a parameter
func rename(obj *unstructured.Unstructured) {
	obj.SetName("other") // want `instance mutation detected`
}

// Violation: parameter of a closure
func closure() func(*unstructured.Unstructured) {
	return func(obj *unstructured.Unstructured) {
		obj.SetLabels(nil) // want `instance mutation detected`
	}
}

// OK: read-only access
func isThin(obj *unstructured.Unstructured) bool {
	t, _, _ := unstructured.NestedString(obj.Object, "spec", "lvm", "type")
	return t == "Thin"
}

// OK: getter method
func name(obj *unstructured.Unstructured) string {
	return obj.GetName()
}

// OK: locally built object
func build() *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{}}
	_ = unstructured.SetNestedField(obj.Object, "Thin", "spec", "lvm", "type")
	obj.SetName("local")
	return obj
}
