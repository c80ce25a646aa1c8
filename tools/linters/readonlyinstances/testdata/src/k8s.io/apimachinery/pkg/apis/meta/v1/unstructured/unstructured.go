package unstructured

// Unstructured is a minimal stand-in for analyzer tests.
type Unstructured struct {
	Object map[string]interface{}
}

func (u *Unstructured) GetName() string { return "" }

func (u *Unstructured) SetName(name string) {}

func (u *Unstructured) SetLabels(labels map[string]string) {}

func NestedString(obj map[string]interface{}, fields ...string) (string, bool, error) {
	return "", false, nil
}

func SetNestedField(obj map[string]interface{}, value interface{}, fields ...string) error {
	return nil
}

func SetNestedStringMap(obj map[string]interface{}, value map[string]string, fields ...string) error {
	return nil
}

func RemoveNestedField(obj map[string]interface{}, fields ...string) {}
