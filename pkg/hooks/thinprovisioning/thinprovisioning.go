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

// Package thinprovisioning turns on thin provisioning in the module's
// ModuleConfig once any LocalStorageClass asks for thin LVM volumes.
//
// The hook runs after every Helm release of the module:
//
//  1. List all LocalStorageClass objects (cluster-scoped).
//  2. Check whether any of them has spec.lvm.type == "Thin".
//  3. If so, merge-patch ModuleConfig "sds-local-volume" with
//     {"spec":{"version":1,"settings":{"enableThinProvisioning":true}}}.
//     Otherwise do nothing.
//
// The patch is sent on every matching run, including when the setting is
// already enabled. A merge patch of the same scalars is a no-op on the
// server, and skipping it would need an extra GET.
package thinprovisioning

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	deckhousev1alpha1 "sds-local-volume-hooks/pkg/apis/deckhouse/v1alpha1"
	storagev1alpha1 "sds-local-volume-hooks/pkg/apis/storage/v1alpha1"
	"sds-local-volume-hooks/pkg/consts"
	"sds-local-volume-hooks/pkg/hook"
	"sds-local-volume-hooks/pkg/k8s/client"
	"sds-local-volume-hooks/pkg/metrics"
	"sds-local-volume-hooks/pkg/settings"
)

const (
	// Name is the hook's registry name.
	Name = "030-enable-thin-provisioning"

	// SettingKey is the ModuleConfig settings key this hook enables.
	SettingKey = "enableThinProvisioning"
)

// Config binds the hook to the afterHelm phase with order 10.
var Config = &hook.Config{
	ConfigVersion: hook.ConfigVersionV1,
	OnAfterHelm:   &hook.OrderedConfig{Order: 10},
}

var _ = hook.Register(Name, Config, Reconcile)

// Outcome is the last state one invocation reached. Alongside a non-nil
// error it names the step that failed.
type Outcome int

const (
	// OutcomeIdle means no thin LocalStorageClass was found and nothing was
	// written. With an error, listing failed.
	OutcomeIdle Outcome = iota

	// OutcomePatched means the ModuleConfig patch was sent. With an error,
	// the patch was rejected or could not be built.
	OutcomePatched
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomePatched:
		return "patched"
	default:
		return "unknown"
	}
}

// Reconcile is the hook.Func registered for this package.
func Reconcile(ctx context.Context, in *hook.Input) error {
	_, err := EnableThinProvisioning(ctx, in)
	return err
}

// EnableThinProvisioning performs one scan and, if needed, one patch.
//
// Errors from listing are returned as *client.EnumerationError and the
// patch is not attempted. Errors from patching, including a settings schema
// violation detected before the request, are returned as
// *client.MutationError.
//
// Metrics are registered on in.Metrics. Repeated calls with the same
// registry reuse the collectors from the first call.
func EnableThinProvisioning(ctx context.Context, in *hook.Input) (Outcome, error) {
	m := newHookMetrics(in.Metrics)

	items, err := in.Client.ListClusterResources(ctx, storagev1alpha1.LocalStorageClassGVR)
	if err != nil {
		return OutcomeIdle, err
	}
	m.scanned.Set(float64(len(items)))

	name, found := AnyThin(items)
	if !found {
		in.Logger.Debug("no thin LocalStorageClass found", "scanned", len(items))
		return OutcomeIdle, nil
	}
	m.thinFound.Set(1)

	in.Logger.Info("thin LocalStorageClass found",
		"local_storage_class", name,
		"scanned", len(items))

	patched, err := patchModuleConfig(ctx, in)
	if err != nil {
		return OutcomePatched, err
	}
	m.patches.Inc()

	out, err := yaml.Marshal(patched.Object)
	if err != nil {
		return OutcomePatched, fmt.Errorf("failed to format patched ModuleConfig as YAML: %w", err)
	}
	marker := ""
	if in.DryRun {
		marker = " (dry run, nothing persisted)"
	}
	fmt.Fprintf(in.Stdout, "Thin pools present, switching %s on%s\n---\n%s\n", SettingKey, marker, out)

	return OutcomePatched, nil
}

// Matches reports whether obj is a LocalStorageClass with thin LVM volumes.
// Missing or malformed fields count as no match.
func Matches(obj *unstructured.Unstructured) bool {
	return storagev1alpha1.NewLocalStorageClassView(obj).IsThin()
}

// AnyThin scans items in order and returns the name of the first thin
// LocalStorageClass.
func AnyThin(items []unstructured.Unstructured) (string, bool) {
	for i := range items {
		if Matches(&items[i]) {
			return items[i].GetName(), true
		}
	}
	return "", false
}

// PatchBody returns the merge-patch document sent to the ModuleConfig.
func PatchBody() ([]byte, error) {
	patch := deckhousev1alpha1.NewSettingsPatch(settings.SchemaVersion, map[string]interface{}{
		SettingKey: true,
	})

	schema, err := settings.Load()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(patch.Spec.Settings); err != nil {
		return nil, err
	}

	return patch.Marshal()
}

func patchModuleConfig(ctx context.Context, in *hook.Input) (*unstructured.Unstructured, error) {
	body, err := PatchBody()
	if err != nil {
		return nil, &client.MutationError{
			GVR:  deckhousev1alpha1.ModuleConfigGVR,
			Name: consts.ModulePluralName,
			Err:  err,
		}
	}

	in.Logger.Debug("patching ModuleConfig",
		"name", consts.ModulePluralName,
		"body", string(body),
		"dry_run", in.DryRun)

	return in.Client.MergePatchClusterResource(ctx,
		deckhousev1alpha1.ModuleConfigGVR,
		consts.ModulePluralName,
		body,
		client.PatchOptions{
			FieldManager: consts.FieldManager,
			DryRun:       in.DryRun,
		})
}

// hookMetrics are registered on the invocation's registry.
type hookMetrics struct {
	scanned   prometheus.Gauge
	thinFound prometheus.Gauge
	patches   prometheus.Counter
}

func newHookMetrics(registry prometheus.Registerer) *hookMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &hookMetrics{
		scanned: metrics.NewGauge(
			registry,
			"sds_local_volume_local_storage_classes_scanned",
			"LocalStorageClass objects inspected by the last run",
		),
		thinFound: metrics.NewGauge(
			registry,
			"sds_local_volume_thin_local_storage_class_present",
			"1 if the last run found a LocalStorageClass with thin LVM volumes",
		),
		patches: metrics.NewCounter(
			registry,
			"sds_local_volume_module_config_patches_total",
			"ModuleConfig merge patches issued",
		),
	}
}
