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


package v1alpha1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleConfigPatch_Marshal(t *testing.T) {
	tests := []struct {
		name  string
		patch ModuleConfigPatch
		want  string
	}{
		{
			name:  "version and one setting",
			patch: NewSettingsPatch(1, map[string]interface{}{"enableThinProvisioning": true}),
			want:  `{"spec":{"version":1,"settings":{"enableThinProvisioning":true}}}`,
		},
		{
			name:  "settings only",
			patch: NewSettingsPatch(0, map[string]interface{}{"logLevel": "DEBUG"}),
			want:  `{"spec":{"settings":{"logLevel":"DEBUG"}}}`,
		},
		{
			name:  "empty",
			patch: ModuleConfigPatch{},
			want:  `{"spec":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := tt.patch.Marshal()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))
		})
	}
}

func TestModuleConfigPatch_MarshalError(t *testing.T) {
	patch := NewSettingsPatch(1, map[string]interface{}{"bad": make(chan int)})

	_, err := patch.Marshal()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal ModuleConfig patch")
}

func TestModuleConfigGVR(t *testing.T) {
	assert.Equal(t, "deckhouse.io", ModuleConfigGVR.Group)
	assert.Equal(t, "v1alpha1", ModuleConfigGVR.Version)
	assert.Equal(t, "moduleconfigs", ModuleConfigGVR.Resource)
}
