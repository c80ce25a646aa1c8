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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{
			name: "after helm",
			cfg:  Config{ConfigVersion: ConfigVersionV1, OnAfterHelm: &OrderedConfig{Order: 10}},
		},
		{
			name: "several phases",
			cfg: Config{
				ConfigVersion: ConfigVersionV1,
				OnStartup:     &OrderedConfig{Order: 1},
				OnBeforeHelm:  &OrderedConfig{Order: 0},
			},
		},
		{
			name:      "unknown version",
			cfg:       Config{ConfigVersion: "v0", OnAfterHelm: &OrderedConfig{Order: 10}},
			wantField: "configVersion",
		},
		{
			name:      "missing version",
			cfg:       Config{OnAfterHelm: &OrderedConfig{Order: 10}},
			wantField: "configVersion",
		},
		{
			name:      "negative order",
			cfg:       Config{ConfigVersion: ConfigVersionV1, OnAfterDeleteHelm: &OrderedConfig{Order: -1}},
			wantField: "afterDeleteHelm",
		},
		{
			name:      "no phase",
			cfg:       Config{ConfigVersion: ConfigVersionV1},
			wantField: "bindings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestConfig_Phases(t *testing.T) {
	cfg := &Config{
		ConfigVersion:     ConfigVersionV1,
		OnAfterDeleteHelm: &OrderedConfig{Order: 5},
		OnStartup:         &OrderedConfig{Order: 1},
	}

	assert.Equal(t, []string{"onStartup", "afterDeleteHelm"}, cfg.Phases())
	assert.Nil(t, (&Config{}).Phases())
}

func TestConfig_MarshalYAML(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "after helm",
			cfg:  &Config{ConfigVersion: ConfigVersionV1, OnAfterHelm: &OrderedConfig{Order: 10}},
			want: "configVersion: v1\nafterHelm: 10\n",
		},
		{
			name: "fractional order",
			cfg:  &Config{ConfigVersion: ConfigVersionV1, OnStartup: &OrderedConfig{Order: 2.5}},
			want: "configVersion: v1\nonStartup: 2.5\n",
		},
		{
			name: "phase order follows lifecycle",
			cfg: &Config{
				ConfigVersion: ConfigVersionV1,
				OnAfterHelm:   &OrderedConfig{Order: 20},
				OnBeforeHelm:  &OrderedConfig{Order: 5},
			},
			want: "configVersion: v1\nbeforeHelm: 5\nafterHelm: 20\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := yaml.Marshal(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestConfig_MarshalYAML_RoundTrip(t *testing.T) {
	out, err := yaml.Marshal(&Config{ConfigVersion: ConfigVersionV1, OnAfterHelm: &OrderedConfig{Order: 10}})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))

	assert.Equal(t, "v1", decoded["configVersion"])
	assert.Equal(t, 10, decoded["afterHelm"])
}
