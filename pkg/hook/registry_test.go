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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *Input) error { return nil }

func afterHelm(order float64) *Config {
	return &Config{ConfigVersion: ConfigVersionV1, OnAfterHelm: &OrderedConfig{Order: order}}
}

func TestRegistry_Add(t *testing.T) {
	tests := []struct {
		name    string
		hook    string
		cfg     *Config
		fn      Func
		wantErr string
	}{
		{name: "valid", hook: "010-a", cfg: afterHelm(10), fn: noop},
		{name: "empty name", hook: "", cfg: afterHelm(10), fn: noop, wantErr: "must not be empty"},
		{name: "nil function", hook: "010-a", cfg: afterHelm(10), fn: nil, wantErr: "has no function"},
		{name: "nil config", hook: "010-a", cfg: nil, fn: noop, wantErr: "has no config"},
		{name: "invalid config", hook: "010-a", cfg: &Config{ConfigVersion: "v2"}, fn: noop, wantErr: "configVersion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Add(tt.hook, tt.cfg, tt.fn)
			if tt.wantErr == "" {
				require.NoError(t, err)
				h, ok := r.Get(tt.hook)
				require.True(t, ok)
				assert.Equal(t, tt.hook, h.Name)
				assert.Same(t, tt.cfg, h.Config)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, r.Hooks())
		})
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add("030-x", afterHelm(10), noop))

	err := r.Add("030-x", afterHelm(20), noop)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	h, _ := r.Get("030-x")
	assert.Equal(t, float64(10), h.Config.OnAfterHelm.Order)
}

func TestRegistry_HooksSorted(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add("090-c", afterHelm(1), noop))
	require.NoError(t, r.Add("010-a", afterHelm(1), noop))
	require.NoError(t, r.Add("030-b", afterHelm(1), noop))

	var names []string
	for _, h := range r.Hooks() {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"010-a", "030-b", "090-c"}, names)
}

func TestRegistry_GetMissing(t *testing.T) {
	_, ok := NewRegistry().Get("nope")
	assert.False(t, ok)
}

func TestRegister_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		Register("", afterHelm(1), noop)
	})
}
