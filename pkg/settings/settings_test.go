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


package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestValidate(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name    string
		values  map[string]interface{}
		wantErr bool
	}{
		{
			name:   "empty",
			values: map[string]interface{}{},
		},
		{
			name:   "thin provisioning on",
			values: map[string]interface{}{"enableThinProvisioning": true},
		},
		{
			name: "all keys",
			values: map[string]interface{}{
				"logLevel":               "DEBUG",
				"enableThinProvisioning": false,
			},
		},
		{
			name:    "wrong type",
			values:  map[string]interface{}{"enableThinProvisioning": "yes"},
			wantErr: true,
		},
		{
			name:    "unknown key",
			values:  map[string]interface{}{"enableThickProvisioning": true},
			wantErr: true,
		},
		{
			name:    "log level outside enum",
			values:  map[string]interface{}{"logLevel": "VERBOSE"},
			wantErr: true,
		},
		{
			name:    "non-string log level",
			values:  map[string]interface{}{"logLevel": 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(tt.values)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var valErr *ValidationError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestValidate_Unmarshalable(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	err = s.Validate(map[string]interface{}{"logLevel": func() {}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal settings")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "json",
			data: `{"type":"object","properties":{"enabled":{"type":"boolean"}}}`,
		},
		{
			name:    "not yaml",
			data:    "type: [object",
			wantErr: "convert to JSON",
		},
		{
			name:    "not a schema",
			data:    "type: 42",
			wantErr: "unmarshal",
		},
		{
			name:    "invalid schema",
			data:    "type: object\nproperties:\n  level:\n    type: wat\n",
			wantErr: "validate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.data))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, s)
				return
			}

			require.Error(t, err)
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tt.wantErr, schemaErr.Operation)
		})
	}
}
