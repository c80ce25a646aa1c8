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

// Package settings validates module settings against the module's
// config-values OpenAPI schema.
//
// The platform rejects a ModuleConfig whose settings do not match the
// schema. Checking a patch locally first turns such a rejection into an
// error that names the offending key.
package settings

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"sigs.k8s.io/yaml"
)

// SchemaVersion is the settings schema version described by configValues.
const SchemaVersion = 1

//go:embed openapi/config-values.yaml
var configValues []byte

// Schema is a compiled settings schema.
type Schema struct {
	schema *openapi3.Schema
}

// Load parses the embedded config-values schema.
func Load() (*Schema, error) {
	return Parse(configValues)
}

// Parse compiles a config-values schema from YAML or JSON.
func Parse(data []byte) (*Schema, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, &SchemaError{Operation: "convert to JSON", Err: err}
	}

	s := &openapi3.Schema{}
	if err := s.UnmarshalJSON(jsonData); err != nil {
		return nil, &SchemaError{Operation: "unmarshal", Err: err}
	}

	if err := s.Validate(context.Background()); err != nil {
		return nil, &SchemaError{Operation: "validate", Err: err}
	}

	return &Schema{schema: s}, nil
}

// Validate checks a (possibly partial) settings map.
//
// Values are normalized through a JSON round trip first so that Go integer
// types are checked the same way as numbers read from the API server.
func (s *Schema) Validate(values map[string]interface{}) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("failed to normalize settings: %w", err)
	}

	if err := s.schema.VisitJSON(normalized); err != nil {
		return &ValidationError{Err: err}
	}

	return nil
}

// SchemaError is returned when the settings schema itself is unusable.
type SchemaError struct {
	Operation string
	Err       error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("settings schema error during %s: %v", e.Operation, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when settings do not match the schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings do not match schema: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
