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

// Package consts holds module-wide names shared by all hooks.
package consts

const (
	// ModuleName is the module key in Helm values.
	ModuleName = "sdsLocalVolume"

	// ModuleNamespace is the namespace the module is deployed to.
	ModuleNamespace = "d8-sds-local-volume"

	// ModulePluralName is the kebab-case module name. The module's
	// ModuleConfig object carries this name.
	ModulePluralName = "sds-local-volume"

	// FieldManager is recorded in managedFields for every write a hook makes.
	FieldManager = "sds-hook"
)
