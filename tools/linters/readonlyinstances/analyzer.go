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


// Package readonlyinstances provides a linter that detects writes to
// unstructured objects received as function parameters in hook packages.
//
// Hooks read cluster objects returned by a LIST and send changes to the API
// server as patches. Writing into a listed object changes nothing on the
// server and hides the intent of the hook, so hook code must treat
// parameters of type *unstructured.Unstructured (and slices or maps of them)
// as read-only.
package readonlyinstances

import (
	"fmt"
	"go/ast"
	"go/types"
	"os"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const Doc = `detect writes to unstructured objects passed into hook functions

Objects handed to a hook come from the API server and are shared with the
caller. Hook code must not modify them; changes go to the server as patches.

This analyzer reports calls to the unstructured package's SetNested* and
RemoveNestedField helpers, and to Set* methods of *unstructured.Unstructured,
when the target is rooted in a parameter of the enclosing function.

Example of violation:

	func mark(obj *unstructured.Unstructured) {
		_ = unstructured.SetNestedField(obj.Object, true, "spec", "seen") // violation
	}

Correct usage:

	func isThin(obj *unstructured.Unstructured) bool {
		t, _, _ := unstructured.NestedString(obj.Object, "spec", "lvm", "type")
		return t == "Thin"
	}
`

const unstructuredPkg = "k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

// mutators are the package-level helpers that write into an object map.
var mutators = map[string]bool{
	"SetNestedField":       true,
	"SetNestedSlice":       true,
	"SetNestedStringSlice": true,
	"SetNestedMap":         true,
	"SetNestedStringMap":   true,
	"RemoveNestedField":    true,
}

// Analyzer is the read-only instances analyzer.
var Analyzer = &analysis.Analyzer{
	Name:     "readonlyinstances",
	Doc:      Doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if !isHookPackage(pass.Pkg.Path()) {
		return nil, nil
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	callsChecked := 0
	violationsFound := 0

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	inspect.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		call := n.(*ast.CallExpr)
		target, what := mutationTarget(pass, call)
		if target == nil {
			return true
		}
		callsChecked++

		root := rootIdent(target)
		if root == nil {
			return true
		}

		params := enclosingParams(pass, stack)
		v, ok := pass.TypesInfo.ObjectOf(root).(*types.Var)
		if !ok || !params[v] {
			return true
		}

		violationsFound++
		pass.Reportf(call.Pos(),
			"instance mutation detected: %s writes to parameter %s, hook inputs are read-only",
			what, root.Name)

		return true
	})

	if callsChecked > 0 {
		fmt.Fprintf(os.Stderr, "Read-only instances check [%s]: %d write call(s), %d violation(s)\n",
			pass.Pkg.Path(), callsChecked, violationsFound)
	}

	return nil, nil
}

// mutationTarget returns the expression a call writes into, or nil if the
// call does not mutate an unstructured object.
func mutationTarget(pass *analysis.Pass, call *ast.CallExpr) (ast.Expr, string) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil, ""
	}

	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != unstructuredPkg {
		return nil, ""
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return nil, ""
	}

	if sig.Recv() == nil {
		if mutators[fn.Name()] && len(call.Args) > 0 {
			return call.Args[0], "unstructured." + fn.Name()
		}
		return nil, ""
	}

	if strings.HasPrefix(fn.Name(), "Set") {
		return sel.X, fn.Name()
	}

	return nil, ""
}

// rootIdent strips selectors, indexing and dereferences down to the
// identifier an expression starts from.
func rootIdent(expr ast.Expr) *ast.Ident {
	for {
		switch e := expr.(type) {
		case *ast.Ident:
			return e
		case *ast.SelectorExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.UnaryExpr:
			expr = e.X
		default:
			return nil
		}
	}
}

// enclosingParams returns the parameters of the innermost function on stack.
func enclosingParams(pass *analysis.Pass, stack []ast.Node) map[*types.Var]bool {
	params := make(map[*types.Var]bool)

	var ft *ast.FuncType
	for i := len(stack) - 1; i >= 0 && ft == nil; i-- {
		switch fn := stack[i].(type) {
		case *ast.FuncDecl:
			ft = fn.Type
		case *ast.FuncLit:
			ft = fn.Type
		}
	}
	if ft == nil || ft.Params == nil {
		return params
	}

	for _, field := range ft.Params.List {
		for _, name := range field.Names {
			if v, ok := pass.TypesInfo.ObjectOf(name).(*types.Var); ok {
				params[v] = true
			}
		}
	}

	return params
}

// isHookPackage checks if the package path is a hook implementation.
func isHookPackage(pkgPath string) bool {
	return strings.Contains(pkgPath, "/pkg/hooks/") ||
		strings.HasSuffix(pkgPath, "/pkg/hooks")
}
