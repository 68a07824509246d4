package facts

import (
	"go/ast"

	"github.com/dshills/docweave/internal/scanner"
	"github.com/dshills/docweave/pkg/types"
)

// Runtime extracts configuration access and concurrency touchpoints.
// Like Effects it is pure and deterministic.
type Runtime struct {
	config      map[string][]string
	concurrency map[string][]string
}

// NewRuntime creates a runtime extractor using the given recognizers
func NewRuntime(table RecognizerTable) *Runtime {
	return &Runtime{
		config:      table.Config,
		concurrency: table.Concurrency,
	}
}

// Extract records config and concurrency touchpoints for the whole unit and
// flags asynchronous entry-point declarations.
func (r *Runtime) Extract(content []byte, rec *types.StructuralRecord) (*types.FactBundle, error) {
	bundle := types.NewFactBundle()

	ast.Inspect(rec.AST, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.CallExpr:
			r.inspectCall(bundle, n)
		case *ast.GoStmt:
			bundle.Concurrency[types.TouchSpawn] = appendLabel(
				bundle.Concurrency[types.TouchSpawn], goLabel(n))
		case *ast.SelectorExpr:
			// Type usage such as sync.Mutex in a var or field declaration
			path := scanner.ExprString(n)
			if touch, ok := classify(r.concurrency, path); ok {
				bundle.Concurrency[touch] = appendLabel(bundle.Concurrency[touch], path)
			}
		}
		return true
	})

	for _, decl := range rec.AST.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if asyncEntry(funcDecl) {
			bundle.AsyncEntries[funcKey(funcDecl)] = true
		}
	}

	return bundle, nil
}

// inspectCall classifies one call site against the config and concurrency
// tables, and recognizes channel construction structurally.
func (r *Runtime) inspectCall(bundle *types.FactBundle, call *ast.CallExpr) {
	if isChanMake(call) {
		bundle.Concurrency[types.TouchQueue] = appendLabel(
			bundle.Concurrency[types.TouchQueue], "make(chan)")
		return
	}

	path := scanner.CallPath(call)
	if path == "" {
		return
	}

	if touch, ok := classify(r.config, path); ok {
		bundle.Config[touch] = appendLabel(bundle.Config[touch], path)
	}
	if touch, ok := classify(r.concurrency, path); ok {
		bundle.Concurrency[touch] = appendLabel(bundle.Concurrency[touch], path)
	}
}

// asyncEntry reports whether a declaration is an asynchronous entry point:
// its body launches a goroutine at the top level, or it hands results back
// over a receive-only channel.
func asyncEntry(funcDecl *ast.FuncDecl) bool {
	if funcDecl.Body != nil {
		for _, stmt := range funcDecl.Body.List {
			if _, ok := stmt.(*ast.GoStmt); ok {
				return true
			}
		}
	}
	if funcDecl.Type.Results != nil {
		for _, result := range funcDecl.Type.Results.List {
			if chanType, ok := result.Type.(*ast.ChanType); ok && chanType.Dir == ast.RECV {
				return true
			}
		}
	}
	return false
}

// isChanMake reports whether call is make(chan ...)
func isChanMake(call *ast.CallExpr) bool {
	ident, ok := call.Fun.(*ast.Ident)
	if !ok || ident.Name != "make" || len(call.Args) == 0 {
		return false
	}
	_, isChan := call.Args[0].(*ast.ChanType)
	return isChan
}

// goLabel names the target of a go statement
func goLabel(stmt *ast.GoStmt) string {
	if path := scanner.CallPath(stmt.Call); path != "" {
		return "go " + path
	}
	return "go func"
}
