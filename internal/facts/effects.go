package facts

import (
	"go/ast"
	"strings"

	"github.com/dshills/docweave/internal/scanner"
	"github.com/dshills/docweave/pkg/types"
)

// Effects extracts error production and I/O touchpoints from a unit.
// It is pure: the same (content, record) pair always yields the same bundle.
type Effects struct {
	io map[string][]string
}

// NewEffects creates an effects extractor using the given I/O recognizers
func NewEffects(table RecognizerTable) *Effects {
	return &Effects{io: table.IO}
}

// Extract walks every declaration body and records, per declaration, the
// error kinds it can produce, and unit-wide, the I/O call sites by medium.
func (e *Effects) Extract(content []byte, rec *types.StructuralRecord) (*types.FactBundle, error) {
	bundle := types.NewFactBundle()

	for _, decl := range rec.AST.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Body == nil {
			continue
		}
		key := funcKey(funcDecl)

		ast.Inspect(funcDecl.Body, func(node ast.Node) bool {
			if call, ok := node.(*ast.CallExpr); ok {
				e.inspectCall(bundle, key, call)
			}
			return true
		})

		errorResults := errorResultSet(funcDecl.Type)
		for _, ret := range ownReturns(funcDecl.Body) {
			for i, result := range ret.Results {
				label := errorLabel(result)
				if label == "" && errorResults[i] {
					label = propagatedLabel(result)
				}
				if label != "" {
					bundle.Raises[key] = appendLabel(bundle.Raises[key], label)
				}
			}
		}
	}

	return bundle, nil
}

// ownReturns collects the return statements of body itself, excluding
// returns that belong to closures declared inside it.
func ownReturns(body *ast.BlockStmt) []*ast.ReturnStmt {
	var returns []*ast.ReturnStmt
	ast.Inspect(body, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.FuncLit:
			return false
		case *ast.ReturnStmt:
			returns = append(returns, n)
		}
		return true
	})
	return returns
}

// errorResultSet maps the result positions declared with the plain error
// type, expanding grouped names
func errorResultSet(funcType *ast.FuncType) map[int]bool {
	set := make(map[int]bool)
	if funcType.Results == nil {
		return set
	}

	pos := 0
	for _, field := range funcType.Results.List {
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		ident, ok := field.Type.(*ast.Ident)
		isError := ok && ident.Name == "error"
		for i := 0; i < count; i++ {
			if isError {
				set[pos] = true
			}
			pos++
		}
	}
	return set
}

// propagatedLabel classifies a value returned at an error result position
// that matched no construction heuristic: any identifier there carries an
// error received from elsewhere.
func propagatedLabel(expr ast.Expr) string {
	if ident, ok := expr.(*ast.Ident); ok && ident.Name != "nil" {
		return types.Reraise
	}
	return ""
}

// inspectCall classifies one call site: panics feed the raises map, known
// callee paths feed the I/O map.
func (e *Effects) inspectCall(bundle *types.FactBundle, key string, call *ast.CallExpr) {
	path := scanner.CallPath(call)
	if path == "" {
		return
	}

	if path == "panic" && len(call.Args) == 1 {
		if label := panicLabel(call.Args[0]); label != "" {
			bundle.Raises[key] = appendLabel(bundle.Raises[key], label)
		}
		return
	}

	if medium, ok := classify(e.io, path); ok {
		m := types.Medium(medium)
		bundle.IO[m] = appendLabel(bundle.IO[m], path)
	}
}

// errorLabel classifies one returned expression as an error kind.
// Returns "" when the expression is not an error production site.
func errorLabel(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.Ident:
		// Bare propagation: return err
		if v.Name == "err" || strings.HasSuffix(v.Name, "Err") {
			return types.Reraise
		}
		// Sentinel values: return ErrNotFound
		if strings.HasPrefix(v.Name, "Err") || strings.HasSuffix(v.Name, "Error") {
			return v.Name
		}

	case *ast.SelectorExpr:
		name := v.Sel.Name
		if strings.HasPrefix(name, "Err") || strings.HasSuffix(name, "Error") {
			return scanner.ExprString(v)
		}

	case *ast.UnaryExpr:
		if composite, ok := v.X.(*ast.CompositeLit); ok {
			return errorLabel(composite)
		}

	case *ast.CompositeLit:
		name := lastSegment(scanner.ExprString(v.Type))
		if strings.HasSuffix(name, "Error") {
			return name
		}

	case *ast.CallExpr:
		path := scanner.CallPath(v)
		switch path {
		case "errors.New", "fmt.Errorf":
			return path
		}
		name := lastSegment(path)
		// Constructor convention: NewDomainError(...) raises DomainError
		if strings.HasPrefix(name, "New") && strings.HasSuffix(name, "Error") {
			return strings.TrimPrefix(name, "New")
		}
		if strings.HasSuffix(name, "Error") {
			return name
		}
	}

	return ""
}

// panicLabel renders the panicked expression as an error-kind label
func panicLabel(expr ast.Expr) string {
	if label := errorLabel(expr); label != "" && label != types.Reraise {
		return label
	}
	return scanner.ExprString(expr)
}

// funcKey names the declaration facts are attributed to
func funcKey(funcDecl *ast.FuncDecl) string {
	receiver := ""
	if funcDecl.Recv != nil && len(funcDecl.Recv.List) > 0 {
		receiver = receiverName(funcDecl.Recv.List[0].Type)
	}
	return types.DeclKey(receiver, funcDecl.Name.Name)
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return ""
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func appendLabel(dst []string, label string) []string {
	for _, have := range dst {
		if have == label {
			return dst
		}
	}
	return append(dst, label)
}
