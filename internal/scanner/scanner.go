package scanner

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/dshills/docweave/pkg/types"
)

// Scanner parses source units into structural records
type Scanner struct{}

// New creates a new Scanner instance
func New() *Scanner {
	return &Scanner{}
}

// Scan parses content into a StructuralRecord. A syntax error yields a
// *types.ParseError and no partial result.
func (s *Scanner) Scan(id string, content []byte) (*types.StructuralRecord, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, id, content, parser.ParseComments)
	if err != nil {
		return nil, &types.ParseError{Unit: id, Err: err}
	}

	rec := &types.StructuralRecord{
		UnitID:      id,
		PackageName: file.Name.Name,
		AST:         file,
		FileSet:     fset,
	}

	if file.Doc != nil {
		rec.PackageDoc = spanOf(fset, file.Doc.Pos(), file.Doc.End())
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			rec.Decls = append(rec.Decls, extractFunc(fset, d))
		case *ast.GenDecl:
			rec.Decls = append(rec.Decls, extractGenDecl(fset, d)...)
		}
	}

	return rec, nil
}

// extractFunc extracts a function or method declaration
func extractFunc(fset *token.FileSet, funcDecl *ast.FuncDecl) types.Declaration {
	decl := types.Declaration{
		Name:     funcDecl.Name.Name,
		Kind:     types.KindFunction,
		Span:     *spanOf(fset, funcDecl.Pos(), funcDecl.End()),
		Exported: token.IsExported(funcDecl.Name.Name),
	}

	if funcDecl.Recv != nil && len(funcDecl.Recv.List) > 0 {
		decl.Kind = types.KindMethod
		decl.Receiver = receiverType(funcDecl.Recv.List[0].Type)
	}

	if funcDecl.Doc != nil {
		decl.Doc = spanOf(fset, funcDecl.Doc.Pos(), funcDecl.Doc.End())
	}

	if funcDecl.Type.Params != nil {
		decl.Params = fieldPairs(funcDecl.Type.Params)
	}
	if funcDecl.Type.Results != nil {
		decl.Results = fieldTypes(funcDecl.Type.Results)
	}

	return decl
}

// extractGenDecl extracts type, const, and var declarations.
// Type specs become one declaration each; a const or var block becomes a
// single declaration listing the block's names as members.
func extractGenDecl(fset *token.FileSet, genDecl *ast.GenDecl) []types.Declaration {
	switch genDecl.Tok {
	case token.TYPE:
		var decls []types.Declaration
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			decls = append(decls, extractTypeSpec(fset, genDecl, typeSpec))
		}
		return decls

	case token.CONST, token.VAR:
		return extractValueBlock(fset, genDecl)
	}
	return nil
}

// extractTypeSpec extracts a struct, interface, or other type declaration
func extractTypeSpec(fset *token.FileSet, genDecl *ast.GenDecl, typeSpec *ast.TypeSpec) types.Declaration {
	decl := types.Declaration{
		Name:     typeSpec.Name.Name,
		Exported: token.IsExported(typeSpec.Name.Name),
	}

	// Inside a parenthesized block each spec carries its own position and
	// doc; a plain declaration spans the whole GenDecl.
	if genDecl.Lparen.IsValid() {
		decl.Span = *spanOf(fset, typeSpec.Pos(), typeSpec.End())
		if typeSpec.Doc != nil {
			decl.Doc = spanOf(fset, typeSpec.Doc.Pos(), typeSpec.Doc.End())
		}
	} else {
		decl.Span = *spanOf(fset, genDecl.Pos(), genDecl.End())
		if genDecl.Doc != nil {
			decl.Doc = spanOf(fset, genDecl.Doc.Pos(), genDecl.Doc.End())
		}
	}

	switch t := typeSpec.Type.(type) {
	case *ast.StructType:
		decl.Kind = types.KindStruct
		decl.Fields = structFieldNames(t)
	case *ast.InterfaceType:
		decl.Kind = types.KindInterface
		decl.Fields = interfaceMethodNames(t)
	default:
		decl.Kind = types.KindType
	}

	return decl
}

// extractValueBlock extracts a const or var declaration as one record
func extractValueBlock(fset *token.FileSet, genDecl *ast.GenDecl) []types.Declaration {
	kind := types.KindVar
	if genDecl.Tok == token.CONST {
		kind = types.KindConst
	}

	var names []string
	exported := false
	for _, spec := range genDecl.Specs {
		valueSpec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		for _, name := range valueSpec.Names {
			if name.Name == "_" {
				continue
			}
			names = append(names, name.Name)
			if token.IsExported(name.Name) {
				exported = true
			}
		}
	}
	if len(names) == 0 {
		return nil
	}

	decl := types.Declaration{
		Name:     names[0],
		Kind:     kind,
		Fields:   names,
		Span:     *spanOf(fset, genDecl.Pos(), genDecl.End()),
		Exported: exported,
	}
	if genDecl.Doc != nil {
		decl.Doc = spanOf(fset, genDecl.Doc.Pos(), genDecl.Doc.End())
	}

	return []types.Declaration{decl}
}

// receiverType extracts the receiver type name from a method
func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	}
	return ""
}

// fieldPairs renders a field list as "name type" strings
func fieldPairs(fieldList *ast.FieldList) []string {
	var pairs []string
	for _, field := range fieldList.List {
		typeStr := ExprString(field.Type)
		if len(field.Names) == 0 {
			pairs = append(pairs, typeStr)
			continue
		}
		for _, name := range field.Names {
			pairs = append(pairs, fmt.Sprintf("%s %s", name.Name, typeStr))
		}
	}
	return pairs
}

// fieldTypes renders a field list as bare type strings
func fieldTypes(fieldList *ast.FieldList) []string {
	var out []string
	for _, field := range fieldList.List {
		typeStr := ExprString(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out = append(out, typeStr)
		}
	}
	return out
}

// structFieldNames lists named fields of a struct
func structFieldNames(structType *ast.StructType) []string {
	if structType.Fields == nil {
		return nil
	}
	var names []string
	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			// Embedded field: use the type name
			names = append(names, ExprString(field.Type))
			continue
		}
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// interfaceMethodNames lists named methods of an interface
func interfaceMethodNames(interfaceType *ast.InterfaceType) []string {
	if interfaceType.Methods == nil {
		return nil
	}
	var names []string
	for _, method := range interfaceType.Methods.List {
		if len(method.Names) == 0 {
			names = append(names, ExprString(method.Type))
			continue
		}
		for _, name := range method.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// ExprString renders an expression to a compact string representation
func ExprString(expr ast.Expr) string {
	if expr == nil {
		return ""
	}

	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + ExprString(t.X)
	case *ast.ArrayType:
		return "[]" + ExprString(t.Elt)
	case *ast.MapType:
		return fmt.Sprintf("map[%s]%s", ExprString(t.Key), ExprString(t.Value))
	case *ast.ChanType:
		switch t.Dir {
		case ast.RECV:
			return "<-chan " + ExprString(t.Value)
		case ast.SEND:
			return "chan<- " + ExprString(t.Value)
		default:
			return "chan " + ExprString(t.Value)
		}
	case *ast.FuncType:
		return "func(...)"
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.StructType:
		return "struct{...}"
	case *ast.SelectorExpr:
		return ExprString(t.X) + "." + t.Sel.Name
	case *ast.Ellipsis:
		return "..." + ExprString(t.Elt)
	case *ast.IndexExpr:
		return ExprString(t.X) + "[" + ExprString(t.Index) + "]"
	case *ast.CallExpr:
		return ExprString(t.Fun) + "(...)"
	case *ast.UnaryExpr:
		return t.Op.String() + ExprString(t.X)
	case *ast.BasicLit:
		return t.Value
	case *ast.CompositeLit:
		return ExprString(t.Type) + "{...}"
	case *ast.ParenExpr:
		return "(" + ExprString(t.X) + ")"
	default:
		return "..."
	}
}

// CallPath renders the callee of a call expression as a dotted path,
// e.g. "os.Open" or "u.store.Save". Returns "" for dynamic callees.
func CallPath(call *ast.CallExpr) string {
	path := selectorPath(call.Fun)
	if strings.HasPrefix(path, ".") {
		return ""
	}
	return path
}

func selectorPath(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		// A dynamic base (e.g. foo().Bar) has no stable path
		base := selectorPath(t.X)
		if base == "" {
			return ""
		}
		return base + "." + t.Sel.Name
	case *ast.StarExpr:
		return selectorPath(t.X)
	case *ast.ParenExpr:
		return selectorPath(t.X)
	case *ast.IndexExpr:
		return selectorPath(t.X)
	default:
		return ""
	}
}

// spanOf converts a token position pair into a byte span
func spanOf(fset *token.FileSet, start, end token.Pos) *types.Span {
	return &types.Span{
		Start: fset.Position(start).Offset,
		End:   fset.Position(end).Offset,
	}
}
