package types

import (
	"errors"
	"go/ast"
	"go/token"
)

// DeclKind represents the kind of a top-level declaration
type DeclKind string

const (
	KindFunction  DeclKind = "function"
	KindMethod    DeclKind = "method"
	KindStruct    DeclKind = "struct"
	KindInterface DeclKind = "interface"
	KindType      DeclKind = "type"
	KindConst     DeclKind = "const"
	KindVar       DeclKind = "var"
)

// Span is a half-open byte range [Start, End) within a unit's content
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Declaration describes one top-level declaration in a source unit
type Declaration struct {
	// Identification
	Name     string
	Kind     DeclKind
	Receiver string // For methods: receiver type name

	// Shape, rendered for documentation templates
	Params  []string // "name type" pairs for functions and methods
	Results []string // result types for functions and methods
	Fields  []string // field names for structs, member names for blocks

	// Location
	Span Span
	Doc  *Span // nil when the declaration carries no documentation

	Exported bool
}

// Documented reports whether the declaration already carries documentation
func (d *Declaration) Documented() bool {
	return d.Doc != nil
}

// Key returns the name facts are attributed under: "Recv.Name" for methods,
// the plain name otherwise
func (d *Declaration) Key() string {
	return DeclKey(d.Receiver, d.Name)
}

// DeclKey builds the attribution key for a receiver/name pair
func DeclKey(receiver, name string) string {
	if receiver != "" {
		return receiver + "." + name
	}
	return name
}

// StructuralRecord is the parsed shape of one source unit.
// It is recomputed per unit per run and never persisted.
type StructuralRecord struct {
	UnitID      string
	PackageName string
	Decls       []Declaration

	// PackageDoc is the unit-level documentation span, nil when absent
	PackageDoc *Span

	// Parsed form, shared with the pure fact analyses
	AST     *ast.File
	FileSet *token.FileSet
}

// Decl returns the declaration with the given name, or nil
func (r *StructuralRecord) Decl(name string) *Declaration {
	for i := range r.Decls {
		if r.Decls[i].Name == name {
			return &r.Decls[i]
		}
	}
	return nil
}

// Validate performs basic consistency checks on the record
func (r *StructuralRecord) Validate() error {
	if r.UnitID == "" {
		return errors.New("unit id is required")
	}
	if r.PackageName == "" {
		return errors.New("package name is required")
	}
	for i := range r.Decls {
		d := &r.Decls[i]
		if d.Name == "" {
			return errors.New("declaration name is required")
		}
		if d.Kind == KindMethod && d.Receiver == "" {
			return errors.New("methods must have a receiver type")
		}
		if d.Span.Start < 0 || d.Span.End < d.Span.Start {
			return errors.New("invalid declaration span")
		}
	}
	return nil
}
