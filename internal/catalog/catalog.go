// Package catalog derives a unit's externally visible surface.
//
// Three origins are distinguished for provenance: curated forwarding of
// unexported same-package symbols (the unit's export list), ordinary
// exported top-level declarations, and same-module re-exports collected
// only from a package's aggregator unit (doc.go or <package>.go).
package catalog

import (
	"go/ast"
	"go/token"
	"path"
	"strings"

	"github.com/dshills/docweave/pkg/types"
)

// Cataloger derives public surface entries from structural records
type Cataloger struct {
	modulePath string
}

// New creates a Cataloger. modulePath identifies same-module imports for
// re-export detection; it may be empty, which disables re-export entries.
func New(modulePath string) *Cataloger {
	return &Cataloger{modulePath: modulePath}
}

// Catalog returns the unit's surface entries, ordered export-list first,
// then top-level declarations in source order, then re-exports in source
// order (aggregator units only).
func (c *Cataloger) Catalog(id string, content []byte, rec *types.StructuralRecord) []types.CatalogEntry {
	imports := importPaths(rec.AST)
	aggregator := isAggregator(id, rec.PackageName)

	var exportList, topLevel, reexports []types.CatalogEntry

	for _, decl := range rec.AST.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			// Methods belong to their type's surface, not the unit's
			if d.Recv != nil || !token.IsExported(d.Name.Name) {
				continue
			}
			topLevel = append(topLevel, types.CatalogEntry{
				Name:   d.Name.Name,
				Kind:   types.CatalogFunction,
				Origin: types.OriginTopLevel,
			})

		case *ast.GenDecl:
			el, tl, re := c.classifyGenDecl(d, imports, aggregator)
			exportList = append(exportList, el...)
			topLevel = append(topLevel, tl...)
			reexports = append(reexports, re...)
		}
	}

	entries := make([]types.CatalogEntry, 0, len(exportList)+len(topLevel)+len(reexports))
	entries = append(entries, exportList...)
	entries = append(entries, topLevel...)
	entries = append(entries, reexports...)
	return entries
}

// classifyGenDecl sorts one type/const/var declaration into origin buckets
func (c *Cataloger) classifyGenDecl(genDecl *ast.GenDecl, imports map[string]string, aggregator bool) (exportList, topLevel, reexports []types.CatalogEntry) {
	for _, spec := range genDecl.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			if !token.IsExported(s.Name.Name) {
				continue
			}
			if s.Assign.IsValid() {
				// Alias declaration: forwarding form
				switch entryOrigin(s.Type, imports, c.modulePath) {
				case types.OriginExportList:
					exportList = append(exportList, types.CatalogEntry{
						Name: s.Name.Name, Kind: types.CatalogExport, Origin: types.OriginExportList,
					})
					continue
				case types.OriginReexport:
					if aggregator {
						reexports = append(reexports, types.CatalogEntry{
							Name: s.Name.Name, Kind: types.CatalogImport, Origin: types.OriginReexport,
						})
						continue
					}
				}
			}
			topLevel = append(topLevel, types.CatalogEntry{
				Name: s.Name.Name, Kind: types.CatalogClass, Origin: types.OriginTopLevel,
			})

		case *ast.ValueSpec:
			for i, name := range s.Names {
				if !token.IsExported(name.Name) {
					continue
				}
				if len(s.Values) == len(s.Names) {
					switch entryOrigin(s.Values[i], imports, c.modulePath) {
					case types.OriginExportList:
						exportList = append(exportList, types.CatalogEntry{
							Name: name.Name, Kind: types.CatalogExport, Origin: types.OriginExportList,
						})
						continue
					case types.OriginReexport:
						if aggregator {
							reexports = append(reexports, types.CatalogEntry{
								Name: name.Name, Kind: types.CatalogImport, Origin: types.OriginReexport,
							})
							continue
						}
					}
				}
				topLevel = append(topLevel, types.CatalogEntry{
					Name: name.Name, Kind: types.CatalogVariable, Origin: types.OriginTopLevel,
				})
			}
		}
	}
	return exportList, topLevel, reexports
}

// entryOrigin classifies the right-hand side of a forwarding declaration.
// An unexported same-package identifier is export-list curation; a selector
// through a same-module import is a re-export; anything else is ordinary.
func entryOrigin(expr ast.Expr, imports map[string]string, modulePath string) types.CatalogOrigin {
	switch v := expr.(type) {
	case *ast.Ident:
		if !token.IsExported(v.Name) && v.Name != "true" && v.Name != "false" && v.Name != "nil" {
			return types.OriginExportList
		}
	case *ast.SelectorExpr:
		base, ok := v.X.(*ast.Ident)
		if !ok {
			break
		}
		importPath, found := imports[base.Name]
		if found && sameModule(importPath, modulePath) {
			return types.OriginReexport
		}
	}
	return types.OriginTopLevel
}

// importPaths maps local import names to import paths
func importPaths(file *ast.File) map[string]string {
	paths := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		name := path.Base(importPath)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		paths[name] = importPath
	}
	return paths
}

// sameModule reports whether importPath belongs to the module
func sameModule(importPath, modulePath string) bool {
	if modulePath == "" {
		return false
	}
	return importPath == modulePath || strings.HasPrefix(importPath, modulePath+"/")
}

// isAggregator reports whether the unit is its package's aggregator
func isAggregator(id, packageName string) bool {
	base := path.Base(id)
	return base == "doc.go" || base == packageName+".go"
}
