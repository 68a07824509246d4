package types

import "errors"

// CatalogKind classifies an entry of a unit's public surface
type CatalogKind string

const (
	CatalogClass    CatalogKind = "class"
	CatalogFunction CatalogKind = "function"
	CatalogVariable CatalogKind = "variable"
	CatalogExport   CatalogKind = "export"
	CatalogImport   CatalogKind = "import"
)

// CatalogOrigin records how a name became part of the public surface
type CatalogOrigin string

const (
	// OriginExportList marks a curated forwarding declaration that
	// surfaces an unexported symbol of the same package.
	OriginExportList CatalogOrigin = "export-list"

	// OriginTopLevel marks an ordinary exported top-level declaration.
	OriginTopLevel CatalogOrigin = "top-level"

	// OriginReexport marks a forwarding declaration that surfaces a
	// symbol from another package of the same module. Collected only
	// from aggregator units.
	OriginReexport CatalogOrigin = "re-export"
)

// CatalogEntry is one item of a unit's externally visible surface
type CatalogEntry struct {
	Name   string
	Kind   CatalogKind
	Origin CatalogOrigin
}

// Validate checks the entry's enumerations
func (e *CatalogEntry) Validate() error {
	if e.Name == "" {
		return errors.New("catalog entry name is required")
	}
	switch e.Kind {
	case CatalogClass, CatalogFunction, CatalogVariable, CatalogExport, CatalogImport:
	default:
		return errors.New("invalid catalog kind")
	}
	switch e.Origin {
	case OriginExportList, OriginTopLevel, OriginReexport:
	default:
		return errors.New("invalid catalog origin")
	}
	return nil
}
