// Package types defines the shared data model for the annotation pipeline.
//
// The core flow produces and consumes these values in order:
//
//	StructuralRecord  -- one unit's parsed shape (declarations + doc spans)
//	FactBundle        -- behavioral facts extracted from the unit
//	CatalogEntry      -- one item of the unit's public surface
//	Status            -- the unit's durable progress state
//
// A StructuralRecord carries the parsed AST and file set alongside the pure
// declaration data so downstream analyses can walk the tree without
// reparsing. Everything else in this package is plain data.
package types
