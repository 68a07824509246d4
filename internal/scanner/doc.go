// Package scanner parses a source unit into its structural record.
//
// The scanner leverages Go's standard library (go/parser, go/ast, go/token)
// to extract top-level declarations, their documentation spans, and the
// unit-level documentation span.
//
// # Basic Usage
//
//	s := scanner.New()
//	rec, err := s.Scan("pkg/file.go", content)
//	if err != nil {
//	    // *types.ParseError: the unit is syntactically invalid
//	}
//
//	for _, decl := range rec.Decls {
//	    fmt.Printf("%s %s documented=%v\n", decl.Kind, decl.Name, decl.Documented())
//	}
//
// # Error Handling
//
// Unlike a tolerant indexer, the scanner fails closed: a syntax error yields
// a *types.ParseError and no partial record. Every downstream stage depends
// on the record describing the complete unit.
package scanner
