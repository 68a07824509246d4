// Package guard enforces the pipeline's correctness invariant: a
// synthesized candidate must be structurally identical to its original
// once documentation is stripped.
//
// Both sides must parse; equivalence is then decided on the
// comment-discarded token streams, which are insensitive to where comment
// lines push the surrounding code. Any parse failure on either side
// rejects the candidate, so a synthesis defect can never corrupt program
// behavior — the guard fails closed.
package guard

import (
	"fmt"
	"go/parser"
	"go/printer"
	"go/scanner"
	"go/token"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/dshills/docweave/pkg/types"
)

// Guard verifies documentation-only equivalence between unit revisions
type Guard struct{}

// New creates a Guard
func New() *Guard {
	return &Guard{}
}

// Accept returns nil when candidate is structurally identical to original
// modulo comments. Otherwise it returns a *types.EquivalenceViolation
// carrying a unified diff of the comment-stripped forms.
func (g *Guard) Accept(id string, original, candidate []byte) error {
	strippedOriginal, err := stripDocumentation(id, original)
	if err != nil {
		return &types.EquivalenceViolation{
			Unit:   id,
			Reason: fmt.Sprintf("original does not parse: %v", err),
		}
	}

	strippedCandidate, err := stripDocumentation(id, candidate)
	if err != nil {
		return &types.EquivalenceViolation{
			Unit:   id,
			Reason: fmt.Sprintf("candidate does not parse: %v", err),
		}
	}

	if tokensEqual(tokenStream(id, original), tokenStream(id, candidate)) {
		return nil
	}

	edits := myers.ComputeEdits(span.URIFromPath(id), strippedOriginal, strippedCandidate)
	diff := fmt.Sprint(gotextdiff.ToUnified("original", "candidate", strippedOriginal, edits))

	return &types.EquivalenceViolation{
		Unit:   id,
		Reason: "candidate alters program structure",
		Diff:   diff,
	}
}

// tokenText is one comparable element of a unit's token stream
type tokenText struct {
	tok token.Token
	lit string
}

// tokenStream scans content with comments discarded. Implicit semicolons
// are normalized to ";" so line positions cannot leak into the comparison.
func tokenStream(id string, content []byte) []tokenText {
	fset := token.NewFileSet()
	file := fset.AddFile(id, fset.Base(), len(content))

	var s scanner.Scanner
	s.Init(file, content, nil, 0)

	var stream []tokenText
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON {
			lit = ";"
		}
		stream = append(stream, tokenText{tok: tok, lit: lit})
	}
	return stream
}

func tokensEqual(a, b []tokenText) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// stripDocumentation parses content without comments and reprints it in
// canonical form. Used to validate parseability and to render violation
// diffs; acceptance itself is decided on token streams.
func stripDocumentation(id string, content []byte) (string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, id, content, 0)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	cfg := printer.Config{Mode: printer.TabIndent, Tabwidth: 8}
	if err := cfg.Fprint(&out, fset, file); err != nil {
		return "", err
	}
	return out.String(), nil
}
