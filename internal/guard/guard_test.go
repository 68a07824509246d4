package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docweave/pkg/types"
)

const original = `package sample

func Add(a, b int) int {
	return a + b
}
`

func TestAccept_CommentOnlyChange(t *testing.T) {
	candidate := `// Package sample adds numbers.
package sample

// Add returns the sum of a and b
func Add(a, b int) int {
	// classic
	return a + b
}

// docweave:annotated
`

	err := New().Accept("sample.go", []byte(original), []byte(candidate))
	assert.NoError(t, err)
}

func TestAccept_BodyCommentOnly(t *testing.T) {
	source := "package p\n\nfunc F() int {\n\treturn 1\n}\n"
	candidate := "package p\n\nfunc F() int {\n\t// doc only\n\treturn 1\n}\n"

	err := New().Accept("sample.go", []byte(source), []byte(candidate))
	assert.NoError(t, err)
}

func TestAccept_CommentsBetweenAdjacentDecls(t *testing.T) {
	source := `package sample

func A() {}
func B() {}
`
	// Doc comments widen the gap between A and B; the declarations
	// themselves are untouched.
	candidate := `// Package sample is documented.
package sample

// A performs its work without tracked error production.
func A() {}

// B performs its work without tracked error production.
func B() {}

// docweave:annotated
`

	err := New().Accept("sample.go", []byte(source), []byte(candidate))
	assert.NoError(t, err)
}

func TestAccept_WhitespaceOnlyChange(t *testing.T) {
	candidate := `package sample

func Add(a, b int) int {
	return a + b
}

`

	// Whitespace never reaches the token stream, so pure layout
	// differences are documentation-equivalent too.
	err := New().Accept("sample.go", []byte(original), []byte(candidate))
	assert.NoError(t, err)
}

func TestAccept_RejectsStructuralChange(t *testing.T) {
	candidate := `package sample

// Add returns the sum of a and b
func Add(a, b int) int {
	return a + b
}

var sneaky = 1
`

	err := New().Accept("sample.go", []byte(original), []byte(candidate))
	require.Error(t, err)

	var violation *types.EquivalenceViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "sample.go", violation.Unit)
	assert.Contains(t, violation.Diff, "sneaky")
}

func TestAccept_RejectsAlteredExpression(t *testing.T) {
	candidate := `package sample

func Add(a, b int) int {
	return a - b
}
`

	err := New().Accept("sample.go", []byte(original), []byte(candidate))
	assert.Error(t, err)
}

func TestAccept_FailsClosedOnUnparseableCandidate(t *testing.T) {
	err := New().Accept("sample.go", []byte(original), []byte("package sample\nfunc broken( {\n"))
	require.Error(t, err)

	var violation *types.EquivalenceViolation
	require.True(t, errors.As(err, &violation))
	assert.Contains(t, violation.Reason, "candidate does not parse")
	assert.Empty(t, violation.Diff)
}

func TestAccept_FailsClosedOnUnparseableOriginal(t *testing.T) {
	err := New().Accept("sample.go", []byte("not go at all"), []byte(original))
	require.Error(t, err)

	var violation *types.EquivalenceViolation
	require.True(t, errors.As(err, &violation))
	assert.Contains(t, violation.Reason, "original does not parse")
}
