package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docweave/internal/scanner"
	"github.com/dshills/docweave/pkg/types"
)

func scanFixture(t *testing.T, content string) (*types.StructuralRecord, []byte) {
	t.Helper()
	rec, err := scanner.New().Scan("fixture.go", []byte(content))
	require.NoError(t, err)
	return rec, []byte(content)
}

func defaultIOTable() RecognizerTable {
	return RecognizerTable{
		IO: map[string][]string{
			"files":    {"os.Open", "os.ReadFile"},
			"network":  {"net.", "http."},
			"database": {"sql."},
		},
	}
}

func TestEffects_RaisesAndFileIO(t *testing.T) {
	content := `package sample

import "os"

func load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return NewDomainError(path)
	}
	defer f.Close()
	return nil
}
`

	rec, raw := scanFixture(t, content)
	bundle, err := NewEffects(defaultIOTable()).Extract(raw, rec)
	require.NoError(t, err)

	assert.Equal(t, []string{"DomainError"}, bundle.Raises["load"])
	assert.Equal(t, []string{"os.Open"}, bundle.IO[types.MediumFiles])
	assert.Empty(t, bundle.IO[types.MediumNetwork])
}

func TestEffects_ReraisePropagation(t *testing.T) {
	content := `package sample

func passthrough() error {
	err := inner()
	return err
}

func inner() error { return nil }
`

	rec, raw := scanFixture(t, content)
	bundle, err := NewEffects(defaultIOTable()).Extract(raw, rec)
	require.NoError(t, err)

	assert.Equal(t, []string{types.Reraise}, bundle.Raises["passthrough"])
	assert.Empty(t, bundle.Raises["inner"], "returning nil is not error production")
}

func TestEffects_ErrorKinds(t *testing.T) {
	content := `package sample

import (
	"errors"
	"fmt"
)

func a() error { return errors.New("boom") }
func b() error { return fmt.Errorf("wrap: %d", 1) }
func c() error { return &ParseError{} }
func d() error { return ErrNotFound }

type ParseError struct{}

func (e *ParseError) Error() string { return "parse" }

var ErrNotFound = errors.New("not found")
`

	rec, raw := scanFixture(t, content)
	bundle, err := NewEffects(defaultIOTable()).Extract(raw, rec)
	require.NoError(t, err)

	assert.Equal(t, []string{"errors.New"}, bundle.Raises["a"])
	assert.Equal(t, []string{"fmt.Errorf"}, bundle.Raises["b"])
	assert.Equal(t, []string{"ParseError"}, bundle.Raises["c"])
	assert.Equal(t, []string{"ErrNotFound"}, bundle.Raises["d"])
}

func TestEffects_Panic(t *testing.T) {
	content := `package sample

func mustPositive(n int) {
	if n <= 0 {
		panic("n must be positive")
	}
}
`

	rec, raw := scanFixture(t, content)
	bundle, err := NewEffects(defaultIOTable()).Extract(raw, rec)
	require.NoError(t, err)

	require.Len(t, bundle.Raises["mustPositive"], 1)
	assert.Equal(t, `"n must be positive"`, bundle.Raises["mustPositive"][0])
}

func TestEffects_MethodAttribution(t *testing.T) {
	content := `package sample

import "net/http"

type Client struct{}

func (c *Client) Fetch(url string) error {
	_, err := http.Get(url)
	return err
}
`

	rec, raw := scanFixture(t, content)
	bundle, err := NewEffects(defaultIOTable()).Extract(raw, rec)
	require.NoError(t, err)

	assert.Equal(t, []string{types.Reraise}, bundle.Raises["Client.Fetch"])
	assert.Equal(t, []string{"http.Get"}, bundle.IO[types.MediumNetwork])
}

func TestEffects_Deterministic(t *testing.T) {
	content := `package sample

import "os"

func work() error {
	_, _ = os.Open("a")
	_, _ = os.ReadFile("b")
	return NewWorkError()
}
`

	rec, raw := scanFixture(t, content)
	extractor := NewEffects(defaultIOTable())

	first, err := extractor.Extract(raw, rec)
	require.NoError(t, err)
	second, err := extractor.Extract(raw, rec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"os.Open", "os.ReadFile"}, first.IO[types.MediumFiles])
}

func TestEffects_PropagationByResultPosition(t *testing.T) {
	content := `package sample

func run() error {
	e := inner()
	return e
}

func split() (int, error) {
	v := 10
	return v, nil
}

func indirect() error {
	f := func() int {
		n := 1
		return n
	}
	return wrap(f())
}

func inner() error { return nil }
`

	rec, raw := scanFixture(t, content)
	bundle, err := NewEffects(defaultIOTable()).Extract(raw, rec)
	require.NoError(t, err)

	assert.Equal(t, []string{types.Reraise}, bundle.Raises["run"],
		"an identifier at the error result position propagates regardless of its name")
	assert.Empty(t, bundle.Raises["split"],
		"identifiers at non-error positions are not error production")
	assert.Empty(t, bundle.Raises["indirect"],
		"closure returns keep their own result shape")
}
