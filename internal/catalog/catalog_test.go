package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docweave/internal/scanner"
	"github.com/dshills/docweave/pkg/types"
)

func scanFixture(t *testing.T, id, content string) *types.StructuralRecord {
	t.Helper()
	rec, err := scanner.New().Scan(id, []byte(content))
	require.NoError(t, err)
	return rec
}

func TestCatalog_TopLevel(t *testing.T) {
	content := `package sample

type Widget struct{}

func Build() *Widget { return nil }

func (w *Widget) Render() string { return "" }

var DefaultTimeout = 30

func private() {}
`

	rec := scanFixture(t, "pkg/sample/widget.go", content)
	entries := New("example.com/mod").Catalog("pkg/sample/widget.go", []byte(content), rec)

	require.Len(t, entries, 3)
	assert.Equal(t, types.CatalogEntry{Name: "Widget", Kind: types.CatalogClass, Origin: types.OriginTopLevel}, entries[0])
	assert.Equal(t, types.CatalogEntry{Name: "Build", Kind: types.CatalogFunction, Origin: types.OriginTopLevel}, entries[1])
	assert.Equal(t, types.CatalogEntry{Name: "DefaultTimeout", Kind: types.CatalogVariable, Origin: types.OriginTopLevel}, entries[2])

	for _, entry := range entries {
		assert.NoError(t, entry.Validate())
	}
}

func TestCatalog_ExportListFirst(t *testing.T) {
	content := `package sample

func Process() {}

type Engine = engine

var Parse = parse

type engine struct{}

func parse() {}
`

	rec := scanFixture(t, "pkg/sample/sample.go", content)
	entries := New("example.com/mod").Catalog("pkg/sample/sample.go", []byte(content), rec)

	require.Len(t, entries, 3)
	// Curated forwarding declarations come before ordinary declarations
	assert.Equal(t, types.CatalogEntry{Name: "Engine", Kind: types.CatalogExport, Origin: types.OriginExportList}, entries[0])
	assert.Equal(t, types.CatalogEntry{Name: "Parse", Kind: types.CatalogExport, Origin: types.OriginExportList}, entries[1])
	assert.Equal(t, types.CatalogEntry{Name: "Process", Kind: types.CatalogFunction, Origin: types.OriginTopLevel}, entries[2])
}

func TestCatalog_ReexportsFromAggregator(t *testing.T) {
	content := `package weave

import (
	"example.com/mod/internal/core"
)

type Client = core.Client

var NewClient = core.NewClient
`

	rec := scanFixture(t, "pkg/weave/doc.go", content)
	entries := New("example.com/mod").Catalog("pkg/weave/doc.go", []byte(content), rec)

	require.Len(t, entries, 2)
	assert.Equal(t, types.CatalogEntry{Name: "Client", Kind: types.CatalogImport, Origin: types.OriginReexport}, entries[0])
	assert.Equal(t, types.CatalogEntry{Name: "NewClient", Kind: types.CatalogImport, Origin: types.OriginReexport}, entries[1])
}

func TestCatalog_ReexportsIgnoredOutsideAggregator(t *testing.T) {
	content := `package weave

import (
	"example.com/mod/internal/core"
)

type Client = core.Client
`

	rec := scanFixture(t, "pkg/weave/extra.go", content)
	entries := New("example.com/mod").Catalog("pkg/weave/extra.go", []byte(content), rec)

	// Outside the aggregator a forwarding alias is ordinary surface
	require.Len(t, entries, 1)
	assert.Equal(t, types.OriginTopLevel, entries[0].Origin)
}

func TestCatalog_ForeignAliasIsNotReexport(t *testing.T) {
	content := `package weave

import "example.org/other/lib"

type Thing = lib.Thing
`

	rec := scanFixture(t, "pkg/weave/doc.go", content)
	entries := New("example.com/mod").Catalog("pkg/weave/doc.go", []byte(content), rec)

	// Alias to a foreign module is ordinary surface, not a re-export
	require.Len(t, entries, 1)
	assert.Equal(t, types.OriginTopLevel, entries[0].Origin)
	assert.Equal(t, types.CatalogClass, entries[0].Kind)
}

func TestCatalog_AggregatorByPackageName(t *testing.T) {
	content := `package weave

import "example.com/mod/internal/core"

var Run = core.Run
`

	rec := scanFixture(t, "weave/weave.go", content)
	entries := New("example.com/mod").Catalog("weave/weave.go", []byte(content), rec)

	require.Len(t, entries, 1)
	assert.Equal(t, types.OriginReexport, entries[0].Origin)
}
