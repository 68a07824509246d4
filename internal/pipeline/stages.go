package pipeline

import (
	"github.com/dshills/docweave/pkg/types"
)

// Scanner parses a unit into its structural record
type Scanner interface {
	Scan(id string, content []byte) (*types.StructuralRecord, error)
}

// Extractor derives one fact fragment from a parsed unit
type Extractor interface {
	Extract(content []byte, rec *types.StructuralRecord) (*types.FactBundle, error)
}

// Cataloger derives a unit's public surface
type Cataloger interface {
	Catalog(id string, content []byte, rec *types.StructuralRecord) []types.CatalogEntry
}

// Synthesizer produces the annotated candidate and detects prior processing
type Synthesizer interface {
	HasMarker(content []byte) bool
	Apply(content []byte, rec *types.StructuralRecord, facts *types.FactBundle, entries []types.CatalogEntry) ([]byte, error)
}

// Guard gates every write on documentation-only equivalence
type Guard interface {
	Accept(id string, original, candidate []byte) error
}

// Writer persists accepted candidates, skipping identical content
type Writer interface {
	WriteOnce(path string, content []byte) (bool, error)
}

// ProgressStore is the durable queue + status map the runner records into
type ProgressStore interface {
	NextBatch(n int) ([]string, error)
	Requeue(ids []string) error
	Mark(id string, status types.Status) error
	QueueLength() int
}
