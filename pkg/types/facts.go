package types

// Medium classifies an I/O touchpoint by the resource it reaches
type Medium string

const (
	MediumFiles       Medium = "files"
	MediumNetwork     Medium = "network"
	MediumDatabase    Medium = "database"
	MediumQueue       Medium = "queue"
	MediumAccelerator Medium = "accelerator"
)

// Mediums lists all media in reporting order
var Mediums = []Medium{MediumFiles, MediumNetwork, MediumDatabase, MediumQueue, MediumAccelerator}

// Reraise is the sentinel recorded when a declaration propagates an error
// it received rather than constructing a new one
const Reraise = "re-raise"

// Configuration touchpoint categories
const (
	TouchEnvironment  = "environment"
	TouchConfigObject = "config-object"
	TouchConfigFile   = "config-file"
)

// Concurrency touchpoint categories
const (
	TouchSpawn = "spawn"
	TouchAsync = "async"
	TouchLock  = "lock"
	TouchQueue = "queue"
)

// FactBundle holds the behavioral facts extracted from one unit.
// It is a pure function of (content, StructuralRecord): extractors never
// mutate the unit and two runs over the same inputs yield equal bundles.
type FactBundle struct {
	// Raises maps a declaration name to the ordered error-kind labels it
	// can produce; Reraise marks propagation without construction.
	Raises map[string][]string

	// IO maps each medium to the ordered call-site labels that touch it.
	IO map[Medium][]string

	// Config and Concurrency map touchpoint categories to call-site labels.
	Config      map[string][]string
	Concurrency map[string][]string

	// AsyncEntries flags declarations that are asynchronous entry points.
	AsyncEntries map[string]bool
}

// NewFactBundle returns an empty bundle with all maps allocated
func NewFactBundle() *FactBundle {
	return &FactBundle{
		Raises:       make(map[string][]string),
		IO:           make(map[Medium][]string),
		Config:       make(map[string][]string),
		Concurrency:  make(map[string][]string),
		AsyncEntries: make(map[string]bool),
	}
}

// Merge folds other into b, appending label lists key by key.
// Labels already present under a key are not duplicated.
func (b *FactBundle) Merge(other *FactBundle) {
	if other == nil {
		return
	}
	for name, labels := range other.Raises {
		b.Raises[name] = appendUnique(b.Raises[name], labels...)
	}
	for medium, labels := range other.IO {
		b.IO[medium] = appendUnique(b.IO[medium], labels...)
	}
	for touch, labels := range other.Config {
		b.Config[touch] = appendUnique(b.Config[touch], labels...)
	}
	for touch, labels := range other.Concurrency {
		b.Concurrency[touch] = appendUnique(b.Concurrency[touch], labels...)
	}
	for name, flag := range other.AsyncEntries {
		if flag {
			b.AsyncEntries[name] = true
		}
	}
}

// Empty reports whether the bundle carries no facts at all
func (b *FactBundle) Empty() bool {
	return len(b.Raises) == 0 && len(b.IO) == 0 && len(b.Config) == 0 &&
		len(b.Concurrency) == 0 && len(b.AsyncEntries) == 0
}

func appendUnique(dst []string, labels ...string) []string {
	for _, label := range labels {
		seen := false
		for _, have := range dst {
			if have == label {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, label)
		}
	}
	return dst
}
