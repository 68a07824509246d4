package synth

import (
	"fmt"
	"strings"

	"github.com/dshills/docweave/pkg/types"
)

// configOrder and concurrencyOrder fix reporting order for map-backed facts
var configOrder = []string{types.TouchEnvironment, types.TouchConfigObject, types.TouchConfigFile}
var concurrencyOrder = []string{types.TouchSpawn, types.TouchAsync, types.TouchLock, types.TouchQueue}

var touchPhrases = map[string]string{
	types.TouchEnvironment:  "the environment",
	types.TouchConfigObject: "configuration objects",
	types.TouchConfigFile:   "configuration files",
	types.TouchSpawn:        "spawned goroutines",
	types.TouchAsync:        "structured async execution",
	types.TouchLock:         "locks",
	types.TouchQueue:        "channels",
}

// describeDecl derives the description sentence for one declaration
func describeDecl(decl *types.Declaration, facts *types.FactBundle) string {
	switch decl.Kind {
	case types.KindFunction, types.KindMethod:
		return describeFunc(decl, facts)
	case types.KindStruct:
		if n := len(decl.Fields); n > 0 {
			return fmt.Sprintf("groups %s.", plural(n, "field"))
		}
		return "is a marker type with no fields."
	case types.KindInterface:
		if n := len(decl.Fields); n > 0 {
			return fmt.Sprintf("specifies %s.", plural(n, "method"))
		}
		return "is the empty contract."
	case types.KindType:
		return "is a named type."
	case types.KindConst:
		return fmt.Sprintf("enumerates %s.", plural(len(decl.Fields), "package constant"))
	case types.KindVar:
		return fmt.Sprintf("declares %s.", plural(len(decl.Fields), "package variable"))
	}
	return "is declared by this unit."
}

// describeFunc builds the fact-derived sentence for a function or method
func describeFunc(decl *types.Declaration, facts *types.FactBundle) string {
	key := decl.Key()
	var parts []string

	if facts.AsyncEntries[key] {
		parts = append(parts, "runs asynchronously")
	}

	var kinds []string
	propagates := false
	for _, label := range facts.Raises[key] {
		if label == types.Reraise {
			propagates = true
			continue
		}
		kinds = append(kinds, label)
	}
	if len(kinds) > 0 {
		parts = append(parts, "may produce "+joinAnd(kinds)+" errors")
	}
	if propagates {
		parts = append(parts, "propagates errors from its callees")
	}

	if len(parts) == 0 {
		return "performs its work without tracked error production."
	}
	return joinAnd(parts) + "."
}

// describeModule builds the unit-level description from unit-wide facts
func describeModule(facts *types.FactBundle, entries []types.CatalogEntry) string {
	var sentences []string

	if names := surfaceNames(entries); len(names) > 0 {
		shown := names
		if len(shown) > 8 {
			shown = shown[:8]
		}
		sentences = append(sentences, "provides "+joinAnd(shown)+".")
	}

	var media []string
	for _, medium := range types.Mediums {
		if labels := facts.IO[medium]; len(labels) > 0 {
			media = append(media, fmt.Sprintf("%s (%s)", medium, labels[0]))
		}
	}
	if len(media) > 0 {
		sentences = append(sentences, "It touches "+joinAnd(media)+" I/O.")
	}

	if phrases := touchSummary(facts.Config, configOrder); len(phrases) > 0 {
		sentences = append(sentences, "It reads configuration from "+joinAnd(phrases)+".")
	}
	if phrases := touchSummary(facts.Concurrency, concurrencyOrder); len(phrases) > 0 {
		sentences = append(sentences, "It uses "+joinAnd(phrases)+".")
	}

	if len(sentences) == 0 {
		return "contains declarations documented below."
	}
	return strings.Join(sentences, " ")
}

// touchSummary renders present touchpoint categories in fixed order
func touchSummary(touches map[string][]string, order []string) []string {
	var phrases []string
	for _, touch := range order {
		if len(touches[touch]) > 0 {
			phrases = append(phrases, touchPhrases[touch])
		}
	}
	return phrases
}

// plural renders "1 field" or "3 fields"
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// joinAnd joins items as "a", "a and b", or "a, b, and c"
func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
