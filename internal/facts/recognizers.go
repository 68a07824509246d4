package facts

import (
	"sort"
	"strings"
)

// RecognizerTable maps classification categories to call-path prefixes.
// A path matches a category when any of the category's patterns is a
// prefix of the path; the longest matching pattern wins across categories.
type RecognizerTable struct {
	// IO maps media names to call-path prefixes, e.g. "files" -> ["os.Open"].
	IO map[string][]string `yaml:"io"`

	// Config maps configuration touchpoints to call-path prefixes.
	Config map[string][]string `yaml:"config"`

	// Concurrency maps concurrency touchpoints to call-path and type-path
	// prefixes (type usage such as sync.Mutex is matched too).
	Concurrency map[string][]string `yaml:"concurrency"`
}

// classify resolves path against one category map. Returns the category of
// the longest matching pattern, or ok=false when nothing matches.
func classify(table map[string][]string, path string) (string, bool) {
	if path == "" {
		return "", false
	}

	best := ""
	bestLen := -1

	categories := make([]string, 0, len(table))
	for category := range table {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, pattern := range table[category] {
			if pattern == "" {
				continue
			}
			if strings.HasPrefix(path, pattern) && len(pattern) > bestLen {
				best = category
				bestLen = len(pattern)
			}
		}
	}

	return best, bestLen >= 0
}
