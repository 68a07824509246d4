// Package discover enumerates the eligible source units of a tree and
// fingerprints the result.
//
// Enumeration is deterministic: units inside package directories come
// first, lexicographically by id, followed by standalone root-level units.
// The fingerprint gates Progress Store reinitialization — while it is
// unchanged the store's view of the unit set is trusted verbatim.
package discover

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

// Options control which units are eligible
type Options struct {
	IncludeTests  bool
	IncludeVendor bool
}

// Service enumerates source units under a root directory
type Service struct {
	root string
	opts Options
}

// New creates a discovery service for root
func New(root string, opts Options) *Service {
	return &Service{root: root, opts: opts}
}

// Enumerate returns the ordered ids of all eligible units. Ids are
// slash-separated paths relative to root.
func (s *Service) Enumerate() ([]string, error) {
	var grouped, standalone []string

	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			name := entry.Name()
			if path != s.root {
				if !s.opts.IncludeVendor && name == "vendor" {
					return filepath.SkipDir
				}
				if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		if !s.opts.IncludeTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		id := filepath.ToSlash(rel)

		if strings.Contains(id, "/") {
			grouped = append(grouped, id)
		} else {
			standalone = append(standalone, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(grouped)
	sort.Strings(standalone)
	return append(grouped, standalone...), nil
}

// ModulePath reads the module path from the root go.mod, or "" when the
// tree is not a module.
func (s *Service) ModulePath() string {
	data, err := os.ReadFile(filepath.Join(s.root, "go.mod"))
	if err != nil {
		return ""
	}
	file, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil || file.Module == nil {
		return ""
	}
	return file.Module.Mod.Path
}

// Fingerprint hashes the newline-joined ordered id list
func Fingerprint(ids []string) string {
	sum := sha256.Sum256([]byte(strings.Join(ids, "\n")))
	return hex.EncodeToString(sum[:])
}
