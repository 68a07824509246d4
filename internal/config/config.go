// Package config defines the pipeline's explicit configuration value.
//
// A Config is constructed once at startup and passed into components;
// nothing in the core consults process-wide state. Load overlays a YAML
// file onto the defaults, so deployments can extend recognizer tables and
// replace documentation templates without rebuilding.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dshills/docweave/internal/facts"
)

// DefaultMarker is the processing marker appended to annotated units
const DefaultMarker = "// docweave:annotated"

// Config carries everything the pipeline needs, wired at startup
type Config struct {
	// Root is the source tree to annotate
	Root string `yaml:"root"`

	// Durable state locations
	StorePath       string `yaml:"store_path"`
	FingerprintPath string `yaml:"fingerprint_path"`

	// BatchSize is the number of units processed per invocation
	BatchSize int `yaml:"batch_size"`

	// Discovery filters
	IncludeTests  bool `yaml:"include_tests"`
	IncludeVendor bool `yaml:"include_vendor"`

	// Marker is the processing marker line; must be a comment
	Marker string `yaml:"marker"`

	// Templates maps declaration families to documentation templates
	Templates map[string]string `yaml:"templates"`

	// Recognizers classify call sites for fact extraction
	Recognizers facts.RecognizerTable `yaml:"recognizers"`
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("config: root is required")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("config: batch_size must be positive, got %d", c.BatchSize)
	}
	if c.Marker != "" && !strings.HasPrefix(c.Marker, "//") {
		return fmt.Errorf("config: marker must be a line comment, got %q", c.Marker)
	}
	return nil
}

var (
	defaultOnce   sync.Once
	cachedDefault Config
)

// Default returns the built-in configuration. The value is cached; callers
// receive a copy and may mutate it freely.
func Default() Config {
	defaultOnce.Do(func() {
		cachedDefault = buildDefault()
	})
	cfg := cachedDefault
	cfg.Templates = copyStringMap(cfg.Templates)
	cfg.Recognizers = facts.RecognizerTable{
		IO:          copyTable(cfg.Recognizers.IO),
		Config:      copyTable(cfg.Recognizers.Config),
		Concurrency: copyTable(cfg.Recognizers.Concurrency),
	}
	return cfg
}

// ResetCacheForTest clears the cached default configuration.
// Test harness use only; core logic never calls this.
func ResetCacheForTest() {
	defaultOnce = sync.Once{}
}

func copyStringMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyTable(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}
