package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/docweave/internal/config"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	flagConfig  string
	flagRoot    string
	flagBatch   int
	flagVerbose bool
	flagJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "docweave",
	Short: "Safe, incremental documentation annotation for Go source trees",
	Long: `docweave synthesizes doc comments for undocumented declarations.

Every write is gated by a structural equivalence check: only comments ever
change. Progress is durable, so large trees are annotated one batch per
invocation and interrupted runs resume where they left off.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Log to stderr; stdout is reserved for command output
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "source tree to annotate (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "machine-readable output")

	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration from file plus flags
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagRoot != "" {
		cfg.Root = flagRoot
	}
	if flagBatch > 0 {
		cfg.BatchSize = flagBatch
	}
	return cfg, cfg.Validate()
}

// statePaths resolves the store and fingerprint files against the root
func statePaths(cfg config.Config) (storePath, fingerprintPath string) {
	storePath = cfg.StorePath
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(cfg.Root, storePath)
	}
	fingerprintPath = cfg.FingerprintPath
	if !filepath.IsAbs(fingerprintPath) {
		fingerprintPath = filepath.Join(cfg.Root, fingerprintPath)
	}
	return storePath, fingerprintPath
}
