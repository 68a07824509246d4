package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/docweave/internal/discover"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List eligible units and the discovery fingerprint",
	Long: `Discover enumerates the units the pipeline would process, in queue
order, without touching the progress store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		disc := discover.New(cfg.Root, discover.Options{
			IncludeTests:  cfg.IncludeTests,
			IncludeVendor: cfg.IncludeVendor,
		})
		ids, err := disc.Enumerate()
		if err != nil {
			return fmt.Errorf("discover units: %w", err)
		}
		fingerprint := discover.Fingerprint(ids)

		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(struct {
				Module      string   `json:"module,omitempty"`
				Fingerprint string   `json:"fingerprint"`
				Units       []string `json:"units"`
			}{disc.ModulePath(), fingerprint, ids})
		}

		for _, id := range ids {
			fmt.Println(id)
		}
		fmt.Printf("\n%d units, fingerprint %s\n", len(ids), fingerprint)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
