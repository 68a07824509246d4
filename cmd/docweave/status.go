package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/docweave/internal/progress"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show annotation progress",
	Long:  `Display the progress store summary: counts by status and queue length.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		storePath, fingerprintPath := statePaths(cfg)
		store := progress.Open(storePath, fingerprintPath)
		if err := store.Load(); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No progress store found; run `docweave annotate` first.")
				return nil
			}
			return fmt.Errorf("load progress store: %w", err)
		}

		summary := store.Summary()
		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(summary)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== docweave progress ==="))
		fmt.Printf("  Total:   %d\n", summary.Total)
		fmt.Printf("  Pending: %d (%d queued)\n", summary.Pending, summary.QueueLength)
		fmt.Printf("  Done:    %s\n", green(summary.Done))
		fmt.Printf("  Skipped: %d\n", summary.Skipped)
		if summary.Errors > 0 {
			fmt.Printf("  Errors:  %s\n", red(summary.Errors))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
