package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show an ecosystem summary",
	Long:  "Print counts of known, installed, and enabled plugins, marketplaces, and reported errors.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, _, err := newAggregator()
		if err != nil {
			return err
		}

		plugins, err := agg.BuildPluginCollection()
		if err != nil {
			return fmt.Errorf("failed to read plugin state: %w", err)
		}
		marketplaces, err := agg.BuildMarketplaceCollection()
		if err != nil {
			return fmt.Errorf("failed to read marketplaces: %w", err)
		}
		errRecords := agg.LoadErrorRecords()

		var installed, enabled int
		for _, p := range plugins {
			if p.Installed {
				installed++
			}
			if p.Enabled {
				enabled++
			}
		}

		fmt.Printf("Plugins:      %d known, %d installed, %d enabled\n", len(plugins), installed, enabled)
		fmt.Printf("Marketplaces: %d\n", len(marketplaces))
		fmt.Printf("Errors:       %d\n", len(errRecords))
		fmt.Printf("Root:         %s\n", agg.Root())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
