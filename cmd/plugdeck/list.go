package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plugdeck/internal/catalog"
)

var (
	listInstalledOnly bool
	listMarketplace   string
	listSort          string
	listAscending     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List plugins",
	Long: `List all plugins known across the configured marketplaces.

Examples:
  plugdeck list
  plugdeck list --installed
  plugdeck list --marketplace claude-plugins-official
  plugdeck list --sort name --ascending`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, _, err := newAggregator()
		if err != nil {
			return err
		}

		plugins, err := agg.BuildPluginCollection()
		if err != nil {
			return fmt.Errorf("failed to read plugin state: %w", err)
		}

		var filtered []catalog.PluginRecord
		for _, p := range plugins {
			if listInstalledOnly && !p.Installed {
				continue
			}
			if listMarketplace != "" && p.MarketplaceID != listMarketplace {
				continue
			}
			filtered = append(filtered, p)
		}

		if listSort != "" {
			direction := catalog.Descending
			if listAscending {
				direction = catalog.Ascending
			}
			filtered = catalog.Sort(filtered, catalog.SortKey(listSort), direction)
		}

		if len(filtered) == 0 {
			fmt.Println("No plugins found.")
			return nil
		}

		for _, p := range filtered {
			printPluginLine(p)
		}
		fmt.Println("\nLegend: ● enabled  ◐ installed, disabled  ○ not installed")
		return nil
	},
}

func printPluginLine(p catalog.PluginRecord) {
	mark := "○"
	switch {
	case p.Enabled:
		mark = "●"
	case p.Installed:
		mark = "◐"
	}

	fmt.Printf("  %s %-40s %6d installs  v%s\n", mark, p.ID, p.InstallCount, p.Version)
	if p.Description != "" {
		fmt.Printf("      %s\n", p.Description)
	}
}

func init() {
	listCmd.Flags().BoolVar(&listInstalledOnly, "installed", false, "Only list installed plugins")
	listCmd.Flags().StringVar(&listMarketplace, "marketplace", "", "Only list plugins from this marketplace")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort key (installCount, name, installedAt)")
	listCmd.Flags().BoolVar(&listAscending, "ascending", false, "Sort ascending instead of descending")

	rootCmd.AddCommand(listCmd)
}
