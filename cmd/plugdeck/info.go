package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"plugdeck/internal/catalog"
)

var infoShowReadme bool

var infoCmd = &cobra.Command{
	Use:   "info <plugin>@<marketplace>",
	Short: "Show plugin details",
	Long: `Show one plugin in detail, including its installation state.

Examples:
  plugdeck info context7@claude-plugins-official
  plugdeck info context7@claude-plugins-official --readme`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, _, err := newAggregator()
		if err != nil {
			return err
		}

		rec, err := agg.FindPluginByID(catalog.PluginID(args[0]))
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("plugin not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read plugin state: %w", err)
		}

		printPluginDetail(rec)

		if infoShowReadme {
			if err := printReadme(agg, rec); err != nil {
				fmt.Printf("\n(no readme: %v)\n", err)
			}
		}
		return nil
	},
}

func printPluginDetail(p catalog.PluginRecord) {
	fmt.Printf("Plugin: %s\n", p.ID)
	fmt.Printf("Marketplace: %s\n", p.MarketplaceID)
	fmt.Printf("Version: %s\n", p.Version)
	fmt.Printf("Installs: %d\n", p.InstallCount)
	fmt.Printf("Installed: %v\n", p.Installed)

	if p.Installed {
		fmt.Printf("Enabled: %v\n", p.Enabled)
		if !p.InstalledAt.IsZero() {
			fmt.Printf("Installed at: %s\n", p.InstalledAt.Format("2006-01-02 15:04"))
		}
		if !p.LastUpdatedAt.IsZero() {
			fmt.Printf("Last updated: %s\n", p.LastUpdatedAt.Format("2006-01-02 15:04"))
		}
		if p.SourceCommit != "" {
			fmt.Printf("Commit: %s\n", p.SourceCommit)
		}
		if p.LocalDev {
			fmt.Println("Local development install")
		}
		if p.InstallPath != "" {
			fmt.Printf("Path: %s\n", p.InstallPath)
		}
	}

	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	if p.Category != "" {
		fmt.Printf("Category: %s\n", p.Category)
	}
	if len(p.Tags) > 0 {
		fmt.Printf("Tags: %v\n", p.Tags)
	}
	if p.Author.Name != "" {
		fmt.Printf("Author: %s\n", p.Author.Name)
	}
	if p.Homepage != "" {
		fmt.Printf("Homepage: %s\n", p.Homepage)
	}
}

// printReadme renders the plugin's README with glamour. The installed copy
// wins; otherwise fall back to the marketplace's checked-out catalog tree.
func printReadme(agg *catalog.Aggregator, p catalog.PluginRecord) error {
	var candidates []string
	if p.InstallPath != "" {
		candidates = append(candidates, filepath.Join(p.InstallPath, "README.md"))
	}
	candidates = append(candidates,
		filepath.Join(agg.Root().MarketplaceDir(p.MarketplaceID), p.Name, "README.md"))

	var data []byte
	var err error
	for _, path := range candidates {
		data, err = os.ReadFile(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}

	out, err := glamour.Render(string(data), "auto")
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	fmt.Println(out)
	return nil
}

func init() {
	infoCmd.Flags().BoolVar(&infoShowReadme, "readme", false, "Render the plugin README")

	rootCmd.AddCommand(infoCmd)
}
