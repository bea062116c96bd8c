package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"plugdeck/internal/action"
	"plugdeck/internal/catalog"
	"plugdeck/internal/config"
	"plugdeck/internal/log"
	"plugdeck/internal/paths"
	"plugdeck/internal/tui"
)

var version = "0.1.0"

func init() {
	// Load .env file if it exists (silent fail if not found)
	_ = godotenv.Load()

	// Initialize logging (enabled via PLUGDECK_DEBUG=1)
	_ = log.Init()
}

func main() {
	defer log.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "plugdeck",
	Short: "Plugdeck - terminal dashboard for the plugin ecosystem",
	Long: `Plugdeck is a terminal dashboard for inspecting and managing locally
installed plugins, their marketplaces, and reported plugin errors.

Run with no arguments to open the interactive dashboard. Subcommands
expose the same data for scripts:

  plugdeck status            One-line ecosystem summary
  plugdeck list              List all known plugins
  plugdeck info <plugin>     Show one plugin in detail
  plugdeck enable <plugin>   Enable an installed plugin`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, cfg, err := newAggregator()
		if err != nil {
			return err
		}
		return tui.Run(tui.Options{
			Aggregator:    agg,
			Runner:        action.NewRunner(cfg.Executable),
			SortKey:       catalog.SortKey(cfg.DefaultSort),
			SortDirection: catalog.SortDirection(cfg.DefaultDirection),
		})
	},
}

// newAggregator resolves the ecosystem root from config and environment and
// builds the shared reader all commands go through.
func newAggregator() (*catalog.Aggregator, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}

	root := paths.Root(cfg.Root)
	if root == "" {
		root, err = paths.DefaultRoot()
		if err != nil {
			return nil, config.Config{}, fmt.Errorf("failed to resolve plugin root: %w", err)
		}
	}
	return catalog.NewAggregator(root), cfg, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plugdeck version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
