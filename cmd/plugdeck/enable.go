package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"plugdeck/internal/catalog"
	"plugdeck/internal/settings"
)

var enableCmd = &cobra.Command{
	Use:   "enable <plugin>@<marketplace>",
	Short: "Enable an installed plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <plugin>@<marketplace>",
	Short: "Disable an installed plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(args[0], false)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <plugin>@<marketplace>",
	Short: "Flip a plugin's enabled flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, doc, err := lookupInstalled(args[0])
		if err != nil {
			return err
		}

		next := !rec.Enabled
		if err := doc.SetEnabled(string(rec.ID), next); err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}
		if next {
			fmt.Printf("Enabled plugin '%s'\n", rec.ID)
		} else {
			fmt.Printf("Disabled plugin '%s'\n", rec.ID)
		}
		return nil
	},
}

func setEnabled(id string, enabled bool) error {
	rec, doc, err := lookupInstalled(id)
	if err != nil {
		return err
	}

	if err := doc.SetEnabled(string(rec.ID), enabled); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if enabled {
		fmt.Printf("Enabled plugin '%s'\n", rec.ID)
	} else {
		fmt.Printf("Disabled plugin '%s'\n", rec.ID)
	}
	return nil
}

// lookupInstalled resolves the plugin and its settings document, rejecting
// plugins that are not installed. Only installed plugins can be enabled or
// disabled.
func lookupInstalled(id string) (catalog.PluginRecord, *settings.Document, error) {
	agg, _, err := newAggregator()
	if err != nil {
		return catalog.PluginRecord{}, nil, err
	}

	rec, err := agg.FindPluginByID(catalog.PluginID(id))
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.PluginRecord{}, nil, fmt.Errorf("plugin not found: %s", id)
	}
	if err != nil {
		return catalog.PluginRecord{}, nil, fmt.Errorf("failed to read plugin state: %w", err)
	}
	if !rec.Installed {
		return catalog.PluginRecord{}, nil, fmt.Errorf("plugin not installed: %s", id)
	}

	doc, err := settings.Load(agg.Root().SettingsFile())
	if err != nil {
		return catalog.PluginRecord{}, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return rec, doc, nil
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(toggleCmd)
}
