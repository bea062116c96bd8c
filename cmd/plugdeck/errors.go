package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List reported plugin errors",
	Long:  "List plugin errors reported by external tooling, newest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, _, err := newAggregator()
		if err != nil {
			return err
		}

		records := agg.LoadErrorRecords()
		if len(records) == 0 {
			fmt.Println("No plugin errors reported.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("  %s  %-12s %s\n", rec.Timestamp.Format("2006-01-02 15:04"), rec.Kind, rec.PluginID)
			fmt.Printf("      %s\n", rec.Message)
			if rec.Details != "" {
				fmt.Printf("      %s\n", rec.Details)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(errorsCmd)
}
