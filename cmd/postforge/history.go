// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/postforge/internal/registry"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := registry.Open(viper.GetString("registry_path"))
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No conversions recorded.")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  %-8s  %-30s  %s\n",
				r.PostDate.Format("2006-01-02"), r.Kind, r.Title, r.OutputPath)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records to show")

	rootCmd.AddCommand(historyCmd)
}
