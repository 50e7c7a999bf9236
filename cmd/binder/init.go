// Init command: create the store and run any pending schema migration.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the store",
	Long: `Init opens the store once, creating the database file if needed and
additively migrating data created by older schema versions. Safe to run
against an existing store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		hasUsers, err := store.HasAnyUser()
		if err != nil {
			return fmt.Errorf("check users: %w", err)
		}
		fmt.Println("Store initialized")
		if !hasUsers {
			fmt.Println("No accounts yet; create one with: binder register --user NAME --password PASS")
		}
		return nil
	},
}
