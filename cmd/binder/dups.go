// Dups command: list records sharing a uid for manual resolution.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binderkit/binder/pkg/types"
)

var dupsFolder int64

var dupsCmd = &cobra.Command{
	Use:   "dups",
	Short: "Find records with duplicate uids",
	Long: `Dups lists records whose non-sentinel uid appears more than once
within its folder, oldest first, so conflicts can be resolved with
"binder uid" or "binder rm".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		owner, err := requireAuth(store)
		if err != nil {
			return err
		}
		records, err := store.FindDuplicates(owner, dupsFolder)
		if err != nil {
			return fmt.Errorf("find duplicates: %w", err)
		}
		return printRecords(records)
	},
}

func init() {
	dupsCmd.Flags().Int64Var(&dupsFolder, "folder", types.AllFolders, "folder id (-1: all folders)")
}
