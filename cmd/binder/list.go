// List command: parameterized multi-criteria record search.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binderkit/binder/pkg/types"
)

var (
	listFolder   int64
	listCategory string
	listStatus   string
	listBy       string
	listKeyword  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Search and list records",
	Long: `List searches records with optional narrowing by folder, category,
status, and a keyword matched case-insensitively against the selected
field. Results order pending before done, high priority first, newest
sequence first within a band.

Example:
  binder list --folder 1 --status pending
  binder list --by uid --keyword A1
  binder list --by seq --keyword 1`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().Int64Var(&listFolder, "folder", types.AllFolders, "folder id (-1: all folders)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "category filter (empty: all)")
	listCmd.Flags().StringVar(&listStatus, "status", "all", "status filter: all, pending, done")
	listCmd.Flags().StringVar(&listBy, "by", "all", "search field: all, uid, content, seq")
	listCmd.Flags().StringVar(&listKeyword, "keyword", "", "substring to search for")
}

func runList(cmd *cobra.Command, args []string) error {
	status, err := types.ParseStatusFilter(listStatus)
	if err != nil {
		return err
	}
	field, err := types.ParseSearchField(listBy)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	owner, err := requireAuth(store)
	if err != nil {
		return err
	}
	records, err := store.SearchRecords(types.SearchQuery{
		Owner:    owner,
		FolderID: listFolder,
		Category: listCategory,
		Status:   status,
		Field:    field,
		Keyword:  listKeyword,
	})
	if err != nil {
		return fmt.Errorf("search records: %w", err)
	}
	return printRecords(records)
}
