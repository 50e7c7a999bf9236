// Stats command: record counts by category and priority.
package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/binderkit/binder/pkg/types"
)

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var statsFolder int64

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts by category and priority",
	Args:  cobra.NoArgs,
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
		stats, err := store.Stats(owner, statsFolder)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		if flagJSON {
			return printJSON(stats)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GROUP\tKEY\tCOUNT")
		for _, key := range sortedKeys(stats.ByCategory) {
			fmt.Fprintf(w, "category\t%s\t%d\n", key, stats.ByCategory[key])
		}
		for _, key := range sortedKeys(stats.ByPriority) {
			fmt.Fprintf(w, "priority\t%s\t%d\n", key, stats.ByPriority[key])
		}
		return w.Flush()
	},
}

func init() {
	statsCmd.Flags().Int64Var(&statsFolder, "folder", types.AllFolders, "folder id (-1: all folders)")
}
