// Maintenance commands: backup and restore of the store file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binderkit/binder/internal/sqlite"
	"github.com/binderkit/binder/pkg/types"
)

var backupDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the store file to a timestamped backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := requireAuth(store); err != nil {
			return err
		}
		path, err := store.Backup(backupDir)
		if err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		fmt.Printf("Backup written to %s\n", path)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore FILE",
	Short: "Replace the store file with a backup copy",
	Long: `Restore overwrites the current store file with the given backup.
The store is not opened first; the next command migrates the restored
file as usual.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		if err := sqlite.Restore(types.Config{DataDir: dataDir}, args[0]); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		fmt.Printf("Restored store from %s\n", args[0])
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupDir, "dir", "backups", "directory for backup files")
}
