// Folder commands: add, list, rename, rm.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
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
		id, err := store.CreateFolder(args[0], owner)
		if err != nil {
			return fmt.Errorf("create folder: %w", err)
		}
		fmt.Printf("Created folder %d\n", id)
		return nil
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders",
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
		folders, err := store.Folders(owner)
		if err != nil {
			return fmt.Errorf("list folders: %w", err)
		}
		return printFolders(folders)
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid folder id %q", args[0])
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
		if err := store.RenameFolder(id, args[1], owner); err != nil {
			return fmt.Errorf("rename folder: %w", err)
		}
		fmt.Printf("Renamed folder %d\n", id)
		return nil
	},
}

var folderRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a folder and every record in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid folder id %q", args[0])
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
		if err := store.DeleteFolder(id, owner); err != nil {
			return fmt.Errorf("delete folder: %w", err)
		}
		fmt.Printf("Deleted folder %d\n", id)
		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderRenameCmd)
	folderCmd.AddCommand(folderRmCmd)
}
