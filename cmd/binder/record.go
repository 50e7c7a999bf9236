// Record mutation commands: add, edit, uid, done, rm.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/binderkit/binder/pkg/types"
)

var (
	recFolder   int64
	recUID      string
	recCategory string
	recDeadline string
	recPriority string
)

// recordFlags attaches the shared record field flags to cmd.
func recordFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&recFolder, "folder", 0, "folder id (required)")
	cmd.Flags().StringVar(&recUID, "uid", "", "user-supplied label (default: none)")
	cmd.Flags().StringVar(&recCategory, "category", "", "category (default: uncategorized)")
	cmd.Flags().StringVar(&recDeadline, "deadline", "", "deadline date, YYYY-MM-DD")
	cmd.Flags().StringVar(&recPriority, "priority", "", "priority: high, medium, low (default: medium)")
	_ = cmd.MarkFlagRequired("folder")
}

var addCmd = &cobra.Command{
	Use:   "add CONTENT",
	Short: "Insert a record",
	Long: `Add inserts a record into a folder. The record receives the owner's
next display sequence number.

Example:
  binder add "buy milk" --folder 1 --uid A1 --priority high`,
	Args: cobra.ExactArgs(1),
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
		id, err := store.InsertRecord(types.RecordInput{
			UID:      recUID,
			Category: recCategory,
			Content:  args[0],
			Deadline: recDeadline,
			Priority: recPriority,
			Owner:    owner,
			FolderID: recFolder,
		})
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		fmt.Printf("Created record %d\n", id)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit ID CONTENT",
	Short: "Rewrite a record's editable fields",
	Long: `Edit replaces the record's content, uid, category, deadline, and
priority. The display sequence never changes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id %q", args[0])
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
		if err := store.UpdateRecord(id, types.RecordInput{
			UID:      recUID,
			Category: recCategory,
			Content:  args[1],
			Deadline: recDeadline,
			Priority: recPriority,
			Owner:    owner,
			FolderID: recFolder,
		}); err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		fmt.Printf("Updated record %d\n", id)
		return nil
	},
}

var uidCmd = &cobra.Command{
	Use:   "uid ID NEW_UID",
	Short: "Relabel a record",
	Long:  "Uid changes only the user-supplied label, for duplicate resolution.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id %q", args[0])
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
		if err := store.UpdateUID(id, args[1], owner, recFolder); err != nil {
			return fmt.Errorf("update uid: %w", err)
		}
		fmt.Printf("Relabeled record %d\n", id)
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Toggle a record between pending and done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id %q", args[0])
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
		if err := store.ToggleStatus(id, owner); err != nil {
			return fmt.Errorf("toggle status: %w", err)
		}
		fmt.Printf("Toggled record %d\n", id)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm ID...",
	Short: "Delete records",
	Args:  cobra.MinimumNArgs(1),
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
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q", arg)
			}
			if err := store.DeleteRecord(id, owner); err != nil {
				return fmt.Errorf("delete record %d: %w", id, err)
			}
		}
		fmt.Printf("Deleted %d record(s)\n", len(args))
		return nil
	},
}

func init() {
	recordFlags(addCmd)
	recordFlags(editCmd)
	uidCmd.Flags().Int64Var(&recFolder, "folder", 0, "folder id (required)")
	_ = uidCmd.MarkFlagRequired("folder")
}
