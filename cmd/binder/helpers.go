// Shared helpers for binder CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/binderkit/binder/internal/sqlite"
	"github.com/binderkit/binder/pkg/types"
)

// openStore resolves the data directory and opens the store. The caller
// must defer store.Close().
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	store := sqlite.NewStore(sqlite.WithLogger(log))
	if err := store.Open(types.Config{DataDir: dataDir}); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// requireAuth verifies the --user/--password credentials against the
// store and ensures the owner's default folder exists. Every data
// command goes through here before touching records.
func requireAuth(store *sqlite.Store) (string, error) {
	if flagUser == "" || flagPassword == "" {
		return "", fmt.Errorf("%w: --user and --password are required", types.ErrInvalidInput)
	}
	ok, err := store.Verify(flagUser, flagPassword)
	if err != nil {
		return "", fmt.Errorf("verify credentials: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("invalid credentials for %q", flagUser)
	}
	if err := store.EnsureDefaultFolder(flagUser); err != nil {
		return "", fmt.Errorf("ensure default folder: %w", err)
	}
	return flagUser, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecords renders records as a table, or JSON with --json.
func printRecords(records []types.Record) error {
	if flagJSON {
		return printJSON(records)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tUID\tCATEGORY\tPRIORITY\tDEADLINE\tSTATUS\tFOLDER\tCONTENT")
	for _, r := range records {
		deadline := r.Deadline
		if deadline == "" {
			deadline = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.UserSeq, r.UID, r.Category, r.Priority, deadline,
			statusLabel(r.Done), r.FolderID, r.Content)
	}
	return w.Flush()
}

// printFolders renders folders as a table, or JSON with --json.
func printFolders(folders []types.Folder) error {
	if flagJSON {
		return printJSON(folders)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, f := range folders {
		fmt.Fprintf(w, "%d\t%s\n", f.ID, f.Name)
	}
	return w.Flush()
}

func statusLabel(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
