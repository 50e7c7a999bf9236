// Import and export commands: CSV in, CSV out.
package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/binderkit/binder/pkg/types"
)

var (
	importFolder int64
	exportFolder int64
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Bulk-insert records from a CSV file",
	Long: `Import reads rows from a CSV file with a header line naming any of
uid, category, content, deadline, priority. Missing cells default per
field. Each row passes the normal insert validation; rows with empty
content or a duplicate uid are skipped.

Example:
  binder import tasks.csv --folder 1`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write records to a CSV file",
	Long: `Export writes the owner's records as CSV, including the display
sequence as a read-only column. The file is written atomically.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	importCmd.Flags().Int64Var(&importFolder, "folder", 0, "target folder id (required)")
	_ = importCmd.MarkFlagRequired("folder")
	exportCmd.Flags().Int64Var(&exportFolder, "folder", types.AllFolders, "folder id (-1: all folders)")
}

func runImport(cmd *cobra.Command, args []string) error {
	rows, err := readCSVRows(args[0])
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
	result, err := store.ImportRows(rows, owner, importFolder)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Printf("Imported %d record(s), skipped %d\n", result.Imported, result.Skipped)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	owner, err := requireAuth(store)
	if err != nil {
		return err
	}
	records, err := store.ExportRows(owner, exportFolder)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeCSVRecords(args[0], records); err != nil {
		return err
	}
	fmt.Printf("Exported %d record(s) to %s\n", len(records), args[0])
	return nil
}

// readCSVRows parses a CSV file with a header line into record inputs.
// Unknown header columns are ignored; missing cells stay empty and take
// the store's per-field defaults.
func readCSVRows(path string) ([]types.RecordInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	lines, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(lines) == 0 {
		return nil, nil
	}

	col := make(map[string]int)
	for i, name := range lines[0] {
		col[name] = i
	}
	cell := func(line []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(line) {
			return ""
		}
		return line[i]
	}

	var rows []types.RecordInput
	for _, line := range lines[1:] {
		rows = append(rows, types.RecordInput{
			UID:      cell(line, "uid"),
			Category: cell(line, "category"),
			Content:  cell(line, "content"),
			Deadline: cell(line, "deadline"),
			Priority: cell(line, "priority"),
		})
	}
	return rows, nil
}

// writeCSVRecords writes records to path using the temp-file, fsync,
// rename pattern so a failed export never clobbers an existing file.
func writeCSVRecords(path string, records []types.Record) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	w := csv.NewWriter(tmp)
	header := []string{"seq", "uid", "category", "content", "deadline", "priority", "status"}
	if err := w.Write(header); err != nil {
		cleanup()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		line := []string{
			strconv.FormatInt(r.UserSeq, 10),
			r.UID, r.Category, r.Content, r.Deadline, r.Priority,
			statusLabel(r.Done),
		}
		if err := w.Write(line); err != nil {
			cleanup()
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		cleanup()
		return fmt.Errorf("flushing csv: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
