package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binderkit/binder/pkg/types"
)

func TestReadCSVRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	content := "uid,content,priority,ignored\n" +
		"A1,first row,high,x\n" +
		",second row,,\n" +
		"A3,third row\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := readCSVRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, types.RecordInput{UID: "A1", Content: "first row", Priority: "high"}, rows[0])
	assert.Equal(t, types.RecordInput{Content: "second row"}, rows[1])
	assert.Equal(t, types.RecordInput{UID: "A3", Content: "third row"}, rows[2], "short lines leave trailing cells empty")
}

func TestReadCSVRowsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	rows, err := readCSVRows(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteCSVRecordsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	records := []types.Record{
		{UserSeq: 1, UID: "A1", Content: "hello, world", Category: "greetings", Priority: "high", Done: true},
		{UserSeq: 2, UID: "none", Content: "line\ntwo", Priority: "medium"},
	}
	require.NoError(t, writeCSVRecords(path, records))

	rows, err := readCSVRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "hello, world", rows[0].Content, "quoting survives commas")
	assert.Equal(t, "line\ntwo", rows[1].Content, "quoting survives newlines")
	assert.Equal(t, "A1", rows[0].UID)
	assert.Equal(t, "greetings", rows[0].Category)
}
