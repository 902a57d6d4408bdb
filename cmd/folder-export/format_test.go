// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/folder-export/internal/export"
	"github.com/pdiddy/folder-export/internal/ledger"
)

func TestFormatListing(t *testing.T) {
	var buf bytes.Buffer
	err := formatListing(&buf, export.Listing{
		LibraryID:   "SiteLibrary",
		RootContent: 2,
		Folders: []export.FolderEntry{
			{ID: "men", Parent: "root", Depth: 0, Content: 1},
			{ID: "shirts", Parent: "men", Depth: 1, Content: 4},
		},
		Detached: []export.FolderEntry{{ID: "lost", Depth: -1}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SiteLibrary (root, 2 content)\n")
	assert.Contains(t, out, "  men (1 content)\n")
	assert.Contains(t, out, "    shirts (4 content)\n")
	assert.Contains(t, out, "lost (parent <none>, 0 content)")
	assert.Contains(t, out, "3 folders")
}

func TestFormatHistory(t *testing.T) {
	entries := []ledger.Entry{{
		ID: "e1", Source: "/data/library.xml", FolderID: "a-very-long-folder-identifier",
		Subdirectories: true, Folders: 3, Content: 9, Output: "out/1__library_men.xml",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, formatHistory(&buf, entries, false))
	assert.Contains(t, buf.String(), "a-very-long-folde...")
	assert.Contains(t, buf.String(), "out/1__library_men.xml")
	assert.Contains(t, buf.String(), "1 exports")

	buf.Reset()
	require.NoError(t, formatHistory(&buf, entries, true))
	var decoded []ledger.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "e1", decoded[0].ID)

	buf.Reset()
	require.NoError(t, formatHistory(&buf, nil, false))
	assert.Equal(t, "No exports recorded.\n", buf.String())
}

func TestExportConfigDefaults(t *testing.T) {
	require.NoError(t, exportCmd.Flags().Set("file", "library.xml"))
	require.NoError(t, exportCmd.Flags().Set("folder", "men"))

	cfg := exportConfig(exportCmd)
	assert.Equal(t, "library.xml", cfg.Source)
	assert.Equal(t, "men", cfg.FolderID)
	assert.True(t, cfg.Subdirectories)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 2, cfg.Indent)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, defaultHistoryPath, cfg.History.Path)
	assert.Equal(t, defaultTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.NoError(t, cfg.Validate())
}
