// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/pdiddy/folder-export/internal/export"
	"github.com/pdiddy/folder-export/internal/ledger"
	"github.com/pdiddy/folder-export/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a folder and its content into a new library document",
	Long: `Export reads a library document (file path or http(s) URL), selects the
folder given by --folder together with its ancestors up to root, and writes a
new document named <timestamp>__<input>_<folder>.xml into --output-dir.

With --subdirectories (the default) all descendant folders and the content
classified into them are exported as well. Content classified only into an
ancestor folder is never exported.`,
	Example: `  folder-export export -f library.xml -d men
  folder-export export -f https://example.com/library.xml -d sale --subdirectories=false`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("file", "f", "", "library document to read (path or http(s) URL)")
	exportCmd.Flags().StringP("folder", "d", "", "folder-id to export")
	exportCmd.Flags().BoolP("subdirectories", "s", true, "include descendant folders and their content")
	exportCmd.Flags().String("output-dir", ".", "directory for the exported document")
	exportCmd.Flags().Int("indent", 2, "indentation width of the output (0 keeps source whitespace)")
	exportCmd.Flags().Bool("no-history", false, "do not record the export in the history database")
	exportCmd.Flags().String("history-db", defaultHistoryPath, "history database file")
	exportCmd.Flags().Duration("timeout", 0, "HTTP request timeout for URL sources (default 60s)")
	exportCmd.Flags().Int("retries", 3, "retries on HTTP 429 and 5xx for URL sources")
	exportCmd.MarkFlagRequired("file")
	exportCmd.MarkFlagRequired("folder")

	bindFlag(exportCmd, "subdirectories", "subdirectories")
	bindFlag(exportCmd, "output_dir", "output-dir")
	bindFlag(exportCmd, "indent", "indent")
	bindFlag(exportCmd, "history.path", "history-db")
	bindFlag(exportCmd, "fetch.timeout", "timeout")
	bindFlag(exportCmd, "fetch.max_retries", "retries")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := exportConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !storage.IsRemote(cfg.Source) {
		abs, err := filepath.Abs(cfg.Source)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", cfg.Source, err)
		}
		cfg.Source = abs
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	p := &export.Pipeline{
		Source: newSource(cfg.Fetch),
		Sink:   storage.Sink{FS: osfs.New(cfg.OutputDir)},
	}

	if cfg.History.Enabled {
		l, err := ledger.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer l.Close()
		p.Ledger = l
	}

	_, err := p.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	return err
}
