// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/folder-export/internal/export"
	"github.com/pdiddy/folder-export/internal/storage"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List the folder hierarchy of a library document",
	Long: `Folders prints every folder reachable from root as an indented tree,
with the number of content items classified directly into each folder.
Folders with a missing or unknown parent are listed separately; they cannot
be exported.`,
	RunE: runFolders,
}

func init() {
	foldersCmd.Flags().StringP("file", "f", "", "library document to read (path or http(s) URL)")
	foldersCmd.Flags().Bool("yaml", false, "print the listing as YAML")
	foldersCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(foldersCmd)
}

func runFolders(cmd *cobra.Command, args []string) error {
	location, _ := cmd.Flags().GetString("file")
	if !storage.IsRemote(location) {
		abs, err := filepath.Abs(location)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", location, err)
		}
		location = abs
	}

	lib, err := export.Load(cmd.Context(), newSource(fetchConfig()), location)
	if err != nil {
		return err
	}
	listing := export.ListFolders(lib)

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asYAML {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return err
		}
		return enc.Close()
	}
	return formatListing(cmd.OutOrStdout(), listing)
}

func formatListing(w io.Writer, l export.Listing) error {
	name := l.LibraryID
	if name == "" {
		name = "library"
	}
	fmt.Fprintf(w, "%s (root, %d content)\n", name, l.RootContent)
	for _, f := range l.Folders {
		fmt.Fprintf(w, "%s%s (%d content)\n", strings.Repeat("  ", f.Depth+1), f.ID, f.Content)
	}

	if len(l.Detached) > 0 {
		fmt.Fprintf(w, "\n%d detached folder(s):\n", len(l.Detached))
		for _, f := range l.Detached {
			parent := f.Parent
			if parent == "" {
				parent = "<none>"
			}
			fmt.Fprintf(w, "  %s (parent %s, %d content)\n", f.ID, parent, f.Content)
		}
	}

	fmt.Fprintf(w, "\n%d folders\n", len(l.Folders)+len(l.Detached))
	return nil
}
