// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export runs a folder export end to end: read the library
// document, select the folder subtree, write the new document, and record
// the export in the ledger.
package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/folder-export/internal/document"
	"github.com/pdiddy/folder-export/internal/hierarchy"
	"github.com/pdiddy/folder-export/internal/ledger"
	"github.com/pdiddy/folder-export/internal/storage"
	"github.com/pdiddy/folder-export/pkg/types"
)

// Pipeline holds the collaborators of an export run.
type Pipeline struct {
	Source storage.Source
	Sink   storage.Sink

	// Ledger records completed exports. Nil disables history.
	Ledger *ledger.Ledger

	// Now returns the export time; defaults to time.Now.
	Now func() time.Time
}

// Result describes a completed export.
type Result struct {
	LibraryID string
	Selection hierarchy.Selection

	// Output is the written document's path: the sink name joined to the
	// configured output directory.
	Output string

	// Entry is the ledger record, nil when history is disabled.
	Entry *ledger.Entry
}

// Load reads and parses the library document at location.
func Load(ctx context.Context, src storage.Source, location string) (*document.Library, error) {
	data, err := src.Read(ctx, location)
	if err != nil {
		return nil, err
	}
	lib, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return lib, nil
}

// Run exports cfg.FolderID from cfg.Source, printing progress to w. Nothing
// is written when the selection fails.
func (p *Pipeline) Run(ctx context.Context, cfg types.ExportConfig, w io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid export configuration: %w", err)
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	fmt.Fprintf(w, "Looking for input file: %s\n", cfg.Source)
	lib, err := Load(ctx, p.Source, cfg.Source)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Done. Parsed %d folder(s), %d content item(s).\n", len(lib.Folders()), len(lib.Content()))

	fmt.Fprintf(w, "Processing file: %s for content in the %s folder\n", cfg.Source, cfg.FolderID)
	sel, err := hierarchy.Extract(lib.Folders(), lib.Content(), cfg.FolderID, cfg.Subdirectories)
	if err != nil {
		return nil, fmt.Errorf("selecting folder %q: %w", cfg.FolderID, err)
	}
	fmt.Fprintf(w, "Done. %d folder(s), %d content item(s) selected.\n", len(sel.Folders), len(sel.Content))

	fmt.Fprintf(w, "Exporting contents of %s to a new file.\n", cfg.FolderID)
	out, err := lib.Assemble(sel, cfg.Indent)
	if err != nil {
		return nil, err
	}
	exportedAt := now()
	name, err := p.Sink.SaveUnique(storage.OutputBase(cfg.Source, cfg.FolderID, exportedAt), out)
	if err != nil {
		return nil, err
	}

	res := &Result{
		LibraryID: lib.ID(),
		Selection: sel,
		Output:    filepath.Join(cfg.OutputDir, name),
	}

	if p.Ledger != nil {
		entry, err := p.Ledger.Record(ctx, ledger.Entry{
			Source:         cfg.Source,
			LibraryID:      res.LibraryID,
			FolderID:       cfg.FolderID,
			Subdirectories: cfg.Subdirectories,
			Folders:        len(sel.Folders),
			Content:        len(sel.Content),
			Output:         res.Output,
			CreatedAt:      exportedAt,
		})
		if err != nil {
			return res, fmt.Errorf("export written to %s but not recorded: %w", res.Output, err)
		}
		res.Entry = &entry
	}

	fmt.Fprintf(w, "Done.\nContent from the %s folder in %s has been successfully exported to %s.\n",
		cfg.FolderID, cfg.Source, res.Output)
	return res, nil
}
