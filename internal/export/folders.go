// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"github.com/pdiddy/folder-export/internal/document"
	"github.com/pdiddy/folder-export/internal/hierarchy"
)

// FolderEntry describes one folder of a library listing.
type FolderEntry struct {
	ID     string `json:"id" yaml:"id"`
	Parent string `json:"parent" yaml:"parent"`
	Depth  int    `json:"depth" yaml:"depth"`

	// Content counts the items classified directly into the folder.
	Content int `json:"content" yaml:"content"`
}

// Listing is the folder hierarchy of a library document.
type Listing struct {
	LibraryID string `json:"library_id" yaml:"library_id"`

	// Folders lists folders reachable from root in depth-first order.
	Folders []FolderEntry `json:"folders" yaml:"folders"`

	// Detached lists folders with a missing or unknown parent. They cannot
	// be exported.
	Detached []FolderEntry `json:"detached,omitempty" yaml:"detached,omitempty"`

	// RootContent counts items classified directly into root.
	RootContent int `json:"root_content" yaml:"root_content"`
}

// ListFolders describes the folder hierarchy of lib.
func ListFolders(lib *document.Library) Listing {
	counts := hierarchy.CountContent(lib.Content())
	x := hierarchy.NewIndex(lib.Folders())

	l := Listing{
		LibraryID:   lib.ID(),
		RootContent: counts[hierarchy.Root],
	}
	x.Walk(func(f hierarchy.Folder, depth int) {
		l.Folders = append(l.Folders, FolderEntry{
			ID: f.ID, Parent: f.Parent, Depth: depth, Content: counts[f.ID],
		})
	})
	for _, f := range x.Unreachable() {
		l.Detached = append(l.Detached, FolderEntry{
			ID: f.ID, Parent: f.Parent, Depth: -1, Content: counts[f.ID],
		})
	}
	return l
}
