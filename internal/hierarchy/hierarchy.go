// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hierarchy selects a folder subtree, and the content classified into
// it, out of a library's full folder and content collections.
//
// The functions here are pure: they never mutate their inputs and hold no
// state between calls. Output collections keep the relative order of the
// corresponding input collection.
package hierarchy

import "errors"

// Root is the implicit top of every folder hierarchy. A folder whose parent
// is Root is a top-level folder. Root is never looked up as a parent record.
const Root = "root"

var (
	// ErrNotFound is returned when a requested folder id names no folder and
	// is not Root.
	ErrNotFound = errors.New("folder not found")

	// ErrMalformedHierarchy is returned when a folder on an ancestor path has
	// no parent reference, or references a parent that does not exist.
	ErrMalformedHierarchy = errors.New("malformed folder hierarchy")

	// ErrCyclicHierarchy is returned when an ancestor walk does not reach Root
	// within as many hops as there are folders.
	ErrCyclicHierarchy = errors.New("cyclic folder hierarchy")
)

// Folder is a node in a library's classification hierarchy.
type Folder struct {
	// ID is the folder-id, unique among folders.
	ID string

	// Parent is the parent folder-id, or Root for a top-level folder. An
	// empty Parent means the document carried no parent reference.
	Parent string

	// Seq is the folder's position in the source collection.
	Seq int
}

// ClassificationLink assigns a content item to a single folder.
type ClassificationLink struct {
	FolderID string
}

// FolderLink groups the classification links of one classification scheme.
type FolderLink struct {
	ClassificationLinks []ClassificationLink
}

// ContentItem is a library record classified into zero or more folders.
type ContentItem struct {
	// ID is the content-id. It is informational only; selection never keys
	// on it.
	ID string

	FolderLinks []FolderLink

	// Seq is the item's position in the source collection.
	Seq int
}

// Memberships returns the distinct folder ids referenced by any
// classification link of any folder link, in document order.
func (c ContentItem) Memberships() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, fl := range c.FolderLinks {
		for _, cl := range fl.ClassificationLinks {
			if !seen[cl.FolderID] {
				seen[cl.FolderID] = true
				ids = append(ids, cl.FolderID)
			}
		}
	}
	return ids
}

// inAny reports whether any of the item's classification links names a
// folder in set.
func (c ContentItem) inAny(set map[string]bool) bool {
	for _, fl := range c.FolderLinks {
		for _, cl := range fl.ClassificationLinks {
			if set[cl.FolderID] {
				return true
			}
		}
	}
	return false
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
