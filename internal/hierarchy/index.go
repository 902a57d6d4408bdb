// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hierarchy

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// rootSlot is the interned slot of Root.
const rootSlot uint32 = 0

// Index is a parent-to-children view over a folder collection. Folder ids are
// interned to dense uint32 slots so traversals can track visited folders in a
// bitmap. An Index is read-only once built.
type Index struct {
	folders  []Folder
	byID     map[string]int // folder id -> position in folders (first wins)
	slots    map[string]uint32
	ids      []string   // slot -> folder id
	children [][]uint32 // slot -> child slots in collection order
}

// NewIndex builds an Index over folders. Folders whose parent names no known
// folder are kept but are unreachable from Root.
func NewIndex(folders []Folder) *Index {
	x := &Index{
		folders: folders,
		byID:    make(map[string]int, len(folders)),
		slots:   map[string]uint32{Root: rootSlot},
		ids:     []string{Root},
	}

	for i, f := range folders {
		if _, ok := x.byID[f.ID]; !ok {
			x.byID[f.ID] = i
		}
		if _, ok := x.slots[f.ID]; !ok {
			x.slots[f.ID] = uint32(len(x.ids))
			x.ids = append(x.ids, f.ID)
		}
	}

	x.children = make([][]uint32, len(x.ids))
	for _, f := range folders {
		if f.ID == Root || f.Parent == "" {
			continue
		}
		parent, ok := x.slots[f.Parent]
		if !ok {
			continue
		}
		child := x.slots[f.ID]
		x.children[parent] = append(x.children[parent], child)
	}
	return x
}

// Len returns the number of folder records in the index.
func (x *Index) Len() int {
	return len(x.folders)
}

// Has reports whether id is Root or names a folder.
func (x *Index) Has(id string) bool {
	_, ok := x.slots[id]
	return ok
}

// Folder returns the first folder record with the given id.
func (x *Index) Folder(id string) (Folder, bool) {
	i, ok := x.byID[id]
	if !ok {
		return Folder{}, false
	}
	return x.folders[i], true
}

// AncestorPath walks parent references from targetID up to Root. The result
// starts with targetID and ends with Root.
func (x *Index) AncestorPath(targetID string) ([]string, error) {
	if targetID == Root {
		return []string{Root}, nil
	}
	if _, ok := x.byID[targetID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, targetID)
	}

	var path []string
	current := targetID
	for current != Root {
		f, ok := x.Folder(current)
		if !ok {
			return nil, fmt.Errorf("%w: folder %q references unknown parent %q",
				ErrMalformedHierarchy, path[len(path)-1], current)
		}
		if len(path) >= len(x.folders) {
			return nil, fmt.Errorf("%w: no path from %q to %s after %d hops", ErrCyclicHierarchy, targetID, Root, len(path))
		}
		if f.Parent == "" {
			return nil, fmt.Errorf("%w: folder %q has no parent", ErrMalformedHierarchy, f.ID)
		}
		path = append(path, current)
		current = f.Parent
	}
	return append(path, Root), nil
}

// Descendants returns the seeds plus every folder reachable from them by
// following parent-to-child edges. Seeds come first, followed by folders in
// breadth-first discovery order. Each id appears once.
func (x *Index) Descendants(seeds ...string) ([]string, error) {
	seen := roaring.New()
	queue := make([]uint32, 0, len(seeds))
	for _, id := range seeds {
		slot, ok := x.slots[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		if seen.CheckedAdd(slot) {
			queue = append(queue, slot)
		}
	}

	for head := 0; head < len(queue); head++ {
		for _, child := range x.children[queue[head]] {
			if seen.CheckedAdd(child) {
				queue = append(queue, child)
			}
		}
	}

	ids := make([]string, len(queue))
	for i, slot := range queue {
		ids[i] = x.ids[slot]
	}
	return ids, nil
}

// Walk visits every folder reachable from Root in depth-first pre-order.
// Top-level folders have depth 0. Siblings are visited in collection order.
func (x *Index) Walk(fn func(f Folder, depth int)) {
	seen := roaring.New()
	seen.Add(rootSlot)
	var visit func(slot uint32, depth int)
	visit = func(slot uint32, depth int) {
		for _, child := range x.children[slot] {
			if !seen.CheckedAdd(child) {
				continue
			}
			f, _ := x.Folder(x.ids[child])
			fn(f, depth)
			visit(child, depth+1)
		}
	}
	visit(rootSlot, 0)
}

// Unreachable returns the folder records that Walk never visits: folders
// with a missing or unknown parent, and members of parent cycles. A folder
// record named Root is not reported.
func (x *Index) Unreachable() []Folder {
	reached := roaring.New()
	reached.Add(rootSlot)
	x.Walk(func(f Folder, _ int) {
		reached.Add(x.slots[f.ID])
	})

	var out []Folder
	for _, f := range x.folders {
		if !reached.Contains(x.slots[f.ID]) {
			out = append(out, f)
		}
	}
	return out
}
