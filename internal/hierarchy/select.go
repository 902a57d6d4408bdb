// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hierarchy

// ResolveAncestorPath returns the folder ids from targetID up to Root,
// target first and Root last. Callers that need root-first order reverse it.
func ResolveAncestorPath(folders []Folder, targetID string) ([]string, error) {
	return NewIndex(folders).AncestorPath(targetID)
}

// ExpandDescendants returns the descendant closure of seeds: every seed plus
// every folder whose parent chain passes through a seed.
func ExpandDescendants(folders []Folder, seeds []string) ([]string, error) {
	return NewIndex(folders).Descendants(seeds...)
}

// SelectFolders keeps the folders whose id is in keepIDs. Ids in keepIDs
// that name no folder (Root, typically) are ignored.
func SelectFolders(folders []Folder, keepIDs []string) []Folder {
	keep := toSet(keepIDs)
	var out []Folder
	for _, f := range folders {
		if keep[f.ID] {
			out = append(out, f)
		}
	}
	return out
}

// SelectContent keeps the content items classified into at least one folder
// in activeIDs. Items without folder links or classification links are
// never kept.
func SelectContent(items []ContentItem, activeIDs []string) []ContentItem {
	active := toSet(activeIDs)
	var out []ContentItem
	for _, c := range items {
		if c.inAny(active) {
			out = append(out, c)
		}
	}
	return out
}

// CountContent returns, per folder id, how many items are classified into it.
// An item classified into the same folder by several links counts once.
func CountContent(items []ContentItem) map[string]int {
	counts := make(map[string]int)
	for _, c := range items {
		for _, id := range c.Memberships() {
			counts[id]++
		}
	}
	return counts
}
