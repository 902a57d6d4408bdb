// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hierarchy

// Selection is the result of extracting one folder from a library.
type Selection struct {
	// Target is the requested folder id.
	Target string

	// Path is the ancestor path, Target first and Root last.
	Path []string

	// Descendants is the descendant closure of Target. Nil when
	// subdirectories were not requested.
	Descendants []string

	// Active is the folder-id set content membership was tested against:
	// {Target} without subdirectories, Descendants with them.
	Active []string

	// Folders holds the selected folder records in collection order.
	Folders []Folder

	// Content holds the selected content items in collection order.
	Content []ContentItem
}

// Extract selects targetID's ancestor chain, optionally its descendants, and
// the content classified into the active folder set.
//
// Ancestors are kept as folder records so the exported document still places
// the target under Root, but content classified only into an ancestor is not
// exported.
func Extract(folders []Folder, content []ContentItem, targetID string, includeSubdirectories bool) (Selection, error) {
	x := NewIndex(folders)

	path, err := x.AncestorPath(targetID)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{
		Target: targetID,
		Path:   path,
		Active: []string{targetID},
	}
	keep := path
	if includeSubdirectories {
		closure, err := x.Descendants(targetID)
		if err != nil {
			return Selection{}, err
		}
		sel.Descendants = closure
		sel.Active = closure
		keep = append(append([]string(nil), path...), closure...)
	}

	sel.Folders = SelectFolders(folders, keep)
	sel.Content = SelectContent(content, sel.Active)
	return sel, nil
}
