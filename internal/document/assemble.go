// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/pdiddy/folder-export/internal/hierarchy"
)

// xmlDeclaration is written when the source document had none.
const xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`

// Assemble returns a copy of the library document holding only the folders
// and content of sel. Selected elements stay where they were in the source;
// every other node is copied verbatim. When indent is positive the output is
// re-indented with that many spaces, otherwise source whitespace is kept.
func (l *Library) Assemble(sel hierarchy.Selection, indent int) ([]byte, error) {
	doc := l.doc.Copy()
	root := doc.Root()

	keepFolders := make(map[int]bool, len(sel.Folders))
	for _, f := range sel.Folders {
		keepFolders[f.Seq] = true
	}
	keepContent := make(map[int]bool, len(sel.Content))
	for _, c := range sel.Content {
		keepContent[c.Seq] = true
	}

	prune(root, folderTag, keepFolders)
	prune(root, contentTag, keepContent)

	if !hasDeclaration(doc) {
		doc.InsertChildAt(0, etree.NewProcInst("xml", xmlDeclaration))
	}
	if indent > 0 {
		doc.Indent(indent)
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing library: %w", err)
	}
	return data, nil
}

// prune removes the tag children of parent whose position among tag
// siblings is not in keep.
func prune(parent *etree.Element, tag string, keep map[int]bool) {
	for i, el := range parent.SelectElements(tag) {
		if !keep[i] {
			parent.RemoveChild(el)
		}
	}
}

func hasDeclaration(doc *etree.Document) bool {
	for _, t := range doc.Child {
		if p, ok := t.(*etree.ProcInst); ok && p.Target == "xml" {
			return true
		}
	}
	return false
}
